package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

const (
	HalfDayMorning   = "morning"
	HalfDayAfternoon = "afternoon"
)

// blockingStatuses are the statuses that reserve a date range for overlap.
var blockingStatuses = []string{StatusPending, StatusApproved}

var halfDay = decimal.RequireFromString("0.5")

// CanTransition reports whether the lifecycle allows from -> to. Only pending
// requests move, and only to a terminal status.
func CanTransition(from, to string) bool {
	return from == StatusPending && IsTerminal(to)
}

// IsTerminal reports a status with no exits. Terminal requests can no
// longer be edited or removed either.
func IsTerminal(status string) bool {
	switch status {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// ComputeTotalDays is the inclusive calendar day count, or 0.5 for a half
// day no matter how wide the range is.
func ComputeTotalDays(from, to time.Time, isHalfDay bool) decimal.Decimal {
	if isHalfDay {
		return halfDay
	}
	days := daysBetween(from, to) + 1
	return decimal.NewFromInt(int64(days))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}
