package leave

import (
	"context"
	"time"

	"go-attendance/internal/balance"
	leaveerrors "go-attendance/internal/leave/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Clock supplies "today" in the organisation's time zone.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Now: time.Now, Location: loc}
}

// Today is the current calendar date in the clock's zone, as UTC midnight so
// it compares directly with stored date columns.
func (c Clock) Today() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return dateOnly(c.now().In(loc))
}

func (c Clock) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

type candidate struct {
	EmployeeID string
	LeaveType  string
	FromDate   time.Time
	ToDate     time.Time
	IsHalfDay  bool
	// ExcludeID is set when an existing request is re-validated.
	ExcludeID *uuid.UUID
}

type validator struct {
	repo     Repository
	balances balance.Service
	clock    Clock
}

func (v validator) withTx(tx *gorm.DB) validator {
	v.repo = v.repo.WithTx(tx)
	v.balances = v.balances.WithTx(tx)
	return v
}

// validate checks a candidate in a fixed order: date range, past date,
// overlap, then balance for gated types. It returns the day count to store.
func (v validator) validate(ctx context.Context, c candidate) (decimal.Decimal, error) {
	if c.FromDate.After(c.ToDate) {
		return decimal.Zero, leaveerrors.ErrInvalidDateRange
	}
	if c.FromDate.Before(v.clock.Today()) {
		return decimal.Zero, leaveerrors.ErrPastDate
	}

	overlap, err := v.repo.HasOverlap(ctx, c.EmployeeID, c.FromDate, c.ToDate, c.ExcludeID)
	if err != nil {
		return decimal.Zero, err
	}
	if overlap {
		return decimal.Zero, leaveerrors.ErrLeaveOverlap
	}

	totalDays := ComputeTotalDays(c.FromDate, c.ToDate, c.IsHalfDay)
	if v.balances.Policy().IsGated(c.LeaveType) {
		remaining, err := v.balances.Remaining(ctx, c.EmployeeID, c.LeaveType)
		if err != nil {
			return decimal.Zero, err
		}
		if remaining.LessThan(totalDays) {
			return decimal.Zero, balance.InsufficientBalance(c.LeaveType, remaining, totalDays)
		}
	}
	return totalDays, nil
}
