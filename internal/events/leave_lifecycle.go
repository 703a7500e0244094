package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveSubmitted = "leave.submitted"
	LeaveApproved  = "leave.approved"
	LeaveRejected  = "leave.rejected"
	LeaveCancelled = "leave.cancelled"
)

// LeaveLifecycleEvent is keyed by leave id on the topic, so every event of
// one request lands on the same partition in order.
type LeaveLifecycleEvent struct {
	EventType       string    `json:"event_type"`
	LeaveID         string    `json:"leave_id"`
	ReferenceNo     string    `json:"reference_no"`
	EmployeeID      string    `json:"employee_id"`
	LeaveType       string    `json:"leave_type"`
	FromDate        string    `json:"from_date"`
	ToDate          string    `json:"to_date"`
	TotalDays       float64   `json:"total_days"`
	Status          string    `json:"status"`
	ActorID         string    `json:"actor_id"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
