package leave

import (
	"time"
)

const dateLayout = "2006-01-02"

type EmergencyContactRequest struct {
	Name         string `json:"name" binding:"omitempty,max=120"`
	Phone        string `json:"phone" binding:"omitempty,max=40"`
	Relationship string `json:"relationship" binding:"omitempty,max=60"`
}

type CreateLeaveRequest struct {
	LeaveType        string                   `json:"leave_type" binding:"required,oneof=annual sick casual maternity paternity bereavement study jury military other"`
	FromDate         string                   `json:"from_date" binding:"required"`
	ToDate           string                   `json:"to_date" binding:"required"`
	Reason           string                   `json:"reason" binding:"required"`
	Priority         string                   `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	IsHalfDay        bool                     `json:"is_half_day"`
	HalfDayType      string                   `json:"half_day_type" binding:"omitempty,oneof=morning afternoon"`
	EmergencyContact *EmergencyContactRequest `json:"emergency_contact"`
}

// UpdateLeaveRequest is a partial update; nil fields are left untouched.
type UpdateLeaveRequest struct {
	LeaveType        *string                  `json:"leave_type" binding:"omitempty,oneof=annual sick casual maternity paternity bereavement study jury military other"`
	FromDate         *string                  `json:"from_date"`
	ToDate           *string                  `json:"to_date"`
	Reason           *string                  `json:"reason" binding:"omitempty,min=1"`
	Priority         *string                  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	IsHalfDay        *bool                    `json:"is_half_day"`
	HalfDayType      *string                  `json:"half_day_type" binding:"omitempty,oneof=morning afternoon"`
	EmergencyContact *EmergencyContactRequest `json:"emergency_contact"`
}

type DecisionRequest struct {
	Decision        string  `json:"decision" binding:"required,oneof=approved rejected"`
	RejectionReason *string `json:"rejection_reason"`
}

type BulkDecisionRequest struct {
	LeaveIDs        []string `json:"leave_ids" binding:"required,min=1,max=500"`
	Decision        string   `json:"decision" binding:"required,oneof=approved rejected"`
	RejectionReason *string  `json:"rejection_reason"`
}

type SkippedDecision struct {
	LeaveID string `json:"leave_id"`
	Code    string `json:"code"`
	Reason  string `json:"reason"`
}

type BulkDecisionResponse struct {
	ProcessedCount int               `json:"processed_count"`
	Skipped        []SkippedDecision `json:"skipped"`
	// FailedLeaveID is set when a storage error stopped the batch.
	FailedLeaveID string `json:"failed_leave_id,omitempty"`
}

type ListMyLeavesQuery struct {
	Status    string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
	LeaveType string `form:"leave_type"`
	Year      int    `form:"year" binding:"omitempty,min=1970,max=9999"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type ListLeavesQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	LeaveType  string `form:"leave_type"`
	Priority   string `form:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Department string `form:"department"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type EmergencyContactResponse struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

type LeaveResponse struct {
	ID               string                    `json:"id"`
	ReferenceNo      string                    `json:"reference_no"`
	EmployeeID       string                    `json:"employee_id"`
	EmployeeName     string                    `json:"employee_name,omitempty"`
	Department       string                    `json:"department,omitempty"`
	LeaveType        string                    `json:"leave_type"`
	FromDate         string                    `json:"from_date"`
	ToDate           string                    `json:"to_date"`
	TotalDays        float64                   `json:"total_days"`
	IsHalfDay        bool                      `json:"is_half_day"`
	HalfDayType      *string                   `json:"half_day_type,omitempty"`
	Reason           string                    `json:"reason"`
	Priority         string                    `json:"priority"`
	Status           string                    `json:"status"`
	ApprovedBy       *string                   `json:"approved_by,omitempty"`
	ApprovedAt       *string                   `json:"approved_at,omitempty"`
	RejectionReason  *string                   `json:"rejection_reason,omitempty"`
	EmergencyContact *EmergencyContactResponse `json:"emergency_contact,omitempty"`
	CreatedAt        string                    `json:"created_at"`
	UpdatedAt        string                    `json:"updated_at"`
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		ReferenceNo:     l.ReferenceNo,
		EmployeeID:      l.EmployeeID.String(),
		LeaveType:       l.LeaveType,
		FromDate:        l.FromDate.Format(dateLayout),
		ToDate:          l.ToDate.Format(dateLayout),
		TotalDays:       l.TotalDays.InexactFloat64(),
		IsHalfDay:       l.IsHalfDay,
		HalfDayType:     l.HalfDayType,
		Reason:          l.Reason,
		Priority:        l.Priority,
		Status:          l.Status,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       l.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
		resp.Department = l.Employee.Department
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.UTC().Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if l.EmergencyContact != (EmergencyContact{}) {
		resp.EmergencyContact = &EmergencyContactResponse{
			Name:         l.EmergencyContact.Name,
			Phone:        l.EmergencyContact.Phone,
			Relationship: l.EmergencyContact.Relationship,
		}
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
