package report

type ReportQuery struct {
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	Department string `form:"department"`
	Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
	LeaveType  string `form:"leave_type"`
	Priority   string `form:"priority" binding:"omitempty,oneof=low medium high urgent"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
}

type StatsSummary struct {
	TotalRequests int64   `json:"total_requests"`
	Pending       int64   `json:"pending"`
	Approved      int64   `json:"approved"`
	Rejected      int64   `json:"rejected"`
	Cancelled     int64   `json:"cancelled"`
	TotalDays     float64 `json:"total_days"`
}

type LeaveTypeStat struct {
	LeaveType string  `json:"leave_type"`
	Count     int64   `json:"count"`
	TotalDays float64 `json:"total_days"`
}

type PriorityStat struct {
	Priority string `json:"priority"`
	Count    int64  `json:"count"`
}

type StatsResponse struct {
	Summary            StatsSummary    `json:"summary"`
	LeaveTypeBreakdown []LeaveTypeStat `json:"leave_type_breakdown"`
	PriorityBreakdown  []PriorityStat  `json:"priority_breakdown"`
}

type StatusCounts struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Cancelled int64 `json:"cancelled"`
}

type EmployeeSummary struct {
	EmployeeID   string       `json:"employee_id"`
	FullName     string       `json:"full_name"`
	Department   string       `json:"department"`
	Requests     StatusCounts `json:"requests"`
	ApprovedDays float64      `json:"approved_days"`
}

type DepartmentSummary struct {
	Department    string       `json:"department"`
	EmployeeCount int          `json:"employee_count"`
	Requests      StatusCounts `json:"requests"`
	ApprovedDays  float64      `json:"approved_days"`
}
