package balance

type SetBalanceRequest struct {
	LeaveType string   `json:"leave_type" binding:"required"`
	Total     *float64 `json:"total" binding:"required,gte=0"`
}

type BalanceEntry struct {
	Total     float64 `json:"total"`
	Used      float64 `json:"used"`
	Remaining float64 `json:"remaining"`
	Gated     bool    `json:"balance_gated"`
}

type BalanceResponse struct {
	EmployeeID string                  `json:"employee_id"`
	Balances   map[string]BalanceEntry `json:"balances"`
}
