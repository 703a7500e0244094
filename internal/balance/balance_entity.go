package balance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaveBalance is one ledger row per employee and leave type. Remaining is
// always derived from Total and Used.
type LeaveBalance struct {
	EmployeeID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LeaveType  string          `gorm:"type:varchar(20);primaryKey"`
	Total      decimal.Decimal `gorm:"type:numeric(6,1);not null"`
	Used       decimal.Decimal `gorm:"type:numeric(6,1);not null"`
	UpdatedBy  *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

func (b LeaveBalance) Remaining() decimal.Decimal {
	return b.Total.Sub(b.Used)
}
