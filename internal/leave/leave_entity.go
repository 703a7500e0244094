package leave

import (
	"time"

	"go-attendance/internal/employee"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EmergencyContact struct {
	Name         string `gorm:"type:varchar(120)"`
	Phone        string `gorm:"type:varchar(40)"`
	Relationship string `gorm:"type:varchar(60)"`
}

type Leave struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReferenceNo string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`

	LeaveType   string          `gorm:"type:varchar(20);not null"`
	FromDate    time.Time       `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	ToDate      time.Time       `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	TotalDays   decimal.Decimal `gorm:"type:numeric(6,1);not null"`
	IsHalfDay   bool            `gorm:"not null"`
	HalfDayType *string         `gorm:"type:varchar(10)"`
	Reason      string          `gorm:"type:text;not null"`
	Priority    string          `gorm:"type:varchar(10);not null"`

	Status          string     `gorm:"type:varchar(20);not null;index"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`

	EmergencyContact EmergencyContact `gorm:"embedded;embeddedPrefix:emergency_contact_"`

	CreatedAt time.Time `gorm:"<-:create"`
	UpdatedAt time.Time

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID"`
}

func (Leave) TableName() string {
	return "leave_requests"
}
