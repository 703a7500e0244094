package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Employee is owned by user management. This service only reads it, apart
// from the row lock taken while a leave request is submitted.
type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string    `gorm:"uniqueIndex"`
	FullName       string
	Email          string `gorm:"uniqueIndex"`
	Department     string `gorm:"index"`
	Role           string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
