package balance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error)
	FindOne(ctx context.Context, employeeID, leaveType string) (*LeaveBalance, error)
	// EnsureRow inserts the default allocation unless a row already exists.
	EnsureRow(ctx context.Context, employeeID, leaveType string, defaultTotal decimal.Decimal) error
	// FindForUpdate locks the row until the surrounding transaction ends.
	FindForUpdate(ctx context.Context, employeeID, leaveType string) (*LeaveBalance, error)
	AddUsed(ctx context.Context, employeeID, leaveType string, days decimal.Decimal) error
	UpsertTotal(ctx context.Context, b *LeaveBalance) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error) {
	var rows []LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("leave_type").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindOne(ctx context.Context, employeeID, leaveType string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND leave_type = ?", employeeID, leaveType).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) EnsureRow(ctx context.Context, employeeID, leaveType string, defaultTotal decimal.Decimal) error {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&LeaveBalance{
			EmployeeID: empUUID,
			LeaveType:  leaveType,
			Total:      defaultTotal,
			Used:       decimal.Zero,
			CreatedAt:  now,
			UpdatedAt:  now,
		}).Error
}

func (r *repository) FindForUpdate(ctx context.Context, employeeID, leaveType string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ? AND leave_type = ?", employeeID, leaveType).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) AddUsed(ctx context.Context, employeeID, leaveType string, days decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Where("employee_id = ? AND leave_type = ?", employeeID, leaveType).
		Updates(map[string]any{
			"used":       gorm.Expr("used + ?", days),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpsertTotal overwrites total (and updated_by) while keeping used.
func (r *repository) UpsertTotal(ctx context.Context, b *LeaveBalance) error {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "leave_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"total", "updated_by", "updated_at"}),
		}).
		Create(b).Error
}
