package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFilter narrows List. Zero values mean "no filter".
type ListFilter struct {
	EmployeeID string
	Status     string
	LeaveType  string
	Priority   string
	Department string
	Year       int
	// FromDateStart and FromDateEnd bound from_date, both inclusive.
	FromDateStart *time.Time
	FromDateEnd   *time.Time
	Page          int
	PageSize      int
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindPendingByIDs(ctx context.Context, ids []string) ([]Leave, error)
	List(ctx context.Context, f ListFilter) ([]Leave, int64, error)
	Upcoming(ctx context.Context, employeeID string, from time.Time, limit int) ([]Leave, error)
	HasOverlap(ctx context.Context, employeeID string, from, to time.Time, excludeID *uuid.UUID) (bool, error)
	// TransitionFromPending applies updates only while the row is still
	// pending. It reports false when another writer got there first.
	TransitionFromPending(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error)
	UpdatePending(ctx context.Context, l *Leave) (bool, error)
	DeletePending(ctx context.Context, id uuid.UUID) (bool, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindPendingByIDs(ctx context.Context, ids []string) ([]Leave, error) {
	var leaves []Leave
	if len(ids) == 0 {
		return leaves, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Where("status = ?", StatusPending).
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) filtered(ctx context.Context, f ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&Leave{})
	if f.Department != "" {
		q = q.Joins("JOIN employees ON employees.id = leave_requests.employee_id").
			Where("employees.department = ?", f.Department)
	}
	if f.EmployeeID != "" {
		q = q.Where("leave_requests.employee_id = ?", f.EmployeeID)
	}
	if f.Status != "" {
		q = q.Where("leave_requests.status = ?", f.Status)
	}
	if f.LeaveType != "" {
		q = q.Where("leave_requests.leave_type = ?", f.LeaveType)
	}
	if f.Priority != "" {
		q = q.Where("leave_requests.priority = ?", f.Priority)
	}
	if f.Year > 0 {
		q = q.Where("leave_requests.from_date BETWEEN ? AND ?",
			fmt.Sprintf("%04d-01-01", f.Year), fmt.Sprintf("%04d-12-31", f.Year))
	}
	if f.FromDateStart != nil {
		q = q.Where("leave_requests.from_date >= ?", f.FromDateStart.Format(dateLayout))
	}
	if f.FromDateEnd != nil {
		q = q.Where("leave_requests.from_date <= ?", f.FromDateEnd.Format(dateLayout))
	}
	return q
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Leave, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	leaves := make([]Leave, 0, f.PageSize)
	if total == 0 {
		return leaves, 0, nil
	}
	err := r.filtered(ctx, f).
		Preload("Employee").
		Order("leave_requests.from_date DESC, leave_requests.created_at DESC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&leaves).Error
	return leaves, total, err
}

func (r *repository) Upcoming(ctx context.Context, employeeID string, from time.Time, limit int) ([]Leave, error) {
	q := r.db.WithContext(ctx).
		Preload("Employee").
		Where("status = ?", StatusApproved).
		Where("from_date >= ?", from.Format(dateLayout))
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}

	var leaves []Leave
	err := q.Order("from_date ASC").Limit(limit).Find(&leaves).Error
	return leaves, err
}

func (r *repository) HasOverlap(ctx context.Context, employeeID string, from, to time.Time, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", blockingStatuses).
		Where("from_date <= ? AND to_date >= ?", to.Format(dateLayout), from.Format(dateLayout))
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repository) TransitionFromPending(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) UpdatePending(ctx context.Context, l *Leave) (bool, error) {
	return r.TransitionFromPending(ctx, l.ID, map[string]any{
		"leave_type":                     l.LeaveType,
		"from_date":                      l.FromDate.Format(dateLayout),
		"to_date":                        l.ToDate.Format(dateLayout),
		"total_days":                     l.TotalDays,
		"is_half_day":                    l.IsHalfDay,
		"half_day_type":                  l.HalfDayType,
		"reason":                         l.Reason,
		"priority":                       l.Priority,
		"emergency_contact_name":         l.EmergencyContact.Name,
		"emergency_contact_phone":        l.EmergencyContact.Phone,
		"emergency_contact_relationship": l.EmergencyContact.Relationship,
		"updated_at":                     l.UpdatedAt,
	})
}

func (r *repository) DeletePending(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, StatusPending).
		Delete(&Leave{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
