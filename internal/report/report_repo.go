package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Filter narrows every projection. Zero values mean "no filter"; the date
// bounds apply to from_date and are inclusive.
type Filter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Department string
	Status     string
	LeaveType  string
	Priority   string
	EmployeeID string
}

// BucketRow is one (status, leave_type, priority) group.
type BucketRow struct {
	Status    string
	LeaveType string
	Priority  string
	Count     int64
	Days      decimal.Decimal
}

// EmployeeRow is one (employee, status) group.
type EmployeeRow struct {
	EmployeeID string
	FullName   string
	Department string
	Status     string
	Count      int64
	Days       decimal.Decimal
}

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	Buckets(ctx context.Context, f Filter) ([]BucketRow, error)
	EmployeeBuckets(ctx context.Context, f Filter) ([]EmployeeRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) filtered(ctx context.Context, f Filter) *gorm.DB {
	q := r.db.WithContext(ctx).
		Table("leave_requests").
		Joins("JOIN employees ON employees.id = leave_requests.employee_id")
	if f.StartDate != nil {
		q = q.Where("leave_requests.from_date >= ?", f.StartDate.Format(dateLayout))
	}
	if f.EndDate != nil {
		q = q.Where("leave_requests.from_date <= ?", f.EndDate.Format(dateLayout))
	}
	if f.Department != "" {
		q = q.Where("employees.department = ?", f.Department)
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
	if f.EmployeeID != "" {
		q = q.Where("leave_requests.employee_id = ?", f.EmployeeID)
	}
	return q
}

func (r *repository) Buckets(ctx context.Context, f Filter) ([]BucketRow, error) {
	var rows []BucketRow
	err := r.filtered(ctx, f).
		Select("leave_requests.status AS status, leave_requests.leave_type AS leave_type, " +
			"leave_requests.priority AS priority, COUNT(*) AS count, " +
			"COALESCE(SUM(leave_requests.total_days), 0) AS days").
		Group("leave_requests.status, leave_requests.leave_type, leave_requests.priority").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) EmployeeBuckets(ctx context.Context, f Filter) ([]EmployeeRow, error) {
	var rows []EmployeeRow
	err := r.filtered(ctx, f).
		Select("leave_requests.employee_id AS employee_id, employees.full_name AS full_name, " +
			"employees.department AS department, leave_requests.status AS status, " +
			"COUNT(*) AS count, COALESCE(SUM(leave_requests.total_days), 0) AS days").
		Group("leave_requests.employee_id, employees.full_name, employees.department, leave_requests.status").
		Scan(&rows).Error
	return rows, err
}
