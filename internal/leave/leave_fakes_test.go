package leave_test

import (
	"context"
	"time"

	"go-attendance/internal/balance"
	"go-attendance/internal/bootstrap"
	"go-attendance/internal/employee"
	"go-attendance/internal/leave"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	f.calls++
	return fn(nil)
}

type fakeLeaveRepository struct {
	createFn                func(ctx context.Context, l *leave.Leave) error
	findByIDFn              func(ctx context.Context, id string) (*leave.Leave, error)
	findPendingByIDsFn      func(ctx context.Context, ids []string) ([]leave.Leave, error)
	listFn                  func(ctx context.Context, f leave.ListFilter) ([]leave.Leave, int64, error)
	upcomingFn              func(ctx context.Context, employeeID string, from time.Time, limit int) ([]leave.Leave, error)
	hasOverlapFn            func(ctx context.Context, employeeID string, from, to time.Time, excludeID *uuid.UUID) (bool, error)
	transitionFromPendingFn func(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error)
	updatePendingFn         func(ctx context.Context, l *leave.Leave) (bool, error)
	deletePendingFn         func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (f *fakeLeaveRepository) WithTx(tx *gorm.DB) leave.Repository { return f }

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindPendingByIDs(ctx context.Context, ids []string) ([]leave.Leave, error) {
	if f.findPendingByIDsFn != nil {
		return f.findPendingByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) List(ctx context.Context, filter leave.ListFilter) ([]leave.Leave, int64, error) {
	if f.listFn != nil {
		return f.listFn(ctx, filter)
	}
	return nil, 0, nil
}

func (f *fakeLeaveRepository) Upcoming(ctx context.Context, employeeID string, from time.Time, limit int) ([]leave.Leave, error) {
	if f.upcomingFn != nil {
		return f.upcomingFn(ctx, employeeID, from, limit)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) HasOverlap(ctx context.Context, employeeID string, from, to time.Time, excludeID *uuid.UUID) (bool, error) {
	if f.hasOverlapFn != nil {
		return f.hasOverlapFn(ctx, employeeID, from, to, excludeID)
	}
	return false, nil
}

func (f *fakeLeaveRepository) TransitionFromPending(ctx context.Context, id uuid.UUID, updates map[string]any) (bool, error) {
	if f.transitionFromPendingFn != nil {
		return f.transitionFromPendingFn(ctx, id, updates)
	}
	return true, nil
}

func (f *fakeLeaveRepository) UpdatePending(ctx context.Context, l *leave.Leave) (bool, error) {
	if f.updatePendingFn != nil {
		return f.updatePendingFn(ctx, l)
	}
	return true, nil
}

func (f *fakeLeaveRepository) DeletePending(ctx context.Context, id uuid.UUID) (bool, error) {
	if f.deletePendingFn != nil {
		return f.deletePendingFn(ctx, id)
	}
	return true, nil
}

type fakeEmployeeRepository struct {
	lockByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
	locked     []string
}

func (f *fakeEmployeeRepository) WithTx(tx *gorm.DB) employee.Repository { return f }

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.LockByID(ctx, id)
}

func (f *fakeEmployeeRepository) LockByID(ctx context.Context, id string) (*employee.Employee, error) {
	f.locked = append(f.locked, id)
	if f.lockByIDFn != nil {
		return f.lockByIDFn(ctx, id)
	}
	return &employee.Employee{ID: uuid.MustParse(id), FullName: "Jane Doe", Department: "Engineering", IsActive: true}, nil
}

type debitCall struct {
	EmployeeID string
	LeaveType  string
	Days       decimal.Decimal
}

type fakeBalanceService struct {
	remaining map[string]decimal.Decimal
	debitFn   func(ctx context.Context, employeeID, leaveType string, days decimal.Decimal) error
	debits    []debitCall
}

func (f *fakeBalanceService) WithTx(tx *gorm.DB) balance.Service { return f }
func (f *fakeBalanceService) Policy() balance.Policy             { return balance.DefaultPolicy() }

func (f *fakeBalanceService) GetBalance(ctx context.Context, actor contextutil.Actor, employeeID string) (balance.BalanceResponse, error) {
	return balance.BalanceResponse{}, nil
}

func (f *fakeBalanceService) Remaining(ctx context.Context, employeeID, leaveType string) (decimal.Decimal, error) {
	if v, ok := f.remaining[leaveType]; ok {
		return v, nil
	}
	return balance.DefaultPolicy().DefaultTotal(leaveType), nil
}

func (f *fakeBalanceService) Debit(ctx context.Context, employeeID, leaveType string, days decimal.Decimal) error {
	if f.debitFn != nil {
		if err := f.debitFn(ctx, employeeID, leaveType, days); err != nil {
			return err
		}
	}
	f.debits = append(f.debits, debitCall{EmployeeID: employeeID, LeaveType: leaveType, Days: days})
	return nil
}

func (f *fakeBalanceService) SetAllocation(ctx context.Context, actor contextutil.Actor, employeeID string, req balance.SetBalanceRequest) (balance.BalanceResponse, error) {
	return balance.BalanceResponse{}, nil
}

type fakeCounterRepository struct {
	next int64
}

var _ counter.Repository = (*fakeCounterRepository)(nil)

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, counterType string, year int) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutboxRepository struct {
	createErr error
	created   []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return nil
}

type roleAdmin struct{}

func (roleAdmin) IsAdmin(role string) bool { return role == employee.RoleAdmin }

type fakeAuditLogger struct {
	entries []bootstrap.AuditLog
}

func (f *fakeAuditLogger) Log(ctx context.Context, entry bootstrap.AuditLog) {
	f.entries = append(f.entries, entry)
}
