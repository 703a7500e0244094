package balance

import (
	"context"
	"errors"

	balanceerrors "go-attendance/internal/balance/errors"
	"go-attendance/internal/employee"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeDirectory is the read side of user management.
type EmployeeDirectory interface {
	GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error)
}

type AdminChecker interface {
	IsAdmin(role string) bool
}

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	// WithTx binds ledger writes to an outer transaction.
	WithTx(tx *gorm.DB) Service
	Policy() Policy
	GetBalance(ctx context.Context, actor contextutil.Actor, employeeID string) (BalanceResponse, error)
	Remaining(ctx context.Context, employeeID, leaveType string) (decimal.Decimal, error)
	Debit(ctx context.Context, employeeID, leaveType string, days decimal.Decimal) error
	SetAllocation(ctx context.Context, actor contextutil.Actor, employeeID string, req SetBalanceRequest) (BalanceResponse, error)
}

type service struct {
	repo      Repository
	policy    Policy
	employees EmployeeDirectory
	admins    AdminChecker
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	policy Policy,
	employees EmployeeDirectory,
	admins AdminChecker,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{
		repo:      repo,
		policy:    policy,
		employees: employees,
		admins:    admins,
		logger:    l,
	}
}

func (s *service) WithTx(tx *gorm.DB) Service {
	clone := *s
	clone.repo = s.repo.WithTx(tx)
	return &clone
}

func (s *service) Policy() Policy {
	return s.policy
}

func (s *service) GetBalance(ctx context.Context, actor contextutil.Actor, employeeID string) (BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidEmployeeID
	}
	if actor.ID != employeeID {
		if !s.admins.IsAdmin(actor.Role) {
			return BalanceResponse{}, balanceerrors.ErrForbidden
		}
		if _, err := s.employees.GetEmployee(ctx, employeeID); err != nil {
			return BalanceResponse{}, err
		}
	}

	rows, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.loggerFor(ctx).Error("get balance failed", zap.String("employee_id", employeeID), zap.Error(err))
		return BalanceResponse{}, err
	}

	return s.buildResponse(employeeID, rows), nil
}

// Remaining returns total-used for one type, using the default allocation
// when no row exists yet.
func (s *service) Remaining(ctx context.Context, employeeID, leaveType string) (decimal.Decimal, error) {
	b, err := s.repo.FindOne(ctx, employeeID, leaveType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.policy.DefaultTotal(leaveType), nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return b.Remaining(), nil
}

// Debit consumes days under a row lock. It refuses to push remaining below
// zero; callers run it in the same transaction as the approval write.
func (s *service) Debit(ctx context.Context, employeeID, leaveType string, days decimal.Decimal) error {
	if err := s.repo.EnsureRow(ctx, employeeID, leaveType, s.policy.DefaultTotal(leaveType)); err != nil {
		s.loggerFor(ctx).Error("debit ensure ledger row failed",
			zap.String("employee_id", employeeID),
			zap.String("leave_type", leaveType),
			zap.Error(err),
		)
		return err
	}

	b, err := s.repo.FindForUpdate(ctx, employeeID, leaveType)
	if err != nil {
		s.loggerFor(ctx).Error("debit lock ledger row failed", zap.String("employee_id", employeeID), zap.Error(err))
		return err
	}

	if remaining := b.Remaining(); remaining.LessThan(days) {
		s.loggerFor(ctx).Warn("debit insufficient balance",
			zap.String("employee_id", employeeID),
			zap.String("leave_type", leaveType),
			zap.String("remaining", remaining.String()),
			zap.String("requested", days.String()),
		)
		return InsufficientBalance(leaveType, remaining, days)
	}

	if err := s.repo.AddUsed(ctx, employeeID, leaveType, days); err != nil {
		s.loggerFor(ctx).Error("debit persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return err
	}

	metrics.BalanceDebitedDays.WithLabelValues(leaveType).Add(days.InexactFloat64())
	s.loggerFor(ctx).Info("ledger debited",
		zap.String("employee_id", employeeID),
		zap.String("leave_type", leaveType),
		zap.String("days", days.String()),
	)
	return nil
}

func (s *service) SetAllocation(ctx context.Context, actor contextutil.Actor, employeeID string, req SetBalanceRequest) (BalanceResponse, error) {
	if !s.admins.IsAdmin(actor.Role) {
		return BalanceResponse{}, balanceerrors.ErrAdminOnly
	}
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidEmployeeID
	}
	if !IsKnownType(req.LeaveType) {
		return BalanceResponse{}, balanceerrors.ErrUnknownLeaveType
	}
	if req.Total == nil {
		return BalanceResponse{}, apperror.RequiredField("total")
	}
	total := decimal.NewFromFloat(*req.Total)
	if total.IsNegative() || !total.Mul(decimal.NewFromInt(2)).IsInteger() {
		return BalanceResponse{}, balanceerrors.ErrInvalidAllocation
	}
	if _, err := s.employees.GetEmployee(ctx, employeeID); err != nil {
		return BalanceResponse{}, err
	}

	row := &LeaveBalance{
		EmployeeID: empUUID,
		LeaveType:  req.LeaveType,
		Total:      total,
		Used:       decimal.Zero,
	}
	if actorUUID, err := uuid.Parse(actor.ID); err == nil {
		row.UpdatedBy = &actorUUID
	}

	if err := s.repo.UpsertTotal(ctx, row); err != nil {
		s.loggerFor(ctx).Error("set allocation persist failed",
			zap.String("employee_id", employeeID),
			zap.String("leave_type", req.LeaveType),
			zap.Error(err),
		)
		return BalanceResponse{}, err
	}
	s.loggerFor(ctx).Info("set allocation success",
		zap.String("employee_id", employeeID),
		zap.String("actor_id", actor.ID),
		zap.String("leave_type", req.LeaveType),
		zap.String("total", total.String()),
	)

	rows, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return BalanceResponse{}, err
	}
	return s.buildResponse(employeeID, rows), nil
}

func (s *service) buildResponse(employeeID string, rows []LeaveBalance) BalanceResponse {
	resp := BalanceResponse{
		EmployeeID: employeeID,
		Balances:   make(map[string]BalanceEntry, len(defaultReported)+len(rows)),
	}
	for _, t := range defaultReported {
		total := s.policy.DefaultTotal(t)
		resp.Balances[t] = BalanceEntry{
			Total:     total.InexactFloat64(),
			Remaining: total.InexactFloat64(),
			Gated:     s.policy.IsGated(t),
		}
	}
	for _, b := range rows {
		resp.Balances[b.LeaveType] = BalanceEntry{
			Total:     b.Total.InexactFloat64(),
			Used:      b.Used.InexactFloat64(),
			Remaining: b.Remaining().InexactFloat64(),
			Gated:     s.policy.IsGated(b.LeaveType),
		}
	}
	return resp
}

// InsufficientBalance carries the available and requested figures.
func InsufficientBalance(leaveType string, remaining, requested decimal.Decimal) error {
	return balanceerrors.ErrInsufficientBalance.
		WithMessage("insufficient %s leave balance: %s day(s) available, %s requested",
			leaveType, remaining.String(), requested.String()).
		WithDetails(map[string]any{
			"leave_type": leaveType,
			"available":  remaining.InexactFloat64(),
			"requested":  requested.InexactFloat64(),
		})
}

func (s *service) loggerFor(ctx context.Context) *zap.Logger {
	return contextutil.ServiceLogger(ctx, s.logger, "balance.service")
}
