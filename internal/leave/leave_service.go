package leave

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go-attendance/internal/balance"
	balanceerrors "go-attendance/internal/balance/errors"
	"go-attendance/internal/bootstrap"
	"go-attendance/internal/employee"
	employeeerrors "go-attendance/internal/employee/errors"
	"go-attendance/internal/events"
	leaveerrors "go-attendance/internal/leave/errors"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/counter"
	"go-attendance/internal/shared/metrics"
	"go-attendance/internal/shared/txmanager"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	referencePrefix = "LV"
	loggerName      = "leave.service"

	defaultPageSize      = 10
	defaultUpcomingLimit = 10
	maxUpcomingLimit     = 50
)

type AdminChecker interface {
	IsAdmin(role string) bool
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actor contextutil.Actor, req CreateLeaveRequest) (LeaveResponse, error)
	ListMine(ctx context.Context, actor contextutil.Actor, q ListMyLeavesQuery) ([]LeaveResponse, int64, error)
	ListAll(ctx context.Context, actor contextutil.Actor, q ListLeavesQuery) ([]LeaveResponse, int64, error)
	GetByID(ctx context.Context, actor contextutil.Actor, id string) (LeaveResponse, error)
	Upcoming(ctx context.Context, actor contextutil.Actor, limit int) ([]LeaveResponse, error)
	Decide(ctx context.Context, actor contextutil.Actor, id string, req DecisionRequest) (LeaveResponse, error)
	BulkDecide(ctx context.Context, actor contextutil.Actor, req BulkDecisionRequest) (BulkDecisionResponse, error)
	Cancel(ctx context.Context, actor contextutil.Actor, id string) (LeaveResponse, error)
	Update(ctx context.Context, actor contextutil.Actor, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Remove(ctx context.Context, actor contextutil.Actor, id string) error
}

type service struct {
	tx        txmanager.Transactor
	repo      Repository
	employees employee.Repository
	balances  balance.Service
	counters  counter.Repository
	outbox    kafka.OutboxRepository
	admins    AdminChecker
	audit     bootstrap.AuditLogger
	validator validator
	clock     Clock
	logger    *zap.Logger
}

func NewService(
	tx txmanager.Transactor,
	repo Repository,
	employees employee.Repository,
	balances balance.Service,
	counters counter.Repository,
	outbox kafka.OutboxRepository,
	admins AdminChecker,
	audit bootstrap.AuditLogger,
	clock Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named(loggerName)
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named(loggerName)
	}
	return &service{
		tx:        tx,
		repo:      repo,
		employees: employees,
		balances:  balances,
		counters:  counters,
		outbox:    outbox,
		admins:    admins,
		audit:     audit,
		validator: validator{repo: repo, balances: balances, clock: clock},
		clock:     clock,
		logger:    l,
	}
}

func (s *service) Submit(ctx context.Context, actor contextutil.Actor, req CreateLeaveRequest) (LeaveResponse, error) {
	log := s.loggerFor(ctx)
	log.Debug("submit leave requested",
		zap.String("employee_id", actor.ID),
		zap.String("leave_type", req.LeaveType),
		zap.String("from_date", req.FromDate),
		zap.String("to_date", req.ToDate),
	)

	l, err := s.buildNewLeave(actor, req)
	if err != nil {
		log.Warn("submit leave validation failed", zap.Error(err))
		s.countSubmission(req.LeaveType, err)
		return LeaveResponse{}, err
	}

	err = s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		// Serializes submissions of one employee so the overlap check and
		// the insert below cannot interleave with a concurrent submit.
		emp, err := s.employees.WithTx(tx).LockByID(ctx, actor.ID)
		if err != nil {
			return mapEmployeeError(err)
		}
		if !emp.IsActive {
			return employeeerrors.ErrEmployeeInactive
		}

		totalDays, err := s.validator.withTx(tx).validate(ctx, candidate{
			EmployeeID: actor.ID,
			LeaveType:  l.LeaveType,
			FromDate:   l.FromDate,
			ToDate:     l.ToDate,
			IsHalfDay:  l.IsHalfDay,
		})
		if err != nil {
			return err
		}
		l.TotalDays = totalDays

		// Not bound to tx, so the counters row lock is released before the
		// insert. A failure after this point leaves a gap.
		year := s.clock.Today().Year()
		seq, err := s.counters.GetNextValue(ctx, counter.LeaveReference, year)
		if err != nil {
			return err
		}
		l.ReferenceNo = counter.FormatReference(referencePrefix, year, seq)

		if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
			return mapRepositoryError(err)
		}
		l.Employee = emp

		return s.enqueueEvent(ctx, tx, events.LeaveSubmitted, l, actor.ID)
	})
	s.countSubmission(l.LeaveType, err)
	if err != nil {
		if isClientError(err) {
			log.Warn("submit leave rejected",
				zap.String("employee_id", actor.ID),
				zap.String("leave_type", l.LeaveType),
				zap.Error(err),
			)
		} else {
			log.Error("submit leave failed", zap.String("employee_id", actor.ID), zap.Error(err))
		}
		return LeaveResponse{}, err
	}

	log.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("reference_no", l.ReferenceNo),
		zap.String("employee_id", actor.ID),
		zap.String("total_days", l.TotalDays.String()),
	)
	return mapToResponse(*l), nil
}

func (s *service) buildNewLeave(actor contextutil.Actor, req CreateLeaveRequest) (*Leave, error) {
	employeeUUID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	if !balance.IsKnownType(req.LeaveType) {
		return nil, leaveerrors.ErrUnknownLeaveType
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, leaveerrors.ErrReasonRequired
	}
	from, err := parseDate(req.FromDate)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(req.ToDate)
	if err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	now := s.clock.now().UTC()
	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		LeaveType:  req.LeaveType,
		FromDate:   from,
		ToDate:     to,
		IsHalfDay:  req.IsHalfDay,
		Reason:     strings.TrimSpace(req.Reason),
		Priority:   priority,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	l.HalfDayType = halfDayTypeFor(req.IsHalfDay, req.HalfDayType)
	if req.EmergencyContact != nil {
		l.EmergencyContact = EmergencyContact(*req.EmergencyContact)
	}
	return l, nil
}

func (s *service) ListMine(ctx context.Context, actor contextutil.Actor, q ListMyLeavesQuery) ([]LeaveResponse, int64, error) {
	if _, err := uuid.Parse(actor.ID); err != nil {
		return nil, 0, leaveerrors.ErrInvalidEmployeeID
	}
	page, pageSize := normalizePage(q.Page, q.PageSize)

	leaves, total, err := s.repo.List(ctx, ListFilter{
		EmployeeID: actor.ID,
		Status:     q.Status,
		LeaveType:  q.LeaveType,
		Year:       q.Year,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		s.loggerFor(ctx).Error("list own leaves failed", zap.String("employee_id", actor.ID), zap.Error(err))
		return nil, 0, err
	}
	return mapToListResponse(leaves), total, nil
}

func (s *service) ListAll(ctx context.Context, actor contextutil.Actor, q ListLeavesQuery) ([]LeaveResponse, int64, error) {
	if !s.admins.IsAdmin(actor.Role) {
		return nil, 0, leaveerrors.ErrAdminOnly
	}
	page, pageSize := normalizePage(q.Page, q.PageSize)

	f := ListFilter{
		EmployeeID: q.EmployeeID,
		Status:     q.Status,
		LeaveType:  q.LeaveType,
		Priority:   q.Priority,
		Department: q.Department,
		Page:       page,
		PageSize:   pageSize,
	}
	if q.StartDate != "" {
		d, err := parseDate(q.StartDate)
		if err != nil {
			return nil, 0, err
		}
		f.FromDateStart = &d
	}
	if q.EndDate != "" {
		d, err := parseDate(q.EndDate)
		if err != nil {
			return nil, 0, err
		}
		f.FromDateEnd = &d
	}
	if f.FromDateStart != nil && f.FromDateEnd != nil && f.FromDateStart.After(*f.FromDateEnd) {
		return nil, 0, leaveerrors.ErrInvalidDateRange
	}

	leaves, total, err := s.repo.List(ctx, f)
	if err != nil {
		s.loggerFor(ctx).Error("list leaves failed", zap.Error(err))
		return nil, 0, err
	}
	return mapToListResponse(leaves), total, nil
}

func (s *service) GetByID(ctx context.Context, actor contextutil.Actor, id string) (LeaveResponse, error) {
	l, err := s.load(ctx, s.repo, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !s.isOwner(actor, l) && !s.admins.IsAdmin(actor.Role) {
		return LeaveResponse{}, leaveerrors.ErrForbidden
	}
	return mapToResponse(*l), nil
}

// Upcoming lists approved leave starting today or later: the caller's own
// for staff, everyone's for admins.
func (s *service) Upcoming(ctx context.Context, actor contextutil.Actor, limit int) ([]LeaveResponse, error) {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	if limit > maxUpcomingLimit {
		limit = maxUpcomingLimit
	}

	employeeID := actor.ID
	if s.admins.IsAdmin(actor.Role) {
		employeeID = ""
	}

	leaves, err := s.repo.Upcoming(ctx, employeeID, s.clock.Today(), limit)
	if err != nil {
		s.loggerFor(ctx).Error("list upcoming leaves failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) Decide(ctx context.Context, actor contextutil.Actor, id string, req DecisionRequest) (LeaveResponse, error) {
	log := s.loggerFor(ctx)
	log.Debug("decide leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actor.ID),
		zap.String("decision", req.Decision),
	)

	adminID, err := s.checkDecision(actor, req.Decision)
	if err != nil {
		return LeaveResponse{}, err
	}

	var decided *Leave
	err = s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		l, err := s.decideInTx(ctx, tx, adminID, id, req.Decision, req.RejectionReason)
		if err != nil {
			return err
		}
		decided = l
		return nil
	})
	if err != nil {
		if isClientError(err) {
			log.Warn("decide leave rejected", zap.String("leave_id", id), zap.Error(err))
		} else {
			log.Error("decide leave failed", zap.String("leave_id", id), zap.Error(err))
		}
		return LeaveResponse{}, err
	}

	metrics.LeaveTransitions.WithLabelValues(decided.Status).Inc()
	log.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", decided.Status),
		zap.String("actor_id", actor.ID),
	)
	return mapToResponse(*decided), nil
}

// BulkDecide runs one transaction per pending id. Ids that are malformed,
// unknown or no longer pending are skipped silently. A storage error stops
// the loop but keeps what was already committed.
func (s *service) BulkDecide(ctx context.Context, actor contextutil.Actor, req BulkDecisionRequest) (BulkDecisionResponse, error) {
	log := s.loggerFor(ctx)
	resp := BulkDecisionResponse{Skipped: []SkippedDecision{}}

	adminID, err := s.checkDecision(actor, req.Decision)
	if err != nil {
		return resp, err
	}
	if len(req.LeaveIDs) == 0 {
		return resp, leaveerrors.ErrLeaveIDsRequired
	}
	ids := uniqueIDs(req.LeaveIDs)

	pending, err := s.repo.FindPendingByIDs(ctx, ids)
	if err != nil {
		log.Error("bulk decide load pending failed", zap.Error(err))
		return resp, err
	}
	pendingByID := make(map[string]bool, len(pending))
	for _, l := range pending {
		pendingByID[l.ID.String()] = true
	}

	for _, id := range ids {
		if !pendingByID[id] {
			continue
		}

		var decided *Leave
		err := s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
			l, err := s.decideInTx(ctx, tx, adminID, id, req.Decision, req.RejectionReason)
			decided = l
			return err
		})
		switch {
		case err == nil:
			resp.ProcessedCount++
			metrics.LeaveTransitions.WithLabelValues(decided.Status).Inc()
		case isSkippable(err):
			httpErr := apperror.ToHTTP(err)
			resp.Skipped = append(resp.Skipped, SkippedDecision{
				LeaveID: id,
				Code:    httpErr.Code,
				Reason:  httpErr.Message,
			})
			log.Warn("bulk decide skipped leave", zap.String("leave_id", id), zap.Error(err))
		default:
			log.Error("bulk decide aborted",
				zap.String("leave_id", id),
				zap.Int("processed_count", resp.ProcessedCount),
				zap.Error(err),
			)
			resp.FailedLeaveID = id
			s.auditBulkDecision(ctx, actor, req.Decision, len(ids), resp)
			return resp, apperror.Wrap(err,
				apperror.CodeInternalError,
				"bulk decision aborted, earlier decisions were kept",
				http.StatusInternalServerError,
			).WithDetails(resp)
		}
	}

	s.auditBulkDecision(ctx, actor, req.Decision, len(ids), resp)
	log.Info("bulk decide success",
		zap.String("decision", req.Decision),
		zap.Int("requested", len(ids)),
		zap.Int("processed_count", resp.ProcessedCount),
		zap.Int("skipped", len(resp.Skipped)),
	)
	return resp, nil
}

func (s *service) auditBulkDecision(ctx context.Context, actor contextutil.Actor, decision string, requested int, resp BulkDecisionResponse) {
	meta := map[string]any{
		"decision":        decision,
		"requested":       requested,
		"processed_count": resp.ProcessedCount,
		"skipped":         len(resp.Skipped),
	}
	message := "bulk leave decision applied"
	if resp.FailedLeaveID != "" {
		meta["failed_leave_id"] = resp.FailedLeaveID
		message = "bulk leave decision aborted"
	}
	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  "LEAVE_BULK_DECISION",
		ActorID: actor.ID,
		Message: message,
		Meta:    meta,
	})
}

// decideInTx writes the decision, debits the ledger for approved gated
// leave and queues the event. Everything shares tx, so an approved status
// always comes with exactly one debit.
func (s *service) decideInTx(ctx context.Context, tx *gorm.DB, adminID uuid.UUID, id, decision string, rejectionReason *string) (*Leave, error) {
	repo := s.repo.WithTx(tx)
	l, err := s.load(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(l.Status, decision) {
		return nil, leaveerrors.ErrAlreadyProcessed
	}

	now := s.clock.now().UTC()
	updates := map[string]any{
		"status":      decision,
		"approved_by": adminID,
		"approved_at": now,
		"updated_at":  now,
	}
	var reason *string
	if decision == StatusRejected && rejectionReason != nil && strings.TrimSpace(*rejectionReason) != "" {
		r := strings.TrimSpace(*rejectionReason)
		reason = &r
		updates["rejection_reason"] = r
	}

	applied, err := repo.TransitionFromPending(ctx, l.ID, updates)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, leaveerrors.ErrAlreadyProcessed
	}

	if decision == StatusApproved && s.balances.Policy().IsGated(l.LeaveType) {
		if err := s.balances.WithTx(tx).Debit(ctx, l.EmployeeID.String(), l.LeaveType, l.TotalDays); err != nil {
			return nil, err
		}
	}

	l.Status = decision
	l.ApprovedBy = &adminID
	l.ApprovedAt = &now
	l.RejectionReason = reason
	l.UpdatedAt = now

	eventType := events.LeaveApproved
	if decision == StatusRejected {
		eventType = events.LeaveRejected
	}
	if err := s.enqueueEvent(ctx, tx, eventType, l, adminID.String()); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) Cancel(ctx context.Context, actor contextutil.Actor, id string) (LeaveResponse, error) {
	log := s.loggerFor(ctx)

	var cancelled *Leave
	err := s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		l, err := s.load(ctx, repo, id)
		if err != nil {
			return err
		}
		if !s.isOwner(actor, l) {
			return leaveerrors.ErrForbidden
		}
		if !CanTransition(l.Status, StatusCancelled) {
			return leaveerrors.ErrNotPending
		}

		now := s.clock.now().UTC()
		applied, err := repo.TransitionFromPending(ctx, l.ID, map[string]any{
			"status":     StatusCancelled,
			"updated_at": now,
		})
		if err != nil {
			return err
		}
		if !applied {
			return leaveerrors.ErrNotPending
		}
		l.Status = StatusCancelled
		l.UpdatedAt = now
		cancelled = l

		return s.enqueueEvent(ctx, tx, events.LeaveCancelled, l, actor.ID)
	})
	if err != nil {
		log.Warn("cancel leave failed", zap.String("leave_id", id), zap.String("actor_id", actor.ID), zap.Error(err))
		return LeaveResponse{}, err
	}

	metrics.LeaveTransitions.WithLabelValues(StatusCancelled).Inc()
	log.Info("cancel leave success", zap.String("leave_id", id), zap.String("actor_id", actor.ID))
	return mapToResponse(*cancelled), nil
}

func (s *service) Update(ctx context.Context, actor contextutil.Actor, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	log := s.loggerFor(ctx)
	log.Debug("update leave requested", zap.String("leave_id", id), zap.String("actor_id", actor.ID))

	var updated *Leave
	err := s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		l, err := s.load(ctx, repo, id)
		if err != nil {
			return err
		}
		if !s.isOwner(actor, l) && !s.admins.IsAdmin(actor.Role) {
			return leaveerrors.ErrForbidden
		}
		if IsTerminal(l.Status) {
			return leaveerrors.ErrAlreadyProcessed
		}
		// Same lock as Submit, so an edit cannot slip past a concurrent
		// submission's overlap check.
		if _, err := s.employees.WithTx(tx).LockByID(ctx, l.EmployeeID.String()); err != nil {
			return mapEmployeeError(err)
		}

		revalidate, err := applyUpdate(l, req)
		if err != nil {
			return err
		}
		if revalidate {
			totalDays, err := s.validator.withTx(tx).validate(ctx, candidate{
				EmployeeID: l.EmployeeID.String(),
				LeaveType:  l.LeaveType,
				FromDate:   l.FromDate,
				ToDate:     l.ToDate,
				IsHalfDay:  l.IsHalfDay,
				ExcludeID:  &l.ID,
			})
			if err != nil {
				return err
			}
			l.TotalDays = totalDays
		}
		l.UpdatedAt = s.clock.now().UTC()

		applied, err := repo.UpdatePending(ctx, l)
		if err != nil {
			return mapRepositoryError(err)
		}
		if !applied {
			return leaveerrors.ErrAlreadyProcessed
		}
		updated = l
		return nil
	})
	if err != nil {
		log.Warn("update leave failed", zap.String("leave_id", id), zap.String("actor_id", actor.ID), zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("update leave success", zap.String("leave_id", id), zap.String("actor_id", actor.ID))
	return mapToResponse(*updated), nil
}

// applyUpdate merges req into l and reports whether the fields that drive
// validation changed.
func applyUpdate(l *Leave, req UpdateLeaveRequest) (bool, error) {
	revalidate := false

	if req.LeaveType != nil && *req.LeaveType != l.LeaveType {
		if !balance.IsKnownType(*req.LeaveType) {
			return false, leaveerrors.ErrUnknownLeaveType
		}
		l.LeaveType = *req.LeaveType
		revalidate = true
	}
	if req.FromDate != nil {
		from, err := parseDate(*req.FromDate)
		if err != nil {
			return false, err
		}
		if !from.Equal(l.FromDate) {
			l.FromDate = from
			revalidate = true
		}
	}
	if req.ToDate != nil {
		to, err := parseDate(*req.ToDate)
		if err != nil {
			return false, err
		}
		if !to.Equal(l.ToDate) {
			l.ToDate = to
			revalidate = true
		}
	}
	if req.IsHalfDay != nil && *req.IsHalfDay != l.IsHalfDay {
		l.IsHalfDay = *req.IsHalfDay
		revalidate = true
	}

	halfDayType := ""
	if req.HalfDayType != nil {
		halfDayType = *req.HalfDayType
	} else if l.HalfDayType != nil {
		halfDayType = *l.HalfDayType
	}
	l.HalfDayType = halfDayTypeFor(l.IsHalfDay, halfDayType)

	if req.Reason != nil {
		reason := strings.TrimSpace(*req.Reason)
		if reason == "" {
			return false, leaveerrors.ErrReasonRequired
		}
		l.Reason = reason
	}
	if req.Priority != nil {
		l.Priority = *req.Priority
	}
	if req.EmergencyContact != nil {
		l.EmergencyContact = EmergencyContact(*req.EmergencyContact)
	}
	return revalidate, nil
}

func (s *service) Remove(ctx context.Context, actor contextutil.Actor, id string) error {
	log := s.loggerFor(ctx)

	err := s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		l, err := s.load(ctx, repo, id)
		if err != nil {
			return err
		}
		if !s.isOwner(actor, l) && !s.admins.IsAdmin(actor.Role) {
			return leaveerrors.ErrForbidden
		}
		if IsTerminal(l.Status) {
			return leaveerrors.ErrAlreadyProcessed
		}
		deleted, err := repo.DeletePending(ctx, l.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return leaveerrors.ErrAlreadyProcessed
		}
		return nil
	})
	if err != nil {
		log.Warn("remove leave failed", zap.String("leave_id", id), zap.String("actor_id", actor.ID), zap.Error(err))
		return err
	}

	log.Info("remove leave success", zap.String("leave_id", id), zap.String("actor_id", actor.ID))
	return nil
}

func (s *service) load(ctx context.Context, repo Repository, id string) (*Leave, error) {
	// A malformed id cannot name a stored request.
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	l, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return l, nil
}

func (s *service) loggerFor(ctx context.Context) *zap.Logger {
	return contextutil.ServiceLogger(ctx, s.logger, loggerName)
}

func (s *service) isOwner(actor contextutil.Actor, l *Leave) bool {
	return actor.ID != "" && actor.ID == l.EmployeeID.String()
}

func (s *service) checkDecision(actor contextutil.Actor, decision string) (uuid.UUID, error) {
	if !s.admins.IsAdmin(actor.Role) {
		return uuid.Nil, leaveerrors.ErrAdminOnly
	}
	if decision != StatusApproved && decision != StatusRejected {
		return uuid.Nil, leaveerrors.ErrInvalidDecision
	}
	adminID, err := uuid.Parse(actor.ID)
	if err != nil {
		return uuid.Nil, leaveerrors.ErrInvalidEmployeeID
	}
	return adminID, nil
}

func (s *service) enqueueEvent(ctx context.Context, tx *gorm.DB, eventType string, l *Leave, actorID string) error {
	payload := events.LeaveLifecycleEvent{
		EventType:       eventType,
		LeaveID:         l.ID.String(),
		ReferenceNo:     l.ReferenceNo,
		EmployeeID:      l.EmployeeID.String(),
		LeaveType:       l.LeaveType,
		FromDate:        l.FromDate.Format(dateLayout),
		ToDate:          l.ToDate.Format(dateLayout),
		TotalDays:       l.TotalDays.InexactFloat64(),
		Status:          l.Status,
		ActorID:         actorID,
		RejectionReason: l.RejectionReason,
		OccurredAt:      s.clock.now().UTC(),
	}
	event, err := kafka.NewOutboxEvent(ctx, "leave_request", l.ID.String(), eventType, events.LeaveLifecycleTopic, payload)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

func (s *service) countSubmission(leaveType string, err error) {
	if !balance.IsKnownType(leaveType) {
		leaveType = "unknown"
	}
	result := metrics.ResultOK
	if err != nil {
		result = apperror.ToHTTP(err).Code
	}
	metrics.LeaveSubmissions.WithLabelValues(leaveType, result).Inc()
}

func isClientError(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.HTTPStatus < 500
}

func isSkippable(err error) bool {
	return errors.Is(err, leaveerrors.ErrAlreadyProcessed) ||
		errors.Is(err, leaveerrors.ErrLeaveNotFound) ||
		errors.Is(err, balanceerrors.ErrInsufficientBalance)
}

func halfDayTypeFor(isHalfDay bool, requested string) *string {
	if !isHalfDay {
		return nil
	}
	if requested != HalfDayAfternoon {
		requested = HalfDayMorning
	}
	return &requested
}

// uniqueIDs keeps the first occurrence of every well-formed id, in
// canonical form and input order.
// uniqueIDs canonicalises ids, drops malformed ones and keeps first-seen order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, raw := range ids {
		parsed, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		id := parsed.String()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}
