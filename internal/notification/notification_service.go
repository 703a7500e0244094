package notification

import (
	"context"
	"fmt"
	"strings"

	"go-attendance/internal/employee"
	"go-attendance/internal/events"
	"go-attendance/internal/shared/metrics"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Service interface {
	NotifyLeaveEvent(ctx context.Context, ev events.LeaveLifecycleEvent) error
}

type service struct {
	employees employee.Service
	sender    Sender
	logger    *zap.Logger
}

func NewService(employees employee.Service, sender Sender, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{employees: employees, sender: sender, logger: l}
}

// NotifyLeaveEvent mails the owner of the request. Employees without an
// e-mail address are skipped.
func (s *service) NotifyLeaveEvent(ctx context.Context, ev events.LeaveLifecycleEvent) error {
	emp, err := s.employees.GetEmployee(ctx, ev.EmployeeID)
	if err != nil {
		return fmt.Errorf("load employee %s: %w", ev.EmployeeID, err)
	}
	if emp.Email == "" {
		s.logger.Warn("employee has no email, notification skipped",
			zap.String("employee_id", ev.EmployeeID),
			zap.String("leave_id", ev.LeaveID),
		)
		return nil
	}

	msg, ok := composeMessage(emp, ev)
	if !ok {
		s.logger.Debug("no notification for event type", zap.String("event_type", ev.EventType))
		return nil
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		metrics.NotificationsSent.WithLabelValues(metrics.ResultError).Inc()
		return err
	}
	metrics.NotificationsSent.WithLabelValues(metrics.ResultOK).Inc()
	s.logger.Info("leave notification sent",
		zap.String("leave_id", ev.LeaveID),
		zap.String("event_type", ev.EventType),
		zap.String("employee_id", ev.EmployeeID),
	)
	return nil
}

func composeMessage(emp employee.EmployeeResponse, ev events.LeaveLifecycleEvent) (Message, bool) {
	var verb string
	switch ev.EventType {
	case events.LeaveSubmitted:
		verb = "submitted"
	case events.LeaveApproved:
		verb = "approved"
	case events.LeaveRejected:
		verb = "rejected"
	case events.LeaveCancelled:
		verb = "cancelled"
	default:
		return Message{}, false
	}

	leaveType := cases.Title(language.English).String(ev.LeaveType)

	var body strings.Builder
	fmt.Fprintf(&body, "Hello %s,\r\n\r\n", emp.FullName)
	fmt.Fprintf(&body, "Your %s leave request %s has been %s.\r\n\r\n", ev.LeaveType, ev.ReferenceNo, verb)
	fmt.Fprintf(&body, "Dates: %s to %s (%s day(s))\r\n", ev.FromDate, ev.ToDate, formatDays(ev.TotalDays))
	if ev.EventType == events.LeaveRejected && ev.RejectionReason != nil {
		fmt.Fprintf(&body, "Reason: %s\r\n", *ev.RejectionReason)
	}

	return Message{
		To:      emp.Email,
		Subject: fmt.Sprintf("%s leave %s %s", leaveType, ev.ReferenceNo, verb),
		Body:    body.String(),
	}, true
}

func formatDays(d float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", d), ".0")
}
