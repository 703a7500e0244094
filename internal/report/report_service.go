package report

import (
	"cmp"
	"context"
	"slices"
	"time"

	"go-attendance/internal/leave"
	reporterrors "go-attendance/internal/report/errors"
	"go-attendance/internal/shared/contextutil"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type AdminChecker interface {
	IsAdmin(role string) bool
}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Stats(ctx context.Context, actor contextutil.Actor, q ReportQuery) (StatsResponse, error)
	EmployeeSummary(ctx context.Context, actor contextutil.Actor, q ReportQuery) ([]EmployeeSummary, error)
	DepartmentSummary(ctx context.Context, actor contextutil.Actor, q ReportQuery) ([]DepartmentSummary, error)
}

type service struct {
	repo   Repository
	admins AdminChecker
	logger *zap.Logger
}

func NewService(repo Repository, admins AdminChecker, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, admins: admins, logger: l}
}

func (s *service) Stats(ctx context.Context, actor contextutil.Actor, q ReportQuery) (StatsResponse, error) {
	f, err := s.authorize(actor, q)
	if err != nil {
		return StatsResponse{}, err
	}

	rows, err := s.repo.Buckets(ctx, f)
	if err != nil {
		s.loggerFor(ctx).Error("leave stats query failed", zap.Error(err))
		return StatsResponse{}, err
	}

	var (
		summary    StatsSummary
		totalDays  = decimal.Zero
		typeCount  = map[string]int64{}
		typeDays   = map[string]decimal.Decimal{}
		priorities = map[string]int64{}
	)
	for _, r := range rows {
		summary.TotalRequests += r.Count
		totalDays = totalDays.Add(r.Days)
		addStatus(&summary.Pending, &summary.Approved, &summary.Rejected, &summary.Cancelled, r.Status, r.Count)

		typeCount[r.LeaveType] += r.Count
		typeDays[r.LeaveType] = typeDays[r.LeaveType].Add(r.Days)
		priorities[r.Priority] += r.Count
	}
	summary.TotalDays = totalDays.InexactFloat64()

	resp := StatsResponse{
		Summary:            summary,
		LeaveTypeBreakdown: make([]LeaveTypeStat, 0, len(typeCount)),
		PriorityBreakdown:  make([]PriorityStat, 0, len(priorities)),
	}
	for t, n := range typeCount {
		resp.LeaveTypeBreakdown = append(resp.LeaveTypeBreakdown, LeaveTypeStat{
			LeaveType: t,
			Count:     n,
			TotalDays: typeDays[t].InexactFloat64(),
		})
	}
	for p, n := range priorities {
		resp.PriorityBreakdown = append(resp.PriorityBreakdown, PriorityStat{Priority: p, Count: n})
	}

	// count desc, name asc on ties so the output is stable
	slices.SortFunc(resp.LeaveTypeBreakdown, func(a, b LeaveTypeStat) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.LeaveType, b.LeaveType))
	})
	slices.SortFunc(resp.PriorityBreakdown, func(a, b PriorityStat) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Priority, b.Priority))
	})
	return resp, nil
}

func (s *service) EmployeeSummary(ctx context.Context, actor contextutil.Actor, q ReportQuery) ([]EmployeeSummary, error) {
	f, err := s.authorize(actor, q)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.EmployeeBuckets(ctx, f)
	if err != nil {
		s.loggerFor(ctx).Error("employee summary query failed", zap.Error(err))
		return nil, err
	}

	out := foldEmployees(rows)
	slices.SortFunc(out, func(a, b EmployeeSummary) int {
		return cmp.Or(
			cmp.Compare(b.ApprovedDays, a.ApprovedDays),
			cmp.Compare(a.FullName, b.FullName),
			cmp.Compare(a.EmployeeID, b.EmployeeID),
		)
	})
	return out, nil
}

// DepartmentSummary counts an employee once per department, and only if
// they have at least one request matching the filter.
func (s *service) DepartmentSummary(ctx context.Context, actor contextutil.Actor, q ReportQuery) ([]DepartmentSummary, error) {
	f, err := s.authorize(actor, q)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.EmployeeBuckets(ctx, f)
	if err != nil {
		s.loggerFor(ctx).Error("department summary query failed", zap.Error(err))
		return nil, err
	}

	byDept := map[string]*DepartmentSummary{}
	days := map[string]decimal.Decimal{}
	for _, e := range foldEmployees(rows) {
		d, ok := byDept[e.Department]
		if !ok {
			d = &DepartmentSummary{Department: e.Department}
			byDept[e.Department] = d
		}
		d.EmployeeCount++
		d.Requests.Total += e.Requests.Total
		d.Requests.Pending += e.Requests.Pending
		d.Requests.Approved += e.Requests.Approved
		d.Requests.Rejected += e.Requests.Rejected
		d.Requests.Cancelled += e.Requests.Cancelled
		days[e.Department] = days[e.Department].Add(decimal.NewFromFloat(e.ApprovedDays))
	}

	out := make([]DepartmentSummary, 0, len(byDept))
	for name, d := range byDept {
		d.ApprovedDays = days[name].InexactFloat64()
		out = append(out, *d)
	}
	slices.SortFunc(out, func(a, b DepartmentSummary) int {
		return cmp.Compare(a.Department, b.Department)
	})
	return out, nil
}

func (s *service) authorize(actor contextutil.Actor, q ReportQuery) (Filter, error) {
	if !s.admins.IsAdmin(actor.Role) {
		return Filter{}, reporterrors.ErrAdminOnly
	}
	return toFilter(q)
}

func toFilter(q ReportQuery) (Filter, error) {
	f := Filter{
		Department: q.Department,
		Status:     q.Status,
		LeaveType:  q.LeaveType,
		Priority:   q.Priority,
		EmployeeID: q.EmployeeID,
	}
	if q.StartDate != "" {
		d, err := time.Parse(dateLayout, q.StartDate)
		if err != nil {
			return Filter{}, reporterrors.ErrInvalidDateFormat
		}
		f.StartDate = &d
	}
	if q.EndDate != "" {
		d, err := time.Parse(dateLayout, q.EndDate)
		if err != nil {
			return Filter{}, reporterrors.ErrInvalidDateFormat
		}
		f.EndDate = &d
	}
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return Filter{}, reporterrors.ErrInvalidDateRange
	}
	return f, nil
}

// foldEmployees merges the per-status rows of each employee, keeping the
// order in which employees first appear.
func foldEmployees(rows []EmployeeRow) []EmployeeSummary {
	index := map[string]int{}
	out := make([]EmployeeSummary, 0)
	days := make([]decimal.Decimal, 0)

	for _, r := range rows {
		i, ok := index[r.EmployeeID]
		if !ok {
			i = len(out)
			index[r.EmployeeID] = i
			out = append(out, EmployeeSummary{
				EmployeeID: r.EmployeeID,
				FullName:   r.FullName,
				Department: r.Department,
			})
			days = append(days, decimal.Zero)
		}
		c := &out[i].Requests
		c.Total += r.Count
		addStatus(&c.Pending, &c.Approved, &c.Rejected, &c.Cancelled, r.Status, r.Count)
		if r.Status == leave.StatusApproved {
			days[i] = days[i].Add(r.Days)
		}
	}
	for i := range out {
		out[i].ApprovedDays = days[i].InexactFloat64()
	}
	return out
}

func addStatus(pending, approved, rejected, cancelled *int64, status string, n int64) {
	switch status {
	case leave.StatusPending:
		*pending += n
	case leave.StatusApproved:
		*approved += n
	case leave.StatusRejected:
		*rejected += n
	case leave.StatusCancelled:
		*cancelled += n
	}
}

func (s *service) loggerFor(ctx context.Context) *zap.Logger {
	return contextutil.ServiceLogger(ctx, s.logger, "report.service")
}
