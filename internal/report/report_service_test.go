package report_test

import (
	"context"
	"errors"
	"testing"

	"go-attendance/internal/report"
	reporterrors "go-attendance/internal/report/errors"
	"go-attendance/internal/shared/contextutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportRepository struct {
	bucketsFn         func(ctx context.Context, f report.Filter) ([]report.BucketRow, error)
	employeeBucketsFn func(ctx context.Context, f report.Filter) ([]report.EmployeeRow, error)
}

func (f *fakeReportRepository) Buckets(ctx context.Context, filter report.Filter) ([]report.BucketRow, error) {
	if f.bucketsFn != nil {
		return f.bucketsFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeReportRepository) EmployeeBuckets(ctx context.Context, filter report.Filter) ([]report.EmployeeRow, error) {
	if f.employeeBucketsFn != nil {
		return f.employeeBucketsFn(ctx, filter)
	}
	return nil, nil
}

type roleAdmin struct{}

func (roleAdmin) IsAdmin(role string) bool { return role == "admin" }

var admin = contextutil.Actor{ID: "a0000000-0000-0000-0000-000000000001", Role: "admin"}

func days(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestReportService_Stats(t *testing.T) {
	repo := &fakeReportRepository{
		bucketsFn: func(ctx context.Context, f report.Filter) ([]report.BucketRow, error) {
			require.NotNil(t, f.StartDate)
			assert.Equal(t, "2026-01-01", f.StartDate.Format("2006-01-02"))
			assert.Equal(t, "Engineering", f.Department)
			return []report.BucketRow{
				{Status: "approved", LeaveType: "annual", Priority: "medium", Count: 2, Days: days("5")},
				{Status: "pending", LeaveType: "annual", Priority: "high", Count: 1, Days: days("0.5")},
				{Status: "rejected", LeaveType: "sick", Priority: "medium", Count: 1, Days: days("2")},
				{Status: "cancelled", LeaveType: "casual", Priority: "low", Count: 1, Days: days("1")},
			}, nil
		},
	}
	svc := report.NewService(repo, roleAdmin{})

	resp, err := svc.Stats(context.Background(), admin, report.ReportQuery{StartDate: "2026-01-01", Department: "Engineering"})

	require.NoError(t, err)
	assert.Equal(t, report.StatsSummary{
		TotalRequests: 5,
		Pending:       1,
		Approved:      2,
		Rejected:      1,
		Cancelled:     1,
		TotalDays:     8.5,
	}, resp.Summary)
	assert.Equal(t, []report.LeaveTypeStat{
		{LeaveType: "annual", Count: 3, TotalDays: 5.5},
		{LeaveType: "casual", Count: 1, TotalDays: 1},
		{LeaveType: "sick", Count: 1, TotalDays: 2},
	}, resp.LeaveTypeBreakdown)
	assert.Equal(t, []report.PriorityStat{
		{Priority: "medium", Count: 3},
		{Priority: "high", Count: 1},
		{Priority: "low", Count: 1},
	}, resp.PriorityBreakdown)
}

func TestReportService_Stats_Empty(t *testing.T) {
	svc := report.NewService(&fakeReportRepository{}, roleAdmin{})

	resp, err := svc.Stats(context.Background(), admin, report.ReportQuery{})

	require.NoError(t, err)
	assert.Equal(t, report.StatsSummary{}, resp.Summary)
	assert.NotNil(t, resp.LeaveTypeBreakdown)
	assert.Empty(t, resp.LeaveTypeBreakdown)
	assert.Empty(t, resp.PriorityBreakdown)
}

func TestReportService_Errors(t *testing.T) {
	tests := []struct {
		name    string
		actor   contextutil.Actor
		query   report.ReportQuery
		repoErr error
		wantErr error
	}{
		{
			name:    "staff",
			actor:   contextutil.Actor{ID: "s", Role: "staff"},
			wantErr: reporterrors.ErrAdminOnly,
		},
		{
			name:    "bad date",
			actor:   admin,
			query:   report.ReportQuery{EndDate: "31-12-2026"},
			wantErr: reporterrors.ErrInvalidDateFormat,
		},
		{
			name:    "inverted range",
			actor:   admin,
			query:   report.ReportQuery{StartDate: "2026-06-01", EndDate: "2026-01-01"},
			wantErr: reporterrors.ErrInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := report.NewService(&fakeReportRepository{}, roleAdmin{})

			_, err := svc.Stats(context.Background(), tt.actor, tt.query)
			assert.ErrorIs(t, err, tt.wantErr)
			_, err = svc.EmployeeSummary(context.Background(), tt.actor, tt.query)
			assert.ErrorIs(t, err, tt.wantErr)
			_, err = svc.DepartmentSummary(context.Background(), tt.actor, tt.query)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("storage failure", func(t *testing.T) {
		boom := errors.New("db down")
		repo := &fakeReportRepository{
			bucketsFn: func(ctx context.Context, f report.Filter) ([]report.BucketRow, error) { return nil, boom },
		}
		svc := report.NewService(repo, roleAdmin{})

		_, err := svc.Stats(context.Background(), admin, report.ReportQuery{})

		assert.ErrorIs(t, err, boom)
	})
}

func employeeRows() []report.EmployeeRow {
	return []report.EmployeeRow{
		{EmployeeID: "e1", FullName: "Ada", Department: "Engineering", Status: "approved", Count: 2, Days: days("3.5")},
		{EmployeeID: "e1", FullName: "Ada", Department: "Engineering", Status: "pending", Count: 1, Days: days("2")},
		{EmployeeID: "e2", FullName: "Bob", Department: "Engineering", Status: "rejected", Count: 1, Days: days("4")},
		{EmployeeID: "e3", FullName: "Cy", Department: "Finance", Status: "approved", Count: 1, Days: days("5")},
	}
}

func TestReportService_EmployeeSummary(t *testing.T) {
	repo := &fakeReportRepository{
		employeeBucketsFn: func(ctx context.Context, f report.Filter) ([]report.EmployeeRow, error) {
			return employeeRows(), nil
		},
	}
	svc := report.NewService(repo, roleAdmin{})

	got, err := svc.EmployeeSummary(context.Background(), admin, report.ReportQuery{})

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "e3", got[0].EmployeeID)
	assert.Equal(t, report.EmployeeSummary{
		EmployeeID:   "e1",
		FullName:     "Ada",
		Department:   "Engineering",
		Requests:     report.StatusCounts{Total: 3, Pending: 1, Approved: 2},
		ApprovedDays: 3.5,
	}, got[1])
	assert.Equal(t, 0.0, got[2].ApprovedDays)
	assert.Equal(t, int64(1), got[2].Requests.Rejected)
}

func TestReportService_DepartmentSummary(t *testing.T) {
	repo := &fakeReportRepository{
		employeeBucketsFn: func(ctx context.Context, f report.Filter) ([]report.EmployeeRow, error) {
			return employeeRows(), nil
		},
	}
	svc := report.NewService(repo, roleAdmin{})

	got, err := svc.DepartmentSummary(context.Background(), admin, report.ReportQuery{})

	require.NoError(t, err)
	assert.Equal(t, []report.DepartmentSummary{
		{
			Department:    "Engineering",
			EmployeeCount: 2,
			Requests:      report.StatusCounts{Total: 4, Pending: 1, Approved: 2, Rejected: 1},
			ApprovedDays:  3.5,
		},
		{
			Department:    "Finance",
			EmployeeCount: 1,
			Requests:      report.StatusCounts{Total: 1, Approved: 1},
			ApprovedDays:  5,
		},
	}, got)
}

func TestReportService_DepartmentSummary_Empty(t *testing.T) {
	svc := report.NewService(&fakeReportRepository{}, roleAdmin{})

	got, err := svc.DepartmentSummary(context.Background(), admin, report.ReportQuery{})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
