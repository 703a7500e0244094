package leave_test

import (
	"context"
	"regexp"
	"testing"

	"go-attendance/internal/leave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_HasOverlap(t *testing.T) {
	db, mock := newMockDB(t)
	repo := leave.NewRepository(db)
	empID := uuid.NewString()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "leave_requests" WHERE employee_id = $1 AND status IN ($2,$3) AND (from_date <= $4 AND to_date >= $5)`)).
		WithArgs(empID, leave.StatusPending, leave.StatusApproved, "2026-03-17", "2026-03-15").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	overlap, err := repo.HasOverlap(context.Background(), empID, date("2026-03-15"), date("2026-03-17"), nil)

	require.NoError(t, err)
	assert.True(t, overlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_HasOverlap_ExcludesSelf(t *testing.T) {
	db, mock := newMockDB(t)
	repo := leave.NewRepository(db)
	empID := uuid.NewString()
	self := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`AND id <> $6`)).
		WithArgs(empID, leave.StatusPending, leave.StatusApproved, "2026-03-17", "2026-03-15", self).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	overlap, err := repo.HasOverlap(context.Background(), empID, date("2026-03-15"), date("2026-03-17"), &self)

	require.NoError(t, err)
	assert.False(t, overlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_TransitionFromPending(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "still pending", affected: 1, want: true},
		{name: "already moved", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := leave.NewRepository(db)
			id := uuid.New()

			mock.ExpectExec(regexp.QuoteMeta(`UPDATE "leave_requests" SET "status"=$1,"updated_at"=$2 WHERE id = $3 AND status = $4`)).
				WithArgs(leave.StatusCancelled, sqlmock.AnyArg(), id, leave.StatusPending).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			applied, err := repo.TransitionFromPending(context.Background(), id, map[string]any{
				"status":     leave.StatusCancelled,
				"updated_at": fixedNow,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, applied)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_DeletePending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := leave.NewRepository(db)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "leave_requests" WHERE id = $1 AND status = $2`)).
		WithArgs(id, leave.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeletePending(context.Background(), id)

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_EmptySkipsPageQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := leave.NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "leave_requests" JOIN employees ON employees.id = leave_requests.employee_id WHERE employees.department = $1`)).
		WithArgs("Finance").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	leaves, total, err := repo.List(context.Background(), leave.ListFilter{Department: "Finance", Page: 1, PageSize: 10})

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, leaves)
	assert.NoError(t, mock.ExpectationsWereMet())
}
