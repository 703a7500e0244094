package counter_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"go-attendance/internal/shared/counter"

	"github.com/DATA-DOG/go-sqlmock"
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

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestGetNextValue(t *testing.T) {
	db, mock := newMockDB(t)
	repo := counter.NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO counters")).
		WithArgs(counter.LeaveReference, 2026).
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(int64(42)))

	got, err := repo.GetNextValue(context.Background(), counter.LeaveReference, 2026)

	require.NoError(t, err)
	assert.Equal(t, int64(42), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNextValue_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := counter.NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO counters")).
		WillReturnError(errors.New("db down"))

	got, err := repo.GetNextValue(context.Background(), counter.LeaveReference, 2026)

	assert.Error(t, err)
	assert.Zero(t, got)
}

func TestFormatReference(t *testing.T) {
	assert.Equal(t, "LV-2026-000042", counter.FormatReference("LV", 2026, 42))
	assert.Equal(t, "LV-2026-1234567", counter.FormatReference("LV", 2026, 1234567))
}
