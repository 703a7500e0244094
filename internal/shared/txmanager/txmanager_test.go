package txmanager_test

import (
	"context"
	"errors"
	"testing"

	"go-attendance/internal/shared/txmanager"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTransactor(t *testing.T) (txmanager.Transactor, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return txmanager.New(db), mock
}

func TestWithinTransaction_Commit(t *testing.T) {
	tm, mock := newTransactor(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	called := false
	err := tm.WithinTransaction(context.Background(), func(tx *gorm.DB) error {
		called = tx != nil
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTransaction_Rollback(t *testing.T) {
	tm, mock := newTransactor(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := tm.WithinTransaction(context.Background(), func(tx *gorm.DB) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
