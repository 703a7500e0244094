package counter

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

const LeaveReference = "leave_request"

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, counterType string, year int) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetNextValue atomically increments the counter for (type, year). The row is
// created on first use, so sequences restart every year. It always runs as a
// single autocommitted statement and never joins a caller's transaction.
func (r *repository) GetNextValue(ctx context.Context, counterType string, year int) (int64, error) {
	var nextValue int64

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO counters (counter_type, period_year, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (counter_type, period_year) DO UPDATE
		SET last_value = counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, counterType, year).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

// FormatReference renders LV-2026-000042 style references.
func FormatReference(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%06d", prefix, year, seq)
}
