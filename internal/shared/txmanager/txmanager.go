package txmanager

import (
	"context"

	"gorm.io/gorm"
)

// Transactor runs fn inside a database transaction. Repositories join it
// through their WithTx method. Returning an error from fn rolls back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTransactor struct {
	db *gorm.DB
}

func New(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return t.db.WithContext(ctx).Transaction(fn)
}
