package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type txKey struct{}

// NewContext returns a context carrying the transactional handle so that
// repositories called inside a unit of work share the same transaction.
func NewContext(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// FromContext resolves the database handle for the current operation: the
// transaction carried in ctx when present, the fallback connection otherwise.
func FromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return fallback
}

// Transactor scopes a unit of work to a single database transaction.
// Every repository call made inside fn commits or rolls back together.
type Transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if t == nil || t.db == nil {
		return errors.New("postgres transactor not configured")
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewContext(ctx, tx))
	})
}
