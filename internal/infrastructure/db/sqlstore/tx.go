package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/alumnet/alumni-network/internal/core/ports"
)

type txKey struct{}

// Transactor implements ports.Transactor on top of gorm transactions.
type Transactor struct {
	db *gorm.DB
}

// NewTransactor creates a new Transactor.
func NewTransactor(db *gorm.DB) ports.Transactor {
	return &Transactor{db: db}
}

// WithinTx runs fn in a transaction. A nested call joins the outer one.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, falling back to db.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// forUpdate adds a row lock where the dialect has one. SQLite runs on a
// single connection, so its writers are already serialised.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == DriverSQLite {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// adjustExpr adds delta to column without letting it drop below zero.
func adjustExpr(column string, delta int64) clause.Expr {
	if delta >= 0 {
		return gorm.Expr(column+" + ?", delta)
	}
	return gorm.Expr("CASE WHEN "+column+" + ? < 0 THEN 0 ELSE "+column+" + ? END", delta, delta)
}

// notFound maps gorm's record-not-found to target and wraps anything else.
func notFound(err error, target error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return fmt.Errorf("%s: %w", op, err)
}

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// countQuery is one COUNT(*) of model filtered by where, stored in dst.
type countQuery struct {
	dst   *int64
	model any
	where string
	args  []any
}

func runCounts(db *gorm.DB, queries []countQuery) error {
	for _, q := range queries {
		tx := db.Model(q.model)
		if q.where != "" {
			tx = tx.Where(q.where, q.args...)
		}
		if err := tx.Count(q.dst).Error; err != nil {
			return err
		}
	}
	return nil
}
