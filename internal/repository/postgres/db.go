package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erwannT/callForPapers/internal/domain"
)

// querier is the subset of *sql.DB and *sql.Tx the repositories use, so a
// repository call participates in a transaction when one is on the context.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKeyType struct{}

var txKey txKeyType

// q returns the transaction from ctx if one is running, otherwise db.
func q(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(txKey).(*sql.Tx); ok {
		return tx
	}
	return db
}

type txManager struct {
	DB *sql.DB
}

// NewTxManager returns a Transactor that carries the *sql.Tx in the context
// handed to fn. Commit on nil return, rollback otherwise. Nested calls join
// the outer transaction.
func NewTxManager(db *sql.DB) domain.Transactor {
	return &txManager{DB: db}
}

func (m *txManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*sql.Tx); ok {
		return fn(ctx)
	}
	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(context.WithValue(ctx, txKey, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
