package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hermanas/caja/internal/usecase"
)

// beginner is the slice of the pool the manager needs; pgxmock
// satisfies it in tests.
type beginner interface {
	Begin(context.Context) (pgx.Tx, error)
}

// TxManager hands out transactions for multi-statement use case flows.
type TxManager struct {
	pool beginner
}

// NewTxManager creates a new TxManager backed by the given pool.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return newTxManagerWithPool(pool)
}

func newTxManagerWithPool(pool beginner) *TxManager {
	return &TxManager{pool: pool}
}

// Begin opens a transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Tx adapts a pgx transaction to the usecase.Transaction port.
type Tx struct {
	tx pgx.Tx
}

func (t *Tx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t *Tx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

// PgxTx exposes the wrapped transaction for repositories that run
// inside it.
func (t *Tx) PgxTx() pgx.Tx {
	return t.tx
}
