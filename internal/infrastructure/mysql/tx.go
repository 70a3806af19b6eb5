package mysql

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories take it as a parameter so the same query code runs either on
// the pool or inside a transaction owned by the caller.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Tx is a transaction handle: queries plus commit/rollback. *sql.Tx satisfies
// it; tests substitute in-memory fakes.
type Tx interface {
	DBTX
	Commit() error
	Rollback() error
}

type TxManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) BeginTx(ctx context.Context, opts *sql.TxOptions) (Tx, error) {
	return m.db.BeginTx(ctx, opts)
}
