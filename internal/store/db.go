package store

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Execer is satisfied by both *sqlx.DB and *sqlx.Tx, so writes can run
// inside or outside a transaction.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Getter reads a single row. Balance and lock queries take one so they see
// the caller's transaction.
type Getter interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

type Selecter interface {
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// DB is the pool handle every store is built on.
type DB interface {
	Execer
	Getter
	Selecter
}

var (
	_ DB     = (*sqlx.DB)(nil)
	_ Execer = (*sqlx.Tx)(nil)
	_ Getter = (*sqlx.Tx)(nil)
)

// execAffected runs a write and reports how many rows it touched.
func execAffected(ctx context.Context, ex Execer, query string, args ...any) (int64, error) {
	res, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
