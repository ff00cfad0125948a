package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

var ErrRetryLimit = errors.New("transaction retry limit exceeded")

type TxRunner interface {
	WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error
}

type SQLXTxRunner struct {
	db *sqlx.DB
}

func NewTxRunner(db *sqlx.DB) SQLXTxRunner {
	return SQLXTxRunner{db: db}
}

func (r SQLXTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	return WithTx(ctx, r.db, fn)
}

// Connect opens a pooled connection using lib/pq ("postgres") or the pgx
// stdlib adapter ("pgx"). Both speak $n placeholders.
func Connect(driver, databaseURL string) (*sqlx.DB, error) {
	switch driver {
	case "", DriverPostgres:
		driver = DriverPostgres
	case DriverPgx:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := sqlx.Connect(driver, databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetMaxIdleConns(5)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// WithTx runs fn in a serializable transaction, retrying on serialization
// failures and deadlocks.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	const maxAttempts = 5
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err != nil {
			return err
		}
		if err := fn(tx); err != nil {
			_ = tx.Rollback()
			if IsRetryable(err) && attempt < maxAttempts {
				sleepWithBackoff(ctx, attempt)
				continue
			}
			return err
		}
		if err := tx.Commit(); err != nil {
			if IsRetryable(err) && attempt < maxAttempts {
				sleepWithBackoff(ctx, attempt)
				continue
			}
			return err
		}
		return nil
	}
	return ErrRetryLimit
}

// SQLState extracts the SQLSTATE code from either driver's error type.
func SQLState(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func IsRetryable(err error) bool {
	code := SQLState(err)
	return code == "40001" || code == "40P01"
}

func sleepWithBackoff(ctx context.Context, attempt int) {
	base := 20 * time.Millisecond
	backoff := time.Duration(attempt*attempt) * base
	jitter := time.Duration(rand.Int63n(int64(10 * time.Millisecond)))
	timer := time.NewTimer(backoff + jitter)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
