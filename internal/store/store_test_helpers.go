package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"
)

// stubDB stands in for the pool. Unset hooks succeed with zero rows.
type stubDB struct {
	getFn    func(ctx context.Context, dest any, query string, args ...any) error
	selectFn func(ctx context.Context, dest any, query string, args ...any) error
	execFn   func(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s stubDB) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return stubGetter{getFn: s.getFn}.GetContext(ctx, dest, query, args...)
}

func (s stubDB) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	if s.selectFn == nil {
		return nil
	}
	return s.selectFn(ctx, dest, query, args...)
}

func (s stubDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return stubExecer{execFn: s.execFn}.ExecContext(ctx, query, args...)
}

// stubExecer plays the transaction handle passed to write methods.
type stubExecer struct {
	execFn func(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s stubExecer) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if s.execFn == nil {
		return stubResult{}, nil
	}
	return s.execFn(ctx, query, args...)
}

type stubGetter struct {
	getFn func(ctx context.Context, dest any, query string, args ...any) error
}

func (s stubGetter) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	if s.getFn == nil {
		return nil
	}
	return s.getFn(ctx, dest, query, args...)
}

type stubResult struct {
	rows int64
	err  error
}

func (r stubResult) LastInsertId() (int64, error) {
	return 0, r.err
}

func (r stubResult) RowsAffected() (int64, error) {
	return r.rows, r.err
}

type execCall struct {
	query string
	args  []any
}

// execLog records statements and answers each with rows affected.
type execLog struct {
	rows  int64
	calls []execCall
}

func (l *execLog) exec(_ context.Context, query string, args ...any) (sql.Result, error) {
	l.calls = append(l.calls, execCall{query: query, args: args})
	return stubResult{rows: l.rows}, nil
}

// only returns the single recorded statement after checking it mentions
// every fragment.
func (l *execLog) only(t *testing.T, fragments ...string) execCall {
	t.Helper()
	if len(l.calls) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(l.calls))
	}
	call := l.calls[0]
	for _, fragment := range fragments {
		if !strings.Contains(call.query, fragment) {
			t.Fatalf("statement missing %q: %s", fragment, call.query)
		}
	}
	return call
}
