package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func TestExecAffected(t *testing.T) {
	log := &execLog{rows: 4}
	n, err := execAffected(context.Background(), stubExecer{execFn: log.exec}, `DELETE FROM payments WHERE id = $1`, "p1")
	if err != nil || n != 4 {
		t.Fatalf("unexpected result %d err %v", n, err)
	}
	if call := log.only(t, "DELETE FROM payments"); call.args[0] != "p1" {
		t.Fatalf("unexpected args: %#v", call.args)
	}
}

func TestExecAffectedErrors(t *testing.T) {
	boom := errors.New("connection reset")
	failing := stubExecer{execFn: func(context.Context, string, ...any) (sql.Result, error) {
		return nil, boom
	}}
	if n, err := execAffected(context.Background(), failing, `UPDATE accounts SET name = $1`, "x"); !errors.Is(err, boom) || n != 0 {
		t.Fatalf("expected exec error, got %d %v", n, err)
	}

	noCount := stubExecer{execFn: func(context.Context, string, ...any) (sql.Result, error) {
		return stubResult{err: sql.ErrConnDone}, nil
	}}
	if _, err := execAffected(context.Background(), noCount, `UPDATE accounts SET name = $1`, "x"); !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("expected rows affected error, got %v", err)
	}
}
