package handlers

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB satisfies DB for handler tests that never reach a real database.
// Only the hooks a test sets are expected to be called.
type fakeDB struct {
	queryRow func(sql string, args ...any) pgx.Row
	exec     func(sql string, args ...any) (pgconn.CommandTag, error)
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return f.queryRow(sql, args...)
}

func (f *fakeDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	if f.exec != nil {
		return f.exec(sql, arguments...)
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("query not stubbed")
}

func (f *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	return nil, errors.New("begin not stubbed")
}

func (f *fakeDB) Ping(ctx context.Context) error { return nil }

// rowFunc adapts a scan function into a pgx.Row.
type rowFunc func(dest ...any) error

func (f rowFunc) Scan(dest ...any) error { return f(dest...) }

func errRow(err error) pgx.Row {
	return rowFunc(func(...any) error { return err })
}
