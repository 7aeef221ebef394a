package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/proposals/internal/db"
)

// FailOnNthExecUoW injects Err on the Nth ExecContext call (counted from 1)
// of each write transaction, so multi-write saves and deletes can be checked
// for all-or-nothing behaviour. Reads pass through and WithinReadTx never
// fails.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) uow() *db.SQLiteUnitOfWork {
	return db.NewSQLiteUnitOfWork(u.DB, db.WithWriteTxWrapper(func(tx db.DBTX) db.DBTX {
		return &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err}
	}))
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.uow().WithinTx(ctx, fn)
}

func (u *FailOnNthExecUoW) WithinReadTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.uow().WithinReadTx(ctx, fn)
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.count.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
