package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so repositories can run
// either standalone or inside a unit of work.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// TxFunc is the body of a unit of work. Repositories built from tx see the
// transaction's view of the store.
type TxFunc func(ctx context.Context, tx DBTX) error

// UnitOfWork manages transactional boundaries.
//
// WithinTx is for mutations: nothing written inside fn is visible to other
// connections until fn returns nil, and any error or panic rolls everything
// back. WithinReadTx gives multi-statement reads (a record plus its history)
// one consistent view.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
	WithinReadTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork implements UnitOfWork using database/sql transactions.
type SQLiteUnitOfWork struct {
	db     *sql.DB
	wrapTx func(DBTX) DBTX
}

// UnitOfWorkOption customises NewSQLiteUnitOfWork.
type UnitOfWorkOption func(*SQLiteUnitOfWork)

// WithWriteTxWrapper decorates the handle passed to every WithinTx body.
// wrap is called once per transaction.
func WithWriteTxWrapper(wrap func(DBTX) DBTX) UnitOfWorkOption {
	return func(u *SQLiteUnitOfWork) {
		u.wrapTx = wrap
	}
}

// NewSQLiteUnitOfWork creates a UnitOfWork backed by the given *sql.DB.
func NewSQLiteUnitOfWork(db *sql.DB, opts ...UnitOfWorkOption) *SQLiteUnitOfWork {
	u := &SQLiteUnitOfWork{db: db}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return u.run(ctx, nil, u.wrapTx, fn)
}

func (u *SQLiteUnitOfWork) WithinReadTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return u.run(ctx, &sql.TxOptions{ReadOnly: true}, nil, fn)
}

func (u *SQLiteUnitOfWork) run(ctx context.Context, opts *sql.TxOptions, wrap func(DBTX) DBTX, fn TxFunc) (err error) {
	tx, err := u.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rolling back: %w", rbErr))
		}
	}()

	var handle DBTX = tx
	if wrap != nil {
		handle = wrap(tx)
	}
	if err := fn(ctx, handle); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	committed = true
	return nil
}
