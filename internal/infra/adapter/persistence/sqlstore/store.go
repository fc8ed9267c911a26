// Package sqlstore implements the repositories on database/sql.
//
// Queries are written once with ? placeholders; a Dialect rewrites them for the driver and
// maps driver errors onto repository.ErrDuplicate and repository.ErrReferenced.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Dialect adapts the shared queries to one database.
type Dialect struct {
	Name string
	// Rebind rewrites ? placeholders into the driver's form. nil leaves them alone.
	Rebind func(query string) string
	// Classify maps constraint violations to repository errors and returns other errors unchanged.
	Classify func(err error) error
	// TxOptions are passed to BeginTx.
	TxOptions *sql.TxOptions
}

// DollarPlaceholders rewrites ? into $1, $2, ...
func DollarPlaceholders(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// Store owns the pool and hands out repositories bound to it.
// Repositories join the transaction that InTx put into the context.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New returns a Store for db.
func New(db *sql.DB, dialect Dialect) *Store {
	if dialect.Classify == nil {
		dialect.Classify = func(err error) error { return err }
	}
	return &Store{db: db, dialect: dialect}
}

// DB returns the underlying pool.
func (s *Store) DB() *sql.DB {
	return s.db
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

func (s *Store) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}

func (s *Store) rebind(query string) string {
	if s.dialect.Rebind == nil {
		return query
	}
	return s.dialect.Rebind(query)
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := s.conn(ctx).ExecContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, s.dialect.Classify(err)
	}
	return res, nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.conn(ctx).QueryContext(ctx, s.rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.conn(ctx).QueryRowContext(ctx, s.rebind(query), args...)
}

// InTx implements repository.TxRunner. A nested call joins the outer transaction.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.db.BeginTx(ctx, s.dialect.TxOptions)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", s.dialect.Classify(err))
	}
	return nil
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// nullable turns an optional string into a NULL-able argument.
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
