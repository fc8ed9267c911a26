// Package postgres binds the shared SQL repositories to PostgreSQL through pgx.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"lingua-cms/internal/infra/adapter/persistence/sqlstore"
	"lingua-cms/internal/repository"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Dialect rewrites placeholders to $n and runs transactions at READ COMMITTED.
var Dialect = sqlstore.Dialect{
	Name:      "postgres",
	Rebind:    sqlstore.DollarPlaceholders,
	Classify:  Classify,
	TxOptions: &sql.TxOptions{Isolation: sql.LevelReadCommitted},
}

// New returns a Store on db speaking PostgreSQL.
func New(db *sql.DB) *sqlstore.Store {
	return sqlstore.New(db, Dialect)
}

// Classify maps unique and foreign key violations to the repository errors.
// The constraint name stays in the message for the logs.
func Classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s", repository.ErrReferenced, pgErr.ConstraintName)
	default:
		return err
	}
}
