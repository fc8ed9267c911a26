// Package sqlite binds the shared SQL repositories to the pure Go SQLite driver.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"lingua-cms/internal/infra/adapter/persistence/sqlstore"
	"lingua-cms/internal/repository"
)

// Dialect keeps ? placeholders and the driver's default transaction mode.
var Dialect = sqlstore.Dialect{
	Name:     "sqlite",
	Classify: Classify,
}

// New returns a Store on db speaking SQLite.
func New(db *sql.DB) *sqlstore.Store {
	return sqlstore.New(db, Dialect)
}

// Classify maps constraint failures to the repository errors.
func Classify(err error) error {
	var sqlErr *sqlite.Error
	if !errors.As(err, &sqlErr) {
		return err
	}
	switch sqlErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return fmt.Errorf("%w: %s", repository.ErrDuplicate, sqlErr.Error())
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: %s", repository.ErrReferenced, sqlErr.Error())
	}
	// without extended result codes only the primary code is set
	msg := sqlErr.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %s", repository.ErrDuplicate, msg)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %s", repository.ErrReferenced, msg)
	}
	return err
}
