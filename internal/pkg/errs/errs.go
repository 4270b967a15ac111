package errs

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a required single-entity lookup finds no row.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
)

// pgUndefinedTable is the Postgres error code for "relation does not exist".
const pgUndefinedTable = "42P01"

// IsNotFound reports whether err is our sentinel or gorm's record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// IsMissingRelation reports whether err means the backing table does not exist.
// Optional subsystems (relationships, knowledge store, content history) treat
// this as "empty", never as a failure.
func IsMissingRelation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable
	}
	// Fallback for errors that lost their type through wrapping.
	msg := err.Error()
	return strings.Contains(msg, "does not exist") && strings.Contains(msg, "relation")
}
