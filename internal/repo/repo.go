// Package repo contains all database access logic for the travel survey API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here - only SQL and type mapping.
package repo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oapi-codegen/nullable"

	"github.com/natpac/travel-survey/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// psql builds statements with Postgres $n placeholders. Used for the queries
// whose shape depends on input: partial updates, paging and bulk updates.
//
// UUIDs are passed to squirrel as strings: uuid.UUID is a [16]byte array and
// sq.Eq would expand it into an IN list of bytes.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// mapError translates driver errors into domain sentinels.
// Constraint violations keep the driver error in the chain for logging, but
// their message is only the sentinel text, so Postgres detail never reaches
// an API client.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return &constraintError{sentinel: domain.ErrConflict, cause: pgErr}
		case pgerrcode.ForeignKeyViolation:
			return &constraintError{sentinel: domain.ErrNotFound, cause: pgErr}
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			return &constraintError{sentinel: domain.ErrValidation, cause: pgErr}
		}
	}
	return err
}

// constraintError is a constraint violation classified as a domain sentinel.
type constraintError struct {
	sentinel error
	cause    *pgconn.PgError
}

func (e *constraintError) Error() string { return e.sentinel.Error() }

// Constraint names the violated constraint, for logs.
func (e *constraintError) Constraint() string { return e.cause.ConstraintName }

func (e *constraintError) Unwrap() []error { return []error{e.sentinel, e.cause} }

// setNullable adds column to an UPDATE when v is specified. An explicit null
// writes SQL NULL; the schema rejects that for NOT NULL columns.
func setNullable[T any](b sq.UpdateBuilder, column string, v nullable.Nullable[T]) sq.UpdateBuilder {
	if !v.IsSpecified() {
		return b
	}
	if v.IsNull() {
		return b.Set(column, nil)
	}
	return b.Set(column, v.MustGet())
}
