// Package migrations embeds the SQL migration files so they can be applied
// by the goose programmatic API at server bootstrap and in tests.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// FS holds all *.sql migration files embedded at compile time.
// Pass this to goose.NewProvider instead of relying on a filesystem path at runtime.
//
//go:embed *.sql
var FS embed.FS

// Migrate applies every pending migration in FS to db and returns the number
// of migrations that ran. db must use a Postgres driver (e.g. pgx/stdlib).
func Migrate(ctx context.Context, db *sql.DB) (int, error) {
	if db == nil {
		return 0, errors.New("migrations.Migrate: db is nil")
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, FS)
	if err != nil {
		return 0, fmt.Errorf("migrations.Migrate: create provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrations.Migrate: up: %w", err)
	}
	return len(results), nil
}

// MigratePool runs Migrate over a database/sql handle borrowed from pool.
// The handle is closed before returning; pool stays open.
func MigratePool(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	if pool == nil {
		return 0, errors.New("migrations.MigratePool: pool is nil")
	}
	db := stdlib.OpenDBFromPool(pool)
	applied, err := Migrate(ctx, db)
	if cerr := db.Close(); cerr != nil && err == nil {
		return applied, fmt.Errorf("migrations.MigratePool: close: %w", cerr)
	}
	return applied, err
}
