// Package commands holds the database maintenance commands run by tooling.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrazmi/todolist/infrastructure/postgresdb"
	"github.com/jrazmi/todolist/schema"
)

// Migrate applies the embedded task schema to the database.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	log.InfoContext(ctx, "migration started", "dir", schema.MigrationsDir)

	if err := postgresdb.Migrate(ctx, log, pool, schema.MigrationsFS, schema.MigrationsDir); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	log.InfoContext(ctx, "migrations completed successfully")
	return nil
}

// Status reports how many tasks the database holds.
func Status(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	if err := postgresdb.StatusCheck(ctx, pool); err != nil {
		return fmt.Errorf("database status check failed: %w", err)
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM tasks").Scan(&count); err != nil {
		return fmt.Errorf("count tasks: %w", postgresdb.HandlePgError(err))
	}

	log.InfoContext(ctx, "database reachable", "tasks", count)
	return nil
}
