package postgres

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations executes the SQL file at path. Statements are expected to be
// idempotent.
func RunMigrations(ctx context.Context, db *pgxpool.Pool, path string) error {
	migrationSQL, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migrations %s: %w", path, err)
	}

	if _, err := db.Exec(ctx, string(migrationSQL)); err != nil {
		return fmt.Errorf("apply migrations %s: %w", path, err)
	}

	return nil
}

func DB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	cfg.MaxConns = 25

	return pgxpool.NewWithConfig(ctx, cfg)
}
