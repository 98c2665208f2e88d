// Package postgres opens the service database and applies the embedded schema.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"time"

	// registers the "pgx" database/sql driver
	_ "github.com/jackc/pgx/v5/stdlib"

	txcontext "credo-consent/pkg/platform/tx"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Config holds connection pool settings.
type Config struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// SchemaFS returns the embedded schema files.
func SchemaFS() fs.FS {
	return schemaFS
}

// Open connects to PostgreSQL and verifies the connection.
// Returns nil when no URL is configured.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return db, nil
}

// EnsureSchema applies every embedded schema file in name order inside one
// transaction. Statements are idempotent so this runs on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	names, err := fs.Glob(schemaFS, "schema/*.sql")
	if err != nil {
		return fmt.Errorf("list schema files: %w", err)
	}
	sort.Strings(names)
	return txcontext.Run(ctx, db, func(ctx context.Context) error {
		tx, _ := txcontext.From(ctx)
		for _, name := range names {
			body, err := fs.ReadFile(schemaFS, name)
			if err != nil {
				return fmt.Errorf("read %s: %w", name, err)
			}
			if _, err := tx.ExecContext(ctx, string(body)); err != nil {
				return fmt.Errorf("apply %s: %w", name, err)
			}
		}
		return nil
	})
}
