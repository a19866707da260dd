package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schemas = map[string]string{
	"postgres": `CREATE TABLE IF NOT EXISTS load_history (
		id BIGSERIAL PRIMARY KEY,
		source TEXT NOT NULL,
		tabs TEXT NOT NULL DEFAULT '',
		trigger_type TEXT NOT NULL,
		status TEXT NOT NULL,
		tab_count INTEGER NOT NULL DEFAULT 0,
		row_count INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		duration_ms BIGINT NOT NULL DEFAULT 0,
		processed_at TIMESTAMPTZ NOT NULL
	)`,
	"sqlite": `CREATE TABLE IF NOT EXISTS load_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		tabs TEXT NOT NULL DEFAULT '',
		trigger_type TEXT NOT NULL,
		status TEXT NOT NULL,
		tab_count INTEGER NOT NULL DEFAULT 0,
		row_count INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		duration_ms INTEGER NOT NULL DEFAULT 0,
		processed_at DATETIME NOT NULL
	)`,
}

// Migrate creates the load_history table for the connection's driver.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	schema, ok := schemas[db.DriverName()]
	if !ok {
		return fmt.Errorf("unsupported database driver %q", db.DriverName())
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate load_history: %w", err)
	}
	return nil
}
