package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all local schema migrations. Statements are idempotent and
// re-run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Browser-style key/value cache. The note blob lives under a single key.
	`CREATE TABLE IF NOT EXISTS local_cache (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}
