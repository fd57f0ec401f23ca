package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/polaris/internal/db"
)

// SQLiteLocalCache implements LocalCache on the local_cache table.
type SQLiteLocalCache struct {
	db db.DBTX
}

// NewSQLiteLocalCache creates a new SQLiteLocalCache.
func NewSQLiteLocalCache(conn db.DBTX) *SQLiteLocalCache {
	return &SQLiteLocalCache{db: conn}
}

func (c *SQLiteLocalCache) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM local_cache WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("local cache %q: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("reading local cache %q: %w", key, err)
	}
	return value, nil
}

func (c *SQLiteLocalCache) Put(ctx context.Context, key, value string) error {
	query := `INSERT INTO local_cache (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := c.db.ExecContext(ctx, query, key, value, nowUTC()); err != nil {
		return fmt.Errorf("writing local cache %q: %w", key, err)
	}
	return nil
}
