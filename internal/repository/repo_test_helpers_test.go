package repository

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/polaris/internal/db"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func strPtr(s string) *string { return &s }
