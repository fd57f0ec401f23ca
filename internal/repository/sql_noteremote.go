package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/alexanderramin/polaris/internal/db"
)

// Dialect selects placeholder style and DDL for a SQL remote.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DriverName returns the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	return string(d)
}

func (d Dialect) placeholder(n int) string {
	if d == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (d Dialect) createTable(table string) string {
	updatedAt := "TEXT NOT NULL"
	if d == DialectPostgres {
		updatedAt = "TIMESTAMPTZ NOT NULL DEFAULT now()"
	}
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		strategy_id TEXT PRIMARY KEY,
		question    TEXT,
		reflection  TEXT,
		updated_at  %s
	)`, table, updatedAt)
}

// SQLNoteRemote implements NoteRemote on a database/sql connection. Postgres
// (lib/pq) is the production dialect; SQLite serves shared-file setups and
// tests.
type SQLNoteRemote struct {
	conn    *sql.DB
	dialect Dialect
	table   string
}

// OpenSQLNoteRemote opens a remote connection for the given dialect and DSN.
func OpenSQLNoteRemote(dialect Dialect, dsn, table string) (*SQLNoteRemote, error) {
	conn, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s remote: %w", dialect, err)
	}
	remote, err := NewSQLNoteRemote(conn, dialect, table)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return remote, nil
}

// NewSQLNoteRemote wraps an existing connection.
func NewSQLNoteRemote(conn *sql.DB, dialect Dialect, table string) (*SQLNoteRemote, error) {
	if dialect != DialectPostgres && dialect != DialectSQLite {
		return nil, fmt.Errorf("unsupported remote dialect %q", dialect)
	}
	if table == "" {
		table = DefaultRemoteTable
	}
	if err := validIdent(table); err != nil {
		return nil, err
	}
	return &SQLNoteRemote{conn: conn, dialect: dialect, table: table}, nil
}

// EnsureSchema creates the note table when it does not exist yet.
func (r *SQLNoteRemote) EnsureSchema(ctx context.Context) error {
	return db.NewUnitOfWork(r.conn).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, r.dialect.createTable(r.table)); err != nil {
			return fmt.Errorf("creating %s: %w", r.table, err)
		}
		return nil
	})
}

func (r *SQLNoteRemote) FetchAll(ctx context.Context) ([]NoteRow, error) {
	query := fmt.Sprintf(`SELECT strategy_id, question, reflection, updated_at FROM %s ORDER BY strategy_id`, r.table)
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.table, err)
	}
	defer rows.Close()

	var out []NoteRow
	for rows.Next() {
		var (
			row                  NoteRow
			question, reflection sql.NullString
			updatedAt            sql.NullString
		)
		if err := rows.Scan(&row.StrategyID, &question, &reflection, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", r.table, err)
		}
		row.Question = nullableString(question)
		row.Reflection = nullableString(reflection)
		if updatedAt.Valid {
			row.UpdatedAt = parseTimestamp(updatedAt.String)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", r.table, err)
	}
	return out, nil
}

// UpsertField inserts the strategy row or updates only the supplied column.
func (r *SQLNoteRemote) UpsertField(ctx context.Context, u NoteUpsert) error {
	col, err := noteColumn(u.Field)
	if err != nil {
		return err
	}
	ph := []string{r.dialect.placeholder(1), r.dialect.placeholder(2), r.dialect.placeholder(3)}
	query := fmt.Sprintf(`INSERT INTO %[1]s (strategy_id, %[2]s, updated_at) VALUES (%[3]s)
		ON CONFLICT(strategy_id) DO UPDATE SET %[2]s = excluded.%[2]s, updated_at = excluded.updated_at`,
		r.table, col, strings.Join(ph, ", "))
	if _, err := r.conn.ExecContext(ctx, query, string(u.StrategyID), u.Value, formatTimestamp(u.UpdatedAt)); err != nil {
		return fmt.Errorf("upserting %s.%s for %q: %w", r.table, col, u.StrategyID, err)
	}
	return nil
}

// Close releases the remote connection.
func (r *SQLNoteRemote) Close() error {
	return r.conn.Close()
}
