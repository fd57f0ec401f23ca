package repository

import (
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/alexanderramin/polaris/internal/domain"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validIdent rejects table names that would need quoting.
func validIdent(name string) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("invalid table name %q", name)
	}
	return nil
}

// noteColumn maps a note field to its remote column.
func noteColumn(f domain.NoteField) (string, error) {
	switch f {
	case domain.FieldQuestion:
		return "question", nil
	case domain.FieldReflection:
		return "reflection", nil
	default:
		return "", fmt.Errorf("unknown note field %q", f)
	}
}

// nullableString converts a sql.NullString into a *string.
func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// parseTimestamp accepts the timestamp layouts produced by SQLite text
// columns and Postgres timestamptz columns. Unparseable values yield the
// zero time.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
