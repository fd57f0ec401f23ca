package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/polaris/internal/domain"
)

// LocalCacheKey is the single key under which the note blob is cached.
const LocalCacheKey = "polaris_local_cache"

// DefaultRemoteTable is the remote table holding one row per strategy.
const DefaultRemoteTable = "polaris_persistence"

// NoteRow is one remote record. Absent columns are nil.
type NoteRow struct {
	StrategyID string
	Question   *string
	Reflection *string
	UpdatedAt  time.Time
}

// NoteUpsert writes exactly one note column of a strategy row. Other
// columns of an existing row are left untouched.
type NoteUpsert struct {
	StrategyID domain.StrategyID
	Field      domain.NoteField
	Value      string
	UpdatedAt  time.Time
}

// LocalCache is a durable key/value slot for serialized state.
type LocalCache interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}

// NoteRemote is a remote table of per-strategy note rows.
type NoteRemote interface {
	FetchAll(ctx context.Context) ([]NoteRow, error)
	UpsertField(ctx context.Context, u NoteUpsert) error
}
