package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/alexanderramin/polaris/internal/repository"
)

// MemoryCache is an in-memory LocalCache with optional failure injection.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]string
	PutErr  error
	GetErr  error
	Puts    int
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]string{}}
}

// Seed stores raw under key without counting a Put.
func (c *MemoryCache) Seed(key, raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.GetErr != nil {
		return "", c.GetErr
	}
	v, ok := c.entries[key]
	if !ok {
		return "", fmt.Errorf("memory cache %q: %w", key, repository.ErrNotFound)
	}
	return v, nil
}

func (c *MemoryCache) Put(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Puts++
	if c.PutErr != nil {
		return c.PutErr
	}
	c.entries[key] = value
	return nil
}

// Raw returns the stored value for key.
func (c *MemoryCache) Raw(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

// FakeRemote is an in-memory NoteRemote that merges upserts per column,
// records every call and can be told to fail.
type FakeRemote struct {
	mu        sync.Mutex
	rows      map[string]repository.NoteRow
	Upserts   []repository.NoteUpsert
	Fetches   int
	FetchErr  error
	UpsertErr error
}

func NewFakeRemote(rows ...repository.NoteRow) *FakeRemote {
	r := &FakeRemote{rows: map[string]repository.NoteRow{}}
	for _, row := range rows {
		r.rows[row.StrategyID] = row
	}
	return r
}

func (r *FakeRemote) FetchAll(_ context.Context) ([]repository.NoteRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Fetches++
	if r.FetchErr != nil {
		return nil, r.FetchErr
	}
	out := make([]repository.NoteRow, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StrategyID < out[j].StrategyID })
	return out, nil
}

func (r *FakeRemote) UpsertField(_ context.Context, u repository.NoteUpsert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Upserts = append(r.Upserts, u)
	if r.UpsertErr != nil {
		return r.UpsertErr
	}
	row := r.rows[string(u.StrategyID)]
	row.StrategyID = string(u.StrategyID)
	v := u.Value
	if u.Field == "reflection" {
		row.Reflection = &v
	} else {
		row.Question = &v
	}
	row.UpdatedAt = u.UpdatedAt
	r.rows[row.StrategyID] = row
	return nil
}

// Row returns the stored row for a strategy id.
func (r *FakeRemote) Row(id string) (repository.NoteRow, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	return row, ok
}

// UpsertCount returns how many upserts were attempted.
func (r *FakeRemote) UpsertCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Upserts)
}

// Str returns a pointer to s, for building NoteRow literals.
func Str(s string) *string { return &s }
