// Package notes reconciles the local note cache with the optional remote
// table into one in-memory view and propagates saves back to both.
package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/polaris/internal/domain"
	"github.com/alexanderramin/polaris/internal/repository"
)

// ErrNotHydrated is returned by every note operation before Hydrate.
var ErrNotHydrated = errors.New("notes not hydrated")

// SaveOutcome describes what a save attempted. It is informational only;
// a save never fails.
type SaveOutcome struct {
	Remote    bool
	RemoteErr error
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithAckDuration(d time.Duration) Option {
	return func(s *Store) { s.ackDuration = d }
}

func WithScheduler(sch Scheduler) Option {
	return func(s *Store) { s.scheduler = sch }
}

// WithSupersedingAck makes a new save cancel the pending clear of the
// previous one, so the flag clears exactly one ack duration after the last
// save instead of after the first.
func WithSupersedingAck() Option {
	return func(s *Store) { s.supersede = true }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store owns the merged note mappings. It is safe for concurrent use.
type Store struct {
	local  repository.LocalCache
	remote Remote

	log         *slog.Logger
	ackDuration time.Duration
	scheduler   Scheduler
	supersede   bool
	now         func() time.Time

	hydrateOnce sync.Once

	mu          sync.Mutex
	hydrated    bool
	questions   map[string]string
	reflections map[string]string
	acks        map[ackKey]bool
	latest      map[ackKey]uint64
	timers      map[uint64]Timer
	seq         uint64
}

// New creates a Store. Call Hydrate before any other operation.
func New(local repository.LocalCache, remote Remote, opts ...Option) *Store {
	s := &Store{
		local:       local,
		remote:      remote,
		log:         slog.New(slog.DiscardHandler),
		ackDuration: DefaultAckDuration,
		scheduler:   realScheduler{},
		now:         time.Now,
		questions:   map[string]string{},
		reflections: map[string]string{},
		acks:        map[ackKey]bool{},
		latest:      map[ackKey]uint64{},
		timers:      map[uint64]Timer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RemoteEnabled reports whether saves reach a remote backend.
func (s *Store) RemoteEnabled() bool { return s.remote.Enabled() }

// Hydrate seeds the mappings from the local cache, then folds remote rows
// on top so that non-empty remote fields win. Failures of either backend
// degrade to whatever was read. The merged snapshot is written back to the
// local cache unless reading it failed. Only the first call has any effect.
func (s *Store) Hydrate(ctx context.Context) {
	s.hydrateOnce.Do(func() { s.hydrate(ctx) })
}

func (s *Store) hydrate(ctx context.Context) {
	questions, reflections := map[string]string{}, map[string]string{}

	// An unreadable cache may still hold notes; it is not overwritten here.
	localReadFailed := false
	raw, err := s.local.Get(ctx, repository.LocalCacheKey)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		localReadFailed = true
		s.log.Warn("local cache read failed", "error", err)
	default:
		questions, reflections, err = DecodeBlob(raw)
		if err != nil {
			s.log.Warn("local cache corrupted, starting empty", "error", err)
		}
	}

	if s.remote.Enabled() {
		rows, err := s.remote.fetchAll(ctx)
		if err != nil {
			s.log.Warn("remote sync skipped", "error", err)
		}
		for _, row := range rows {
			if row.Question != nil && *row.Question != "" {
				questions[row.StrategyID] = *row.Question
			}
			if row.Reflection != nil && *row.Reflection != "" {
				reflections[row.StrategyID] = *row.Reflection
			}
		}
		s.log.Debug("remote rows merged", "rows", len(rows))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = questions
	s.reflections = reflections
	s.hydrated = true
	if !localReadFailed {
		s.persistLocked(ctx)
	}
}

// Hydrated reports whether Hydrate has completed.
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

func (s *Store) Question(id domain.StrategyID) (string, error) {
	return s.Get(id, domain.FieldQuestion)
}

func (s *Store) Reflection(id domain.StrategyID) (string, error) {
	return s.Get(id, domain.FieldReflection)
}

// Get returns the current value of one note field, or "" when unset.
func (s *Store) Get(id domain.StrategyID, field domain.NoteField) (string, error) {
	if err := checkField(field); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated {
		return "", ErrNotHydrated
	}
	return s.mapFor(field)[string(id)], nil
}

func (s *Store) SetQuestion(ctx context.Context, id domain.StrategyID, value string) error {
	return s.Set(ctx, id, domain.FieldQuestion, value)
}

func (s *Store) SetReflection(ctx context.Context, id domain.StrategyID, value string) error {
	return s.Set(ctx, id, domain.FieldReflection, value)
}

// Set replaces one note field in memory and writes the full blob to the
// local cache. The value is stored as given; length caps belong to the
// caller.
func (s *Store) Set(ctx context.Context, id domain.StrategyID, field domain.NoteField, value string) error {
	if err := checkNote(id, field); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated {
		return ErrNotHydrated
	}
	s.mapFor(field)[string(id)] = value
	s.persistLocked(ctx)
	return nil
}

// Clear empties the drafted question for a strategy.
func (s *Store) Clear(ctx context.Context, id domain.StrategyID) error {
	return s.Set(ctx, id, domain.FieldQuestion, "")
}

// Snapshot returns a copy of both mappings.
func (s *Store) Snapshot() (domain.Notes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated {
		return domain.Notes{}, ErrNotHydrated
	}
	return domain.Notes{
		Questions:   copyMap(s.questions),
		Reflections: copyMap(s.reflections),
	}, nil
}

// Save pushes one field to the remote backend when enabled, rewrites the
// local blob, and raises the field's acknowledgement. Remote failures are
// logged and reported in the outcome only.
func (s *Store) Save(ctx context.Context, id domain.StrategyID, field domain.NoteField) (SaveOutcome, error) {
	if err := checkNote(id, field); err != nil {
		return SaveOutcome{}, err
	}
	s.mu.Lock()
	if !s.hydrated {
		s.mu.Unlock()
		return SaveOutcome{}, ErrNotHydrated
	}
	value := s.mapFor(field)[string(id)]
	s.mu.Unlock()

	var out SaveOutcome
	if s.remote.Enabled() {
		out.Remote = true
		err := s.remote.upsert(ctx, repository.NoteUpsert{
			StrategyID: id,
			Field:      field,
			Value:      value,
			UpdatedAt:  s.now(),
		})
		if err != nil {
			s.log.Error("remote save failed", "strategy", id, "field", field, "error", err)
			out.RemoteErr = err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistLocked(ctx)
	key := ackKey{id: id, field: field}
	s.acks[key] = true
	s.scheduleAckClear(key)
	return out, nil
}

// Acknowledged reports whether a recent save of the field is still being
// acknowledged.
func (s *Store) Acknowledged(id domain.StrategyID, field domain.NoteField) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acks[ackKey{id: id, field: field}]
}

// Close cancels pending acknowledgement timers.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for seq, t := range s.timers {
		t.Stop()
		delete(s.timers, seq)
	}
}

func checkNote(id domain.StrategyID, field domain.NoteField) error {
	if !id.Valid() {
		return fmt.Errorf("unknown strategy %q", id)
	}
	return checkField(field)
}

func checkField(field domain.NoteField) error {
	if !domain.ValidNoteFields[string(field)] {
		return fmt.Errorf("unknown note field %q", field)
	}
	return nil
}

func (s *Store) mapFor(field domain.NoteField) map[string]string {
	if field == domain.FieldReflection {
		return s.reflections
	}
	return s.questions
}

// persistLocked writes the full blob to the local cache. Failures are
// logged; the in-memory state stays authoritative. Callers hold s.mu.
func (s *Store) persistLocked(ctx context.Context) {
	raw, err := EncodeBlob(s.questions, s.reflections)
	if err != nil {
		s.log.Error("encoding local cache failed", "error", err)
		return
	}
	if err := s.local.Put(ctx, repository.LocalCacheKey, raw); err != nil {
		s.log.Error("local cache write failed", "error", err)
	}
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
