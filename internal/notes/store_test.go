package notes_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/polaris/internal/domain"
	"github.com/alexanderramin/polaris/internal/notes"
	"github.com/alexanderramin/polaris/internal/repository"
	"github.com/alexanderramin/polaris/internal/testutil"
)

func hydrated(t *testing.T, cache *testutil.MemoryCache, remote notes.Remote, opts ...notes.Option) *notes.Store {
	t.Helper()
	s := notes.New(cache, remote, opts...)
	s.Hydrate(context.Background())
	t.Cleanup(s.Close)
	return s
}

func cachedNotes(t *testing.T, cache *testutil.MemoryCache) (map[string]string, map[string]string) {
	t.Helper()
	raw, ok := cache.Raw(repository.LocalCacheKey)
	require.True(t, ok, "local cache should hold the note blob")
	q, r, err := notes.DecodeBlob(raw)
	require.NoError(t, err)
	return q, r
}

func TestHydrate_EmptyLocalNoRemote(t *testing.T) {
	s := hydrated(t, testutil.NewMemoryCache(), notes.Disabled())

	require.True(t, s.Hydrated())
	assert.False(t, s.RemoteEnabled())
	for _, id := range domain.StrategyIDs {
		q, err := s.Question(id)
		require.NoError(t, err)
		assert.Empty(t, q)
		r, err := s.Reflection(id)
		require.NoError(t, err)
		assert.Empty(t, r)
	}
	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Zero(t, snap.Count())
}

func TestHydrate_LocalOnly(t *testing.T) {
	cache := testutil.NewMemoryCache()
	cache.Seed(repository.LocalCacheKey, `{"questions":{"Warm-Up Poll":"Why?"}}`)

	s := hydrated(t, cache, notes.Disabled())

	q, err := s.Question(domain.StrategyWarmUpPoll)
	require.NoError(t, err)
	assert.Equal(t, "Why?", q)
	for _, id := range domain.StrategyIDs[1:] {
		q, err := s.Question(id)
		require.NoError(t, err)
		assert.Empty(t, q, id)
	}
}

func TestHydrate_RemoteOnly(t *testing.T) {
	remote := testutil.NewFakeRemote(repository.NoteRow{
		StrategyID: "Self-Reflection",
		Reflection: testutil.Str("Good session"),
	})

	s := hydrated(t, testutil.NewMemoryCache(), notes.Enabled(remote))

	r, err := s.Reflection(domain.StrategySelfReflection)
	require.NoError(t, err)
	assert.Equal(t, "Good session", r)
	q, err := s.Question(domain.StrategySelfReflection)
	require.NoError(t, err)
	assert.Empty(t, q)
}

func TestHydrate_RemoteWinsPerNonEmptyField(t *testing.T) {
	cache := testutil.NewMemoryCache()
	cache.Seed(repository.LocalCacheKey, `{
		"questions":{"Warm-Up Poll":"local q","Think-Pair-Share":"local tps"},
		"reflections":{"Warm-Up Poll":"local r"}
	}`)
	remote := testutil.NewFakeRemote(
		repository.NoteRow{StrategyID: "Warm-Up Poll", Question: testutil.Str("remote q"), Reflection: testutil.Str("")},
		repository.NoteRow{StrategyID: "Think-Pair-Share", Question: nil, Reflection: testutil.Str("remote r")},
	)

	s := hydrated(t, cache, notes.Enabled(remote))

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "remote q", snap.Questions["Warm-Up Poll"])
	assert.Equal(t, "local r", snap.Reflections["Warm-Up Poll"], "empty remote field must not overwrite local")
	assert.Equal(t, "local tps", snap.Questions["Think-Pair-Share"], "null remote field must not overwrite local")
	assert.Equal(t, "remote r", snap.Reflections["Think-Pair-Share"])
}

func TestHydrate_LocalFillsWhereRemoteSilent(t *testing.T) {
	cache := testutil.NewMemoryCache()
	cache.Seed(repository.LocalCacheKey, `{"questions":{"Curiosity Trigger":"local"}}`)
	remote := testutil.NewFakeRemote(repository.NoteRow{StrategyID: "Warm-Up Poll", Question: testutil.Str("remote")})

	s := hydrated(t, cache, notes.Enabled(remote))

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Curiosity Trigger": "local", "Warm-Up Poll": "remote"}, snap.Questions)
}

func TestHydrate_CorruptCacheStartsEmpty(t *testing.T) {
	cache := testutil.NewMemoryCache()
	cache.Seed(repository.LocalCacheKey, `{not json`)

	s := hydrated(t, cache, notes.Disabled())

	require.True(t, s.Hydrated())
	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Questions)
	assert.Empty(t, snap.Reflections)

	q, r := cachedNotes(t, cache)
	assert.Empty(t, q)
	assert.Empty(t, r)
}

func TestHydrate_RemoteErrorFallsBackToLocal(t *testing.T) {
	cache := testutil.NewMemoryCache()
	cache.Seed(repository.LocalCacheKey, `{"reflections":{"Self-Reflection":"kept"}}`)
	remote := testutil.NewFakeRemote()
	remote.FetchErr = errors.New("network down")

	s := hydrated(t, cache, notes.Enabled(remote))

	r, err := s.Reflection(domain.StrategySelfReflection)
	require.NoError(t, err)
	assert.Equal(t, "kept", r)
	assert.Equal(t, 1, remote.Fetches)
}

func TestHydrate_LocalReadErrorIsNotFatal(t *testing.T) {
	cache := testutil.NewMemoryCache()
	cache.GetErr = errors.New("disk gone")
	remote := testutil.NewFakeRemote(repository.NoteRow{StrategyID: "Warm-Up Poll", Question: testutil.Str("remote")})

	s := hydrated(t, cache, notes.Enabled(remote))

	q, err := s.Question(domain.StrategyWarmUpPoll)
	require.NoError(t, err)
	assert.Equal(t, "remote", q)
}

func TestHydrate_LocalReadErrorKeepsCachedBlob(t *testing.T) {
	const seeded = `{"questions":{"Warm-Up Poll":"Why?"},"reflections":{"Self-Reflection":"kept"}}`
	cache := testutil.NewMemoryCache()
	cache.Seed(repository.LocalCacheKey, seeded)
	cache.GetErr = errors.New("database is locked")

	s := hydrated(t, cache, notes.Disabled())

	q, err := s.Question(domain.StrategyWarmUpPoll)
	require.NoError(t, err)
	assert.Empty(t, q)

	raw, ok := cache.Raw(repository.LocalCacheKey)
	require.True(t, ok)
	assert.Equal(t, seeded, raw)
	assert.Zero(t, cache.Puts)
}

func TestHydrate_RunsOnce(t *testing.T) {
	remote := testutil.NewFakeRemote()
	s := hydrated(t, testutil.NewMemoryCache(), notes.Enabled(remote))
	require.NoError(t, s.SetQuestion(context.Background(), domain.StrategyWarmUpPoll, "draft"))

	s.Hydrate(context.Background())

	assert.Equal(t, 1, remote.Fetches)
	q, err := s.Question(domain.StrategyWarmUpPoll)
	require.NoError(t, err)
	assert.Equal(t, "draft", q)
}

func TestHydrate_WritesMergedSnapshotToLocal(t *testing.T) {
	cache := testutil.NewMemoryCache()
	remote := testutil.NewFakeRemote(repository.NoteRow{StrategyID: "Warm-Up Poll", Question: testutil.Str("remote")})

	hydrated(t, cache, notes.Enabled(remote))

	q, _ := cachedNotes(t, cache)
	assert.Equal(t, map[string]string{"Warm-Up Poll": "remote"}, q)
}

func TestNotHydrated_GatesEveryOperation(t *testing.T) {
	ctx := context.Background()
	remote := testutil.NewFakeRemote()
	s := notes.New(testutil.NewMemoryCache(), notes.Enabled(remote))

	assert.False(t, s.Hydrated())
	_, err := s.Question(domain.StrategyWarmUpPoll)
	assert.ErrorIs(t, err, notes.ErrNotHydrated)
	_, err = s.Reflection(domain.StrategyWarmUpPoll)
	assert.ErrorIs(t, err, notes.ErrNotHydrated)
	assert.ErrorIs(t, s.SetQuestion(ctx, domain.StrategyWarmUpPoll, "x"), notes.ErrNotHydrated)
	assert.ErrorIs(t, s.Clear(ctx, domain.StrategyWarmUpPoll), notes.ErrNotHydrated)
	_, err = s.Snapshot()
	assert.ErrorIs(t, err, notes.ErrNotHydrated)
	_, err = s.Save(ctx, domain.StrategyWarmUpPoll, domain.FieldQuestion)
	assert.ErrorIs(t, err, notes.ErrNotHydrated)
	assert.Zero(t, remote.UpsertCount())
}

func TestSet_LocalRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := testutil.NewMemoryCache()
	s := hydrated(t, cache, notes.Disabled())

	steps := []struct {
		id    domain.StrategyID
		field domain.NoteField
		value string
	}{
		{domain.StrategyWarmUpPoll, domain.FieldQuestion, "W"},
		{domain.StrategyWarmUpPoll, domain.FieldQuestion, "Wh"},
		{domain.StrategySelfReflection, domain.FieldReflection, "went well"},
		{domain.StrategyThinkPairShare, domain.FieldQuestion, "why?"},
		{domain.StrategyWarmUpPoll, domain.FieldQuestion, ""},
	}
	for _, step := range steps {
		require.NoError(t, s.Set(ctx, step.id, step.field, step.value))

		snap, err := s.Snapshot()
		require.NoError(t, err)
		q, r := cachedNotes(t, cache)
		assert.Equal(t, snap.Questions, q)
		assert.Equal(t, snap.Reflections, r)
	}
}

func TestSet_StoresUncappedValue(t *testing.T) {
	s := hydrated(t, testutil.NewMemoryCache(), notes.Disabled())
	long := make([]byte, domain.MaxQuestionLen*2)
	for i := range long {
		long[i] = 'q'
	}

	require.NoError(t, s.SetQuestion(context.Background(), domain.StrategyWarmUpPoll, string(long)))

	q, err := s.Question(domain.StrategyWarmUpPoll)
	require.NoError(t, err)
	assert.Len(t, q, domain.MaxQuestionLen*2)
}

func TestSet_LocalWriteFailureIsNotFatal(t *testing.T) {
	cache := testutil.NewMemoryCache()
	s := hydrated(t, cache, notes.Disabled())
	cache.PutErr = errors.New("quota exceeded")

	require.NoError(t, s.SetReflection(context.Background(), domain.StrategyCuriosityTrigger, "noted"))

	r, err := s.Reflection(domain.StrategyCuriosityTrigger)
	require.NoError(t, err)
	assert.Equal(t, "noted", r)
}

func TestSet_UnknownField(t *testing.T) {
	s := hydrated(t, testutil.NewMemoryCache(), notes.Disabled())

	assert.Error(t, s.Set(context.Background(), domain.StrategyWarmUpPoll, domain.NoteField("answer"), "x"))
	_, err := s.Get(domain.StrategyWarmUpPoll, domain.NoteField("answer"))
	assert.Error(t, err)
}

func TestSetAndSave_UnknownStrategy(t *testing.T) {
	s := hydrated(t, testutil.NewMemoryCache(), notes.Disabled())

	assert.Error(t, s.Set(context.Background(), domain.StrategyID("Jigsaw"), domain.FieldQuestion, "x"))
	_, err := s.Save(context.Background(), domain.StrategyID("Jigsaw"), domain.FieldQuestion)
	assert.Error(t, err)
}

func TestClear_EmptiesQuestionOnly(t *testing.T) {
	ctx := context.Background()
	s := hydrated(t, testutil.NewMemoryCache(), notes.Disabled())
	require.NoError(t, s.SetQuestion(ctx, domain.StrategyWarmUpPoll, "q"))
	require.NoError(t, s.SetReflection(ctx, domain.StrategyWarmUpPoll, "r"))

	require.NoError(t, s.Clear(ctx, domain.StrategyWarmUpPoll))

	q, _ := s.Question(domain.StrategyWarmUpPoll)
	r, _ := s.Reflection(domain.StrategyWarmUpPoll)
	assert.Empty(t, q)
	assert.Equal(t, "r", r)
}

func TestSnapshot_IsACopy(t *testing.T) {
	ctx := context.Background()
	s := hydrated(t, testutil.NewMemoryCache(), notes.Disabled())
	require.NoError(t, s.SetQuestion(ctx, domain.StrategyWarmUpPoll, "q"))

	snap, err := s.Snapshot()
	require.NoError(t, err)
	snap.Questions["Warm-Up Poll"] = "changed"

	q, _ := s.Question(domain.StrategyWarmUpPoll)
	assert.Equal(t, "q", q)
}

func TestSave_UpsertsOnlyTheSavedField(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
	remote := testutil.NewFakeRemote()
	s := hydrated(t, testutil.NewMemoryCache(), notes.Enabled(remote),
		notes.WithScheduler(&testutil.FakeScheduler{}),
		notes.WithClock(func() time.Time { return at }),
	)
	require.NoError(t, s.SetQuestion(ctx, domain.StrategyThinkPairShare, "Which is greater?"))
	require.NoError(t, s.SetReflection(ctx, domain.StrategyThinkPairShare, "Pairs were uneven"))

	out, err := s.Save(ctx, domain.StrategyThinkPairShare, domain.FieldQuestion)
	require.NoError(t, err)
	assert.True(t, out.Remote)
	assert.NoError(t, out.RemoteErr)

	require.Len(t, remote.Upserts, 1)
	assert.Equal(t, repository.NoteUpsert{
		StrategyID: domain.StrategyThinkPairShare,
		Field:      domain.FieldQuestion,
		Value:      "Which is greater?",
		UpdatedAt:  at,
	}, remote.Upserts[0])
}

func TestSave_UnsetFieldSendsEmptyString(t *testing.T) {
	remote := testutil.NewFakeRemote()
	s := hydrated(t, testutil.NewMemoryCache(), notes.Enabled(remote), notes.WithScheduler(&testutil.FakeScheduler{}))

	_, err := s.Save(context.Background(), domain.StrategyCuriosityTrigger, domain.FieldReflection)
	require.NoError(t, err)

	require.Len(t, remote.Upserts, 1)
	assert.Equal(t, "", remote.Upserts[0].Value)
}

func TestSave_Idempotent(t *testing.T) {
	ctx := context.Background()
	cache := testutil.NewMemoryCache()
	remote := testutil.NewFakeRemote()
	s := hydrated(t, cache, notes.Enabled(remote), notes.WithScheduler(&testutil.FakeScheduler{}))
	require.NoError(t, s.SetQuestion(ctx, domain.StrategyWarmUpPoll, "same"))

	_, err := s.Save(ctx, domain.StrategyWarmUpPoll, domain.FieldQuestion)
	require.NoError(t, err)
	once, err := s.Snapshot()
	require.NoError(t, err)
	rowOnce, _ := remote.Row("Warm-Up Poll")

	_, err = s.Save(ctx, domain.StrategyWarmUpPoll, domain.FieldQuestion)
	require.NoError(t, err)
	twice, err := s.Snapshot()
	require.NoError(t, err)
	rowTwice, _ := remote.Row("Warm-Up Poll")

	assert.Equal(t, once, twice)
	assert.Equal(t, rowOnce.Question, rowTwice.Question)
	assert.Equal(t, rowOnce.Reflection, rowTwice.Reflection)
	assert.Equal(t, 2, remote.UpsertCount(), "saves are not deduplicated")
}

func TestSave_RemoteErrorIsSwallowed(t *testing.T) {
	ctx := context.Background()
	cache := testutil.NewMemoryCache()
	remote := testutil.NewFakeRemote()
	remote.UpsertErr = errors.New("permission denied")
	s := hydrated(t, cache, notes.Enabled(remote), notes.WithScheduler(&testutil.FakeScheduler{}))
	require.NoError(t, s.SetReflection(ctx, domain.StrategySelfReflection, "calm class"))

	out, err := s.Save(ctx, domain.StrategySelfReflection, domain.FieldReflection)

	require.NoError(t, err)
	assert.True(t, out.Remote)
	assert.EqualError(t, out.RemoteErr, "permission denied")
	assert.True(t, s.Acknowledged(domain.StrategySelfReflection, domain.FieldReflection))
	_, r := cachedNotes(t, cache)
	assert.Equal(t, "calm class", r["Self-Reflection"])
}

func TestSave_WithoutRemote(t *testing.T) {
	sched := &testutil.FakeScheduler{}
	s := hydrated(t, testutil.NewMemoryCache(), notes.Disabled(), notes.WithScheduler(sched))

	out, err := s.Save(context.Background(), domain.StrategyWarmUpPoll, domain.FieldQuestion)

	require.NoError(t, err)
	assert.False(t, out.Remote)
	assert.Nil(t, out.RemoteErr)
	assert.True(t, s.Acknowledged(domain.StrategyWarmUpPoll, domain.FieldQuestion))
}
