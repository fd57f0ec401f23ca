package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/polaris/internal/assistant"
	"github.com/alexanderramin/polaris/internal/catalog"
	"github.com/alexanderramin/polaris/internal/domain"
	"github.com/alexanderramin/polaris/internal/notes"
	"github.com/alexanderramin/polaris/internal/testutil"
)

type stubAnswerer struct {
	mu      sync.Mutex
	reply   string
	block   chan struct{}
	started chan struct{}
	asked   []domain.StrategyID

	// cancelled records whether any call saw its context cancelled.
	cancelled bool
}

func (s *stubAnswerer) Answer(ctx context.Context, _ string, strategy domain.Strategy) string {
	s.mu.Lock()
	s.asked = append(s.asked, strategy.ID)
	s.mu.Unlock()
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}
	if ctx.Err() != nil {
		s.mu.Lock()
		s.cancelled = true
		s.mu.Unlock()
		return "cancelled"
	}
	return s.reply
}

type fixture struct {
	server *httptest.Server
	store  *notes.Store
	remote *testutil.FakeRemote
	ans    *stubAnswerer
}

func newFixture(t *testing.T, hydrate bool) *fixture {
	t.Helper()
	remote := testutil.NewFakeRemote()
	store := notes.New(testutil.NewMemoryCache(), notes.Enabled(remote),
		notes.WithScheduler(&testutil.FakeScheduler{}))
	t.Cleanup(store.Close)
	if hydrate {
		store.Hydrate(context.Background())
	}
	ans := &stubAnswerer{reply: "Use **five** minutes."}
	srv := httptest.NewServer(NewRouter(NewHandler(store, ans, nil), []string{"*"}))
	t.Cleanup(srv.Close)
	return &fixture{server: srv, store: store, remote: remote, ans: ans}
}

func (f *fixture) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var rdr *bytes.Reader
	if body != "" {
		rdr = bytes.NewReader([]byte(body))
	} else {
		rdr = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, f.server.URL+path, rdr)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, map[string]string{"foo": "bar"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var got map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "bar", got["foo"])
}

func TestHealth(t *testing.T) {
	f := newFixture(t, true)
	resp, _ := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStrategies(t *testing.T) {
	f := newFixture(t, true)

	resp, body := f.do(t, http.MethodGet, "/api/strategies", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []domain.Strategy
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, len(catalog.All()))

	resp, body = f.do(t, http.MethodGet, "/api/strategies/curio", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var one domain.Strategy
	require.NoError(t, json.Unmarshal(body, &one))
	assert.Equal(t, domain.StrategyCuriosityTrigger, one.ID)

	resp, _ = f.do(t, http.MethodGet, "/api/strategies/xyz", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = f.do(t, http.MethodGet, "/api/strategies/e", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReference(t *testing.T) {
	f := newFixture(t, true)
	resp, body := f.do(t, http.MethodGet, "/api/reference", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]string
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, catalog.ReferenceText, got["reference"])
}

func TestNotes_NotHydratedReturns503(t *testing.T) {
	f := newFixture(t, false)

	resp, _ := f.do(t, http.MethodGet, "/api/notes", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, _ = f.do(t, http.MethodPut, "/api/notes/Self-Reflection/question", `{"value":"x"}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestNotes_PutThenGet(t *testing.T) {
	f := newFixture(t, true)

	resp, _ := f.do(t, http.MethodPut, "/api/notes/Self-Reflection/reflection", `{"value":"went well"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := f.do(t, http.MethodGet, "/api/notes", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got notesResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "went well", got.Reflections["Self-Reflection"])
	assert.True(t, got.Remote)
	assert.Zero(t, f.remote.UpsertCount(), "PUT must not touch the remote")
}

func TestNotes_QuestionIsClamped(t *testing.T) {
	f := newFixture(t, true)
	long := strings.Repeat("q", domain.MaxQuestionLen+40)

	resp, _ := f.do(t, http.MethodPut, "/api/notes/Curiosity/question", `{"value":"`+long+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got, err := f.store.Question(domain.StrategyCuriosityTrigger)
	require.NoError(t, err)
	assert.Len(t, got, domain.MaxQuestionLen)
}

func TestNotes_ReflectionIsNotClamped(t *testing.T) {
	f := newFixture(t, true)
	long := strings.Repeat("r", domain.MaxQuestionLen+40)

	resp, _ := f.do(t, http.MethodPut, "/api/notes/Curiosity/reflection", `{"value":"`+long+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got, err := f.store.Reflection(domain.StrategyCuriosityTrigger)
	require.NoError(t, err)
	assert.Len(t, got, domain.MaxQuestionLen+40)
}

func TestNotes_BadFieldAndStrategy(t *testing.T) {
	f := newFixture(t, true)

	resp, _ := f.do(t, http.MethodPut, "/api/notes/Curiosity/summary", `{"value":"x"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = f.do(t, http.MethodPut, "/api/notes/xyz/question", `{"value":"x"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = f.do(t, http.MethodPut, "/api/notes/Curiosity/question", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotes_SaveAcknowledgesAndUpserts(t *testing.T) {
	f := newFixture(t, true)
	f.do(t, http.MethodPut, "/api/notes/Curiosity/question", `{"value":"why?"}`)

	resp, body := f.do(t, http.MethodPost, "/api/notes/Curiosity/question/save", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var saved saveResponse
	require.NoError(t, json.Unmarshal(body, &saved))
	assert.True(t, saved.Acknowledged)
	assert.True(t, saved.Remote)
	assert.Empty(t, saved.RemoteError)
	assert.Equal(t, 1, f.remote.UpsertCount())

	resp, body = f.do(t, http.MethodGet, "/api/notes/Curiosity/ack", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ack ackResponse
	require.NoError(t, json.Unmarshal(body, &ack))
	assert.True(t, ack.Question)
	assert.False(t, ack.Reflection)
}

func TestChats_Lifecycle(t *testing.T) {
	f := newFixture(t, true)

	resp, body := f.do(t, http.MethodPost, "/api/chats", `{"strategy":"Think-Pair-Share"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var chat chatResponse
	require.NoError(t, json.Unmarshal(body, &chat))
	require.NotEmpty(t, chat.ID)
	assert.Equal(t, domain.StrategyThinkPairShare, chat.Strategy)
	assert.Empty(t, chat.Messages)
	assert.Equal(t, []string{"How long should this be?", "Any pitfalls?"}, chat.QuickQuestions)

	resp, body = f.do(t, http.MethodPost, "/api/chats/"+chat.ID+"/messages", `{"text":"How long?"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reply domain.ChatMessage
	require.NoError(t, json.Unmarshal(body, &reply))
	assert.Equal(t, domain.RoleAssistant, reply.Role)
	assert.Equal(t, "Use **five** minutes.", reply.Content)

	resp, _ = f.do(t, http.MethodPut, "/api/chats/"+chat.ID+"/strategy", `{"strategy":"Curiosity"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = f.do(t, http.MethodGet, "/api/chats/"+chat.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	chat = chatResponse{}
	require.NoError(t, json.Unmarshal(body, &chat))
	assert.Equal(t, domain.StrategyCuriosityTrigger, chat.Strategy)
	assert.Len(t, chat.Messages, 2)
	assert.Empty(t, chat.QuickQuestions)
}

func TestChats_UnknownAndInvalidIDs(t *testing.T) {
	f := newFixture(t, true)

	resp, _ := f.do(t, http.MethodGet, "/api/chats/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = f.do(t, http.MethodGet, "/api/chats/2f1c1c9e-3f57-4c38-9d55-5b8fd0b1d6a1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = f.do(t, http.MethodPost, "/api/chats", `{"strategy":"nope"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestChats_BlankMessageRejected(t *testing.T) {
	f := newFixture(t, true)
	_, body := f.do(t, http.MethodPost, "/api/chats", `{"strategy":"Curiosity"}`)
	var chat chatResponse
	require.NoError(t, json.Unmarshal(body, &chat))

	resp, _ := f.do(t, http.MethodPost, "/api/chats/"+chat.ID+"/messages", `{"text":"   "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChats_SecondMessageWhileBusyConflicts(t *testing.T) {
	f := newFixture(t, true)
	f.ans.block = make(chan struct{})
	f.ans.started = make(chan struct{}, 1)

	_, body := f.do(t, http.MethodPost, "/api/chats", `{"strategy":"Curiosity"}`)
	var chat chatResponse
	require.NoError(t, json.Unmarshal(body, &chat))

	done := make(chan int, 1)
	go func() {
		resp, err := http.Post(f.server.URL+"/api/chats/"+chat.ID+"/messages", "application/json",
			strings.NewReader(`{"text":"first"}`))
		if err != nil {
			done <- 0
			return
		}
		resp.Body.Close()
		done <- resp.StatusCode
	}()

	select {
	case <-f.ans.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first question never reached the assistant")
	}

	resp, _ := f.do(t, http.MethodPost, "/api/chats/"+chat.ID+"/messages", `{"text":"second"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	close(f.ans.block)
	assert.Equal(t, http.StatusOK, <-done)
}

func TestChats_ClientDisconnectStillRecordsAnswer(t *testing.T) {
	f := newFixture(t, true)
	f.ans.block = make(chan struct{})
	f.ans.started = make(chan struct{}, 1)

	_, body := f.do(t, http.MethodPost, "/api/chats", `{"strategy":"Curiosity"}`)
	var chat chatResponse
	require.NoError(t, json.Unmarshal(body, &chat))

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.server.URL+"/api/chats/"+chat.ID+"/messages",
		strings.NewReader(`{"text":"first"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	go func() {
		if resp, err := http.DefaultClient.Do(req); err == nil {
			resp.Body.Close()
		}
	}()

	select {
	case <-f.ans.started:
	case <-time.After(2 * time.Second):
		t.Fatal("question never reached the assistant")
	}
	cancel()
	time.Sleep(50 * time.Millisecond)
	close(f.ans.block)

	assert.Eventually(t, func() bool {
		_, body := f.do(t, http.MethodGet, "/api/chats/"+chat.ID, "")
		var got chatResponse
		return json.Unmarshal(body, &got) == nil && len(got.Messages) == 2 && !got.Busy
	}, 2*time.Second, 20*time.Millisecond)

	_, body = f.do(t, http.MethodGet, "/api/chats/"+chat.ID, "")
	require.NoError(t, json.Unmarshal(body, &chat))
	assert.Equal(t, "Use **five** minutes.", chat.Messages[1].Content)
	f.ans.mu.Lock()
	defer f.ans.mu.Unlock()
	assert.False(t, f.ans.cancelled)
}

func TestChatRegistry_ExpiresIdleChats(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	reg := newChatRegistry()
	reg.now = func() time.Time { return now }

	id := reg.add(assistant.NewConversation(&stubAnswerer{}, domain.StrategyWarmUpPoll))
	now = now.Add(30 * time.Minute)
	_, ok := reg.get(id)
	require.True(t, ok, "used within the idle window")

	now = now.Add(chatIdleTTL + time.Minute)
	_, ok = reg.get(id)
	assert.False(t, ok)
	assert.Zero(t, reg.size())
}

func TestChatRegistry_EvictsLeastRecentlyUsedWhenFull(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	reg := newChatRegistry()
	reg.limit = 2
	reg.now = func() time.Time { return now }
	newConv := func() *assistant.Conversation {
		return assistant.NewConversation(&stubAnswerer{}, domain.StrategyWarmUpPoll)
	}

	first := reg.add(newConv())
	now = now.Add(time.Minute)
	second := reg.add(newConv())
	now = now.Add(time.Minute)
	_, ok := reg.get(first)
	require.True(t, ok)

	now = now.Add(time.Minute)
	third := reg.add(newConv())

	assert.Equal(t, 2, reg.size())
	_, ok = reg.get(second)
	assert.False(t, ok, "least recently used chat is evicted")
	_, ok = reg.get(first)
	assert.True(t, ok)
	_, ok = reg.get(third)
	assert.True(t, ok)
}

func TestChatRegistry_KeepsBusyChats(t *testing.T) {
	reg := newChatRegistry()
	reg.limit = 1

	ans := &stubAnswerer{block: make(chan struct{}), started: make(chan struct{}, 1)}
	busy := assistant.NewConversation(ans, domain.StrategyWarmUpPoll)
	busyID := reg.add(busy)
	go busy.Submit(context.Background(), "hold")
	<-ans.started
	require.True(t, busy.Busy())

	other := reg.add(assistant.NewConversation(&stubAnswerer{}, domain.StrategyWarmUpPoll))
	assert.Equal(t, 2, reg.size())
	_, ok := reg.get(busyID)
	assert.True(t, ok)
	_, ok = reg.get(other)
	assert.True(t, ok)
	close(ans.block)
}

func TestRender(t *testing.T) {
	f := newFixture(t, true)
	resp, body := f.do(t, http.MethodPost, "/api/render", `{"text":"* first\n\n**bold** tail"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Lines []struct {
			Kind  string `json:"kind"`
			Spans []struct {
				Text     string `json:"text"`
				Emphasis bool   `json:"emphasis"`
			} `json:"spans"`
		} `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got.Lines, 3)
	assert.Equal(t, "bullet", got.Lines[0].Kind)
	assert.Equal(t, "blank", got.Lines[1].Kind)
	assert.Equal(t, "text", got.Lines[2].Kind)
	require.NotEmpty(t, got.Lines[2].Spans)
	assert.Equal(t, "bold", got.Lines[2].Spans[0].Text)
	assert.True(t, got.Lines[2].Spans[0].Emphasis)
}

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	h := CORS([]string{"http://app.test"})(ok)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "http://app.test")
	h.ServeHTTP(w, r)
	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, http.StatusTeapot, w.Code)

	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "http://evil.test")
	h.ServeHTTP(w, r)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	h = CORS([]string{"*"})(ok)
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodOptions, "/", nil)
	r.Header.Set("Origin", "http://any.test")
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://any.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}
