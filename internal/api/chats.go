package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/alexanderramin/polaris/internal/assistant"
	"github.com/alexanderramin/polaris/internal/domain"
)

// Chat registry limits. Idle conversations expire; when the registry is
// full the least recently used idle conversation is dropped.
const (
	maxChats    = 256
	chatIdleTTL = time.Hour
)

type chatEntry struct {
	conv     *assistant.Conversation
	lastUsed time.Time
}

// chatRegistry holds in-memory conversations by id. Nothing is persisted.
type chatRegistry struct {
	mu    sync.Mutex
	chats map[string]*chatEntry
	limit int
	ttl   time.Duration
	now   func() time.Time
}

func newChatRegistry() *chatRegistry {
	return &chatRegistry{
		chats: make(map[string]*chatEntry),
		limit: maxChats,
		ttl:   chatIdleTTL,
		now:   time.Now,
	}
}

func (c *chatRegistry) add(conv *assistant.Conversation) string {
	id := uuid.NewString()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked()
	c.chats[id] = &chatEntry{conv: conv, lastUsed: c.now()}
	return id
}

func (c *chatRegistry) get(id string) (*assistant.Conversation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.chats[id]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.lastUsed) > c.ttl && !e.conv.Busy() {
		delete(c.chats, id)
		return nil, false
	}
	e.lastUsed = c.now()
	return e.conv, true
}

func (c *chatRegistry) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.chats)
}

// pruneLocked drops expired conversations, then idle ones in least recently
// used order until there is room for one more. Busy conversations stay.
func (c *chatRegistry) pruneLocked() {
	now := c.now()
	for id, e := range c.chats {
		if now.Sub(e.lastUsed) > c.ttl && !e.conv.Busy() {
			delete(c.chats, id)
		}
	}
	for len(c.chats) >= c.limit {
		idle := lo.PickBy(c.chats, func(_ string, e *chatEntry) bool { return !e.conv.Busy() })
		if len(idle) == 0 {
			return
		}
		oldest := lo.MinBy(lo.Keys(idle), func(a, b string) bool {
			return idle[a].lastUsed.Before(idle[b].lastUsed)
		})
		delete(c.chats, oldest)
	}
}

type strategyBody struct {
	Strategy string `json:"strategy"`
}

type chatResponse struct {
	ID             string               `json:"id"`
	Strategy       domain.StrategyID    `json:"strategy"`
	Busy           bool                 `json:"busy"`
	Messages       []domain.ChatMessage `json:"messages"`
	QuickQuestions []string             `json:"quick_questions,omitempty"`
}

func newChatResponse(id string, conv *assistant.Conversation) chatResponse {
	resp := chatResponse{
		ID:       id,
		Strategy: conv.Strategy(),
		Busy:     conv.Busy(),
		Messages: conv.Messages(),
	}
	if len(resp.Messages) == 0 {
		resp.QuickQuestions = assistant.QuickQuestions
	}
	if resp.Messages == nil {
		resp.Messages = []domain.ChatMessage{}
	}
	return resp
}

// CreateChat starts a conversation about the requested strategy.
func (h *Handler) CreateChat(w http.ResponseWriter, r *http.Request) {
	var body strategyBody
	if err := decode(r, &body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	id, ok := h.resolveStrategy(w, body.Strategy)
	if !ok {
		return
	}
	conv := assistant.NewConversation(h.answerer, id)
	cid := h.chats.add(conv)
	JSON(w, http.StatusCreated, newChatResponse(cid, conv))
}

// GetChat returns the transcript of a conversation.
func (h *Handler) GetChat(w http.ResponseWriter, r *http.Request) {
	cid, conv, ok := h.conversation(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, newChatResponse(cid, conv))
}

// PostMessage submits a question and waits for the reply. A second
// question while one is outstanding gets 409.
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	_, conv, ok := h.conversation(w, r)
	if !ok {
		return
	}
	var body textBody
	if err := decode(r, &body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if isBlank(body.Text) {
		Error(w, http.StatusBadRequest, "text is required")
		return
	}
	// The answer is recorded even if the client goes away first.
	reply, accepted := conv.Submit(context.WithoutCancel(r.Context()), body.Text)
	if !accepted {
		Error(w, http.StatusConflict, "assistant is still answering")
		return
	}
	JSON(w, http.StatusOK, reply)
}

// PutChatStrategy switches the strategy later questions are grounded in.
func (h *Handler) PutChatStrategy(w http.ResponseWriter, r *http.Request) {
	cid, conv, ok := h.conversation(w, r)
	if !ok {
		return
	}
	var body strategyBody
	if err := decode(r, &body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	id, ok := h.resolveStrategy(w, body.Strategy)
	if !ok {
		return
	}
	conv.SetStrategy(id)
	JSON(w, http.StatusOK, newChatResponse(cid, conv))
}

func (h *Handler) conversation(w http.ResponseWriter, r *http.Request) (string, *assistant.Conversation, bool) {
	cid := chi.URLParam(r, "cid")
	if _, err := uuid.Parse(cid); err != nil {
		Error(w, http.StatusBadRequest, "invalid chat id")
		return "", nil, false
	}
	conv, ok := h.chats.get(cid)
	if !ok {
		Error(w, http.StatusNotFound, "chat not found")
		return "", nil, false
	}
	return cid, conv, true
}
