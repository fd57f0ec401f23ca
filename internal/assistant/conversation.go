package assistant

import (
	"context"
	"strings"
	"sync"

	"github.com/alexanderramin/polaris/internal/catalog"
	"github.com/alexanderramin/polaris/internal/domain"
)

// QuickQuestions are offered while a conversation is empty.
var QuickQuestions = []string{
	"How long should this be?",
	"Any pitfalls?",
}

// Conversation is an append-only chat about the active strategy. At most
// one question is in flight; submissions made meanwhile are rejected.
type Conversation struct {
	answerer Answerer

	mu       sync.Mutex
	busy     bool
	strategy domain.StrategyID
	messages []domain.ChatMessage
}

// NewConversation starts an empty conversation about strategy.
func NewConversation(answerer Answerer, strategy domain.StrategyID) *Conversation {
	return &Conversation{answerer: answerer, strategy: strategy}
}

// Submit appends input as a user message, asks the assistant and appends
// the reply. It returns false without side effects when input is blank or
// another submission is outstanding.
func (c *Conversation) Submit(ctx context.Context, input string) (domain.ChatMessage, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return domain.ChatMessage{}, false
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return domain.ChatMessage{}, false
	}
	c.busy = true
	c.messages = append(c.messages, domain.ChatMessage{Role: domain.RoleUser, Content: input})
	strategyID := c.strategy
	c.mu.Unlock()

	reply := FallbackConnectionError
	defer func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.messages = append(c.messages, domain.ChatMessage{Role: domain.RoleAssistant, Content: reply})
		c.busy = false
	}()

	strategy, err := catalog.Lookup(strategyID)
	if err != nil {
		return domain.ChatMessage{Role: domain.RoleAssistant, Content: reply}, true
	}
	reply = c.answerer.Answer(ctx, input, strategy)
	return domain.ChatMessage{Role: domain.RoleAssistant, Content: reply}, true
}

// Busy reports whether a submission is outstanding.
func (c *Conversation) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Messages returns a copy of the transcript.
func (c *Conversation) Messages() []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.ChatMessage(nil), c.messages...)
}

// Strategy returns the active strategy.
func (c *Conversation) Strategy() domain.StrategyID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strategy
}

// SetStrategy changes the strategy later questions are grounded in. The
// transcript is kept.
func (c *Conversation) SetStrategy(id domain.StrategyID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strategy = id
}
