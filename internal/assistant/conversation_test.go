package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/polaris/internal/domain"
)

func TestConversation_SubmitAppendsBothTurns(t *testing.T) {
	client := &mockLLMClient{response: "Three to five questions."}
	c := NewConversation(NewGateway(client), domain.StrategyWarmUpPoll)

	reply, ok := c.Submit(context.Background(), "  How many questions?  ")

	require.True(t, ok)
	assert.Equal(t, domain.ChatMessage{Role: domain.RoleAssistant, Content: "Three to five questions."}, reply)
	assert.Equal(t, []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "How many questions?"},
		{Role: domain.RoleAssistant, Content: "Three to five questions."},
	}, c.Messages())
	assert.False(t, c.Busy())
}

func TestConversation_BlankInputRejected(t *testing.T) {
	client := &mockLLMClient{response: "ok"}
	c := NewConversation(NewGateway(client), domain.StrategyWarmUpPoll)

	_, ok := c.Submit(context.Background(), " \t\n")

	assert.False(t, ok)
	assert.Empty(t, c.Messages())
	assert.Empty(t, client.calls())
}

func TestConversation_NetworkErrorReleasesGate(t *testing.T) {
	client := &mockLLMClient{err: errors.New("dial tcp: connection refused")}
	c := NewConversation(NewGateway(client), domain.StrategyCuriosityTrigger)

	reply, ok := c.Submit(context.Background(), "Any pitfalls?")

	require.True(t, ok)
	assert.Equal(t, FallbackConnectionError, reply.Content)
	msgs := c.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.RoleAssistant, msgs[1].Role)
	assert.Equal(t, FallbackConnectionError, msgs[1].Content)
	assert.False(t, c.Busy())

	client.err = nil
	client.response = "Explaining too soon."
	reply, ok = c.Submit(context.Background(), "Again?")
	require.True(t, ok)
	assert.Equal(t, "Explaining too soon.", reply.Content)
	assert.Len(t, c.Messages(), 4)
}

func TestConversation_SingleFlight(t *testing.T) {
	client := &mockLLMClient{
		response: "first answer",
		block:    make(chan struct{}),
		started:  make(chan struct{}, 1),
	}
	c := NewConversation(NewGateway(client), domain.StrategyThinkPairShare)

	done := make(chan domain.ChatMessage)
	go func() {
		reply, _ := c.Submit(context.Background(), "first")
		done <- reply
	}()

	select {
	case <-client.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first submission never reached the model")
	}
	assert.True(t, c.Busy())

	before := c.Messages()
	_, ok := c.Submit(context.Background(), "second")
	assert.False(t, ok)
	assert.Equal(t, before, c.Messages(), "rejected submission must not touch the transcript")
	assert.Len(t, client.calls(), 1, "rejected submission must not reach the model")

	close(client.block)
	reply := <-done
	assert.Equal(t, "first answer", reply.Content)
	assert.False(t, c.Busy())
	assert.Len(t, c.Messages(), 2)
}

func TestConversation_HistoryIsNotSent(t *testing.T) {
	client := &mockLLMClient{response: "ok"}
	c := NewConversation(NewGateway(client), domain.StrategyWarmUpPoll)

	c.Submit(context.Background(), "first question")
	c.Submit(context.Background(), "second question")

	reqs := client.calls()
	require.Len(t, reqs, 2)
	assert.Equal(t, "second question", reqs[1].UserPrompt)
	assert.NotContains(t, reqs[1].SystemPrompt, "first question")
}

func TestConversation_SetStrategyKeepsTranscript(t *testing.T) {
	client := &mockLLMClient{response: "ok"}
	c := NewConversation(NewGateway(client), domain.StrategyWarmUpPoll)
	c.Submit(context.Background(), "q1")

	c.SetStrategy(domain.StrategySelfReflection)
	c.Submit(context.Background(), "q2")

	assert.Equal(t, domain.StrategySelfReflection, c.Strategy())
	assert.Len(t, c.Messages(), 4)
	assert.Contains(t, client.calls()[1].SystemPrompt, "current strategy: Self-Reflection.")
}

func TestConversation_UnknownStrategyFallsBack(t *testing.T) {
	client := &mockLLMClient{response: "ok"}
	c := NewConversation(NewGateway(client), domain.StrategyID("Jigsaw"))

	reply, ok := c.Submit(context.Background(), "q")

	require.True(t, ok)
	assert.Equal(t, FallbackConnectionError, reply.Content)
	assert.Empty(t, client.calls())
	assert.False(t, c.Busy())
}

func TestQuickQuestions(t *testing.T) {
	assert.Equal(t, []string{"How long should this be?", "Any pitfalls?"}, QuickQuestions)
}
