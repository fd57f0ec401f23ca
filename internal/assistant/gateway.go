// Package assistant answers instructor questions about a strategy from the
// bundled guide content only.
package assistant

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/alexanderramin/polaris/internal/catalog"
	"github.com/alexanderramin/polaris/internal/domain"
	"github.com/alexanderramin/polaris/internal/llm"
)

const (
	FallbackNotFound        = "I couldn't find information regarding that in the guide."
	FallbackConnectionError = "Error connecting to assistant."
)

// Temperature keeps answers literal.
const Temperature = 0.1

// Answerer produces a display string for one question about a strategy.
type Answerer interface {
	Answer(ctx context.Context, message string, strategy domain.Strategy) string
}

// Gateway makes one stateless model call per question.
type Gateway struct {
	client    llm.LLMClient
	reference string
	log       *slog.Logger
}

type GatewayOption func(*Gateway)

// WithReference replaces the grounding text.
func WithReference(text string) GatewayOption {
	return func(g *Gateway) { g.reference = text }
}

func WithGatewayLogger(l *slog.Logger) GatewayOption {
	return func(g *Gateway) { g.log = l }
}

func NewGateway(client llm.LLMClient, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		client:    client,
		reference: catalog.ReferenceText,
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Answer returns the model's text, FallbackNotFound when it is empty, or
// FallbackConnectionError when the call fails. It never returns an error
// and never retries. Blank messages are not sent.
func (g *Gateway) Answer(ctx context.Context, message string, strategy domain.Strategy) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return FallbackNotFound
	}

	strategyJSON, err := json.Marshal(strategy)
	if err != nil {
		g.log.Error("encoding strategy for assistant", "strategy", strategy.ID, "error", err)
		return FallbackConnectionError
	}

	temp := Temperature
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskAssist,
		SystemPrompt: buildSystemPrompt(string(strategyJSON), g.reference, string(strategy.ID)),
		UserPrompt:   message,
		Temperature:  &temp,
	})
	if err != nil {
		g.log.Warn("assistant call failed", "strategy", strategy.ID, "error", err)
		return FallbackConnectionError
	}
	if resp == nil || resp.Text == "" {
		return FallbackNotFound
	}
	return resp.Text
}
