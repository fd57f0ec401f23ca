package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// langchainBackend serves OpenAI and Gemini through langchaingo's OpenAI
// client. Gemini is reached via its OpenAI-compatible endpoint.
type langchainBackend struct {
	model llms.Model
}

func newLangchainBackend(cfg LLMConfig) (*langchainBackend, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.EffectiveModel()),
	}
	if ep := cfg.EffectiveEndpoint(); ep != "" {
		opts = append(opts, openai.WithBaseURL(ep))
	}
	m, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", cfg.Provider, err)
	}
	return &langchainBackend{model: m}, nil
}

func (b *langchainBackend) generate(ctx context.Context, p callParams) (string, string, error) {
	var msgs []llms.MessageContent
	if p.systemPrompt != "" {
		msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeSystem, p.systemPrompt))
	}
	msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeHuman, p.userPrompt))

	opts := []llms.CallOption{
		llms.WithModel(p.model),
		llms.WithTemperature(p.temperature),
	}
	if p.maxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(p.maxTokens))
	}

	resp, err := b.model.GenerateContent(ctx, msgs, opts...)
	if err != nil {
		return "", "", err
	}
	if len(resp.Choices) == 0 {
		return "", p.model, nil
	}
	return resp.Choices[0].Content, p.model, nil
}

func (b *langchainBackend) available(context.Context) bool { return true }
