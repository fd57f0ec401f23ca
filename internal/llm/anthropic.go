package llm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicBackend calls the Anthropic Messages API.
type anthropicBackend struct {
	client anthropic.Client
}

func newAnthropicBackend(cfg LLMConfig) *anthropicBackend {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if ep := cfg.EffectiveEndpoint(); ep != "" {
		opts = append(opts, option.WithBaseURL(ep))
	}
	return &anthropicBackend{client: anthropic.NewClient(opts...)}
}

func (b *anthropicBackend) generate(ctx context.Context, p callParams) (string, string, error) {
	maxTokens := int64(p.maxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(p.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(p.userPrompt)),
		},
	}
	if p.systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: p.systemPrompt}}
	}

	msg, err := b.client.Messages.New(ctx, params)
	if err != nil {
		return "", "", err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		switch block := block.AsAny().(type) {
		case anthropic.TextBlock:
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), string(msg.Model), nil
}

// available is true once a key is present; the API has no cheap probe.
func (b *anthropicBackend) available(context.Context) bool { return true }
