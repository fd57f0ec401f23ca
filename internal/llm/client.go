package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response. Each call
	// is a single attempt.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available reports whether the provider can be called at all.
	Available(ctx context.Context) bool
}

// backend is one provider's transport.
type backend interface {
	generate(ctx context.Context, p callParams) (text, model string, err error)
	available(ctx context.Context) bool
}

type callParams struct {
	model        string
	systemPrompt string
	userPrompt   string
	temperature  float64
	maxTokens    int
}

// NewClient builds the client for cfg.Provider. A provider without
// credentials yields a client whose calls fail with ErrNotConfigured.
func NewClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	if !cfg.Configured() {
		return unconfiguredClient{provider: cfg.Provider}, nil
	}

	var (
		b   backend
		err error
	)
	switch cfg.Provider {
	case ProviderOllama:
		b = newOllamaBackend(cfg)
	case ProviderAnthropic:
		b = newAnthropicBackend(cfg)
	case ProviderOpenAI, ProviderGemini:
		b, err = newLangchainBackend(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return &client{cfg: cfg, backend: b, observer: observer}, nil
}

// client applies task defaults, timeouts and observation around a backend.
type client struct {
	cfg      LLMConfig
	backend  backend
	observer Observer
}

func (c *client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}

	if timeoutMs := c.cfg.TaskTimeout(req.Task); timeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
		defer cancel()
	}

	model := c.cfg.EffectiveModel()
	text, respModel, err := c.backend.generate(ctx, callParams{
		model:        model,
		systemPrompt: req.SystemPrompt,
		userPrompt:   req.UserPrompt,
		temperature:  temp,
		maxTokens:    maxTok,
	})
	latency := time.Since(start).Milliseconds()

	if err != nil {
		err = classify(ctx, c.cfg.Provider, err)
		c.observer.OnCallComplete(LLMCallEvent{
			Task:      req.Task,
			Provider:  c.cfg.Provider,
			Model:     model,
			LatencyMs: latency,
			Success:   false,
			ErrorCode: errorCode(err),
		})
		return nil, err
	}

	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Provider:  c.cfg.Provider,
		Model:     model,
		LatencyMs: latency,
		Success:   true,
	})
	if respModel == "" {
		respModel = model
	}
	return &GenerateResponse{Text: text, Model: respModel, LatencyMs: latency}, nil
}

func (c *client) Available(ctx context.Context) bool {
	return c.backend.available(ctx)
}

// unconfiguredClient stands in when the provider has no credentials.
type unconfiguredClient struct {
	provider Provider
}

func (u unconfiguredClient) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	return nil, fmt.Errorf("%w: set POLARIS_LLM_API_KEY for %s", ErrNotConfigured, u.provider)
}

func (unconfiguredClient) Available(context.Context) bool { return false }

// classify maps transport failures onto the package sentinels.
func classify(ctx context.Context, provider Provider, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ErrTimeout
	case isConnectionError(err):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", provider, err)
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrNotConfigured):
		return "NOT_CONFIGURED"
	default:
		return "UNKNOWN"
	}
}
