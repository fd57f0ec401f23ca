package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskAssist TaskType = "assist"
)

// Provider names a model backend.
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderOllama    Provider = "ollama"
)

// GeminiOpenAIEndpoint is Gemini's OpenAI-compatible API root.
const GeminiOpenAIEndpoint = "https://generativelanguage.googleapis.com/v1beta/openai"

var defaultModels = map[Provider]string{
	ProviderGemini:    "gemini-2.5-flash",
	ProviderAnthropic: "claude-sonnet-4-20250514",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderOllama:    "llama3.2",
}

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Provider  Provider
	LogCalls  bool
	Endpoint  string // empty uses the provider default
	Model     string // empty uses the provider default
	APIKey    string
	TimeoutMs int // 0 applies no client-side timeout
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig for Gemini with no key.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider: ProviderGemini,
		Tasks: map[TaskType]TaskConfig{
			TaskAssist: {Temperature: 0.1, MaxTokens: 1024},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("POLARIS_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(strings.ToLower(strings.TrimSpace(v)))
	}
	if v := os.Getenv("POLARIS_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("POLARIS_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("POLARIS_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	cfg.APIKey = firstEnv("POLARIS_LLM_API_KEY", "API_KEY")
	if v := os.Getenv("POLARIS_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("POLARIS_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			tc := cfg.Tasks[TaskAssist]
			tc.MaxTokens = n
			cfg.Tasks[TaskAssist] = tc
		}
	}

	return cfg
}

// EffectiveModel returns the configured model or the provider default.
func (c LLMConfig) EffectiveModel() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModels[c.Provider]
}

// EffectiveEndpoint returns the configured endpoint or the provider default.
// Anthropic and OpenAI use their SDK defaults when empty.
func (c LLMConfig) EffectiveEndpoint() string {
	if c.Endpoint != "" {
		return strings.TrimRight(c.Endpoint, "/")
	}
	switch c.Provider {
	case ProviderGemini:
		return GeminiOpenAIEndpoint
	case ProviderOllama:
		return "http://localhost:11434"
	default:
		return ""
	}
}

// Configured reports whether the provider has what it needs to make calls.
// Ollama runs locally and needs no key.
func (c LLMConfig) Configured() bool {
	if c.Provider == ProviderOllama {
		return true
	}
	return c.APIKey != ""
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
