package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"POLARIS_LLM_PROVIDER", "POLARIS_LLM_LOG_CALLS", "POLARIS_LLM_ENDPOINT", "POLARIS_LLM_MODEL",
		"POLARIS_LLM_API_KEY", "API_KEY", "POLARIS_LLM_TIMEOUT_MS", "POLARIS_LLM_MAX_TOKENS",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig_AssistIsLowTemperature(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.InDelta(t, 0.1, cfg.Tasks[TaskAssist].Temperature, 1e-9)
	assert.Equal(t, 0, cfg.TaskTimeout(TaskAssist))
	assert.False(t, cfg.Configured())
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("POLARIS_LLM_PROVIDER", " Anthropic ")
	t.Setenv("POLARIS_LLM_MODEL", "claude-x")
	t.Setenv("POLARIS_LLM_API_KEY", "secret")
	t.Setenv("POLARIS_LLM_TIMEOUT_MS", "9000")
	t.Setenv("POLARIS_LLM_LOG_CALLS", "true")
	t.Setenv("POLARIS_LLM_MAX_TOKENS", "256")

	cfg := LoadConfig()

	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "claude-x", cfg.EffectiveModel())
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, 9000, cfg.TaskTimeout(TaskAssist))
	assert.True(t, cfg.LogCalls)
	assert.Equal(t, 256, cfg.Tasks[TaskAssist].MaxTokens)
	assert.True(t, cfg.Configured())
}

func TestLoadConfig_APIKeyAlias(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("API_KEY", "legacy")

	cfg := LoadConfig()

	assert.Equal(t, "legacy", cfg.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.EffectiveModel())
	assert.Equal(t, GeminiOpenAIEndpoint, cfg.EffectiveEndpoint())
}

func TestLoadConfig_InvalidTimeoutIgnored(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("POLARIS_LLM_TIMEOUT_MS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, 0, cfg.TaskTimeout(TaskAssist))
}

func TestConfigured_OllamaNeedsNoKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOllama

	assert.True(t, cfg.Configured())
	assert.Equal(t, "http://localhost:11434", cfg.EffectiveEndpoint())
	assert.Equal(t, "llama3.2", cfg.EffectiveModel())
}
