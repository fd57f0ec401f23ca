package llm

import "log/slog"

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Task      TaskType
	Provider  Provider
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes LLM call events to a structured logger.
type LogObserver struct {
	log *slog.Logger
}

// NewLogObserver creates an Observer that logs events through l.
func NewLogObserver(l *slog.Logger) *LogObserver {
	return &LogObserver{log: l}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	attrs := []any{
		"task", event.Task,
		"provider", event.Provider,
		"model", event.Model,
		"latency_ms", event.LatencyMs,
	}
	if !event.Success {
		o.log.Warn("llm_call failed", append(attrs, "error_code", event.ErrorCode)...)
		return
	}
	o.log.Info("llm_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
