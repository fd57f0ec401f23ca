package llm

import "errors"

var (
	// ErrUnavailable indicates the model service could not be reached.
	ErrUnavailable = errors.New("llm service unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrNotConfigured indicates no credentials were supplied for the
	// selected provider.
	ErrNotConfigured = errors.New("llm not configured")

	// ErrUnknownProvider indicates an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown llm provider")
)
