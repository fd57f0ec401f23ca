package cli

import (
	"context"

	"github.com/alexanderramin/polaris/internal/assistant"
	"github.com/alexanderramin/polaris/internal/domain"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App
	Ctx context.Context

	// ActiveStrategy is the strategy last opened. The chat follows it.
	ActiveStrategy domain.StrategyID

	// Chat is one conversation for the whole shell session. Switching
	// strategy keeps its transcript.
	Chat *assistant.Conversation

	// Terminal dimensions
	Width  int
	Height int
}

// SetActiveStrategy records the open strategy and points the chat at it.
func (s *SharedState) SetActiveStrategy(id domain.StrategyID) {
	s.ActiveStrategy = id
	if s.Chat == nil {
		s.Chat = assistant.NewConversation(s.App.Assistant, id)
		return
	}
	s.Chat.SetStrategy(id)
}

// RemoteEnabled reports whether notes sync to the cloud.
func (s *SharedState) RemoteEnabled() bool {
	return s.App.Notes.RemoteEnabled()
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
