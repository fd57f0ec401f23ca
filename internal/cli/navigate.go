package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack.
type popViewMsg struct{}

// notesHydratedMsg is broadcast to every view once notes have loaded.
type notesHydratedMsg struct{}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// hydrateNotes loads notes off the UI loop.
func hydrateNotes(ctx context.Context, app *App) tea.Cmd {
	return func() tea.Msg {
		app.hydrate(ctx)
		return notesHydratedMsg{}
	}
}
