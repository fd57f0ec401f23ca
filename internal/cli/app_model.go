package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/polaris/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appModel is the root bubbletea Model for the TUI. It manages a view
// stack and the shared header and status bar.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool
}

func newAppModel(ctx context.Context, app *App) appModel {
	state := &SharedState{App: app, Ctx: ctx}
	return appModel{
		state:     state,
		viewStack: []View{newStrategyListView(state)},
	}
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{hydrateNotes(m.state.Ctx, m.state.App)}
	if v := m.activeView(); v != nil {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m, m.broadcast(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case notesHydratedMsg:
		// Every view on the stack may show notes.
		return m, m.broadcast(msg)
	}

	// Forward everything else (async results, ticks, cursor blink) to the
	// active view.
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

// broadcast sends msg to every view on the stack.
func (m *appModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// Views with their own text input receive every key, including q and ?.
	// They pop themselves on Esc.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit

	case msg.String() == "?":
		if v := m.activeView(); v != nil && v.ID() == ViewHelp {
			break
		}
		v := newHelpView(m.state)
		m.viewStack = append(m.viewStack, v)
		return m, v.Init()

	case msg.Type == tea.KeyEsc:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}
	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("polaris")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	header := title
	if len(crumbs) > 0 {
		header += " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	mode := formatter.Dim("○ Loading notes...")
	if m.state.App.Notes.Hydrated() {
		mode = formatter.StorageMode(m.state.RemoteEnabled())
	}
	if gap := m.state.Width - lipgloss.Width(header) - lipgloss.Width(mode); gap > 1 {
		header += strings.Repeat(" ", gap) + mode
	} else {
		header += "  " + mode
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
		if !viewCapturesInput(v) {
			if len(m.viewStack) > 1 {
				hints = append(hints, formatter.Dim("esc: back"))
			}
			hints = append(hints, formatter.Dim("?: help"), formatter.Dim("q: quit"))
		}
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}

// viewCapturesInput returns true if the view has its own text input and
// should receive all key events.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	if f, ok := v.(interface{ filtering() bool }); ok && f.filtering() {
		return true
	}
	switch v.ID() {
	case ViewNoteEditor, ViewChat:
		return true
	}
	return false
}

// scrollViewportKeyMap restricts a viewport to arrow/page keys so letter
// keys stay free for view shortcuts.
func scrollViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}

// scrollIndicator returns a dim scroll position string.
func scrollIndicator(vp viewport.Model) string {
	if vp.TotalLineCount() <= vp.Height {
		return ""
	}
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}
