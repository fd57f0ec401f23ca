package cli

import (
	"strings"

	"github.com/alexanderramin/polaris/internal/catalog"
	"github.com/alexanderramin/polaris/internal/cli/formatter"
	"github.com/alexanderramin/polaris/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// strategyView shows one strategy in a scrollable viewport. Speaker notes
// are hidden until revealed per step.
type strategyView struct {
	state    *SharedState
	strategy domain.Strategy
	focus    int
	revealed map[int]bool
	vp       viewport.Model
}

func newStrategyView(state *SharedState, id domain.StrategyID) *strategyView {
	vp := viewport.New(max(state.Width, 20), state.ContentHeight())
	vp.KeyMap = scrollViewportKeyMap()
	v := &strategyView{
		state:    state,
		strategy: catalog.MustLookup(id),
		revealed: make(map[int]bool),
		vp:       vp,
	}
	v.refresh()
	return v
}

func (v *strategyView) ID() ViewID    { return ViewStrategy }
func (v *strategyView) Title() string { return string(v.strategy.ID) }

func (v *strategyView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("n", "p"), key.WithHelp("n/p", "step")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "speaker notes")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "question")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reflection")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "ask")),
	}
}

func (v *strategyView) Init() tea.Cmd { return nil }

func (v *strategyView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight()
		v.refresh()
		return v, nil

	case notesHydratedMsg:
		v.refresh()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "n":
			if v.focus < len(v.strategy.Flow)-1 {
				v.focus++
				v.refresh()
			}
			return v, nil
		case "p":
			if v.focus > 0 {
				v.focus--
				v.refresh()
			}
			return v, nil
		case "s":
			v.revealed[v.focus] = !v.revealed[v.focus]
			v.refresh()
			return v, nil
		case "S":
			clear(v.revealed)
			v.refresh()
			return v, nil
		case "e":
			return v, pushView(newNoteEditorView(v.state, v.strategy.ID, domain.FieldQuestion))
		case "r":
			return v, pushView(newNoteEditorView(v.state, v.strategy.ID, domain.FieldReflection))
		case "a":
			v.state.SetActiveStrategy(v.strategy.ID)
			return v, pushView(newChatView(v.state))
		}
	}

	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

// Revealed reports whether speaker notes are shown for step i.
func (v *strategyView) Revealed(i int) bool { return v.revealed[i] }

func (v *strategyView) refresh() {
	view := formatter.StrategyView{
		Strategy:          v.strategy,
		ReflectionPrompts: catalog.ReflectionPrompts(v.strategy),
		SpeakerNotes:      make([][]string, len(v.strategy.Flow)),
		Interactive:       true,
		FocusStep:         v.focus,
	}
	for i, step := range v.strategy.Flow {
		if v.revealed[i] {
			view.SpeakerNotes[i] = catalog.SpeakerLines(step.Prompt)
		}
	}
	notes := v.state.App.Notes
	if notes.Hydrated() {
		view.Question, _ = notes.Question(v.strategy.ID)
		view.Reflection, _ = notes.Reflection(v.strategy.ID)
		view.ShowNotes = true
	}
	v.vp.SetContent(formatter.FormatStrategy(view))
}

func (v *strategyView) View() string {
	var b strings.Builder
	b.WriteString(v.vp.View())
	if ind := scrollIndicator(v.vp); ind != "" {
		b.WriteString("\n" + ind)
	}
	return b.String()
}
