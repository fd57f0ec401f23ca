package cli

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alexanderramin/polaris/internal/catalog"
	"github.com/alexanderramin/polaris/internal/cli/formatter"
	"github.com/alexanderramin/polaris/internal/domain"
	"github.com/alexanderramin/polaris/internal/notes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const ackPollInterval = 250 * time.Millisecond

// noteSavedMsg carries the result of a save started by the editor.
type noteSavedMsg struct {
	outcome notes.SaveOutcome
	err     error
}

// ackTickMsg re-checks whether the acknowledgement has cleared.
type ackTickMsg struct{}

// noteEditorView edits one note field. Every change is written to the
// store; ctrl+s saves (and syncs when a remote is configured).
type noteEditorView struct {
	state  *SharedState
	id     domain.StrategyID
	field  domain.NoteField
	input  textarea.Model
	loaded bool
	saving bool
	err    error
	remote error
}

func newNoteEditorView(state *SharedState, id domain.StrategyID, field domain.NoteField) *noteEditorView {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = "│ "
	ta.SetWidth(min(max(state.Width-4, 30), 88))
	ta.SetHeight(5)
	if field == domain.FieldQuestion {
		ta.CharLimit = domain.MaxQuestionLen
		ta.Placeholder = "What question will you pose?"
	} else {
		ta.CharLimit = 0
		ta.Placeholder = "How did it go?"
	}
	ta.Focus()

	v := &noteEditorView{state: state, id: id, field: field, input: ta}
	v.load()
	return v
}

func (v *noteEditorView) ID() ViewID { return ViewNoteEditor }
func (v *noteEditorView) Title() string {
	if v.field == domain.FieldQuestion {
		return "Question"
	}
	return "Reflection"
}

func (v *noteEditorView) ShortHelp() []key.Binding {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", formatter.SaveLabel(v.field, v.state.RemoteEnabled()))),
	}
	if v.field == domain.FieldQuestion {
		bindings = append(bindings, key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear")))
	}
	return append(bindings, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")))
}

func (v *noteEditorView) Init() tea.Cmd {
	return textarea.Blink
}

// load copies the stored value into the editor once notes are available.
func (v *noteEditorView) load() {
	if v.loaded {
		return
	}
	value, err := v.state.App.Notes.Get(v.id, v.field)
	if err != nil {
		return
	}
	v.input.SetValue(value)
	v.loaded = true
}

func (v *noteEditorView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case notesHydratedMsg:
		v.load()
		return v, nil

	case noteSavedMsg:
		v.saving = false
		v.err = msg.err
		v.remote = msg.outcome.RemoteErr
		return v, ackTick()

	case ackTickMsg:
		if v.state.App.Notes.Acknowledged(v.id, v.field) {
			return v, ackTick()
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return v, popView()
		case tea.KeyCtrlS:
			if !v.loaded || v.saving {
				return v, nil
			}
			v.saving = true
			return v, v.save()
		case tea.KeyCtrlX:
			if v.field == domain.FieldQuestion && v.loaded {
				v.input.Reset()
				v.err = v.state.App.Notes.Clear(v.state.Ctx, v.id)
			}
			return v, nil
		}
		if !v.loaded {
			return v, nil
		}
		before := v.input.Value()
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		if after := v.input.Value(); after != before {
			if v.field == domain.FieldQuestion {
				after = domain.ClampQuestion(after)
			}
			v.err = v.state.App.Notes.Set(v.state.Ctx, v.id, v.field, after)
		}
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *noteEditorView) save() tea.Cmd {
	store, ctx, id, field := v.state.App.Notes, v.state.Ctx, v.id, v.field
	return func() tea.Msg {
		out, err := store.Save(ctx, id, field)
		return noteSavedMsg{outcome: out, err: err}
	}
}

func ackTick() tea.Cmd {
	return tea.Tick(ackPollInterval, func(time.Time) tea.Msg { return ackTickMsg{} })
}

func (v *noteEditorView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	if !v.loaded {
		b.WriteString("  " + formatter.Dim("Loading notes...") + "\n")
		return b.String()
	}

	remote := v.state.RemoteEnabled()
	if v.field == domain.FieldQuestion {
		b.WriteString("  " + formatter.Bold(formatter.QuestionLabel(v.id)) + "\n\n")
	} else {
		b.WriteString("  " + formatter.Bold("Reflection:") + "\n")
		for _, p := range catalog.ReflectionPrompts(catalog.MustLookup(v.id)) {
			b.WriteString("  " + formatter.StylePurple.Render("?") + " " + formatter.Dim(p) + "\n")
		}
		b.WriteString("\n")
	}

	for _, line := range strings.Split(v.input.View(), "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")

	if v.field == domain.FieldQuestion {
		used := utf8.RuneCountInString(v.input.Value())
		b.WriteString("  " + formatter.RenderCharBudget(used, domain.MaxQuestionLen, 20) + "\n")
	}

	status := "  " + formatter.Dim("["+formatter.SaveLabel(v.field, remote)+"]")
	switch {
	case v.saving:
		status += "  " + formatter.Dim("Saving...")
	case v.state.App.Notes.Acknowledged(v.id, v.field):
		status += "  " + formatter.FormatAck(v.field, remote)
	}
	b.WriteString(status + "\n")

	if v.remote != nil {
		b.WriteString("  " + formatter.StyleYellow.Render("cloud sync failed; kept locally") + "\n")
	}
	if v.err != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n")
	}
	return b.String()
}
