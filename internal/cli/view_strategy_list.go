package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/polaris/internal/catalog"
	"github.com/alexanderramin/polaris/internal/cli/formatter"
	"github.com/alexanderramin/polaris/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// strategyListView is the home view: a navigable, filterable list of the
// catalog.
type strategyListView struct {
	state  *SharedState
	cursor int

	inFilter bool
	filter   string
}

func newStrategyListView(state *SharedState) *strategyListView {
	return &strategyListView{state: state}
}

func (v *strategyListView) ID() ViewID    { return ViewStrategyList }
func (v *strategyListView) Title() string { return "" }

func (v *strategyListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "ask")),
	}
}

func (v *strategyListView) Init() tea.Cmd { return nil }

func (v *strategyListView) filtering() bool { return v.inFilter }

func (v *strategyListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if v.inFilter {
			return v.updateFilter(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *strategyListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := v.visible()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(visible) {
			id := visible[v.cursor].ID
			v.state.SetActiveStrategy(id)
			return v, pushView(newStrategyView(v.state, id))
		}
	case "a":
		if v.cursor < len(visible) {
			v.state.SetActiveStrategy(visible[v.cursor].ID)
			return v, pushView(newChatView(v.state))
		}
	case "/":
		v.inFilter = true
		v.filter = ""
	}
	return v, nil
}

func (v *strategyListView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.inFilter = false
		v.filter = ""
		v.cursor = 0
	case tea.KeyEnter:
		v.inFilter = false
	case tea.KeyBackspace:
		if r := []rune(v.filter); len(r) > 0 {
			v.filter = string(r[:len(r)-1])
			v.cursor = 0
		}
	case tea.KeyRunes:
		v.filter += string(msg.Runes)
		v.cursor = 0
	case tea.KeySpace:
		v.filter += " "
		v.cursor = 0
	}
	return v, nil
}

func (v *strategyListView) visible() []domain.Strategy {
	if strings.TrimSpace(v.filter) == "" {
		return catalog.All()
	}
	return catalog.Find(v.filter)
}

func (v *strategyListView) View() string {
	visible := v.visible()

	var b strings.Builder
	b.WriteString("\n")
	if v.inFilter || v.filter != "" {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.filter)
		if v.inFilter {
			b.WriteString("█")
		}
		b.WriteString("\n\n")
	}

	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No strategies match.") + "\n")
		return b.String()
	}

	var snap domain.Notes
	if v.state.App.Notes.Hydrated() {
		snap, _ = v.state.App.Notes.Snapshot()
	}

	for i, s := range visible {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		marker := " "
		if snap.Questions[string(s.ID)] != "" || snap.Reflections[string(s.ID)] != "" {
			marker = formatter.StylePurple.Render("✎")
		}
		b.WriteString(fmt.Sprintf("%s%s %s  %s\n",
			cursor,
			marker,
			nameStyle.Render(padRight(string(s.ID), 20)),
			formatter.Dim(s.TotalTime),
		))
	}

	if v.cursor < len(visible) {
		b.WriteString("\n")
		b.WriteString(formatter.Dim("  " + formatter.Truncate(visible[v.cursor].Purpose, max(v.state.Width-4, 40))))
		b.WriteString("\n")
	}
	return b.String()
}

// padRight pads s to width runes, truncating if needed.
func padRight(s string, width int) string {
	n := len([]rune(s))
	if n > width {
		return formatter.Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-n)
}
