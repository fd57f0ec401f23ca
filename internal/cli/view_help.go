package cli

import (
	"github.com/alexanderramin/polaris/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// helpView shows the key reference.
type helpView struct {
	state *SharedState
}

func newHelpView(state *SharedState) *helpView {
	return &helpView{state: state}
}

func (v *helpView) ID() ViewID                          { return ViewHelp }
func (v *helpView) Title() string                       { return "Help" }
func (v *helpView) ShortHelp() []key.Binding            { return nil }
func (v *helpView) Init() tea.Cmd                       { return nil }
func (v *helpView) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }

func (v *helpView) View() string {
	return formatter.FormatShellHelp()
}
