package formatter

import (
	"fmt"
	"strings"
)

// helpCategory groups commands under a section header for the help display.
type helpCategory struct {
	title    string
	commands [][]string
}

func renderHelpCategory(cat helpCategory) string {
	var b strings.Builder
	b.WriteString("\n " + StyleHeader.Render(strings.ToUpper(cat.title)) + "\n")
	for _, c := range cat.commands {
		b.WriteString(fmt.Sprintf("  %-24s %s\n",
			StyleGreen.Render(c[0]),
			StyleDim.Render(c[1])))
	}
	return b.String()
}

// FormatShellHelp renders the key reference for the interactive shell.
func FormatShellHelp() string {
	categories := []helpCategory{
		{
			title: "Navigation",
			commands: [][]string{
				{"↑/↓ or j/k", "Move between strategies"},
				{"enter", "Open the selected strategy"},
				{"esc", "Go back"},
				{"q", "Quit"},
			},
		},
		{
			title: "Strategy",
			commands: [][]string{
				{"s", "Toggle speaker notes for the focused step"},
				{"S", "Hide all speaker notes"},
				{"e", "Edit the drafted question"},
				{"r", "Edit the reflection"},
				{"a", "Ask the assistant"},
			},
		},
		{
			title: "Editor",
			commands: [][]string{
				{"ctrl+s", "Save"},
				{"ctrl+x", "Clear the question"},
				{"esc", "Close the editor"},
			},
		},
	}

	var b strings.Builder
	for _, c := range categories {
		b.WriteString(renderHelpCategory(c))
	}
	return b.String()
}
