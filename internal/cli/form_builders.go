package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/polaris/internal/cli/formatter"
	"github.com/alexanderramin/polaris/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// polarisHuhTheme returns a huh theme matching the Gruvbox palette.
func polarisHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// noteForm edits a strategy's question and reflection. The reflection
// field lists the strategy's reflection prompts as its description.
func noteForm(id domain.StrategyID, prompts []string, question, reflection *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(formatter.QuestionLabel(id)).
				DescriptionFunc(func() string {
					return formatter.CharCount(utf8.RuneCountInString(*question), domain.MaxQuestionLen)
				}, question).
				CharLimit(domain.MaxQuestionLen).
				Value(question).
				Validate(validateQuestion),
			huh.NewText().
				Title("Reflection:").
				Description(reflectionHint(prompts)).
				Value(reflection),
		),
	).WithTheme(polarisHuhTheme()).WithShowHelp(false)
}

func validateQuestion(s string) error {
	if n := utf8.RuneCountInString(s); n > domain.MaxQuestionLen {
		return fmt.Errorf("question is %d characters; the limit is %d", n, domain.MaxQuestionLen)
	}
	return nil
}

func reflectionHint(prompts []string) string {
	if len(prompts) == 0 {
		return ""
	}
	return "• " + strings.Join(prompts, "\n• ")
}
