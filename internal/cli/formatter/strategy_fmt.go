package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/polaris/internal/domain"
)

// StrategyView carries what a strategy page shows besides the catalog
// record itself.
type StrategyView struct {
	Strategy          domain.Strategy
	ReflectionPrompts []string
	// SpeakerNotes holds each step's prompt split into lines, indexed like
	// Strategy.Flow. A nil entry hides that step's notes.
	SpeakerNotes [][]string
	Question     string
	Reflection   string
	ShowNotes    bool

	// Interactive marks FocusStep with a cursor.
	Interactive bool
	FocusStep   int
}

// FormatStrategyList renders the catalog as a table.
func FormatStrategyList(strategies []domain.Strategy) string {
	if len(strategies) == 0 {
		return Dim("  No strategies match.") + "\n"
	}
	rows := make([][]string, 0, len(strategies))
	for _, s := range strategies {
		rows = append(rows, []string{
			StyleGreen.Render(string(s.ID)),
			s.TotalTime,
			s.ToolsLabel(),
			Truncate(s.Purpose, 56),
		})
	}
	return RenderTable([]string{"STRATEGY", "TIME", "TOOL", "PURPOSE"}, rows)
}

// FormatStrategy renders a full strategy page.
func FormatStrategy(v StrategyView) string {
	s := v.Strategy
	var b strings.Builder

	b.WriteString("\n" + StylePurple.Render("  "+string(s.ID)) + Dim("  ·  "+s.TotalTime) + "\n\n")

	b.WriteString(Header("Overview") + "\n")
	b.WriteString(indentWrapped(s.OverviewText(), 2, textWrapWidth) + "\n\n")

	b.WriteString(fmt.Sprintf("  %s %s\n", Dim("Recommended Tool(s):"), StyleBlue.Render(s.ToolsLabel())))
	if s.ToolLink != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n", Dim("Link:"), s.ToolLink))
	}
	b.WriteString("\n")

	b.WriteString(Header("Facilitation Flow") + "\n")
	for i, step := range s.Flow {
		b.WriteString(formatStep(step, v.Interactive && i == v.FocusStep))
		if i < len(v.SpeakerNotes) && v.SpeakerNotes[i] != nil {
			b.WriteString(FormatSpeakerNotes(v.SpeakerNotes[i]))
		}
		b.WriteString("\n")
	}

	if len(s.Tips) > 0 {
		b.WriteString(Header("Facilitation Tips") + "\n")
		for _, t := range s.Tips {
			b.WriteString(bullet(t))
		}
		b.WriteString("\n")
	}

	if len(s.Mistakes) > 0 {
		b.WriteString(Header("Common Mistakes") + "\n")
		for _, m := range s.Mistakes {
			b.WriteString(bulletStyled(StyleRed, "✖", m))
		}
		b.WriteString("\n")
	}

	if len(s.DisciplineExamples) > 0 {
		b.WriteString(Header("Discipline Examples") + "\n")
		for _, ex := range s.DisciplineExamples {
			b.WriteString("  " + StyleYellow.Render(ex.Discipline) + "\n")
			b.WriteString(indentWrapped(ex.Example, 4, textWrapWidth) + "\n")
			if ex.PracticeLink != "" {
				b.WriteString("    " + Dim("Practice: "+ex.PracticeLink) + "\n")
			}
		}
		b.WriteString("\n")
	}

	if s.ExtraContent != "" {
		b.WriteString(indentWrapped(s.ExtraContent, 2, textWrapWidth) + "\n\n")
	}

	if s.DemoImage != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n", Dim("Demo:"), s.DemoImage))
		if s.DemoCaption != "" {
			b.WriteString(indentWrapped(s.DemoCaption, 4, textWrapWidth) + "\n")
		}
		b.WriteString("\n")
	}

	if len(v.ReflectionPrompts) > 0 {
		b.WriteString(Header("Reflection Prompts") + "\n")
		for _, p := range v.ReflectionPrompts {
			b.WriteString(bulletStyled(StylePurple, "?", p))
		}
		b.WriteString("\n")
	}

	if v.ShowNotes {
		b.WriteString(FormatNotes(s.ID, v.Question, v.Reflection))
	}

	return b.String()
}

func formatStep(step domain.Step, focused bool) string {
	var b strings.Builder
	title := StyleBold.Render(step.Phase)
	if step.Time != "" {
		title += Dim("  (" + step.Time + ")")
	}
	cursor := "  "
	if focused {
		cursor = StyleGreen.Render("▸ ")
	}
	b.WriteString(cursor + title + "\n")
	if step.Goal != "" {
		b.WriteString(indentWrapped(Dim("Goal: ")+step.Goal, 4, textWrapWidth) + "\n")
	}
	b.WriteString(indentWrapped(step.Action, 4, textWrapWidth) + "\n")
	if step.Tip != "" {
		b.WriteString(indentWrapped(StyleYellow.Render("Tip: ")+step.Tip, 4, textWrapWidth) + "\n")
	}
	return b.String()
}

// FormatSpeakerNotes renders revealed speaker note lines under a step.
func FormatSpeakerNotes(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("    " + StyleBlue.Render("Speaker notes") + "\n")
	for _, l := range lines {
		b.WriteString(indentWrapped(StyleBlue.Render("│ ")+l, 4, textWrapWidth) + "\n")
	}
	return b.String()
}

func bullet(text string) string {
	return bulletStyled(StyleGreen, "•", text)
}

func bulletStyled(style lipgloss.Style, marker, text string) string {
	return indentWrapped(style.Render(marker)+" "+text, 2, textWrapWidth) + "\n"
}
