package formatter

import (
	"strings"

	"github.com/alexanderramin/polaris/internal/domain"
	"github.com/alexanderramin/polaris/internal/markup"
)

// FormatMarkup renders parsed assistant lines for the terminal.
func FormatMarkup(lines []markup.Line) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		switch l.Kind {
		case markup.Blank:
		case markup.Bullet:
			b.WriteString("  " + StyleGreen.Render("•") + " " + renderSpans(l.Spans))
		default:
			b.WriteString("  " + renderSpans(l.Spans))
		}
	}
	return b.String()
}

func renderSpans(spans []markup.Span) string {
	var b strings.Builder
	for _, sp := range spans {
		if sp.Emphasis {
			b.WriteString(StyleBold.Render(sp.Text))
			continue
		}
		b.WriteString(sp.Text)
	}
	return b.String()
}

// FormatChatMessage renders one transcript entry.
func FormatChatMessage(msg domain.ChatMessage) string {
	if msg.Role == domain.RoleUser {
		return Dim("You: ") + msg.Content
	}
	return StylePurple.Render("Assistant") + "\n" + FormatMarkup(markup.Parse(msg.Content))
}

// FormatChatWelcome renders the banner shown at the top of an empty chat.
func FormatChatWelcome(strategy domain.StrategyID, quick []string) string {
	var b strings.Builder
	b.WriteString(StylePurple.Render("  assistant") + Dim(" · "+string(strategy)) + "\n")
	b.WriteString(StyleDim.Render("  ─────────────────────────────") + "\n")
	b.WriteString(Dim("  Ask about running this strategy.") + "\n")
	if len(quick) > 0 {
		b.WriteString("\n")
		for i, q := range quick {
			b.WriteString("  " + StyleYellow.Render(string(rune('1'+i))) + " " + q + "\n")
		}
	}
	return b.String()
}
