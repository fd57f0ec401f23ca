package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderCharBudget renders a character budget meter like
// "[████░░░░] 120/250 Characters". The bar turns yellow past two thirds
// of the limit and red at the limit.
func RenderCharBudget(used, limit, width int) string {
	if limit <= 0 {
		limit = 1
	}
	if width < 2 {
		width = 2
	}
	used = max(used, 0)

	pct := float64(min(used, limit)) / float64(limit)
	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case used >= limit:
		style = StyleRed
	case pct >= 0.66:
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %s", style.Render(bar), Dim(CharCount(used, limit)))
}

// CharCount renders "<n>/<limit> Characters".
func CharCount(used, limit int) string {
	return fmt.Sprintf("%d/%d Characters", used, limit)
}
