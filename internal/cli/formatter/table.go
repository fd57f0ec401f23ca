package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderTable renders an aligned borderless table with a dim rule under
// the header row.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	cell := lipgloss.NewStyle().PaddingRight(2)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(true).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleHeader.PaddingRight(2)
			}
			return cell
		})

	return t.Render() + "\n"
}
