package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizflip/internal/catalog"
	"github.com/abhisek/quizflip/internal/ui/theme"
)

// RichText renders text with `inline` and fenced code styled apart from
// prose. base styles the plain runs.
func RichText(s string, base lipgloss.Style, width int) string {
	var blocks []string
	var line strings.Builder

	flush := func() {
		if line.Len() > 0 {
			blocks = append(blocks, lipgloss.NewStyle().Width(width).Render(line.String()))
			line.Reset()
		}
	}

	for _, seg := range catalog.RichText(s) {
		switch seg.Kind {
		case catalog.SegmentCodeBlock:
			flush()
			blocks = append(blocks, theme.CodeBlock.Render(seg.Text))
		case catalog.SegmentInlineCode:
			line.WriteString(theme.InlineCode.Render(seg.Text))
		default:
			line.WriteString(base.Render(seg.Text))
		}
	}
	flush()
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}
