package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizflip/internal/ui/theme"
)

// eighths are the partial cells used at the end of the filled run.
var eighths = []string{"▏", "▎", "▍", "▌", "▋", "▊", "▉"}

// Progress is the answered count drawn as a bar above the card.
type Progress struct {
	Answered int
	Total    int
	Percent  int
	// MissedOnly tags the bar while reviewing the missed set.
	MissedOnly bool
	Width      int
}

func (p Progress) View() string {
	label := theme.Body.Render(fmt.Sprintf("%d/%d", p.Answered, p.Total))
	pct := theme.Hint.Render(fmt.Sprintf("%3d%%", p.Percent))
	tag := ""
	if p.MissedOnly {
		tag = " " + lipgloss.NewStyle().Foreground(theme.Accent).Render("missed only")
	}

	barWidth := max(p.Width-lipgloss.Width(label)-lipgloss.Width(pct)-lipgloss.Width(tag)-2, 4)
	return label + " " + bar(p.Percent, barWidth) + " " + pct + tag
}

// bar fills percent of width cells at a resolution of one eighth of a cell.
func bar(percent, width int) string {
	percent = max(0, min(percent, 100))
	units := width * 8 * percent / 100
	full, part := units/8, units%8

	filled := strings.Repeat("█", full)
	empty := width - full
	if part > 0 {
		filled += eighths[part-1]
		empty--
	}
	return theme.ProgressFilled.Render(filled) + theme.ProgressEmpty.Render(strings.Repeat("─", empty))
}
