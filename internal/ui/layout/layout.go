// Package layout draws the frame around the active screen: a header with
// the screen title and status, and a footer with key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/abhisek/quizflip/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20

	CompactHeightThreshold = 30
)

const (
	appName   = "quizflip"
	hintGap   = "   "
	barMargin = 4 // border plus one column of padding on each side
)

// KeyHint is a key and what it does, shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactHeight reports whether height is below the comfortable height.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall reports whether the terminal cannot fit the frame.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// Chrome is everything drawn around a screen body.
type Chrome struct {
	Title  string
	Status string
	Hints  []KeyHint
}

// Render draws the chrome at the given size and fills the space between
// header and footer with body, which receives the space left for it.
func (c Chrome) Render(width, height int, body func(width, height int) string) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if IsTooSmall(width, height) {
		return tooSmall(width, height)
	}

	header := c.header(width)
	footer := c.footer(width)
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body(width, bodyHeight))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (c Chrome) header(width int) string {
	inner := max(width-barMargin, 0)

	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(appName)
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(c.Title)
	left := name
	if c.Title != "" {
		left += lipgloss.NewStyle().Foreground(theme.TextDim).Render(" · ") + title
	}

	status := Truncate(c.Status, max(inner-lipgloss.Width(left)-1, 0))
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return bar(width).Render(left + strings.Repeat(" ", gap) + right)
}

func (c Chrome) footer(width int) string {
	hints := FitHints(c.Hints, max(width-barMargin, 0))
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}
	return bar(width).Render(strings.Join(parts, hintGap))
}

// FitHints returns the leading hints that fit on one line of width cells.
func FitHints(hints []KeyHint, width int) []KeyHint {
	used := 0
	for i, h := range hints {
		w := runewidth.StringWidth(h.Key) + 1 + runewidth.StringWidth(h.Description)
		if i > 0 {
			w += len(hintGap)
		}
		if used+w > width {
			return hints[:i]
		}
		used += w
	}
	return hints
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

func tooSmall(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf("Terminal too small\nneed %d x %d\nnow %d x %d",
			MinWidth, MinHeight, width, height))
}

// Truncate shortens s to at most width terminal cells, ending in an ellipsis
// when cut. Wide runes count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces to width terminal cells.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
