package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizflip/internal/answerkey"
	"github.com/abhisek/quizflip/internal/catalog"
	"github.com/abhisek/quizflip/internal/ui/theme"
)

// OptionList renders a question's answer options. Once Answered is set the
// correct option is highlighted and a wrong pick is marked.
type OptionList struct {
	Options  []catalog.Option
	Correct  answerkey.Key
	Selected answerkey.Key
	Answered bool
}

// View renders one line per option.
func (o OptionList) View(width int) string {
	var b strings.Builder
	for _, opt := range o.Options {
		k, resolved := opt.Key()
		line := "  " + opt.Display()
		style := theme.Unselected

		switch {
		case !resolved:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case o.Answered && k == o.Correct:
			line = "✓ " + opt.Display()
			style = theme.Correct
		case o.Answered && k == o.Selected:
			line = "✗ " + opt.Display()
			style = theme.Incorrect
		case o.Answered:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}

		b.WriteString(style.Width(width).Render(line))
		if opt.Code != "" {
			b.WriteString("\n")
			b.WriteString(theme.CodeBlock.MarginLeft(4).Render(opt.Code))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
