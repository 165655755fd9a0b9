package review

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizflip/internal/catalog"
	"github.com/abhisek/quizflip/internal/session"
	"github.com/abhisek/quizflip/internal/ui/components"
	"github.com/abhisek/quizflip/internal/ui/layout"
	"github.com/abhisek/quizflip/internal/ui/theme"
)

const maxCardWidth = 90

func (s *Screen) View(width, height int) string {
	cw := min(width-4, maxCardWidth)

	var parts []string
	parts = append(parts, s.progress(cw).View())

	if s.loadErr != nil {
		parts = append(parts, renderLoadError(s.loadErr, cw))
	}

	q, ok := s.engine.CurrentQuestion()
	switch {
	case s.loading && s.engine.Catalog().Len() == 0:
		parts = append(parts, theme.Hint.Render("Loading question sets..."))
	case !ok:
		parts = append(parts, renderEmpty(cw))
	case s.engine.Finished() && !s.answered(q):
		parts = append(parts, s.renderFinished(cw))
	case s.flipped:
		parts = append(parts, s.renderBack(q, cw))
	default:
		parts = append(parts, s.renderFront(q, cw))
	}

	if s.status != "" {
		parts = append(parts, theme.Hint.Render(s.status))
	}
	if s.showHelp {
		s.help.SetWidth(cw)
		if layout.IsCompactHeight(height) {
			parts = append(parts, s.help.ShortHelpView(s.keys.ShortHelp()))
		} else {
			parts = append(parts, s.help.FullHelpView(s.keys.FullHelp()))
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func (s *Screen) progress(width int) components.Progress {
	done, total := s.engine.Counts()
	return components.Progress{
		Answered:   done,
		Total:      total,
		Percent:    s.engine.Progress(),
		MissedOnly: s.engine.Mode() == session.ModeWrongOnly,
		Width:      width,
	}
}

// renderFront shows the question and its options.
func (s *Screen) renderFront(q *catalog.Question, width int) string {
	inner := width - 6
	var b strings.Builder

	b.WriteString(s.cardHeader(q, inner))
	b.WriteString("\n\n")
	b.WriteString(components.RichText(q.Title, theme.Body.Bold(true), inner))
	if q.Code != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.CodeBlock.Render(q.Code))
	}
	b.WriteString("\n\n")

	opts := components.OptionList{Options: q.Options}
	if s.answered(q) {
		opts.Answered = true
		opts.Correct = s.last.Correct
		opts.Selected = s.last.Selected
	}
	b.WriteString(opts.View(inner))

	return theme.Card.Width(width).Render(b.String())
}

// renderBack shows the answer, the author's explanation and any LLM
// explanation.
func (s *Screen) renderBack(q *catalog.Question, width int) string {
	inner := width - 6
	var b strings.Builder

	b.WriteString(s.cardHeader(q, inner))
	b.WriteString("\n\n")

	if s.answered(q) {
		switch {
		case !s.last.CorrectResolved:
			b.WriteString(theme.Incorrect.Render("This question's answer has no option letter"))
		case s.last.IsCorrect:
			b.WriteString(theme.Correct.Render("Correct!"))
		default:
			b.WriteString(theme.Incorrect.Render(fmt.Sprintf("Not quite, you picked %s", s.last.Selected)))
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.Selected.Render("Answer: " + answerLine(q)))
	b.WriteString("\n\n")
	if q.Explain != "" {
		b.WriteString(components.RichText(q.Explain, theme.Body, inner))
		b.WriteString("\n")
	}

	switch {
	case s.explaining:
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Asking the tutor..."))
	case s.explainErr != "":
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render("Explanation failed: " + s.explainErr))
	case s.explanation != nil:
		e := s.explanation
		b.WriteString("\n")
		b.WriteString(theme.Selected.Render("Tutor"))
		b.WriteString("\n")
		b.WriteString(components.RichText(e.Summary, theme.Body, inner))
		b.WriteString("\n\n")
		b.WriteString(components.RichText(e.WhyCorrect, theme.Body, inner))
		for _, p := range e.Pitfalls {
			b.WriteString("\n")
			b.WriteString(components.RichText("• "+p, lipgloss.NewStyle().Foreground(theme.TextDim), inner))
		}
	}

	return theme.Card.Width(width).BorderForeground(theme.Primary).Render(strings.TrimRight(b.String(), "\n"))
}

func (s *Screen) cardHeader(q *catalog.Question, width int) string {
	active := s.engine.ActiveList()
	pos := fmt.Sprintf("%d/%d", s.engine.Cursor()+1, len(active))
	set := layout.Truncate(q.Set, max(width-lipgloss.Width(pos)-4, 8))
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(pos)
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(set)
	if s.engine.IsMissed(q.ID) {
		right += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("●")
	}
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func answerLine(q *catalog.Question) string {
	k, ok := q.CorrectKey()
	if !ok {
		return q.Answer
	}
	if opt, found := q.OptionFor(k); found {
		return opt.Display()
	}
	return string(k)
}

func (s *Screen) renderFinished(width int) string {
	st := s.engine.Stats()
	var b strings.Builder
	b.WriteString(theme.Title.Width(width - 6).Render("All done!"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Answered %d · Wrong %d · Accuracy %d%%", st.Answered, st.Wrong, st.Accuracy)))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Press R to start over, w to review missed questions, a for analytics."))
	return theme.Card.Width(width).Render(b.String())
}

func renderEmpty(width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(width - 6).Render("No questions"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render("Select at least one question set."))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Press o to choose sets."))
	return theme.Card.Width(width).Render(b.String())
}

func renderLoadError(err error, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Foreground(theme.Error).
		Render("Could not load sets: " + err.Error())
}
