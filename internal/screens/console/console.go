// Package console shows the output of running a question's snippet.
package console

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizflip/internal/catalog"
	"github.com/abhisek/quizflip/internal/playground"
	"github.com/abhisek/quizflip/internal/router"
	"github.com/abhisek/quizflip/internal/screen"
	"github.com/abhisek/quizflip/internal/ui/layout"
	"github.com/abhisek/quizflip/internal/ui/theme"
)

// Runner executes a snippet.
type Runner interface {
	Run(ctx context.Context, lang, code string) (*playground.Result, error)
}

type ranMsg struct {
	Result *playground.Result
	Err    error
}

// Screen runs a snippet on Init and shows its captured output.
type Screen struct {
	runner Runner
	title  string
	lang   string
	code   string

	running bool
	result  *playground.Result
	err     error
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a console screen for q's snippet.
func New(runner Runner, q *catalog.Question) *Screen {
	return &Screen{runner: runner, title: q.Title, lang: q.Language(), code: q.Code}
}

func (s *Screen) Init() tea.Cmd {
	return s.run()
}

func (s *Screen) run() tea.Cmd {
	s.running = true
	runner, lang, code := s.runner, s.lang, s.code
	return func() tea.Msg {
		res, err := runner.Run(context.Background(), lang, code)
		return ranMsg{Result: res, Err: err}
	}
}

func (s *Screen) Title() string {
	return "Playground"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Run again"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ranMsg:
		s.running = false
		s.result, s.err = msg.Result, msg.Err
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, router.Back()
		case "enter":
			if !s.running {
				return s, s.run()
			}
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := min(width-4, 90)
	var b strings.Builder

	b.WriteString(theme.Body.Bold(true).Render(layout.Truncate(s.title, cw)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.lang))
	b.WriteString("\n\n")
	b.WriteString(theme.CodeBlock.Render(s.code))
	b.WriteString("\n\n")

	switch {
	case s.running:
		b.WriteString(theme.Hint.Render("Running..."))
	case s.err != nil:
		b.WriteString(theme.Incorrect.Render(errorText(s.err, s.lang)))
	case s.result != nil:
		b.WriteString(renderOutput(s.result, cw))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func renderOutput(res *playground.Result, width int) string {
	var b strings.Builder
	for _, e := range res.Lines() {
		style := theme.Body
		switch {
		case e.Kind == playground.KindError:
			style = lipgloss.NewStyle().Foreground(theme.Error)
		case res.Empty():
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}
		b.WriteString(style.Width(width).Render(e.Message))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("exit %d · %s", res.ExitCode, res.Duration.Round(time.Millisecond))))
	return b.String()
}

func errorText(err error, lang string) string {
	switch {
	case errors.Is(err, playground.ErrUnsupportedLanguage):
		return fmt.Sprintf("Running %s snippets is not supported", lang)
	case errors.Is(err, playground.ErrInterpreterNotFound):
		return err.Error()
	}
	return "Run failed: " + err.Error()
}
