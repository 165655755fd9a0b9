// Package history shows finished review runs from the event store and the
// questions missed most often across them.
package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizflip/internal/router"
	"github.com/abhisek/quizflip/internal/screen"
	"github.com/abhisek/quizflip/internal/store"
	"github.com/abhisek/quizflip/internal/ui/layout"
	"github.com/abhisek/quizflip/internal/ui/theme"
)

// Source provides past runs and per-question tallies. store.EventRepo
// implements it.
type Source interface {
	QuerySessions(ctx context.Context, opts store.QueryOpts) ([]store.SessionEvent, error)
	HardestQuestions(ctx context.Context, limit int) ([]store.QuestionTally, error)
}

const (
	runLimit     = 50
	hardestLimit = 5
	// detailLines is the space kept under the run list for the selection.
	detailLines = 3
)

type loadedMsg struct {
	runs    []store.SessionEvent
	hardest []store.QuestionTally
	err     error
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	First key.Binding
	Last  key.Binding
	Back  key.Binding
}

var keys = keyMap{
	Up:    key.NewBinding(key.WithKeys("up", "k")),
	Down:  key.NewBinding(key.WithKeys("down", "j")),
	First: key.NewBinding(key.WithKeys("home", "g")),
	Last:  key.NewBinding(key.WithKeys("end", "G")),
	Back:  key.NewBinding(key.WithKeys("esc", "q")),
}

// HistoryScreen lists finished runs, newest first, with the details of the
// selected one underneath.
type HistoryScreen struct {
	src     Source
	runs    []store.SessionEvent
	hardest []store.QuestionTally
	cursor  int
	loaded  bool
	err     error
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

func New(src Source) *HistoryScreen {
	return &HistoryScreen{src: src}
}

func (s *HistoryScreen) Init() tea.Cmd {
	src := s.src
	return func() tea.Msg {
		ctx := context.Background()
		events, err := src.QuerySessions(ctx, store.QueryOpts{Limit: runLimit * 2})
		if err != nil {
			return loadedMsg{err: err}
		}
		msg := loadedMsg{runs: finished(events)}
		// Tallies are optional; the run list is still useful without them.
		msg.hardest, _ = src.HardestQuestions(ctx, hardestLimit)
		return msg
	}
}

// finished keeps the end events, which carry the totals of a run.
func finished(events []store.SessionEvent) []store.SessionEvent {
	var runs []store.SessionEvent
	for _, ev := range events {
		if ev.Action == "end" {
			runs = append(runs, ev)
		}
		if len(runs) == runLimit {
			break
		}
	}
	return runs
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select run"},
		{Key: "g/G", Description: "First/last"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		s.err = msg.err
		s.runs, s.hardest = msg.runs, msg.hardest
		s.cursor = 0

	case tea.KeyPressMsg:
		last := max(len(s.runs)-1, 0)
		switch {
		case key.Matches(msg, keys.Back):
			return s, router.Back()
		case key.Matches(msg, keys.Up):
			s.cursor = max(s.cursor-1, 0)
		case key.Matches(msg, keys.Down):
			s.cursor = min(s.cursor+1, last)
		case key.Matches(msg, keys.First):
			s.cursor = 0
		case key.Matches(msg, keys.Last):
			s.cursor = last
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(style.Render(text))
	}
	switch {
	case s.err != nil:
		return "\n\n" + center(lipgloss.NewStyle().Foreground(theme.Error), "Could not load history: "+s.err.Error())
	case !s.loaded:
		return "\n\n" + center(theme.Hint, "Loading history...")
	case len(s.runs) == 0:
		return "\n\n" + center(theme.Hint.Italic(true), "No finished sessions yet. Start reviewing!")
	}

	hardest := s.renderHardest(width)
	listHeight := max(height-detailLines-lipgloss.Height(hardest)-2, 1)

	var b strings.Builder
	b.WriteString("\n")
	from, to := window(len(s.runs), s.cursor, listHeight)
	for i := from; i < to; i++ {
		style, prefix := lipgloss.NewStyle().Foreground(theme.Text), "  "
		if i == s.cursor {
			style, prefix = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "> "
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+summary(s.runs[i]))))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderDetail(width)))
	b.WriteString("\n")
	b.WriteString(hardest)
	return b.String()
}

// window returns the slice bounds of n rows that keep cursor visible in
// height lines.
func window(n, cursor, height int) (from, to int) {
	if n <= height {
		return 0, n
	}
	from = max(min(cursor-height/2, n-height), 0)
	return from, from + height
}

func summary(run store.SessionEvent) string {
	return fmt.Sprintf("%s  %d:%02d  %d/%d answered  %.0f%% accuracy",
		run.Timestamp.Local().Format("Jan 02, 2006 15:04"),
		run.DurationSecs/60, run.DurationSecs%60,
		run.Answered, run.Questions, accuracy(run))
}

func accuracy(run store.SessionEvent) float64 {
	if run.Answered == 0 {
		return 0
	}
	return float64(run.Answered-run.Wrong) / float64(run.Answered) * 100
}

func (s *HistoryScreen) renderDetail(width int) string {
	run := s.runs[s.cursor]
	sets := "no sets"
	if len(run.Sets) > 0 {
		sets = strings.Join(run.Sets, ", ")
	}
	lines := []string{
		layout.Truncate("Sets: "+sets, width-8),
		fmt.Sprintf("Missed: %d", run.Wrong),
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
		Render(strings.Join(lines, "\n"))
}

func (s *HistoryScreen) renderHardest(width int) string {
	if len(s.hardest) == 0 {
		return ""
	}
	lines := []string{theme.Hint.Render("Most missed")}
	for _, q := range s.hardest {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("%s  %d/%d wrong",
			layout.PadRight(layout.Truncate(q.Title, 48), 48), q.Attempts-q.Correct, q.Attempts)))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Left, lines...))
}
