// Package dashboard shows headline stats and the analytics summary.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizflip/internal/router"
	"github.com/abhisek/quizflip/internal/screen"
	"github.com/abhisek/quizflip/internal/session"
	"github.com/abhisek/quizflip/internal/ui/layout"
	"github.com/abhisek/quizflip/internal/ui/theme"
)

// Source provides the figures shown. *session.Engine implements it.
type Source interface {
	Stats() session.Stats
	Dashboard() session.Dashboard
}

// Screen displays stats and analytics.
type Screen struct {
	src Source
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a new dashboard screen.
func New(src Source) *Screen {
	return &Screen{src: src}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Analytics"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "a", "q":
			return s, router.Back()
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	st := s.src.Stats()
	d := s.src.Dashboard()
	cw := min(width-8, 70)

	var b strings.Builder

	center := func(str string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, str))
		b.WriteString("\n")
	}
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))
	section := func(name string) {
		b.WriteString("\n")
		center(lipgloss.NewStyle().Foreground(theme.TextDim).Render(name))
		center(divider)
	}

	center(theme.Title.Render("Your progress"))
	b.WriteString("\n")
	center(theme.Body.Render(fmt.Sprintf("Questions: %d        Answered: %d        Wrong: %d        Accuracy: %d%%",
		st.Total, st.Answered, st.Wrong, st.Accuracy)))

	section("Timing")
	if d.TimedQuestions == 0 {
		center(theme.Hint.Render("No answers timed yet"))
	} else {
		center(theme.Body.Render(fmt.Sprintf("Average %s    Total %s    Fastest %s    Slowest %s",
			FormatDuration(d.Average), FormatDuration(d.Total),
			FormatDuration(d.Fastest), FormatDuration(d.Slowest))))
	}

	section("Weak topics")
	if len(d.WeakTopics) == 0 {
		center(theme.Hint.Render("Nothing missed"))
	}
	for _, wt := range d.WeakTopics {
		mark := lipgloss.NewStyle().Foreground(theme.Error).Render("●")
		if wt.LastCorrect {
			mark = lipgloss.NewStyle().Foreground(theme.Success).Render("●")
		}
		title := layout.PadRight(layout.Truncate(firstLine(wt.Title), cw-4), cw-4)
		center(mark + " " + theme.Body.Render(title))
	}

	section("Recommendations")
	for _, r := range d.Recommendations {
		center(lipgloss.NewStyle().Foreground(theme.Accent).Width(cw).Render(r))
	}

	return b.String()
}

// FormatDuration renders d as seconds with one decimal under a minute and
// as m:ss above.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
