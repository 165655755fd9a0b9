// Package app wires the review screen into a Bubble Tea program.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizflip/internal/router"
	"github.com/abhisek/quizflip/internal/screen"
	"github.com/abhisek/quizflip/internal/screens/review"
	"github.com/abhisek/quizflip/internal/session"
	"github.com/abhisek/quizflip/internal/store"
	"github.com/abhisek/quizflip/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Review review.Deps
	// Events records run start and end. Optional.
	Events store.EventRepo
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the review screen.
func newAppModel(root screen.Screen) AppModel {
	return AppModel{
		router: router.New(root),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Back()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the active screen inside the header and footer.
func (m AppModel) render() string {
	active := m.router.Active()
	chrome := layout.Chrome{Title: active.Title()}
	if sp, ok := active.(screen.StatusProvider); ok {
		chrome.Status = sp.Status()
	}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		chrome.Hints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		chrome.Hints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return chrome.Render(m.width, m.height, m.router.View)
}

// Run starts the Bubble Tea program and blocks until the user quits. Run
// start and end are recorded through opts.Events when set.
func Run(ctx context.Context, opts Options) error {
	engine := opts.Review.Engine
	started := time.Now()
	record(ctx, opts, store.SessionEventData{
		SessionID: engine.SessionID(),
		Action:    "start",
		Sets:      opts.Review.Sets,
	})

	p := tea.NewProgram(newAppModel(review.New(opts.Review)), tea.WithContext(ctx))
	_, err := p.Run()

	st := engine.Stats()
	record(context.WithoutCancel(ctx), opts, store.SessionEventData{
		SessionID:    engine.SessionID(),
		Action:       "end",
		Sets:         engine.Catalog().Sets,
		Questions:    st.Total,
		Answered:     st.Answered,
		Wrong:        st.Wrong,
		DurationSecs: int(time.Since(started).Seconds()),
	})

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

func record(ctx context.Context, opts Options, ev store.SessionEventData) {
	if opts.Events == nil {
		return
	}
	if err := opts.Events.AppendSessionEvent(ctx, ev); err != nil {
		logger(opts).Error("session_event.append_failed", map[string]any{"action": ev.Action, "error": err.Error()})
	}
}

func logger(opts Options) session.Logger {
	if opts.Review.Log != nil {
		return opts.Review.Log
	}
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}
