package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizflip/internal/router"
	"github.com/abhisek/quizflip/internal/store"
)

type stubSource struct {
	sessions []store.SessionEvent
	hardest  []store.QuestionTally
	err      error
}

func (s *stubSource) QuerySessions(context.Context, store.QueryOpts) ([]store.SessionEvent, error) {
	return s.sessions, s.err
}

func (s *stubSource) HardestQuestions(context.Context, int) ([]store.QuestionTally, error) {
	return s.hardest, nil
}

func load(t *testing.T, h *HistoryScreen) {
	t.Helper()
	h.Update(h.Init()())
}

func endEvent(answered, wrong int, sets ...string) store.SessionEvent {
	return store.SessionEvent{
		Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		SessionEventData: store.SessionEventData{
			Action: "end", Sets: sets, Questions: 10, Answered: answered, Wrong: wrong, DurationSecs: 125,
		},
	}
}

func TestOnlyFinishedSessionsListed(t *testing.T) {
	src := &stubSource{sessions: []store.SessionEvent{
		endEvent(4, 1, "sample:go-basics"),
		{SessionEventData: store.SessionEventData{Action: "start"}},
	}}
	h := New(src)
	load(t, h)

	if len(h.runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(h.runs))
	}
	view := h.View(120, 30)
	if !strings.Contains(view, "4/10 answered") || !strings.Contains(view, "75% accuracy") || !strings.Contains(view, "2:05") {
		t.Errorf("view:\n%s", view)
	}
}

func TestSelectedRunShowsDetail(t *testing.T) {
	h := New(&stubSource{sessions: []store.SessionEvent{
		endEvent(1, 0, "a.json", "b.json"),
		endEvent(3, 2, "sample:go-basics"),
	}})
	load(t, h)

	view := h.View(120, 30)
	if !strings.Contains(view, "Sets: a.json, b.json") || strings.Contains(view, "sample:go-basics") {
		t.Fatalf("first run not selected:\n%s", view)
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if h.cursor != 1 {
		t.Errorf("cursor = %d, want 1 (clamped)", h.cursor)
	}
	if view := h.View(120, 30); !strings.Contains(view, "Sets: sample:go-basics") || !strings.Contains(view, "Missed: 2") {
		t.Errorf("second run detail missing:\n%s", view)
	}

	h.Update(tea.KeyPressMsg{Code: 'g', Text: "g"})
	if h.cursor != 0 {
		t.Errorf("cursor = %d after g, want 0", h.cursor)
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		n, cursor, height int
		from, to          int
	}{
		{3, 2, 10, 0, 3},
		{20, 0, 5, 0, 5},
		{20, 10, 5, 8, 13},
		{20, 19, 5, 15, 20},
	}
	for _, tt := range tests {
		if from, to := window(tt.n, tt.cursor, tt.height); from != tt.from || to != tt.to {
			t.Errorf("window(%d, %d, %d) = %d, %d, want %d, %d", tt.n, tt.cursor, tt.height, from, to, tt.from, tt.to)
		}
	}
}

func TestBackPops(t *testing.T) {
	h := New(&stubSource{})
	load(t, h)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc returned no command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc did not pop the screen")
	}
}

func TestHardestListed(t *testing.T) {
	h := New(&stubSource{
		sessions: []store.SessionEvent{endEvent(2, 2)},
		hardest:  []store.QuestionTally{{QuestionID: "q_2", Title: "Hoisting", Attempts: 3, Correct: 1}},
	})
	load(t, h)
	if view := h.View(120, 30); !strings.Contains(view, "Hoisting") || !strings.Contains(view, "2/3 wrong") {
		t.Errorf("view:\n%s", view)
	}
}

func TestLoadError(t *testing.T) {
	h := New(&stubSource{err: errors.New("db locked")})
	load(t, h)
	if view := h.View(80, 24); !strings.Contains(view, "db locked") {
		t.Errorf("view:\n%s", view)
	}
}

func TestEmpty(t *testing.T) {
	h := New(&stubSource{})
	load(t, h)
	if view := h.View(80, 24); !strings.Contains(view, "No finished sessions") {
		t.Errorf("view:\n%s", view)
	}
}
