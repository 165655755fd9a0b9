package console

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizflip/internal/catalog"
	"github.com/abhisek/quizflip/internal/playground"
	"github.com/abhisek/quizflip/internal/router"
)

type stubRunner struct {
	res   *playground.Result
	err   error
	calls int
	lang  string
}

func (r *stubRunner) Run(_ context.Context, lang, _ string) (*playground.Result, error) {
	r.calls++
	r.lang = lang
	return r.res, r.err
}

func testQuestion() *catalog.Question {
	return &catalog.Question{Title: "What prints?", Code: "console.log(1)", Lang: "js"}
}

func runInit(t *testing.T, s *Screen) {
	t.Helper()
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("Init returned no command")
	}
	s.Update(cmd())
}

func TestRunsOnInit(t *testing.T) {
	r := &stubRunner{res: &playground.Result{Entries: []playground.Entry{
		{Kind: playground.KindLog, Message: "1"},
		{Kind: playground.KindError, Message: "warning: x"},
	}}}
	s := New(r, testQuestion())
	runInit(t, s)

	if r.calls != 1 || r.lang != "javascript" {
		t.Errorf("calls = %d, lang = %q", r.calls, r.lang)
	}
	view := s.View(80, 24)
	if !strings.Contains(view, "warning: x") || !strings.Contains(view, "exit 0") {
		t.Errorf("view missing output:\n%s", view)
	}
}

func TestNoOutput(t *testing.T) {
	s := New(&stubRunner{res: &playground.Result{}}, testQuestion())
	runInit(t, s)
	if view := s.View(80, 24); !strings.Contains(view, playground.NoOutput) {
		t.Errorf("view missing %q:\n%s", playground.NoOutput, view)
	}
}

func TestUnsupportedLanguage(t *testing.T) {
	s := New(&stubRunner{err: playground.ErrUnsupportedLanguage}, testQuestion())
	runInit(t, s)
	if view := s.View(80, 24); !strings.Contains(view, "not supported") {
		t.Errorf("view = %s", view)
	}
}

func TestRerunAndBack(t *testing.T) {
	r := &stubRunner{res: &playground.Result{}}
	s := New(r, testQuestion())
	runInit(t, s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter did not rerun")
	}
	s.Update(cmd())
	if r.calls != 2 {
		t.Errorf("calls = %d, want 2", r.calls)
	}

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc returned no command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc did not pop the screen")
	}
}
