package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizflip/internal/screen"
)

// stubScreen records what the router delivers to it.
type stubScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestOpenPushesAndInits(t *testing.T) {
	root := &stubScreen{title: "Review"}
	r := New(root)

	picker := &stubScreen{title: "Sets"}
	r.Update(Open(picker)())

	if r.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", r.Depth())
	}
	if r.Active() != picker {
		t.Errorf("Active() = %q, want Sets", r.Active().Title())
	}
	if !picker.initRan {
		t.Error("Init did not run on the pushed screen")
	}
	if r.View(80, 24) != "Sets" {
		t.Errorf("View() = %q, want the pushed screen", r.View(80, 24))
	}
}

func TestBackResumesUncoveredScreen(t *testing.T) {
	root := &stubScreen{title: "Review"}
	r := New(root)
	r.Push(&stubScreen{title: "Analytics"})

	cmd := r.Update(Back()())
	if r.Depth() != 1 || r.Active() != root {
		t.Fatalf("Depth() = %d, active = %q after Back", r.Depth(), r.Active().Title())
	}
	if cmd == nil {
		t.Fatal("Pop returned no command")
	}

	r.Update(cmd())
	if len(root.got) != 1 {
		t.Fatalf("root received %d messages, want 1", len(root.got))
	}
	if got, ok := root.got[0].(ResumedMsg); !ok || got.From != "Analytics" {
		t.Errorf("root received %#v, want ResumedMsg from Analytics", root.got[0])
	}
}

func TestPopKeepsRoot(t *testing.T) {
	root := &stubScreen{title: "Review"}
	r := New(root)

	if cmd := r.Pop(); cmd != nil {
		t.Error("Pop at the root returned a command")
	}
	if r.Depth() != 1 || r.Active() != root {
		t.Errorf("root was popped: depth %d", r.Depth())
	}
}

func TestUpdateForwardsToActiveOnly(t *testing.T) {
	root := &stubScreen{title: "Review"}
	r := New(root)
	top := &stubScreen{title: "Console"}
	r.Push(top)

	type ping struct{}
	r.Update(ping{})

	if len(top.got) != 1 {
		t.Errorf("active screen received %d messages, want 1", len(top.got))
	}
	if len(root.got) != 0 {
		t.Errorf("covered screen received %d messages, want 0", len(root.got))
	}
}
