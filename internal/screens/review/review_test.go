package review

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizflip/internal/answerkey"
	"github.com/abhisek/quizflip/internal/catalog"
	"github.com/abhisek/quizflip/internal/explain"
	"github.com/abhisek/quizflip/internal/playground"
	"github.com/abhisek/quizflip/internal/router"
	"github.com/abhisek/quizflip/internal/screens/console"
	"github.com/abhisek/quizflip/internal/screens/picker"
	"github.com/abhisek/quizflip/internal/session"
	"github.com/abhisek/quizflip/internal/ui/theme"
)

const testSet = `[
  {"title": "First?", "options": ["A) one", "B) two", "C) three"], "answer": "A", "explain": "Because one."},
  {"title": "Second?", "options": ["A) one", "B) two"], "answer": "B"},
  {"title": "Third?", "code": "console.log(3)", "options": ["A) 1", "B) 2", "C) 3"], "answer": "C"}
]`

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

type stubExplainer struct {
	calls    int
	selected answerkey.Key
	err      error
}

func (e *stubExplainer) Explain(_ context.Context, q *catalog.Question, selected answerkey.Key) (*explain.Explanation, error) {
	e.calls++
	e.selected = selected
	if e.err != nil {
		return nil, e.err
	}
	return &explain.Explanation{Summary: "Summary of " + q.Title, WhyCorrect: "Reasons.", Pitfalls: []string{"trap"}}, nil
}

type stubRunner struct{}

func (stubRunner) Run(context.Context, string, string) (*playground.Result, error) {
	return &playground.Result{}, nil
}

type fixture struct {
	screen  *Screen
	engine  *session.Engine
	gateway *session.MemoryGateway
	dir     string
	setPath string
}

func newFixture(t *testing.T, deps Deps) *fixture {
	t.Helper()
	t.Cleanup(func() { theme.Apply(theme.DefaultName) })

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "set.json"), []byte(testSet), 0o600); err != nil {
		t.Fatal(err)
	}
	gw := session.NewMemoryGateway()
	if deps.Engine == nil {
		deps.Engine = session.NewEngine(session.WithGateway(gw))
	}
	if deps.Sets == nil {
		deps.Sets = []string{"set.json"}
	}
	deps.Dir = dir
	return &fixture{
		screen:  New(deps),
		engine:  deps.Engine,
		gateway: gw,
		dir:     dir,
		setPath: filepath.Join(dir, "set.json"),
	}
}

// run executes cmd and feeds its message back into the screen.
func (f *fixture) run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	f.screen.Update(msg)
	return msg
}

func (f *fixture) press(msgs ...tea.KeyPressMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = f.screen.Update(m)
	}
	return cmd
}

func (f *fixture) init(t *testing.T) {
	t.Helper()
	f.run(t, f.screen.Init())
}

func TestInitLoadsAndRestores(t *testing.T) {
	f := newFixture(t, Deps{})
	rec := &session.Record{Wrongs: []string{"q_1"}, AnsweredAll: []int{0}, Index: 1, Mode: "all", Theme: "light"}
	rec.Sets = []string{f.setPath}
	if err := f.gateway.Save(context.Background(), rec); err != nil {
		t.Fatal(err)
	}

	f.init(t)

	if f.engine.Catalog().Len() != 3 {
		t.Fatalf("catalog len = %d, want 3", f.engine.Catalog().Len())
	}
	if f.engine.Cursor() != 1 || !f.engine.IsMissed("q_1") {
		t.Errorf("record not restored: cursor=%d missed=%v", f.engine.Cursor(), f.engine.Missed())
	}
	if theme.Current() != "light" {
		t.Errorf("theme = %q, want light", theme.Current())
	}
	if !strings.Contains(f.screen.View(100, 30), "Second?") {
		t.Error("view does not show the restored question")
	}
}

func TestAnswerWrongRevealsBack(t *testing.T) {
	f := newFixture(t, Deps{})
	f.init(t)

	f.press(keyPress('B'))

	if !f.engine.IsMissed("q_1") {
		t.Error("wrong answer not recorded as missed")
	}
	if !f.screen.flipped {
		t.Error("answering did not flip the card")
	}
	view := f.screen.View(100, 30)
	for _, want := range []string{"Not quite, you picked B", "Answer: A) one", "Because one."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	// A second answer on the same view is ignored.
	f.press(keyPress('A'))
	if st := f.engine.Stats(); st.Answered != 1 || st.Wrong != 1 {
		t.Errorf("stats = %+v after second answer", st)
	}
}

func TestDigitSelectsOption(t *testing.T) {
	f := newFixture(t, Deps{})
	f.init(t)

	f.press(keyPress('1'))
	if !f.screen.last.IsCorrect {
		t.Errorf("outcome = %+v, want correct", f.screen.last)
	}
}

func TestLetterWithoutOptionFallsThrough(t *testing.T) {
	f := newFixture(t, Deps{})
	f.init(t)
	f.press(keyPress('B'))

	// q_1 has no option R, and the view is locked, so R resets.
	f.press(keyPress('R'))
	if len(f.engine.Missed()) != 0 || f.engine.Stats().Answered != 0 {
		t.Errorf("R did not reset: missed=%v", f.engine.Missed())
	}
	if !strings.Contains(f.screen.status, "reset") {
		t.Errorf("status = %q", f.screen.status)
	}
}

func TestNavigationClearsCard(t *testing.T) {
	f := newFixture(t, Deps{})
	f.init(t)

	f.press(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if !f.screen.flipped {
		t.Fatal("space did not flip")
	}
	f.press(keyPress('l'))
	if f.engine.Cursor() != 1 || f.screen.flipped {
		t.Errorf("cursor = %d, flipped = %v", f.engine.Cursor(), f.screen.flipped)
	}
	f.press(tea.KeyPressMsg{Code: tea.KeyLeft})
	f.press(tea.KeyPressMsg{Code: tea.KeyLeft})
	if f.engine.Cursor() != 2 {
		t.Errorf("cursor = %d after wrapping back, want 2", f.engine.Cursor())
	}
}

func TestToggleWrongOnly(t *testing.T) {
	f := newFixture(t, Deps{})
	f.init(t)

	f.press(keyPress('w'))
	if f.engine.Mode() != session.ModeWrongOnly {
		t.Fatalf("mode = %v", f.engine.Mode())
	}
	if !strings.Contains(f.screen.status, "Nothing missed") {
		t.Errorf("status = %q", f.screen.status)
	}
	if !strings.Contains(f.screen.Status(), "wrongs") {
		t.Errorf("header status = %q", f.screen.Status())
	}
}

func TestThemeCycles(t *testing.T) {
	f := newFixture(t, Deps{})
	f.init(t)

	f.press(keyPress('t'))
	if f.engine.Theme() != "light" || theme.Current() != "light" {
		t.Errorf("engine theme = %q, applied = %q", f.engine.Theme(), theme.Current())
	}
	rec, _ := f.gateway.Load(context.Background())
	if rec.Theme != "light" {
		t.Errorf("persisted theme = %q", rec.Theme)
	}
}

func TestExplain(t *testing.T) {
	ex := &stubExplainer{}
	f := newFixture(t, Deps{Explainer: ex})
	f.init(t)
	f.press(keyPress('C'))

	f.run(t, f.press(keyPress('x')))

	if ex.calls != 1 || ex.selected != "C" {
		t.Errorf("calls = %d, selected = %q", ex.calls, ex.selected)
	}
	view := f.screen.View(100, 40)
	if !strings.Contains(view, "Summary of First?") || !strings.Contains(view, "trap") {
		t.Errorf("explanation not shown:\n%s", view)
	}

	// A cached explanation is shown without another request.
	if cmd := f.press(keyPress('x')); cmd != nil {
		t.Error("second x started another request")
	}
}

func TestExplainError(t *testing.T) {
	f := newFixture(t, Deps{Explainer: &stubExplainer{err: errors.New("rate limited")}})
	f.init(t)
	f.run(t, f.press(keyPress('x')))
	if !strings.Contains(f.screen.View(100, 30), "Explanation failed: rate limited") {
		t.Error("error not shown")
	}
}

func TestExplainStaleResultDropped(t *testing.T) {
	f := newFixture(t, Deps{Explainer: &stubExplainer{}})
	f.init(t)
	cmd := f.press(keyPress('x'))
	f.press(keyPress('l'))
	f.run(t, cmd)
	if f.screen.explanation != nil {
		t.Error("explanation for a previous question was applied")
	}
}

func TestExplainDisabledWithoutProvider(t *testing.T) {
	f := newFixture(t, Deps{})
	f.init(t)
	if cmd := f.press(keyPress('x')); cmd != nil {
		t.Error("x returned a command without an explainer")
	}
}

func TestPlay(t *testing.T) {
	f := newFixture(t, Deps{Runner: stubRunner{}})
	f.init(t)

	if cmd := f.press(keyPress('p')); cmd != nil {
		t.Error("p on a question without code returned a command")
	}
	if !strings.Contains(f.screen.status, "no code") {
		t.Errorf("status = %q", f.screen.status)
	}

	f.press(keyPress('l'), keyPress('l'))
	cmd := f.press(keyPress('p'))
	if cmd == nil {
		t.Fatal("p returned no command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("p did not push a screen")
	}
	if _, ok := push.Screen.(*console.Screen); !ok {
		t.Errorf("pushed %T, want *console.Screen", push.Screen)
	}
}

func TestResumedClearsStatus(t *testing.T) {
	f := newFixture(t, Deps{})
	f.init(t)

	f.press(keyPress('s'))
	if f.screen.status == "" {
		t.Fatal("shuffle set no status")
	}
	f.screen.Update(router.ResumedMsg{From: "Analytics"})
	if f.screen.status != "" {
		t.Errorf("status = %q after resume, want empty", f.screen.status)
	}
}

func TestOpenSetsAndApplyEmpty(t *testing.T) {
	f := newFixture(t, Deps{})
	f.init(t)

	cmd := f.press(keyPress('o'))
	if cmd == nil {
		t.Fatal("o returned no command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("o did not push a screen")
	}
	if _, ok := push.Screen.(*picker.Screen); !ok {
		t.Errorf("pushed %T, want *picker.Screen", push.Screen)
	}

	_, cmd = f.screen.Update(picker.ChosenMsg{})
	f.run(t, cmd)

	if f.engine.Catalog().Len() != 0 {
		t.Errorf("catalog len = %d, want 0", f.engine.Catalog().Len())
	}
	if !strings.Contains(f.screen.View(100, 30), "Select at least one question set") {
		t.Error("empty-state card not shown")
	}
	if f.engine.Progress() != 0 {
		t.Errorf("progress = %d, want 0", f.engine.Progress())
	}
}

func TestSupersededLoadIgnored(t *testing.T) {
	f := newFixture(t, Deps{})
	f.init(t)

	stale := f.screen.load([]string{"set.json"}, false)
	fresh := f.screen.load(nil, false)

	f.run(t, fresh)
	f.run(t, stale)

	if f.engine.Catalog().Len() != 0 {
		t.Errorf("stale load replaced the newer catalog: len = %d", f.engine.Catalog().Len())
	}
}

func TestSupersededFailedLoadIgnored(t *testing.T) {
	f := newFixture(t, Deps{})
	f.init(t)

	stale := f.screen.load([]string{"missing.json"}, false)
	fresh := f.screen.load([]string{"set.json"}, false)

	f.run(t, fresh)
	f.run(t, stale)

	if f.engine.Catalog().Len() != 3 {
		t.Errorf("catalog len = %d, want 3", f.engine.Catalog().Len())
	}
	if f.screen.loadErr != nil {
		t.Errorf("stale failure recorded: %v", f.screen.loadErr)
	}
	if strings.Contains(f.screen.View(100, 30), "Could not load sets") {
		t.Error("stale failure shown over the newer catalog")
	}
}

func TestLoadErrorKeepsCatalog(t *testing.T) {
	f := newFixture(t, Deps{})
	f.init(t)
	f.press(keyPress('B'))

	_, cmd := f.screen.Update(picker.ChosenMsg{Sets: []string{"missing.json"}})
	f.run(t, cmd)

	if f.engine.Catalog().Len() != 3 || !f.engine.IsMissed("q_1") {
		t.Error("failed load changed catalog or state")
	}
	if !strings.Contains(f.screen.View(100, 30), "Could not load sets") {
		t.Error("load error not shown")
	}
}

func TestFinishedCard(t *testing.T) {
	f := newFixture(t, Deps{})
	f.init(t)
	for _, k := range []rune{'A', 'l', 'B', 'l', 'C', 'l'} {
		f.press(keyPress(k))
	}
	if !f.engine.Finished() {
		t.Fatal("engine not finished after answering everything")
	}
	if !strings.Contains(f.screen.View(100, 30), "All done!") {
		t.Error("finish card not shown")
	}
}

func TestQuit(t *testing.T) {
	f := newFixture(t, Deps{})
	f.init(t)
	cmd := f.press(keyPress('q'))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
