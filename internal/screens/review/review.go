// Package review implements the flashcard review screen that drives a
// session.Engine.
package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizflip/internal/answerkey"
	"github.com/abhisek/quizflip/internal/catalog"
	"github.com/abhisek/quizflip/internal/explain"
	"github.com/abhisek/quizflip/internal/router"
	"github.com/abhisek/quizflip/internal/screen"
	"github.com/abhisek/quizflip/internal/screens/console"
	"github.com/abhisek/quizflip/internal/screens/dashboard"
	"github.com/abhisek/quizflip/internal/screens/history"
	"github.com/abhisek/quizflip/internal/screens/picker"
	"github.com/abhisek/quizflip/internal/session"
	"github.com/abhisek/quizflip/internal/ui/layout"
	"github.com/abhisek/quizflip/internal/ui/theme"
)

// loadTimeout bounds a catalog load started from the screen.
const loadTimeout = 30 * time.Second

// Explainer produces LLM explanations.
type Explainer interface {
	Explain(ctx context.Context, q *catalog.Question, selected answerkey.Key) (*explain.Explanation, error)
}

// Deps are the collaborators of the review screen. Engine is required; the
// others are optional and disable their key when nil.
type Deps struct {
	Engine *session.Engine
	// Sets are the set references loaded on Init.
	Sets []string
	// Dir resolves relative set references and lists sets in the picker.
	Dir       string
	Explainer Explainer
	Runner    console.Runner
	History   history.Source
	Log       session.Logger
}

// Screen is the review screen.
type Screen struct {
	deps   Deps
	engine *session.Engine
	sets   []string

	keys     keyMap
	help     help.Model
	showHelp bool

	loading bool
	loadErr error

	// last is the outcome of the most recent scored answer.
	last    session.Outcome
	flipped bool

	explaining  bool
	explanation *explain.Explanation
	explainErr  string

	status string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New creates the review screen.
func New(deps Deps) *Screen {
	s := &Screen{
		deps:   deps,
		engine: deps.Engine,
		sets:   append([]string(nil), deps.Sets...),
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	if deps.Log == nil {
		s.deps.Log = nopLogger{}
	}
	s.keys.Explain.SetEnabled(deps.Explainer != nil)
	s.keys.Play.SetEnabled(deps.Runner != nil)
	s.keys.History.SetEnabled(deps.History != nil)
	return s
}

type nopLogger struct{}

func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}

func (s *Screen) Init() tea.Cmd {
	return s.load(s.sets, true)
}

func (s *Screen) Title() string {
	return "Review"
}

// Status is the header status: progress and mode.
func (s *Screen) Status() string {
	done, total := s.engine.Counts()
	return fmt.Sprintf("%d/%d · %d%% · %s", done, total, s.engine.Progress(), s.engine.Mode())
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return hints(s.keys.ShortHelp())
}

// load starts a catalog load for refs as a new loader generation.
func (s *Screen) load(refs []string, first bool) tea.Cmd {
	loader := s.engine.Loader()
	gen := loader.Begin()
	sources := catalog.ParseSources(refs, s.deps.Dir)
	refs = append([]string(nil), refs...)
	s.loading = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		c, err := loader.LoadGeneration(ctx, gen, sources)
		return catalogLoadedMsg{Catalog: c, Err: err, First: first, Sets: refs}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		return s.handleLoaded(msg)

	case explainedMsg:
		return s.handleExplained(msg)

	case router.ResumedMsg:
		// Statuses set before a child screen opened are stale now.
		if !s.loading {
			s.status = ""
		}
		return s, nil

	case picker.ChosenMsg:
		s.sets = msg.Sets
		s.status = ""
		return s, s.load(msg.Sets, false)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleLoaded(msg catalogLoadedMsg) (screen.Screen, tea.Cmd) {
	if session.IsSuperseded(msg.Err) {
		return s, nil
	}
	s.loading = false
	if msg.Err != nil {
		s.loadErr = msg.Err
		s.deps.Log.Error("catalog.load_failed", map[string]any{"sets": msg.Sets, "error": msg.Err.Error()})
		return s, nil
	}

	var err error
	if msg.First {
		err = s.engine.OpenCatalog(context.Background(), msg.Catalog)
	} else {
		err = s.engine.ApplyCatalog(msg.Catalog)
	}
	if session.IsSuperseded(err) {
		return s, nil
	}
	s.loadErr = nil
	s.resetView()
	theme.Apply(s.engine.Theme())
	return s, nil
}

func (s *Screen) handleExplained(msg explainedMsg) (screen.Screen, tea.Cmd) {
	q, ok := s.engine.CurrentQuestion()
	if !ok || q.ID != msg.QuestionID {
		return s, nil
	}
	s.explaining = false
	if msg.Err != nil {
		s.explainErr = msg.Err.Error()
		return s, nil
	}
	s.explanation = msg.Explanation
	return s, nil
}

// resetView clears per-card presentation state after the current question
// changes.
func (s *Screen) resetView() {
	s.flipped = false
	s.last = session.Outcome{}
	s.explaining = false
	s.explanation = nil
	s.explainErr = ""
}

// answered reports whether the current view has a scored answer.
func (s *Screen) answered(q *catalog.Question) bool {
	return s.engine.Locked() && s.last.Scored && s.last.QuestionID == q.ID
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	s.status = ""
	q, hasQ := s.engine.CurrentQuestion()

	if hasQ && !s.engine.Locked() {
		if k, ok := answerKey(msg, q); ok {
			s.submit(s.engine.SubmitAnswer(k))
			return s, nil
		}
		if i, ok := optionIndex(msg, q); ok {
			s.submit(s.engine.SelectOption(i))
			return s, nil
		}
	}

	switch {
	case key.Matches(msg, s.keys.Quit):
		return s, tea.Quit

	case key.Matches(msg, s.keys.Help):
		s.showHelp = !s.showHelp

	case key.Matches(msg, s.keys.Next):
		s.engine.Next()
		s.resetView()

	case key.Matches(msg, s.keys.Prev):
		s.engine.Prev()
		s.resetView()

	case key.Matches(msg, s.keys.Random):
		s.engine.RandomNext()
		s.resetView()

	case key.Matches(msg, s.keys.Shuffle):
		s.engine.Shuffle()
		s.resetView()
		s.status = "Shuffled"

	case key.Matches(msg, s.keys.Mode):
		s.engine.ToggleMode()
		s.resetView()
		if s.engine.Mode() == session.ModeWrongOnly && len(s.engine.Missed()) == 0 {
			s.status = "Nothing missed yet, showing every question"
		}

	case key.Matches(msg, s.keys.Flip):
		if hasQ {
			s.flipped = !s.flipped
		}

	case key.Matches(msg, s.keys.Reset):
		s.engine.ResetSession()
		s.resetView()
		s.status = "Session reset"

	case key.Matches(msg, s.keys.Theme):
		name := theme.Apply(theme.Next(s.engine.Theme()))
		s.engine.SetTheme(name)
		s.status = "Theme: " + name

	case key.Matches(msg, s.keys.Explain):
		return s, s.explain(q, hasQ)

	case key.Matches(msg, s.keys.Play):
		return s, s.play(q, hasQ)

	case key.Matches(msg, s.keys.Stats):
		return s, router.Open(dashboard.New(s.engine))

	case key.Matches(msg, s.keys.History):
		return s, router.Open(history.New(s.deps.History))

	case key.Matches(msg, s.keys.OpenSets):
		return s, router.Open(picker.New(s.deps.Dir, s.sets))
	}
	return s, nil
}

func (s *Screen) submit(out session.Outcome) {
	if !out.Scored {
		return
	}
	s.last = out
	s.flipped = true
}

func (s *Screen) explain(q *catalog.Question, ok bool) tea.Cmd {
	if !ok || s.explaining {
		return nil
	}
	if s.explanation != nil {
		s.flipped = true
		return nil
	}
	s.explaining = true
	s.explainErr = ""
	s.flipped = true

	exp := s.deps.Explainer
	qc := *q
	selected := answerkey.None
	if s.answered(q) {
		selected = s.last.Selected
	}
	return func() tea.Msg {
		e, err := exp.Explain(context.Background(), &qc, selected)
		return explainedMsg{QuestionID: qc.ID, Explanation: e, Err: err}
	}
}

func (s *Screen) play(q *catalog.Question, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	if strings.TrimSpace(q.Code) == "" {
		s.status = "This question has no code to run"
		return nil
	}
	return router.Open(console.New(s.deps.Runner, q))
}

// answerKey maps an upper-case letter to an answer key when the question
// offers an option with that key. Other letters fall through to the key map.
func answerKey(msg tea.KeyPressMsg, q *catalog.Question) (answerkey.Key, bool) {
	text := msg.String()
	if len(text) != 1 || text[0] < 'A' || text[0] > 'Z' {
		return answerkey.None, false
	}
	k := answerkey.Key(text)
	if _, ok := q.OptionFor(k); !ok {
		return answerkey.None, false
	}
	return k, true
}

// optionIndex maps 1-9 to an option position.
func optionIndex(msg tea.KeyPressMsg, q *catalog.Question) (int, bool) {
	text := msg.String()
	if len(text) != 1 || text[0] < '1' || text[0] > '9' {
		return 0, false
	}
	i := int(text[0] - '1')
	return i, i < len(q.Options)
}
