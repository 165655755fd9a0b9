package session

import "time"

// Mode selects which questions are active.
type Mode int

const (
	ModeAll       Mode = iota // Every question in catalog order
	ModeWrongOnly             // Only questions answered wrong at least once
)

// String returns the persisted name of the mode.
func (m Mode) String() string {
	if m == ModeWrongOnly {
		return "wrongs"
	}
	return "all"
}

// ModeFromString parses a persisted mode name. Unknown names report false.
func ModeFromString(s string) (Mode, bool) {
	switch s {
	case "all", "":
		return ModeAll, true
	case "wrongs":
		return ModeWrongOnly, true
	}
	return ModeAll, false
}

// DefaultTheme is the presentation theme used until one is chosen.
const DefaultTheme = "default"

// QuestionStats is the timing aggregate kept per question id.
type QuestionStats struct {
	// Attempts counts scored answers.
	Attempts int

	// TimeSpent is the cumulative time between a question becoming visible
	// and its scored answer.
	TimeSpent time.Duration

	// LastCorrect records whether the most recent scored answer was correct.
	LastCorrect bool
}

// State is the mutable review session record owned by an Engine.
type State struct {
	// Mode selects the active list.
	Mode Mode

	// Cursor indexes the active list, not the catalog.
	Cursor int

	// Locked is set once the current question view has been scored and
	// cleared by the next navigation step.
	Locked bool

	// CompletedAll holds catalog positions answered in ModeAll.
	CompletedAll map[int]bool

	// CompletedWrong holds ids answered in ModeWrongOnly.
	CompletedWrong map[string]bool

	// Missed holds ids ever answered wrong, in either mode. Only a reset
	// removes entries.
	Missed map[string]bool

	// Analytics maps question id to timing aggregates.
	Analytics map[string]*QuestionStats

	// Theme is the selected presentation theme name.
	Theme string
}

// NewState creates a default state with initialized maps.
func NewState() *State {
	return &State{
		Mode:           ModeAll,
		CompletedAll:   make(map[int]bool),
		CompletedWrong: make(map[string]bool),
		Missed:         make(map[string]bool),
		Analytics:      make(map[string]*QuestionStats),
		Theme:          DefaultTheme,
	}
}

// resetProgress clears completion and missed history and returns to the
// first question in ModeAll. Analytics and theme survive.
func (s *State) resetProgress() {
	s.Mode = ModeAll
	s.Cursor = 0
	s.Locked = false
	s.CompletedAll = make(map[int]bool)
	s.CompletedWrong = make(map[string]bool)
	s.Missed = make(map[string]bool)
}

// stats returns the analytics entry for id, creating it when absent.
func (s *State) stats(id string) *QuestionStats {
	qs, ok := s.Analytics[id]
	if !ok {
		qs = &QuestionStats{}
		s.Analytics[id] = qs
	}
	return qs
}
