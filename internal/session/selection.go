package session

import "github.com/abhisek/quizflip/internal/catalog"

// ActiveList returns the questions navigable under the current mode. In
// ModeWrongOnly it is the catalog filtered to missed ids, falling back to
// the full catalog when nothing has been missed. The returned pointers alias
// the catalog.
func (e *Engine) ActiveList() []*catalog.Question {
	qs := e.catalog.Questions
	all := make([]*catalog.Question, len(qs))
	for i := range qs {
		all[i] = &qs[i]
	}
	if e.state.Mode != ModeWrongOnly {
		return all
	}

	var wrong []*catalog.Question
	for _, q := range all {
		if e.state.Missed[q.ID] {
			wrong = append(wrong, q)
		}
	}
	if len(wrong) == 0 {
		return all
	}
	return wrong
}

// CurrentQuestion returns active[cursor]. A cursor left outside the active
// list (for example after the list shrank) is reset to 0 first. It reports
// false when the active list is empty.
func (e *Engine) CurrentQuestion() (*catalog.Question, bool) {
	active := e.ActiveList()
	if len(active) == 0 {
		return nil, false
	}
	e.clampCursor()
	return active[e.state.Cursor], true
}

// clampCursor resets an out-of-range cursor to 0.
func (e *Engine) clampCursor() {
	n := len(e.ActiveList())
	if e.state.Cursor < 0 || e.state.Cursor >= n {
		e.state.Cursor = 0
	}
}
