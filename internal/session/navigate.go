package session

// Next moves to the following active question, wrapping at the end.
func (e *Engine) Next() {
	e.step(1)
}

// Prev moves to the preceding active question, wrapping at the start.
func (e *Engine) Prev() {
	e.step(-1)
}

func (e *Engine) step(delta int) {
	n := len(e.ActiveList())
	if n == 0 {
		return
	}
	e.clampCursor()
	e.state.Cursor = ((e.state.Cursor+delta)%n + n) % n
	e.navigated()
}

// RandomNext jumps to a uniformly drawn active question other than the
// current one. It is a no-op with fewer than two active questions.
func (e *Engine) RandomNext() {
	n := len(e.ActiveList())
	if n <= 1 {
		return
	}
	e.clampCursor()
	next := e.state.Cursor
	for next == e.state.Cursor {
		next = e.rng.IntN(n)
	}
	e.state.Cursor = next
	e.navigated()
}

// Shuffle permutes the full catalog, then returns to the first question in
// ModeAll. Positions recorded as done in ModeAll follow their questions to
// the new order.
func (e *Engine) Shuffle() {
	perm := e.catalog.Shuffle(e.rng)
	remapped := make(map[int]bool, len(e.state.CompletedAll))
	for old := range e.state.CompletedAll {
		if old >= 0 && old < len(perm) {
			remapped[perm[old]] = true
		}
	}
	e.state.CompletedAll = remapped
	e.state.Mode = ModeAll
	e.state.Cursor = 0
	e.navigated()
}

// ResetSession clears missed and completed history and returns to the first
// question in ModeAll. The catalog order is kept.
func (e *Engine) ResetSession() {
	e.state.resetProgress()
	e.navigated()
}

// SetMode switches the review mode and returns to the first question.
func (e *Engine) SetMode(m Mode) {
	e.state.Mode = m
	e.state.Cursor = 0
	e.navigated()
}

// ToggleMode switches between ModeAll and ModeWrongOnly.
func (e *Engine) ToggleMode() {
	if e.state.Mode == ModeAll {
		e.SetMode(ModeWrongOnly)
		return
	}
	e.SetMode(ModeAll)
}

// navigated unlocks the new view, restarts its timer and persists.
func (e *Engine) navigated() {
	e.state.Locked = false
	e.beginView()
	e.save()
}
