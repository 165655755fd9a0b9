package session

import "math"

// Counts returns how many active questions count as done under the current
// mode, and the active list length.
//
// In ModeAll done is the number of positions answered in that mode. In
// ModeWrongOnly it is the number of active questions answered in that mode.
func (e *Engine) Counts() (done, total int) {
	active := e.ActiveList()
	total = len(active)
	if e.state.Mode == ModeAll {
		return len(e.state.CompletedAll), total
	}
	for _, q := range active {
		if e.state.CompletedWrong[q.ID] {
			done++
		}
	}
	return done, total
}

// Progress returns round(100*done/total), with an empty active list
// reporting 0.
func (e *Engine) Progress() int {
	done, total := e.Counts()
	if total == 0 {
		total = 1
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}

// Finished reports whether every active question is done in the current
// mode.
func (e *Engine) Finished() bool {
	done, total := e.Counts()
	return total > 0 && done >= total
}
