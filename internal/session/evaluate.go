package session

import (
	"context"
	"time"

	"github.com/abhisek/quizflip/internal/answerkey"
)

// Outcome reports the result of SubmitAnswer.
type Outcome struct {
	QuestionID string
	Selected   answerkey.Key
	Correct    answerkey.Key

	// CorrectResolved is false when the question's answer field has no
	// resolvable key; such a question can never be answered correctly.
	CorrectResolved bool

	IsCorrect bool

	// Scored is false when the call was a no-op: the view was already
	// locked, the selection was unresolved, or nothing is active.
	Scored bool

	// Elapsed is the time since the question became visible.
	Elapsed time.Duration
}

// SubmitAnswer scores selected against the current question. Only the first
// resolved selection per question view is scored; later calls return an
// unscored Outcome and change nothing.
func (e *Engine) SubmitAnswer(selected answerkey.Key) Outcome {
	if e.state.Locked || selected == answerkey.None {
		return Outcome{Selected: selected}
	}
	q, ok := e.CurrentQuestion()
	if !ok {
		return Outcome{Selected: selected}
	}

	e.state.Locked = true

	correct, resolved := q.CorrectKey()
	out := Outcome{
		QuestionID:      q.ID,
		Selected:        selected,
		Correct:         correct,
		CorrectResolved: resolved,
		IsCorrect:       resolved && selected == correct,
		Scored:          true,
		Elapsed:         e.now().Sub(e.shownAt),
	}
	if out.Elapsed < 0 {
		out.Elapsed = 0
	}

	if e.state.Mode == ModeAll {
		e.state.CompletedAll[e.state.Cursor] = true
	} else {
		e.state.CompletedWrong[q.ID] = true
	}

	if resolved && selected != correct {
		e.state.Missed[q.ID] = true
	}

	qs := e.state.stats(q.ID)
	qs.Attempts++
	qs.TimeSpent += out.Elapsed
	qs.LastCorrect = out.IsCorrect

	e.save()
	e.appendHistory(q.ID, q.Title, q.Set, out)
	return out
}

// SelectOption scores the option at position i of the current question,
// using the option's own key. Inert options and out-of-range positions are
// no-ops.
func (e *Engine) SelectOption(i int) Outcome {
	q, ok := e.CurrentQuestion()
	if !ok || i < 0 || i >= len(q.Options) {
		return Outcome{}
	}
	k, resolved := q.Options[i].Key()
	if !resolved {
		return Outcome{}
	}
	return e.SubmitAnswer(k)
}

func (e *Engine) appendHistory(id, title, set string, out Outcome) {
	if e.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	err := e.history.AppendAnswer(ctx, AnswerEvent{
		SessionID:  e.sessionID,
		QuestionID: id,
		Title:      title,
		Set:        set,
		Mode:       e.state.Mode.String(),
		Selected:   string(out.Selected),
		CorrectKey: string(out.Correct),
		Correct:    out.IsCorrect,
		TimeMs:     out.Elapsed.Milliseconds(),
	})
	if err != nil {
		e.log.Error("history.append_failed", map[string]any{"question": id, "error": err.Error()})
	}
}
