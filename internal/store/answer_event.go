package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/quizflip/internal/session"
)

var answerColumns = []string{
	"session_id", "question_id", "title", "set_name", "mode",
	"selected", "correct_key", "correct", "time_ms",
}

func (r *eventRepo) AppendAnswer(ctx context.Context, ev session.AnswerEvent) error {
	err := r.insert(ctx, answerEventsTable, answerColumns, []any{
		ev.SessionID, ev.QuestionID, ev.Title, ev.Set, ev.Mode,
		ev.Selected, ev.CorrectKey, ev.Correct, ev.TimeMs,
	})
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswers(ctx context.Context, opts QueryOpts) ([]Answer, error) {
	t := sqlite.Table(answerEventsTable)
	cols := append([]string{"id", "sequence", "timestamp"}, answerColumns...)
	s := applyOpts(sqlite.Select(t.Columns(cols...)...).From(t), opts)

	var out []Answer
	err := r.queryRows(ctx, s, func(rows *entsql.Rows) error {
		var a Answer
		if err := rows.Scan(
			&a.ID, &a.Sequence, &a.Timestamp,
			&a.SessionID, &a.QuestionID, &a.Title, &a.Set, &a.Mode,
			&a.Selected, &a.CorrectKey, &a.Correct, &a.TimeMs,
		); err != nil {
			return err
		}
		out = append(out, a)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) AnswerTotals(ctx context.Context) (AnswerTotals, error) {
	t := sqlite.Table(answerEventsTable)
	s := sqlite.Select(
		entsql.Count("*"),
		entsql.Sum(t.C("correct")),
		"COUNT(DISTINCT "+t.C("session_id")+")",
	).From(t)

	var totals AnswerTotals
	err := r.queryRows(ctx, s, func(rows *entsql.Rows) error {
		var correct sql.NullInt64
		if err := rows.Scan(&totals.Answers, &correct, &totals.Sessions); err != nil {
			return err
		}
		totals.Correct = int(correct.Int64)
		return nil
	})
	if err != nil {
		return AnswerTotals{}, fmt.Errorf("query answer totals: %w", err)
	}
	return totals, nil
}

func (r *eventRepo) HardestQuestions(ctx context.Context, limit int) ([]QuestionTally, error) {
	t := sqlite.Table(answerEventsTable)
	s := sqlite.Select(
		t.C("question_id"),
		entsql.Max(t.C("title")),
		entsql.As(entsql.Count("*"), "attempts"),
		entsql.As(entsql.Sum(t.C("correct")), "correct_count"),
		entsql.Avg(t.C("time_ms")),
	).
		From(t).
		GroupBy(t.C("question_id")).
		OrderExpr(entsql.Expr("attempts - correct_count DESC")).
		OrderBy(t.C("question_id"))
	if limit > 0 {
		s.Limit(limit)
	}

	var out []QuestionTally
	err := r.queryRows(ctx, s, func(rows *entsql.Rows) error {
		var (
			q       QuestionTally
			title   sql.NullString
			correct sql.NullInt64
			avg     sql.NullFloat64
		)
		if err := rows.Scan(&q.QuestionID, &title, &q.Attempts, &correct, &avg); err != nil {
			return err
		}
		q.Title = title.String
		q.Correct = int(correct.Int64)
		q.AvgTimeMs = int64(avg.Float64)
		out = append(out, q)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query hardest questions: %w", err)
	}
	return out, nil
}
