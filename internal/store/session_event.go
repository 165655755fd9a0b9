package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var sessionEventColumns = []string{
	"session_id", "action", "sets", "questions", "answered", "wrong", "duration_secs",
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	sets, err := json.Marshal(data.Sets)
	if err != nil {
		return fmt.Errorf("marshal sets: %w", err)
	}
	err = r.insert(ctx, sessionEventsTable, sessionEventColumns, []any{
		data.SessionID, data.Action, string(sets),
		data.Questions, data.Answered, data.Wrong, data.DurationSecs,
	})
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessions(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	t := sqlite.Table(sessionEventsTable)
	cols := append([]string{"id", "sequence", "timestamp"}, sessionEventColumns...)
	s := applyOpts(sqlite.Select(t.Columns(cols...)...).From(t), opts)

	var out []SessionEvent
	err := r.queryRows(ctx, s, func(rows *entsql.Rows) error {
		var (
			e    SessionEvent
			sets sql.NullString
		)
		if err := rows.Scan(
			&e.ID, &e.Sequence, &e.Timestamp,
			&e.SessionID, &e.Action, &sets,
			&e.Questions, &e.Answered, &e.Wrong, &e.DurationSecs,
		); err != nil {
			return err
		}
		if sets.Valid && sets.String != "" {
			if err := json.Unmarshal([]byte(sets.String), &e.Sets); err != nil {
				return fmt.Errorf("decode sets: %w", err)
			}
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	return out, nil
}
