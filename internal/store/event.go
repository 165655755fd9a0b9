package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var sqlite = entsql.Dialect(dialect.SQLite)

var nowUTC = func() time.Time { return time.Now().UTC() }

// eventRepo implements EventRepo on the ent SQL driver and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

// sequenceCounter hands out the monotonic sequence shared by every event
// table, so answers, session events and LLM calls interleave in one order.
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// insert appends one row to an event table, stamping sequence and timestamp.
func (r *eventRepo) insert(ctx context.Context, table string, columns []string, values []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	columns = append([]string{"sequence", "timestamp"}, columns...)
	values = append([]any{seqNum, nowUTC()}, values...)

	query, args := sqlite.Insert(table).Columns(columns...).Values(values...).Query()
	return r.drv.Exec(ctx, query, args, nil)
}

// applyOpts narrows an event selector by sequence, time and limit.
func applyOpts(s *entsql.Selector, opts QueryOpts) *entsql.Selector {
	if opts.After > 0 {
		s.Where(entsql.GT(s.C("sequence"), opts.After))
	}
	if opts.Before > 0 {
		s.Where(entsql.LT(s.C("sequence"), opts.Before))
	}
	if !opts.From.IsZero() {
		s.Where(entsql.GTE(s.C("timestamp"), opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		s.Where(entsql.LTE(s.C("timestamp"), opts.To.UTC()))
	}
	s.OrderBy(entsql.Desc(s.C("sequence")))
	if opts.Limit > 0 {
		s.Limit(opts.Limit)
	}
	return s
}

// queryRows runs a selector and hands each row to scan.
func (r *eventRepo) queryRows(ctx context.Context, s *entsql.Selector, scan func(*entsql.Rows) error) error {
	query, args := s.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(&rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
