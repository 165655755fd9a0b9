package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/quizflip/internal/session"
)

// RecordGateway persists the session record as a keyed row in SQLite.
// It implements session.Gateway.
type RecordGateway struct {
	drv *entsql.Driver
	key string
}

// WithKey returns a gateway that reads and writes under a different key.
func (g *RecordGateway) WithKey(key string) *RecordGateway {
	return &RecordGateway{drv: g.drv, key: key}
}

func (g *RecordGateway) recordKey() string {
	if g.key == "" {
		return session.RecordKey
	}
	return g.key
}

// Load returns the stored record, or nil if none was saved yet.
func (g *RecordGateway) Load(ctx context.Context) (*session.Record, error) {
	raw, err := g.Raw(ctx)
	if err != nil || raw == nil {
		return nil, err
	}
	return session.DecodeRecord(raw)
}

// Raw returns the stored record bytes without decoding them.
func (g *RecordGateway) Raw(ctx context.Context) ([]byte, error) {
	t := sqlite.Table(sessionRecordsTable)
	query, args := sqlite.Select(t.C("data")).
		From(t).
		Where(entsql.EQ(t.C("key"), g.recordKey())).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := g.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query session record: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	var data string
	if err := rows.Scan(&data); err != nil {
		return nil, fmt.Errorf("scan session record: %w", err)
	}
	return []byte(data), nil
}

// Save overwrites the stored record.
func (g *RecordGateway) Save(ctx context.Context, rec *session.Record) error {
	data, err := session.EncodeRecord(rec)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	return g.SaveRaw(ctx, data)
}

// SaveRaw overwrites the stored record with data as-is.
func (g *RecordGateway) SaveRaw(ctx context.Context, data []byte) error {
	query, args := sqlite.Insert(sessionRecordsTable).
		Columns("key", "data", "updated_at").
		Values(g.recordKey(), string(data), nowUTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := g.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save session record: %w", err)
	}
	return nil
}

// Delete removes the stored record.
func (g *RecordGateway) Delete(ctx context.Context) error {
	query, args := sqlite.Delete(sessionRecordsTable).
		Where(entsql.EQ("key", g.recordKey())).
		Query()
	if err := g.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete session record: %w", err)
	}
	return nil
}
