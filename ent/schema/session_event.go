package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent marks the start and the end of one interactive run. The end
// event carries the totals of the run.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		sessionID(),
		field.String("action").
			NotEmpty().
			Comment("start or end"),
		field.JSON("sets", []string{}).
			Optional().
			Comment("Set references loaded for the run"),
		counter("questions", "Questions in the catalog"),
		counter("answered", "Questions answered in all mode"),
		counter("wrong", "Questions in the missed set"),
		counter("duration_secs", "Run length"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id", "action"),
	}
}
