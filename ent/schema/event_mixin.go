package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// EventMixin gives every append-only event table its ordering columns.
// The store fills both on insert; rows are never updated.
type EventMixin struct {
	mixin.Schema
}

func (EventMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Position in the order shared by all event tables"),
		field.Time("timestamp").
			Default(time.Now).
			Immutable().
			Comment("UTC"),
	}
}

func (EventMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("sequence"),
		index.Fields("timestamp"),
	}
}

// sessionID is the run identifier carried by answer and session events.
func sessionID() ent.Field {
	return field.String("session_id").
		NotEmpty().
		Immutable().
		Comment("UUID of the run")
}

// counter is a non-negative count defaulting to zero.
func counter(name, comment string) ent.Field {
	return field.Int(name).
		NonNegative().
		Default(0).
		Comment(comment)
}
