package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// SessionRecord holds the persisted review state as a single keyed JSON
// document. The row is overwritten after every state change.
type SessionRecord struct {
	ent.Schema
}

func (SessionRecord) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			Unique().
			NotEmpty(),
		field.Text("data").
			Comment("Encoded session record"),
		field.Time("updated_at").
			Default(time.Now),
	}
}
