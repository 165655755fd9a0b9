package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records a single scored answer within a review session.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		sessionID(),
		field.String("question_id").
			NotEmpty().
			Comment("Positional question id, q_N"),
		field.String("title").
			Default("").
			Comment("Question title at answer time"),
		field.String("set_name").
			Default("").
			Comment("Question set the question came from"),
		field.String("mode").
			NotEmpty().
			Comment("all or wrongs"),
		field.String("selected").
			NotEmpty().
			Comment("Letter key the learner picked"),
		field.String("correct_key").
			Default("").
			Comment("Resolved correct key, empty when unresolvable"),
		field.Bool("correct").
			Comment("Whether the answer was correct"),
		field.Int64("time_ms").
			Default(0).
			Comment("Milliseconds between display and answer"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("question_id"),
		index.Fields("correct"),
	}
}
