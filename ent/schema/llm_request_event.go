package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LLMRequestEvent is one call to an LLM provider, kept so `quizflip llm`
// can report usage and cost and show the exchange.
type LLMRequestEvent struct {
	ent.Schema
}

func (LLMRequestEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (LLMRequestEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("provider").
			Comment("anthropic, openai, openrouter, gemini or mock"),
		field.String("model").
			Comment("Model ID reported by the provider"),
		field.String("purpose").
			Comment("What the call was for, such as explain"),
		counter("input_tokens", ""),
		counter("output_tokens", ""),
		field.Int64("latency_ms").
			NonNegative().
			Default(0),
		field.Bool("success"),
		field.String("error_message").
			Default(""),
		field.Text("request_body").
			Default("").
			Comment("Prompt transcript"),
		field.Text("response_body").
			Default("").
			Comment("Raw reply, kept for failed validation too"),
	}
}

func (LLMRequestEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("purpose"),
		index.Fields("provider", "model"),
	}
}
