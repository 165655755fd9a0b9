package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelAliases(t *testing.T) {
	if got := resolveModel("gemini-flash", geminiModels); got != "gemini-2.5-flash" {
		t.Errorf("gemini-flash = %q", got)
	}
	if got := resolveModel("gemini-2.0-flash", geminiModels); got != "gemini-2.0-flash" {
		t.Errorf("pass-through = %q", got)
	}
}

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type":        "object",
		"description": "an explanation",
		"properties": map[string]any{
			"explanation": map[string]any{"type": "string"},
			"confidence":  map[string]any{"type": "string", "enum": []any{"low", "high"}},
			"steps": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"weird": map[string]any{"type": "null"},
		},
		"required": []string{"explanation", "steps"},
	}

	s := geminiSchema(def)
	if s.Type != genai.TypeObject {
		t.Fatalf("type = %s, want OBJECT", s.Type)
	}
	if s.Description != "an explanation" {
		t.Errorf("description = %q", s.Description)
	}
	if len(s.Properties) != 4 {
		t.Fatalf("properties = %d, want 4", len(s.Properties))
	}
	if got := s.Properties["confidence"].Enum; len(got) != 2 {
		t.Errorf("enum = %v", got)
	}
	if s.Properties["steps"].Items.Type != genai.TypeString {
		t.Errorf("items type = %s", s.Properties["steps"].Items.Type)
	}
	if s.Properties["weird"].Type != genai.TypeString {
		t.Errorf("unknown type should default to STRING, got %s", s.Properties["weird"].Type)
	}
	if len(s.Required) != 2 {
		t.Errorf("required = %v", s.Required)
	}
}
