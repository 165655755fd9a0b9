package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/abhisek/quizflip/internal/store"
)

func TestPrintLLMEvents(t *testing.T) {
	events := []store.LLMRequestEvent{
		{ID: 2, Timestamp: time.Now(), LLMRequestEventData: store.LLMRequestEventData{Purpose: "explain", Model: "claude-haiku", Success: true, InputTokens: 120}},
		{ID: 1, Timestamp: time.Now(), LLMRequestEventData: store.LLMRequestEventData{Purpose: "other", Model: "gpt", Success: false}},
	}

	var out strings.Builder
	printLLMEvents(&out, events, "explain")
	got := out.String()
	if !strings.Contains(got, "claude-haiku") || !strings.Contains(got, "✓") {
		t.Errorf("explain row missing:\n%s", got)
	}
	if strings.Contains(got, "gpt") {
		t.Errorf("purpose filter kept another purpose:\n%s", got)
	}

	out.Reset()
	printLLMEvents(&out, events, "grading")
	if !strings.Contains(out.String(), "No LLM calls recorded.") {
		t.Errorf("empty filter output = %q", out.String())
	}
}

func TestPrintLLMUsage(t *testing.T) {
	var out strings.Builder
	printLLMUsage(&out,
		[]store.PurposeUsage{{Purpose: "explain", Calls: 3, InputTokens: 300, OutputTokens: 90, AvgLatencyMs: 800}},
		[]store.ModelUsage{{Model: "no-such-model", Calls: 3, InputTokens: 300, OutputTokens: 90}},
	)
	got := out.String()
	for _, want := range []string{"Usage by purpose", "explain", "total, at least", "No pricing for: no-such-model"} {
		if !strings.Contains(got, want) {
			t.Errorf("usage output missing %q:\n%s", want, got)
		}
	}

	out.Reset()
	printLLMUsage(&out, nil, nil)
	if !strings.Contains(out.String(), "No LLM usage recorded yet.") {
		t.Errorf("empty usage output = %q", out.String())
	}
}

func TestPrintLLMEvent(t *testing.T) {
	var out strings.Builder
	printLLMEvent(&out, &store.LLMRequestEvent{
		ID: 7,
		LLMRequestEventData: store.LLMRequestEventData{
			Provider:     "anthropic",
			ErrorMessage: "rate limited",
			RequestBody:  "### user\nwhy?",
			ResponseBody: `{"summary":"x"}`,
		},
	})
	got := out.String()
	for _, want := range []string{"ID:        7", "Result:    failed", "Error:     rate limited", "── Request", "### user", "\"summary\": \"x\""} {
		if !strings.Contains(got, want) {
			t.Errorf("event output missing %q:\n%s", want, got)
		}
	}
}

func TestTableFit(t *testing.T) {
	var out strings.Builder
	tbl := newTable(&out, column{title: "Name", width: 6}, column{title: "N", width: 3, right: true})
	tbl.row("日本語テキスト", 7)
	if got := strings.TrimRight(out.String(), "\n"); got != "日本…     7" {
		t.Errorf("row = %q", got)
	}
}
