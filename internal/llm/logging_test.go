package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/quizflip/internal/store"
)

type memRecorder struct {
	events []store.LLMRequestEventData
	err    error
}

func (m *memRecorder) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	m.events = append(m.events, data)
	return m.err
}

type memErrorLog struct{ events []string }

func (m *memErrorLog) Error(event string, _ map[string]any) { m.events = append(m.events, event) }

func TestRecorder_RecordsSuccessAndFailure(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"explanation":"x"}`), Usage: Usage{InputTokens: 12, OutputTokens: 4}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
	)
	rec := &memRecorder{}
	p := WithRecorder(mock, "mock", rec, nil)
	ctx := WithPurpose(context.Background(), PurposeExplain)

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "why?"}},
		Schema:   explainTestSchema,
	}
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Generate(ctx, req); err == nil {
		t.Fatal("expected error")
	}

	if len(rec.events) != 2 {
		t.Fatalf("recorded %d events, want 2", len(rec.events))
	}
	ok, failed := rec.events[0], rec.events[1]
	if !ok.Success || ok.Purpose != PurposeExplain || ok.Provider != "mock" || ok.InputTokens != 12 {
		t.Errorf("success event = %+v", ok)
	}
	if ok.ResponseBody != `{"explanation":"x"}` {
		t.Errorf("response body = %q", ok.ResponseBody)
	}
	for _, part := range []string{"### system\nsys", "### user\nwhy?", "### schema test-explanation"} {
		if !strings.Contains(ok.RequestBody, part) {
			t.Errorf("request body missing %q:\n%s", part, ok.RequestBody)
		}
	}
	if failed.Success || !strings.Contains(failed.ErrorMessage, "rate limited") {
		t.Errorf("failure event = %+v", failed)
	}
}

func TestRecorder_RecorderFailureDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	log := &memErrorLog{}
	p := WithRecorder(mock, "mock", &memRecorder{err: errors.New("disk full")}, log)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(log.events) != 1 || log.events[0] != "llm.record_failed" {
		t.Errorf("logged = %v", log.events)
	}
}

func TestRecorder_KeepsInvalidReply(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"explanation":7}`)})
	rec := &memRecorder{}
	p := WithRecorder(mock, "mock", rec, nil)

	if _, err := p.Generate(context.Background(), Request{Schema: explainTestSchema}); err == nil {
		t.Fatal("expected schema failure")
	}
	if len(rec.events) != 1 {
		t.Fatalf("recorded %d events, want 1", len(rec.events))
	}
	if ev := rec.events[0]; ev.Success || ev.ResponseBody != `{"explanation":7}` {
		t.Errorf("event = %+v", ev)
	}
}
