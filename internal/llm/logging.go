package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/quizflip/internal/store"
)

// maxBodyBytes caps each stored request or response body.
const maxBodyBytes = 64 << 10

// Recorder persists LLM request events. store.EventRepo satisfies it.
type Recorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// ErrorLogger receives recording failures. The telemetry logger fits.
type ErrorLogger interface {
	Error(event string, fields map[string]any)
}

type recorded struct {
	inner    Provider
	provider string
	rec      Recorder
	log      ErrorLogger
}

// WithRecorder wraps p so every Generate call, failed or not, is stored
// through rec. A failure to store is logged to log when it is non-nil and
// never fails the call.
func WithRecorder(p Provider, providerName string, rec Recorder, log ErrorLogger) Provider {
	return &recorded{inner: p, provider: providerName, rec: rec, log: log}
}

func (r *recorded) ModelID() string { return r.inner.ModelID() }

func (r *recorded) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.inner.Generate(ctx, req)

	ev := r.event(ctx, req, resp, err)
	ev.LatencyMs = time.Since(start).Milliseconds()
	if recErr := r.rec.AppendLLMRequest(context.WithoutCancel(ctx), ev); recErr != nil && r.log != nil {
		r.log.Error("llm.record_failed", map[string]any{"provider": r.provider, "error": recErr.Error()})
	}
	return resp, err
}

func (r *recorded) event(ctx context.Context, req Request, resp *Response, err error) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    r.provider,
		Model:       r.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		Success:     err == nil,
		RequestBody: clip(transcript(req)),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = clip(string(resp.Content))
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
		// Keep what the model said even when it failed validation.
		var inv *ErrInvalidResponse
		if errors.As(err, &inv) && len(inv.Content) > 0 {
			ev.ResponseBody = clip(string(inv.Content))
		}
	}
	return ev
}

// transcript renders req as plain text for `quizflip llm view`.
func transcript(req Request) string {
	var b strings.Builder
	section := func(name, body string) {
		fmt.Fprintf(&b, "### %s\n%s\n\n", name, strings.TrimRight(body, "\n"))
	}
	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			section("schema "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func clip(s string) string {
	if len(s) <= maxBodyBytes {
		return s
	}
	return s[:maxBodyBytes] + "\n[truncated]"
}
