// Package explain asks the configured LLM to explain a quiz question's
// answer. Replies are schema-validated JSON and cached per question.
package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/quizflip/internal/answerkey"
	"github.com/abhisek/quizflip/internal/catalog"
	"github.com/abhisek/quizflip/internal/llm"
)

// Explanation is the model's account of a question's answer.
type Explanation struct {
	Summary    string   `json:"summary"`
	WhyCorrect string   `json:"why_correct"`
	Pitfalls   []string `json:"pitfalls"`
}

// Config holds explanation generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns sensible defaults for explanation generation.
func DefaultConfig() Config {
	return Config{MaxTokens: 600, Temperature: 0.2, Timeout: 30 * time.Second}
}

// Service generates explanations. It is safe for concurrent use.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu    sync.Mutex
	cache map[string]*Explanation
}

// NewService creates an explanation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg, cache: make(map[string]*Explanation)}
}

// Explain returns an explanation of q. selected is the learner's pick and
// may be answerkey.None.
func (s *Service) Explain(ctx context.Context, q *catalog.Question, selected answerkey.Key) (*Explanation, error) {
	key := cacheKey(q, selected)
	s.mu.Lock()
	if e, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return e, nil
	}
	s.mu.Unlock()

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeExplain)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMessage(q, selected)}},
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("explain %s: %w", q.ID, err)
	}

	var out Explanation
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse explanation: %w", err)
	}

	s.mu.Lock()
	s.cache[key] = &out
	s.mu.Unlock()
	return &out, nil
}

func cacheKey(q *catalog.Question, selected answerkey.Key) string {
	return strings.Join([]string{q.Set, q.Title, q.Code, string(selected)}, "\x00")
}

// Schema is the reply shape requested from the provider.
var Schema = &llm.Schema{
	Name:        "quiz-explanation",
	Description: "Explanation of a multiple-choice quiz answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "One or two sentences stating the correct answer and the core idea.",
			},
			"why_correct": map[string]any{
				"type":        "string",
				"description": "Step-by-step reasoning, referring to the code when there is any.",
			},
			"pitfalls": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Why the tempting wrong options are wrong.",
			},
		},
		"required":             []string{"summary", "why_correct", "pitfalls"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You are a concise programming tutor. A learner is reviewing multiple-choice quiz questions and wants to understand an answer. Use plain text; wrap code in backticks.`

func userMessage(q *catalog.Question, selected answerkey.Key) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", q.Title)
	if q.Code != "" {
		fmt.Fprintf(&b, "\nCode (%s):\n```\n%s\n```\n", q.Language(), q.Code)
	}
	b.WriteString("\nOptions:\n")
	for _, o := range q.Options {
		fmt.Fprintf(&b, "- %s\n", o.Display())
	}
	if correct, ok := q.CorrectKey(); ok {
		fmt.Fprintf(&b, "\nCorrect answer: %s\n", correct)
	} else {
		fmt.Fprintf(&b, "\nAnswer as written in the set: %s\n", q.Answer)
	}
	if q.Explain != "" {
		fmt.Fprintf(&b, "Author's note: %s\n", q.Explain)
	}
	if selected != answerkey.None {
		fmt.Fprintf(&b, "The learner chose: %s\n", selected)
	}
	b.WriteString("\nExplain why the correct answer is right and why the other options are not.")
	return b.String()
}
