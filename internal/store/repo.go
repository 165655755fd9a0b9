package store

import (
	"context"
	"time"

	"github.com/abhisek/quizflip/internal/session"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Answer is a persisted answer event.
type Answer struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	session.AnswerEvent
}

// QuestionTally aggregates answers per question.
type QuestionTally struct {
	QuestionID string
	Title      string
	Attempts   int
	Correct    int
	AvgTimeMs  int64
}

// AnswerTotals summarizes all recorded answers.
type AnswerTotals struct {
	Answers  int
	Correct  int
	Sessions int
}

// SessionEventData captures a review run lifecycle event.
type SessionEventData struct {
	SessionID    string
	Action       string // start or end
	Sets         []string
	Questions    int
	Answered     int
	Wrong        int
	DurationSecs int
}

// SessionEvent is a persisted session lifecycle event.
type SessionEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a persisted LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAnswer records a scored answer. It satisfies session.History.
	AppendAnswer(ctx context.Context, ev session.AnswerEvent) error
	// AppendSessionEvent records a run start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	QueryAnswers(ctx context.Context, opts QueryOpts) ([]Answer, error)
	AnswerTotals(ctx context.Context) (AnswerTotals, error)
	// HardestQuestions returns questions ordered by most wrong answers.
	HardestQuestions(ctx context.Context, limit int) ([]QuestionTally, error)
	QuerySessions(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)

	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
	// GetLLMEvent returns the event with id, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
