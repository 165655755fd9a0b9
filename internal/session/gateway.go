package session

import (
	"context"
	"sync"
)

// Gateway persists the session record. Load returns (nil, nil) when no
// record exists.
type Gateway interface {
	Load(ctx context.Context) (*Record, error)
	Save(ctx context.Context, rec *Record) error
}

// AnswerEvent is one scored answer, appended to the history log.
type AnswerEvent struct {
	SessionID  string
	QuestionID string
	Title      string
	Set        string
	Mode       string
	Selected   string
	CorrectKey string
	Correct    bool
	TimeMs     int64
}

// History records scored answers beyond the session record.
type History interface {
	AppendAnswer(ctx context.Context, ev AnswerEvent) error
}

// Logger receives engine diagnostics as an event name plus fields.
type Logger interface {
	Info(event string, fields map[string]any)
	Error(event string, fields map[string]any)
}

type nopLogger struct{}

func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}

// MemoryGateway keeps the encoded record in memory.
type MemoryGateway struct {
	mu   sync.Mutex
	data []byte

	// Saves counts successful saves.
	Saves int
}

// NewMemoryGateway returns an empty in-memory gateway.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{}
}

func (g *MemoryGateway) Load(_ context.Context) (*Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.data == nil {
		return nil, nil
	}
	return DecodeRecord(g.data)
}

func (g *MemoryGateway) Save(_ context.Context, rec *Record) error {
	data, err := EncodeRecord(rec)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.data = data
	g.Saves++
	return nil
}

// SetRaw replaces the stored bytes, e.g. with a corrupt record in tests.
func (g *MemoryGateway) SetRaw(data []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.data = data
}
