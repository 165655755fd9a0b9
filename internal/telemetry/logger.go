// Package telemetry writes diagnostics as JSON lines, one object per event,
// so they never interfere with the terminal UI.
package telemetry

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// JSONLogger appends {"ts","level","event",...fields} lines to a writer. It
// adapts a slog JSON logger to the event/fields calls used across quizflip.
type JSONLogger struct {
	log    *slog.Logger
	closer io.Closer
}

// NewJSONLogger opens (or creates) path for appending. An empty path yields
// a logger that discards everything.
func NewJSONLogger(path string) (*JSONLogger, error) {
	if path == "" {
		return Discard(), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	l := newLogger(f, time.Now)
	l.closer = f
	return l, nil
}

// NewWriterLogger logs to w without taking ownership of it.
func NewWriterLogger(w io.Writer) *JSONLogger {
	return newLogger(w, time.Now)
}

// Discard returns a logger that drops every event.
func Discard() *JSONLogger {
	return &JSONLogger{log: slog.New(slog.DiscardHandler)}
}

func newLogger(w io.Writer, now func() time.Time) *JSONLogger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.String("ts", now().UTC().Format(time.RFC3339Nano))
			case slog.LevelKey:
				return slog.String("level", strings.ToLower(a.Value.String()))
			case slog.MessageKey:
				return slog.Attr{Key: "event", Value: a.Value}
			}
			return a
		},
	})
	return &JSONLogger{log: slog.New(h)}
}

// With returns a logger that adds fields to every line. It shares the
// underlying writer.
func (l *JSONLogger) With(fields map[string]any) *JSONLogger {
	return &JSONLogger{log: l.log.With(attrs(fields)...)}
}

func (l *JSONLogger) Info(event string, fields map[string]any) {
	l.write(slog.LevelInfo, event, fields)
}

func (l *JSONLogger) Error(event string, fields map[string]any) {
	l.write(slog.LevelError, event, fields)
}

func (l *JSONLogger) write(level slog.Level, event string, fields map[string]any) {
	if l == nil || l.log == nil {
		return
	}
	l.log.Log(context.Background(), level, event, attrs(fields)...)
}

// attrs orders fields by key so lines are stable across runs.
func attrs(fields map[string]any) []any {
	out := make([]any, 0, len(fields))
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		out = append(out, slog.Any(k, fields[k]))
	}
	return out
}

// Close closes the log file if the logger owns one.
func (l *JSONLogger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// DefaultLogPath returns $XDG_STATE_HOME/quizflip/quizflip.log, falling back
// to ~/.local/state.
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "quizflip", "quizflip.log"), nil
}
