// Package playground runs a question's code snippet through the local
// interpreter for its language and captures what it prints.
package playground

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/quizflip/internal/catalog"
)

// ErrUnsupportedLanguage is returned for languages with no interpreter
// mapping.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ErrInterpreterNotFound is returned when the mapped interpreter is not on
// PATH.
var ErrInterpreterNotFound = errors.New("interpreter not found")

// DefaultTimeout bounds a single run.
const DefaultTimeout = 10 * time.Second

// Capture limits for a single run. Output past either limit is dropped and
// the run is stopped.
const (
	DefaultMaxLines = 1000
	DefaultMaxBytes = 1 << 20
)

// NoOutput is the line shown for a run that printed nothing.
const NoOutput = "no output"

// Truncated is the error entry appended once output passes a capture limit.
const Truncated = "output truncated"

// Kind classifies a captured line.
type Kind string

const (
	KindLog   Kind = "log"
	KindError Kind = "error"
)

// Entry is one captured line.
type Entry struct {
	Kind    Kind
	Message string
}

// Result is the outcome of a run. A snippet that fails at runtime still
// produces a Result; the failure shows up as an error entry.
type Result struct {
	Language string
	Entries  []Entry
	ExitCode int
	TimedOut bool
	// Truncated is set when the run printed more than the capture limits.
	Truncated bool
	Duration time.Duration
}

// Empty reports whether the run printed nothing.
func (r *Result) Empty() bool { return len(r.Entries) == 0 }

// Lines returns the entries for display, with a single NoOutput log entry
// when the run printed nothing.
func (r *Result) Lines() []Entry {
	if r.Empty() {
		return []Entry{{Kind: KindLog, Message: NoOutput}}
	}
	return r.Entries
}

type interpreter struct {
	bin  string
	args []string
	file string
	wrap func(code string) string
}

var interpreters = map[string]interpreter{
	"javascript": {bin: "node", file: "snippet.js"},
	"python":     {bin: "python3", file: "snippet.py"},
	"sh":         {bin: "sh", file: "snippet.sh"},
	"go":         {bin: "go", args: []string{"run"}, file: "main.go", wrap: wrapGo},
}

// wrapGo turns a bare statement list into a runnable program.
func wrapGo(code string) string {
	if strings.HasPrefix(strings.TrimSpace(code), "package ") {
		return code
	}
	return "package main\n\nfunc main() {\n" + code + "\n}\n"
}

// Supported reports whether lang has an interpreter mapping.
func Supported(lang string) bool {
	_, ok := interpreters[catalog.NormalizeLang(lang)]
	return ok
}

// Runner executes snippets. The zero value is usable.
type Runner struct {
	// Timeout bounds each run; zero means DefaultTimeout.
	Timeout time.Duration
	// TempDir is where per-run work directories are created; empty means
	// os.TempDir.
	TempDir string
	// MaxLines and MaxBytes bound the captured output; zero means
	// DefaultMaxLines and DefaultMaxBytes.
	MaxLines int
	MaxBytes int
}

// NewRunner creates a Runner with the given timeout.
func NewRunner(timeout time.Duration) *Runner {
	return &Runner{Timeout: timeout}
}

// Run writes code to a scratch directory and executes it. The scratch
// directory is removed on every exit path.
func (r *Runner) Run(ctx context.Context, lang, code string) (*Result, error) {
	lang = catalog.NormalizeLang(lang)
	in, ok := interpreters[lang]
	if !ok {
		return nil, fmt.Errorf("run %s snippet: %w", lang, ErrUnsupportedLanguage)
	}
	bin, err := exec.LookPath(in.bin)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInterpreterNotFound, in.bin)
	}

	dir, err := os.MkdirTemp(r.TempDir, "quizflip-play-")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(dir)

	src := code
	if in.wrap != nil {
		src = in.wrap(code)
	}
	path := filepath.Join(dir, in.file)
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		return nil, fmt.Errorf("write snippet: %w", err)
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sink := capture{
		maxLines: cmp.Or(r.MaxLines, DefaultMaxLines),
		maxBytes: cmp.Or(r.MaxBytes, DefaultMaxBytes),
		onFull:   cancel,
	}
	stdout := &lineWriter{kind: KindLog, sink: &sink}
	stderr := &lineWriter{kind: KindError, sink: &sink}

	args := append(append([]string{}, in.args...), path)
	cmd := exec.CommandContext(runCtx, bin, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = 500 * time.Millisecond

	start := time.Now()
	runErr := cmd.Run()
	stdout.flush()
	stderr.flush()

	res := &Result{Language: lang, Duration: time.Since(start)}

	switch {
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		res.TimedOut = true
		res.ExitCode = -1
		sink.note(KindError, fmt.Sprintf("timed out after %s", timeout))
	case sink.truncated:
		res.Truncated = true
		res.ExitCode = -1
	case runErr != nil:
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, fmt.Errorf("run %s: %w", in.bin, runErr)
		}
		res.ExitCode = exitErr.ExitCode()
		sink.note(KindError, exitErr.Error())
	}

	res.Entries = sink.entries
	return res, nil
}

// capture collects entries from both streams up to its limits. The first
// entry past a limit is replaced by a single Truncated error and onFull is
// called.
type capture struct {
	mu        sync.Mutex
	entries   []Entry
	size      int
	maxLines  int
	maxBytes  int
	truncated bool
	onFull    func()
}

func (c *capture) add(kind Kind, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.truncated {
		return
	}
	if len(c.entries) >= c.maxLines || c.size+len(msg) > c.maxBytes {
		c.truncated = true
		c.entries = append(c.entries, Entry{Kind: KindError, Message: Truncated})
		if c.onFull != nil {
			c.onFull()
		}
		return
	}
	c.size += len(msg)
	c.entries = append(c.entries, Entry{Kind: kind, Message: msg})
}

// note records a run status line regardless of the limits.
func (c *capture) note(kind Kind, msg string) {
	c.mu.Lock()
	c.entries = append(c.entries, Entry{Kind: kind, Message: msg})
	c.mu.Unlock()
}

func (c *capture) full() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.truncated
}

// lineWriter splits a stream into lines and records each as an entry.
type lineWriter struct {
	kind Kind
	sink *capture
	buf  bytes.Buffer
}

func (w *lineWriter) Write(p []byte) (int, error) {
	if w.sink.full() {
		w.buf.Reset()
		return len(p), nil
	}
	w.buf.Write(p)
	for {
		i := bytes.IndexByte(w.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := strings.TrimRight(string(w.buf.Next(i+1)), "\r\n")
		w.sink.add(w.kind, line)
	}
	// A line with no end in sight is cut at the byte limit.
	if w.buf.Len() > w.sink.maxBytes {
		w.sink.add(w.kind, w.buf.String())
		w.buf.Reset()
	}
	return len(p), nil
}

func (w *lineWriter) flush() {
	if w.buf.Len() > 0 {
		w.sink.add(w.kind, w.buf.String())
		w.buf.Reset()
	}
}
