package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrSuperseded is returned by Load when a newer load started before this
// one finished. The result is discarded.
var ErrSuperseded = errors.New("catalog load superseded by a newer load")

// maxFileSize bounds how much of a single source is read.
const maxFileSize = 16 << 20

// SourceError reports which source failed to load.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Loader fetches question sets concurrently and tracks load generations so
// that only the latest load can produce a catalog.
type Loader struct {
	gen atomic.Uint64

	// Concurrency limits in-flight fetches. Zero means one per source.
	Concurrency int
}

// NewLoader returns a Loader with default settings.
func NewLoader() *Loader {
	return &Loader{Concurrency: 4}
}

// Generation returns the most recently started generation.
func (l *Loader) Generation() uint64 {
	return l.gen.Load()
}

// Begin starts a new generation and returns it. Loads started with an older
// generation become superseded.
func (l *Loader) Begin() uint64 {
	return l.gen.Add(1)
}

// Current reports whether gen is still the latest generation.
func (l *Loader) Current(gen uint64) bool {
	return l.gen.Load() == gen
}

// Load starts a new generation and loads sources. See LoadGeneration.
func (l *Loader) Load(ctx context.Context, sources []Source) (*Catalog, error) {
	return l.LoadGeneration(ctx, l.Begin(), sources)
}

// LoadGeneration fetches and decodes all sources concurrently and merges
// them in source order. The load is atomic: any source failure fails the
// whole load with a *SourceError. If another generation began meanwhile the
// result, failed or not, is dropped and ErrSuperseded is returned. Zero sources produce an
// empty catalog.
func (l *Loader) LoadGeneration(ctx context.Context, gen uint64, sources []Source) (*Catalog, error) {
	perSet := make([][]Question, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	if l.Concurrency > 0 {
		g.SetLimit(l.Concurrency)
	}
	for i, src := range sources {
		g.Go(func() error {
			qs, err := fetch(gctx, src)
			if err != nil {
				return &SourceError{Source: src.Name(), Err: err}
			}
			perSet[i] = qs
			return nil
		})
	}
	err := g.Wait()
	if !l.Current(gen) {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}

	c := New(Names(sources), perSet)
	c.Generation = gen
	return c, nil
}

func fetch(ctx context.Context, src Source) ([]Question, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	raw, err := io.ReadAll(io.LimitReader(rc, maxFileSize))
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Decode(raw)
}
