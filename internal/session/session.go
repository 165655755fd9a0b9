package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/abhisek/quizflip/internal/catalog"
	"github.com/google/uuid"
)

// saveTimeout bounds a single gateway save.
const saveTimeout = 2 * time.Second

// Engine owns the catalog and the session state and exposes the control
// surface used by the renderers. It is not safe for concurrent use; callers
// drive it from a single loop.
type Engine struct {
	catalog *catalog.Catalog
	state   *State

	loader  *catalog.Loader
	gateway Gateway
	history History
	log     Logger

	rng *rand.Rand
	now func() time.Time

	// shownAt is when the current question view began.
	shownAt time.Time

	sessionID string
}

// Option configures an Engine.
type Option func(*Engine)

// WithGateway sets the persistence gateway.
func WithGateway(g Gateway) Option { return func(e *Engine) { e.gateway = g } }

// WithHistory sets the answer history sink.
func WithHistory(h History) Option { return func(e *Engine) { e.history = h } }

// WithLogger sets the diagnostics logger.
func WithLogger(l Logger) Option { return func(e *Engine) { e.log = l } }

// WithRand sets the random source used by RandomNext and Shuffle.
func WithRand(r *rand.Rand) Option { return func(e *Engine) { e.rng = r } }

// WithClock sets the clock used for answer timing.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithLoader sets the catalog loader.
func WithLoader(l *catalog.Loader) Option { return func(e *Engine) { e.loader = l } }

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option { return func(e *Engine) { e.sessionID = id } }

// WithTheme sets the theme used until a persisted record selects another.
func WithTheme(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.state.Theme = name
		}
	}
}

// NewEngine creates an engine with an empty catalog and default state.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		catalog:   &catalog.Catalog{},
		state:     NewState(),
		loader:    catalog.NewLoader(),
		log:       nopLogger{},
		rng:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())),
		now:       time.Now,
		sessionID: uuid.New().String(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.shownAt = e.now()
	return e
}

// SessionID identifies this engine run in history events and logs.
func (e *Engine) SessionID() string { return e.sessionID }

// Loader returns the catalog loader, for callers that fetch off-loop and
// apply the result with ApplyCatalog.
func (e *Engine) Loader() *catalog.Loader { return e.loader }

// Catalog returns the current catalog. Callers must not mutate it.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// LoadCatalog fetches sources and applies the result. On failure the catalog
// and state are left unchanged.
func (e *Engine) LoadCatalog(ctx context.Context, sources []catalog.Source) error {
	c, err := e.loader.Load(ctx, sources)
	if err != nil {
		e.log.Error("catalog.load_failed", map[string]any{"sets": catalog.Names(sources), "error": err.Error()})
		return err
	}
	return e.ApplyCatalog(c)
}

// ApplyCatalog replaces the catalog with c and resets the session state,
// keeping the theme. A catalog from a superseded generation is rejected with
// catalog.ErrSuperseded.
func (e *Engine) ApplyCatalog(c *catalog.Catalog) error {
	if err := e.install(c); err != nil {
		return err
	}
	e.save()
	return nil
}

// OpenCatalog installs c like ApplyCatalog, then restores the persisted
// record instead of overwriting it. It is meant for the first load of a run.
func (e *Engine) OpenCatalog(ctx context.Context, c *catalog.Catalog) error {
	if err := e.install(c); err != nil {
		return err
	}
	e.Restore(ctx)
	return nil
}

func (e *Engine) install(c *catalog.Catalog) error {
	if c == nil {
		c = &catalog.Catalog{}
	}
	if c.Generation != 0 && !e.loader.Current(c.Generation) {
		return catalog.ErrSuperseded
	}
	theme := e.state.Theme
	e.catalog = c
	e.state = NewState()
	e.state.Theme = theme
	e.beginView()
	e.log.Info("catalog.loaded", map[string]any{"sets": c.Sets, "questions": c.Len(), "generation": c.Generation})
	return nil
}

// Restore loads the persisted record and applies it when it was taken
// against the current set list. Absent, corrupt or mismatched records leave
// the default state in place; failures are logged, never returned.
func (e *Engine) Restore(ctx context.Context) {
	if e.gateway == nil {
		return
	}
	rec, err := e.gateway.Load(ctx)
	if err != nil {
		e.log.Error("state.load_failed", map[string]any{"error": err.Error()})
		return
	}
	if rec == nil {
		return
	}
	if rec.Theme != "" {
		e.state.Theme = rec.Theme
	}
	if len(rec.Sets) > 0 && !e.catalog.SameSets(rec.Sets) {
		e.log.Info("state.sets_mismatch", map[string]any{"saved": rec.Sets, "loaded": e.catalog.Sets})
		return
	}
	s, err := StateFromRecord(rec)
	if err != nil {
		e.log.Error("state.decode_failed", map[string]any{"error": err.Error()})
		return
	}
	for i := range s.CompletedAll {
		if i < 0 || i >= e.catalog.Len() {
			delete(s.CompletedAll, i)
		}
	}
	e.state = s
	e.clampCursor()
	e.beginView()
}

// Record returns the durable form of the current state.
func (e *Engine) Record() *Record {
	return e.state.record(e.catalog.Sets)
}

// save snapshots the state through the gateway. Failures are logged.
func (e *Engine) save() {
	if e.gateway == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := e.gateway.Save(ctx, e.Record()); err != nil {
		e.log.Error("state.save_failed", map[string]any{"error": err.Error()})
	}
}

// beginView starts timing a new question view.
func (e *Engine) beginView() {
	e.shownAt = e.now()
}

// Mode returns the current review mode.
func (e *Engine) Mode() Mode { return e.state.Mode }

// Cursor returns the index into the active list.
func (e *Engine) Cursor() int { return e.state.Cursor }

// Locked reports whether the current view has been scored.
func (e *Engine) Locked() bool { return e.state.Locked }

// Theme returns the selected presentation theme.
func (e *Engine) Theme() string { return e.state.Theme }

// SetTheme selects a presentation theme and persists it.
func (e *Engine) SetTheme(name string) {
	if name == "" {
		name = DefaultTheme
	}
	e.state.Theme = name
	e.save()
}

// Missed returns the ids ever answered wrong, sorted.
func (e *Engine) Missed() []string { return sortedKeys(e.state.Missed) }

// IsMissed reports whether id was ever answered wrong.
func (e *Engine) IsMissed(id string) bool { return e.state.Missed[id] }

// CompletedAll returns the catalog positions answered in ModeAll, sorted.
func (e *Engine) CompletedAll() []int {
	out := make([]int, 0, len(e.state.CompletedAll))
	for i := range e.state.CompletedAll {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// CompletedWrong returns the ids answered in ModeWrongOnly, sorted.
func (e *Engine) CompletedWrong() []string { return sortedKeys(e.state.CompletedWrong) }

// QuestionStats returns the timing aggregate for id.
func (e *Engine) QuestionStats(id string) (QuestionStats, bool) {
	qs, ok := e.state.Analytics[id]
	if !ok {
		return QuestionStats{}, false
	}
	return *qs, true
}

// IsSuperseded reports whether err came from a superseded load.
func IsSuperseded(err error) bool {
	return errors.Is(err, catalog.ErrSuperseded)
}
