package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/quizflip/internal/catalog"
	"github.com/abhisek/quizflip/internal/config"
	"github.com/abhisek/quizflip/internal/session"
	"github.com/abhisek/quizflip/internal/store"
	"github.com/abhisek/quizflip/internal/telemetry"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// runtime bundles what every command that touches the session needs.
type runtime struct {
	cfg     config.Config
	store   *store.Store
	gateway recordStore
	log     *telemetry.JSONLogger
	logFile *telemetry.JSONLogger
	engine  *session.Engine
}

// recordStore is a session.Gateway that can also forget the record.
type recordStore interface {
	session.Gateway
	Delete(ctx context.Context) error
}

// openRuntime resolves config, opens the event store and the record gateway,
// and builds an engine on top of them. Callers must Close it.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	logFile := openLogger(cfg)
	rt := &runtime{cfg: cfg, store: st, log: logFile, logFile: logFile}

	switch cfg.Storage {
	case config.StorageRedis:
		gw, err := store.NewRedisGateway(cmd.Context(), store.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("open redis: %w", err)
		}
		rt.gateway = gw
	default:
		rt.gateway = st.RecordGateway()
	}

	sessionID := uuid.New().String()
	rt.log = rt.log.With(map[string]any{"session_id": sessionID})
	rt.engine = session.NewEngine(
		session.WithSessionID(sessionID),
		session.WithGateway(rt.gateway),
		session.WithHistory(st.EventRepo()),
		session.WithLogger(rt.log),
		session.WithTheme(cfg.Theme),
	)
	return rt, nil
}

// openLogger opens the JSON-lines log file. The TUI owns the terminal, so
// diagnostics never go to stderr once it runs.
func openLogger(cfg config.Config) *telemetry.JSONLogger {
	path := cfg.LogPath
	if path == "" {
		p, err := telemetry.DefaultLogPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: resolve log path: %v\n", err)
			return telemetry.Discard()
		}
		path = p
	}
	l, err := telemetry.NewJSONLogger(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: open log %s: %v\n", path, err)
		return telemetry.Discard()
	}
	return l
}

func (rt *runtime) Close() {
	if c, ok := rt.gateway.(interface{ Close() error }); ok {
		c.Close()
	}
	rt.store.Close()
	rt.logFile.Close()
}

// sets returns the configured set references, or every set found in the
// questions directory, or the bundled samples when there are none.
func (rt *runtime) sets() []string {
	if len(rt.cfg.Sets) > 0 {
		return rt.cfg.Sets
	}
	var found []string
	for _, name := range catalog.DiscoverSets(rt.cfg.QuestionsDir) {
		if !strings.HasPrefix(name, catalog.SamplePrefix) {
			found = append(found, name)
		}
	}
	if len(found) == 0 {
		return catalog.SampleSets()
	}
	return found
}

// open loads the sets and restores the persisted record against them.
func (rt *runtime) open(ctx context.Context) error {
	sources := catalog.ParseSources(rt.sets(), rt.cfg.QuestionsDir)
	c, err := rt.engine.Loader().Load(ctx, sources)
	if err != nil {
		return fmt.Errorf("load sets: %w", err)
	}
	return rt.engine.OpenCatalog(ctx, c)
}
