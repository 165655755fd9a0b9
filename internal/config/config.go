// Package config resolves quizflip settings from an optional .env file and
// QUIZFLIP_* environment variables. Command-line flags are applied on top by
// the cmd package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for the session record.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// DefaultEnvFile is loaded when no --env-file is given and it exists.
const DefaultEnvFile = ".env"

// Config holds the resolved runtime settings.
type Config struct {
	// DBPath overrides the SQLite location. Empty means the XDG default.
	DBPath string

	// Storage selects where the session record lives: "sqlite" or "redis".
	// Events always go to SQLite.
	Storage string
	Redis   RedisConfig

	// QuestionsDir is searched for *.json question sets.
	QuestionsDir string
	// Sets are the set references loaded at startup. Empty means every
	// set discovered in QuestionsDir, or the bundled samples.
	Sets []string

	Theme   string
	LogPath string

	// PlaygroundTimeout bounds a single snippet run. Default: 10s.
	PlaygroundTimeout time.Duration
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Addr     string // Default: "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // zero keeps the record forever
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage:           StorageSQLite,
		Redis:             RedisConfig{Addr: "localhost:6379"},
		QuestionsDir:      "questions",
		PlaygroundTimeout: 10 * time.Second,
	}
}

// Load reads envFile into the process environment (existing variables win)
// and builds a Config from it. A missing default .env is not an error; a
// missing explicit file is.
func Load(envFile string) (Config, error) {
	path := envFile
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if envFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("QUIZFLIP_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("QUIZFLIP_STORAGE"); v != "" {
		cfg.Storage = strings.ToLower(v)
	}

	if v := os.Getenv("QUIZFLIP_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("QUIZFLIP_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("QUIZFLIP_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("QUIZFLIP_REDIS_DB: %w", err)
		}
		cfg.Redis.DB = db
	}
	if v := os.Getenv("QUIZFLIP_REDIS_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("QUIZFLIP_REDIS_TTL: %w", err)
		}
		cfg.Redis.TTL = ttl
	}

	if v := os.Getenv("QUIZFLIP_QUESTIONS_DIR"); v != "" {
		cfg.QuestionsDir = v
	}
	if v := os.Getenv("QUIZFLIP_SETS"); v != "" {
		cfg.Sets = SplitList(v)
	}
	if v := os.Getenv("QUIZFLIP_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("QUIZFLIP_LOG"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("QUIZFLIP_PLAYGROUND_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("QUIZFLIP_PLAYGROUND_TIMEOUT: %w", err)
		}
		cfg.PlaygroundTimeout = d
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings that have a closed set of values.
func (c Config) Validate() error {
	switch c.Storage {
	case StorageSQLite:
	case StorageRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("QUIZFLIP_REDIS_ADDR is required for the redis storage backend")
		}
	default:
		return fmt.Errorf("unknown storage backend: %q", c.Storage)
	}
	if c.PlaygroundTimeout <= 0 {
		return fmt.Errorf("playground timeout must be positive, got %s", c.PlaygroundTimeout)
	}
	return nil
}

// SplitList splits a comma separated list, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
