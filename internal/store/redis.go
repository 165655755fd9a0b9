package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/quizflip/internal/session"
)

// RedisOptions configures the Redis-backed record gateway.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces the record key. Defaults to "quizflip:".
	Prefix string
	// TTL expires the record after inactivity; zero keeps it forever.
	TTL time.Duration
}

// RedisGateway stores the session record as a single Redis string.
// It implements session.Gateway.
type RedisGateway struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// NewRedisGateway connects to Redis and verifies the connection.
func NewRedisGateway(ctx context.Context, opts RedisOptions) (*RedisGateway, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "quizflip:"
	}
	return &RedisGateway{rdb: rdb, key: prefix + session.RecordKey, ttl: opts.TTL}, nil
}

// Key returns the Redis key holding the record.
func (g *RedisGateway) Key() string { return g.key }

// Load returns the stored record, or nil if none was saved yet.
func (g *RedisGateway) Load(ctx context.Context) (*session.Record, error) {
	raw, err := g.rdb.Get(ctx, g.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", g.key, err)
	}
	return session.DecodeRecord(raw)
}

// Save overwrites the stored record.
func (g *RedisGateway) Save(ctx context.Context, rec *session.Record) error {
	data, err := session.EncodeRecord(rec)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	if err := g.rdb.Set(ctx, g.key, data, g.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", g.key, err)
	}
	return nil
}

// Delete removes the stored record.
func (g *RedisGateway) Delete(ctx context.Context) error {
	return g.rdb.Del(ctx, g.key).Err()
}

// Close releases the Redis connection pool.
func (g *RedisGateway) Close() error {
	return g.rdb.Close()
}
