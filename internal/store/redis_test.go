package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/abhisek/quizflip/internal/session"
)

func startRedis(ctx context.Context, t *testing.T) string {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}
	t.Cleanup(func() {
		require.NoError(t, redisC.Terminate(ctx))
	})

	host, err := redisC.Host(ctx)
	require.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)
	return fmt.Sprintf("%s:%s", host, port.Port())
}

func TestRedisGateway(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()
	addr := startRedis(ctx, t)

	g, err := NewRedisGateway(ctx, RedisOptions{Addr: addr, Prefix: "test:"})
	require.NoError(t, err)
	defer g.Close()
	require.Equal(t, "test:quiz_state", g.Key())

	rec, err := g.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, rec)

	want := &session.Record{
		Wrongs:      []string{"q_2"},
		AnsweredAll: []int{2},
		Index:       2,
		Mode:        "all",
		Theme:       "light",
	}
	require.NoError(t, g.Save(ctx, want))

	got, err := g.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want.Wrongs, got.Wrongs)
	require.Equal(t, want.AnsweredAll, got.AnsweredAll)
	require.Equal(t, 2, got.Index)
	require.Equal(t, "light", got.Theme)

	require.NoError(t, g.rdb.Set(ctx, g.Key(), "garbage", 0).Err())
	_, err = g.Load(ctx)
	require.True(t, errors.Is(err, session.ErrCorruptRecord))

	require.NoError(t, g.Delete(ctx))
	rec, err = g.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestRedisGatewayUnreachable(t *testing.T) {
	_, err := NewRedisGateway(context.Background(), RedisOptions{Addr: "127.0.0.1:1"})
	require.Error(t, err)
}
