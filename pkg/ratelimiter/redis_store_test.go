package ratelimiter_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/ratelimiter"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx := context.Background()
	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(ctr) })

	endpoint, err := ctr.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedisStore(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()
	clk := newClock()

	store := ratelimiter.NewRedisStore(client, ratelimiter.WithKeyPrefix("test:"), ratelimiter.WithRedisClock(clk.Now))
	b, err := ratelimiter.NewBucket(store, testConfig)
	require.NoError(t, err)

	t.Run("drains and refills", func(t *testing.T) {
		for want := 2; want >= 0; want-- {
			res, err := b.Allow(ctx, "user")
			require.NoError(t, err)
			assert.Equal(t, want, res.Remaining)
		}
		res, err := b.Allow(ctx, "user")
		require.NoError(t, err)
		assert.False(t, res.Allowed())
		assert.Equal(t, clk.Now().Add(time.Minute).UnixMilli(), res.ResetAt.UnixMilli())

		clk.Advance(2 * time.Minute)
		res, err = b.Status(ctx, "user")
		require.NoError(t, err)
		assert.Equal(t, 1, res.Remaining)
	})

	t.Run("state expires", func(t *testing.T) {
		ttl, err := client.PTTL(ctx, "test:user").Result()
		require.NoError(t, err)
		assert.Positive(t, ttl)
		assert.LessOrEqual(t, ttl, 5*time.Minute)
	})

	t.Run("reset", func(t *testing.T) {
		require.NoError(t, b.Reset(ctx, "user"))
		res, err := b.Status(ctx, "user")
		require.NoError(t, err)
		assert.Equal(t, 3, res.Remaining)
	})
}

func TestRedisStore_Unavailable(t *testing.T) {
	t.Parallel()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	b, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client), testConfig)
	require.NoError(t, err)

	_, err = b.Allow(context.Background(), "k")
	assert.ErrorIs(t, err, ratelimiter.ErrStoreUnavailable)
}
