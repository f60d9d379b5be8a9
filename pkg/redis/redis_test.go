package redis_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentstudio/studio/pkg/auth"
	"github.com/contentstudio/studio/pkg/redis"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestReplayGuardConsume(t *testing.T) {
	t.Parallel()

	mr, client := newClient(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	guard := redis.NewReplayGuard(client, redis.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, guard.Consume(ctx, "jti-1", now.Add(10*time.Minute)))
	assert.True(t, mr.Exists(redis.DefaultKeyPrefix+"jti-1"))
	assert.Equal(t, 10*time.Minute, mr.TTL(redis.DefaultKeyPrefix+"jti-1"))

	err := guard.Consume(ctx, "jti-1", now.Add(10*time.Minute))
	assert.ErrorIs(t, err, auth.ErrTokenAlreadyUsed)

	require.NoError(t, guard.Consume(ctx, "jti-2", now.Add(10*time.Minute)))
}

func TestReplayGuardKeyExpires(t *testing.T) {
	t.Parallel()

	mr, client := newClient(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	guard := redis.NewReplayGuard(client, redis.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, guard.Consume(ctx, "jti", now.Add(time.Minute)))
	mr.FastForward(time.Minute + time.Second)
	assert.False(t, mr.Exists(redis.DefaultKeyPrefix+"jti"))
	require.NoError(t, guard.Consume(ctx, "jti", now.Add(time.Minute)))
}

func TestReplayGuardPastExpiryStillRecorded(t *testing.T) {
	t.Parallel()

	mr, client := newClient(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	guard := redis.NewReplayGuard(client,
		redis.WithClock(func() time.Time { return now }),
		redis.WithKeyPrefix("test:"),
	)

	require.NoError(t, guard.Consume(context.Background(), "old", now.Add(-time.Minute)))
	assert.Equal(t, time.Second, mr.TTL("test:old"))
}

func TestReplayGuardErrors(t *testing.T) {
	t.Parallel()

	mr, client := newClient(t)
	guard := redis.NewReplayGuard(client)

	assert.ErrorIs(t, guard.Consume(context.Background(), "", time.Now().Add(time.Minute)), redis.ErrEmptyTokenID)

	mr.Close()
	err := guard.Consume(context.Background(), "jti", time.Now().Add(time.Minute))
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrTokenAlreadyUsed)
}

func TestReplayGuardConcurrentConsume(t *testing.T) {
	t.Parallel()

	_, client := newClient(t)
	guard := redis.NewReplayGuard(client)
	until := time.Now().Add(time.Minute)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if guard.Consume(context.Background(), "shared", until) == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}

func TestConnect(t *testing.T) {
	t.Parallel()

	mr, _ := newClient(t)

	client, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  "redis://" + mr.Addr() + "/0",
		RetryAttempts:  1,
		ConnectTimeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, redis.Healthcheck(client)(context.Background()))
}

func TestConnectErrors(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{})
	assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)

	_, err = redis.Connect(context.Background(), redis.Config{ConnectionURL: "http://nope"})
	assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err = redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  "redis://" + addr,
		RetryAttempts:  2,
		RetryInterval:  10 * time.Millisecond,
		ConnectTimeout: time.Second,
	})
	assert.ErrorIs(t, err, redis.ErrRedisNotReady)
}

func TestHealthcheckFailure(t *testing.T) {
	t.Parallel()

	mr, client := newClient(t)
	mr.Close()
	assert.ErrorIs(t, redis.Healthcheck(client)(context.Background()), redis.ErrHealthcheckFailed)
}

func TestConsumeSatisfiesAuthReplayGuard(t *testing.T) {
	t.Parallel()

	_, client := newClient(t)
	var _ auth.ReplayGuard = redis.NewReplayGuard(client)
}
