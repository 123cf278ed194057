package redis

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

// These tests need a live Redis; they are skipped unless ALUMNET_TEST_REDIS_ADDR is set.
func connectForTest(t *testing.T) *IdempotencyStore {
	t.Helper()
	addr := os.Getenv("ALUMNET_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("ALUMNET_TEST_REDIS_ADDR not set")
	}
	client, err := Connect(context.Background(), Config{Addr: addr, DB: 15})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})
	return NewIdempotencyStore(client, time.Minute)
}

func TestIdempotencyStore_ReserveCompleteRelease(t *testing.T) {
	store := connectForTest(t)
	ctx := context.Background()

	reserved, id, err := store.Reserve(ctx, 1, "abc")
	require.NoError(t, err)
	assert.True(t, reserved)
	assert.Zero(t, id)

	reserved, id, err = store.Reserve(ctx, 1, "abc")
	require.NoError(t, err)
	assert.False(t, reserved, "second reservation must lose")
	assert.Zero(t, id, "pending key has no contribution yet")

	require.NoError(t, store.Complete(ctx, 1, "abc", 42))
	require.NoError(t, store.Release(ctx, 1, "abc"), "release after complete is a no-op")

	reserved, id, err = store.Reserve(ctx, 1, "abc")
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.Equal(t, uint(42), id)

	reserved, _, err = store.Reserve(ctx, 2, "abc")
	require.NoError(t, err)
	assert.True(t, reserved, "keys are scoped per contributor")

	require.NoError(t, store.Release(ctx, 2, "abc"))
	reserved, _, err = store.Reserve(ctx, 2, "abc")
	require.NoError(t, err)
	assert.True(t, reserved, "released key can be reserved again")
}

// releaseBeforeGet deletes key right before the first GET of it, as if the
// holder released its reservation between our SETNX and GET.
type releaseBeforeGet struct {
	key   string
	fired atomic.Bool
}

func (h *releaseBeforeGet) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *releaseBeforeGet) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		args := cmd.Args()
		if cmd.Name() == "get" && len(args) == 2 && args[1] == h.key && h.fired.CompareAndSwap(false, true) {
			if err := next(ctx, redis.NewIntCmd(ctx, "del", h.key)); err != nil {
				return err
			}
		}
		return next(ctx, cmd)
	}
}

func (h *releaseBeforeGet) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestIdempotencyStore_ReserveAfterConcurrentRelease(t *testing.T) {
	store := connectForTest(t)
	ctx := context.Background()

	reserved, _, err := store.Reserve(ctx, 7, "retry")
	require.NoError(t, err)
	require.True(t, reserved)

	hook := &releaseBeforeGet{key: idempotencyKey(7, "retry")}
	store.client.AddHook(hook)

	reserved, id, err := store.Reserve(ctx, 7, "retry")
	require.NoError(t, err)
	assert.True(t, hook.fired.Load())
	assert.True(t, reserved, "a key freed between SETNX and GET is claimed again")
	assert.Zero(t, id)

	val, err := store.client.Get(ctx, idempotencyKey(7, "retry")).Result()
	require.NoError(t, err)
	assert.Equal(t, pendingMarker, val)
}

func TestSummaryCache_RoundTrip(t *testing.T) {
	store := connectForTest(t)
	cache := NewSummaryCache(store.client, time.Minute)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	in := &domain.PlatformSummary{Users: 3, TotalRaised: 12050, UsersByType: map[string]int64{"alumni": 3}}
	require.NoError(t, cache.Set(ctx, in))

	out, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(3), out.Users)
	assert.Equal(t, domain.Money(12050), out.TotalRaised)
}

func TestIdempotencyKeyFormat(t *testing.T) {
	assert.Equal(t, "idem:contribution:7:k-1", idempotencyKey(7, "k-1"))
}
