package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a store backed by it
func setupTestRedis(t *testing.T) (*RedisSnapshotStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisSnapshotStoreWithClient(client, ""), mr
}

func TestRedisSnapshotStore_LoadMissing(t *testing.T) {
	store, _ := setupTestRedis(t)

	_, ok, err := store.Load(context.Background(), "dev-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisSnapshotStore_RoundTrip(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Save(ctx, "dev-1", testSnapshot(now)))

	// TTL is set as a secondary cleanup mechanism
	ttl := mr.TTL("cart:snapshot:dev-1")
	assert.Greater(t, ttl, time.Duration(0))

	got, ok, err := store.Load(ctx, "dev-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "gas-og", got.Items[0].ProductID)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, now.UnixMilli(), got.Timestamp.UnixMilli())
}

func TestRedisSnapshotStore_ExpiredByPayloadTimestamp(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	store.WithClock(func() time.Time { return base })

	// Written three days and one millisecond ago: past retention even
	// though the Redis key itself has not expired yet.
	stale := testSnapshot(base.Add(-(72*time.Hour + time.Millisecond)))
	require.NoError(t, store.Save(ctx, "dev-1", stale))

	_, ok, err := store.Load(ctx, "dev-1")
	require.NoError(t, err)
	assert.False(t, ok)

	// The stale key was deleted on load
	assert.False(t, mr.Exists("cart:snapshot:dev-1"))
}

func TestRedisSnapshotStore_BoundaryIsValid(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	store.WithClock(func() time.Time { return base })

	exact := testSnapshot(base.Add(-72 * time.Hour))
	require.NoError(t, store.Save(ctx, "dev-1", exact))

	_, ok, err := store.Load(ctx, "dev-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisSnapshotStore_CorruptPayloadTreatedAsAbsent(t *testing.T) {
	store, mr := setupTestRedis(t)

	mr.Set("cart:snapshot:dev-1", "{not json")

	_, ok, err := store.Load(context.Background(), "dev-1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("cart:snapshot:dev-1"))
}

func TestRedisSnapshotStore_Clear(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "dev-1", testSnapshot(time.Now())))
	require.NoError(t, store.Clear(ctx, "dev-1"))
	assert.False(t, mr.Exists("cart:snapshot:dev-1"))
}
