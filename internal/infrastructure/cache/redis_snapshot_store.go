package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gaspacks/backend/internal/domain/cart"
	"github.com/redis/go-redis/v9"
)

// RedisSnapshotStore implements cart.SnapshotStore using Redis. One key per
// device. The capture timestamp travels inside the payload and is the
// authoritative expiry check; the Redis TTL merely keeps abandoned carts
// from accumulating.
type RedisSnapshotStore struct {
	client    *redis.Client
	keyPrefix string
	now       func() time.Time
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// snapshotPayload is the stored wire form of a cart snapshot.
type snapshotPayload struct {
	Items     []cart.LineItem `json:"items"`
	Timestamp int64           `json:"timestamp"` // unix milliseconds
}

// NewRedisSnapshotStore creates a Redis-backed snapshot store
func NewRedisSnapshotStore(cfg RedisConfig) (*RedisSnapshotStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisSnapshotStoreWithClient(client, ""), nil
}

// NewRedisSnapshotStoreWithClient creates a store with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisSnapshotStoreWithClient(client *redis.Client, keyPrefix string) *RedisSnapshotStore {
	if keyPrefix == "" {
		keyPrefix = "cart:snapshot:"
	}
	return &RedisSnapshotStore{
		client:    client,
		keyPrefix: keyPrefix,
		now:       time.Now,
	}
}

// WithClock overrides the store's clock. Test hook.
func (s *RedisSnapshotStore) WithClock(now func() time.Time) *RedisSnapshotStore {
	s.now = now
	return s
}

// Load returns the device's snapshot. An expired snapshot is deleted and
// reported as absent.
func (s *RedisSnapshotStore) Load(ctx context.Context, deviceID string) (cart.Snapshot, bool, error) {
	key := s.keyPrefix + deviceID

	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cart.Snapshot{}, false, nil
		}
		return cart.Snapshot{}, false, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	var payload snapshotPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Unreadable payload is treated as absent and cleared.
		_ = s.client.Del(ctx, key).Err()
		return cart.Snapshot{}, false, nil
	}

	snap := cart.Snapshot{
		Items:     payload.Items,
		Timestamp: time.UnixMilli(payload.Timestamp),
	}
	if snap.Expired(s.now()) {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return cart.Snapshot{}, false, fmt.Errorf("failed to clear expired cart snapshot: %w", err)
		}
		return cart.Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Save writes the device's snapshot with the retention window as TTL.
func (s *RedisSnapshotStore) Save(ctx context.Context, deviceID string, snap cart.Snapshot) error {
	payload := snapshotPayload{
		Items:     snap.Items,
		Timestamp: snap.Timestamp.UnixMilli(),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	key := s.keyPrefix + deviceID
	if err := s.client.Set(ctx, key, raw, cart.SnapshotRetention).Err(); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	return nil
}

// Clear removes the device's snapshot
func (s *RedisSnapshotStore) Clear(ctx context.Context, deviceID string) error {
	if err := s.client.Del(ctx, s.keyPrefix+deviceID).Err(); err != nil {
		return fmt.Errorf("failed to clear cart snapshot: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisSnapshotStore) Close() error {
	return s.client.Close()
}

// Ensure RedisSnapshotStore implements SnapshotStore
var _ cart.SnapshotStore = (*RedisSnapshotStore)(nil)
