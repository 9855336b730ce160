package cache

import (
	"fmt"

	"github.com/gaspacks/backend/internal/domain/cart"
	"github.com/gaspacks/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SnapshotStoreFactory creates cart snapshot stores based on configuration
type SnapshotStoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SnapshotStoreFactoryOption is a functional option for configuring the factory
type SnapshotStoreFactoryOption func(*SnapshotStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SnapshotStoreFactoryOption {
	return func(f *SnapshotStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory store
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) SnapshotStoreFactoryOption {
	return func(f *SnapshotStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSnapshotStoreFactory creates a new factory
func NewSnapshotStoreFactory(cfg config.RedisConfig, opts ...SnapshotStoreFactoryOption) *SnapshotStoreFactory {
	f := &SnapshotStoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateStore tries Redis first and falls back to an in-memory store when
// Redis is unavailable and fallback is allowed.
func (f *SnapshotStoreFactory) CreateStore() (cart.SnapshotStore, error) {
	store, err := NewRedisSnapshotStore(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err == nil {
		f.logger.Info("using Redis cart snapshot store")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for cart snapshots but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cart snapshot store. "+
		"Carts will not survive restarts or be shared across instances.",
		zap.Error(err),
	)
	return NewInMemorySnapshotStore(), nil
}
