package cache

import (
	"context"
	"sync"
	"time"

	"github.com/gaspacks/backend/internal/domain/cart"
)

// InMemorySnapshotStore implements cart.SnapshotStore with a process-local
// map. Suitable for single-instance deployments and testing.
// WARNING: snapshots do not survive restarts and are not shared across
// process instances.
type InMemorySnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]cart.Snapshot
	now       func() time.Time
}

// NewInMemorySnapshotStore creates an in-memory snapshot store
func NewInMemorySnapshotStore() *InMemorySnapshotStore {
	return &InMemorySnapshotStore{
		snapshots: make(map[string]cart.Snapshot),
		now:       time.Now,
	}
}

// WithClock overrides the store's clock. Test hook.
func (s *InMemorySnapshotStore) WithClock(now func() time.Time) *InMemorySnapshotStore {
	s.now = now
	return s
}

// Load returns the device's snapshot. An expired snapshot is deleted and
// reported as absent.
func (s *InMemorySnapshotStore) Load(ctx context.Context, deviceID string) (cart.Snapshot, bool, error) {
	s.mu.RLock()
	snap, ok := s.snapshots[deviceID]
	s.mu.RUnlock()

	if !ok {
		return cart.Snapshot{}, false, nil
	}
	if snap.Expired(s.now()) {
		s.mu.Lock()
		delete(s.snapshots, deviceID)
		s.mu.Unlock()
		return cart.Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Save writes the device's snapshot
func (s *InMemorySnapshotStore) Save(ctx context.Context, deviceID string, snap cart.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[deviceID] = snap
	return nil
}

// Clear removes the device's snapshot
func (s *InMemorySnapshotStore) Clear(ctx context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, deviceID)
	return nil
}

// Ensure InMemorySnapshotStore implements SnapshotStore
var _ cart.SnapshotStore = (*InMemorySnapshotStore)(nil)
