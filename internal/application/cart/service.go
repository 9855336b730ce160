package cart

import (
	"context"
	"errors"
	"time"

	"github.com/gaspacks/backend/internal/domain/cart"
	"github.com/gaspacks/backend/internal/domain/shared"
)

// Service handles cart operations for one device at a time. Every
// mutation loads the device's snapshot, applies the change, and persists
// a fresh snapshot so the retention clock restarts on activity.
type Service struct {
	snapshots cart.SnapshotStore
	records   cart.RecordRepository
	now       func() time.Time
}

// NewService creates a new cart Service
func NewService(snapshots cart.SnapshotStore, records cart.RecordRepository) *Service {
	return &Service{
		snapshots: snapshots,
		records:   records,
		now:       time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// load materializes the device's cart, empty when no valid snapshot exists.
func (s *Service) load(ctx context.Context, deviceID string) (*cart.Cart, error) {
	snap, ok, err := s.snapshots.Load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return cart.New(), nil
	}
	return snap.Cart(), nil
}

// persist snapshots the cart at the current instant.
func (s *Service) persist(ctx context.Context, deviceID string, c *cart.Cart) error {
	return s.snapshots.Save(ctx, deviceID, cart.NewSnapshot(c, s.now()))
}

// Get returns the device's current cart.
func (s *Service) Get(ctx context.Context, deviceID string) (*cart.Cart, error) {
	return s.load(ctx, deviceID)
}

// Add merges an item into the device's cart and persists the result.
func (s *Service) Add(ctx context.Context, deviceID string, item cart.LineItem, qty int) (*cart.Cart, error) {
	c, err := s.load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	c.Add(item, qty)
	if err := s.persist(ctx, deviceID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetQuantity overwrites a line's quantity; below 1 removes the line.
func (s *Service) SetQuantity(ctx context.Context, deviceID string, key cart.ItemKey, qty int) (*cart.Cart, error) {
	c, err := s.load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	c.SetQuantity(key, qty)
	if err := s.persist(ctx, deviceID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Increment raises a line's quantity by one.
func (s *Service) Increment(ctx context.Context, deviceID string, key cart.ItemKey) (*cart.Cart, error) {
	c, err := s.load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	c.Increment(key)
	if err := s.persist(ctx, deviceID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Decrement lowers a line's quantity by one, clamped at 1.
func (s *Service) Decrement(ctx context.Context, deviceID string, key cart.ItemKey) (*cart.Cart, error) {
	c, err := s.load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	c.Decrement(key)
	if err := s.persist(ctx, deviceID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Remove deletes a line regardless of quantity.
func (s *Service) Remove(ctx context.Context, deviceID string, key cart.ItemKey) (*cart.Cart, error) {
	c, err := s.load(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	c.Remove(key)
	if err := s.persist(ctx, deviceID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear empties the device's cart.
func (s *Service) Clear(ctx context.Context, deviceID string) error {
	return s.snapshots.Clear(ctx, deviceID)
}

// Reconcile folds the device's cart into the account's remote record at
// sign-in. Matching lines sum quantities, unmatched local lines are
// appended after the remote ones, and the merged cart becomes both the
// new remote record and the new device snapshot. Runs once per sign-in;
// concurrent reconciles are last-writer-wins.
func (s *Service) Reconcile(ctx context.Context, userID, deviceID string) (*cart.Cart, error) {
	c, err := s.load(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	record, err := s.records.FindByUserID(ctx, userID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		// First sign-in on record: the device cart seeds the account.
		record, err = cart.NewRecord(userID, c.Lines)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		remote, err := record.Lines()
		if err != nil {
			return nil, err
		}
		merged := cart.Merge(remote, c.Lines)
		if err := record.SetLines(merged); err != nil {
			return nil, err
		}
		c = &cart.Cart{Lines: merged}
	}

	if err := s.records.Save(ctx, record); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, deviceID, c); err != nil {
		return nil, err
	}
	return c, nil
}
