package cart

import "context"

// RecordRepository persists the remote per-account cart record.
type RecordRepository interface {
	// FindByUserID returns the account's cart record, or shared.ErrNotFound.
	FindByUserID(ctx context.Context, userID string) (*Record, error)
	// Save inserts or updates the record. Last writer wins.
	Save(ctx context.Context, record *Record) error
}

// SnapshotStore persists the device-local cart snapshot. Implementations
// enforce the retention window on load: an expired snapshot is reported as
// absent, never partially returned.
type SnapshotStore interface {
	// Load returns the snapshot for the device, or false when no valid
	// snapshot exists (missing or expired).
	Load(ctx context.Context, deviceID string) (Snapshot, bool, error)
	// Save writes the snapshot for the device.
	Save(ctx context.Context, deviceID string, snap Snapshot) error
	// Clear removes the device's snapshot.
	Clear(ctx context.Context, deviceID string) error
}
