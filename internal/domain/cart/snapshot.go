package cart

import "time"

// SnapshotRetention is the fixed retention window for persisted cart
// snapshots. A snapshot strictly older than this is discarded in full on
// the next load; there is no partial expiry per line.
const SnapshotRetention = 3 * 24 * time.Hour

// Snapshot is the full cart contents plus the capture timestamp. It is the
// unit of persistence for the device-local store and for the remote
// per-account record.
type Snapshot struct {
	Items     []LineItem `json:"items"`
	Timestamp time.Time  `json:"-"`
}

// NewSnapshot captures the cart at the given time.
func NewSnapshot(c *Cart, at time.Time) Snapshot {
	items := make([]LineItem, len(c.Lines))
	copy(items, c.Lines)
	return Snapshot{Items: items, Timestamp: at}
}

// Cart materializes the snapshot as a mutable cart.
func (s Snapshot) Cart() *Cart {
	lines := make([]LineItem, len(s.Items))
	copy(lines, s.Items)
	return &Cart{Lines: lines}
}

// Expired reports whether the snapshot fell out of the retention window at
// the given instant. A snapshot exactly at the boundary is still valid.
func (s Snapshot) Expired(now time.Time) bool {
	return now.Sub(s.Timestamp) > SnapshotRetention
}
