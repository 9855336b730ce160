package cache

import (
	"context"
	"testing"
	"time"

	"github.com/gaspacks/backend/internal/domain/cart"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(at time.Time) cart.Snapshot {
	return cart.Snapshot{
		Items: []cart.LineItem{
			{ProductID: "gas-og", Name: "Gas OG", Variant: "3.5g", UnitPrice: decimal.NewFromInt(40), Quantity: 2},
		},
		Timestamp: at,
	}
}

func TestInMemorySnapshotStore(t *testing.T) {
	ctx := context.Background()

	t.Run("load of missing device reports absent", func(t *testing.T) {
		store := NewInMemorySnapshotStore()
		_, ok, err := store.Load(ctx, "dev-1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("save then load round-trips", func(t *testing.T) {
		store := NewInMemorySnapshotStore()
		now := time.Now()

		require.NoError(t, store.Save(ctx, "dev-1", testSnapshot(now)))

		got, ok, err := store.Load(ctx, "dev-1")
		require.NoError(t, err)
		require.True(t, ok)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "gas-og", got.Items[0].ProductID)
	})

	t.Run("clear removes the snapshot", func(t *testing.T) {
		store := NewInMemorySnapshotStore()
		require.NoError(t, store.Save(ctx, "dev-1", testSnapshot(time.Now())))
		require.NoError(t, store.Clear(ctx, "dev-1"))

		_, ok, err := store.Load(ctx, "dev-1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("retention boundary", func(t *testing.T) {
		base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

		tests := []struct {
			name string
			age  time.Duration
			want bool
		}{
			{"fresh snapshot survives", time.Hour, true},
			{"snapshot exactly at the boundary survives", cart.SnapshotRetention, true},
			{"snapshot one millisecond past the boundary is dropped", cart.SnapshotRetention + time.Millisecond, false},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				store := NewInMemorySnapshotStore().WithClock(func() time.Time { return base })
				require.NoError(t, store.Save(ctx, "dev-1", testSnapshot(base.Add(-tt.age))))

				_, ok, err := store.Load(ctx, "dev-1")
				require.NoError(t, err)
				assert.Equal(t, tt.want, ok)

				if !tt.want {
					// expired snapshot is gone for good, even if the clock rolls back
					store.now = func() time.Time { return base.Add(-tt.age) }
					_, ok, err = store.Load(ctx, "dev-1")
					require.NoError(t, err)
					assert.False(t, ok)
				}
			})
		}
	})
}
