package cart

import (
	"context"
	"testing"
	"time"

	"github.com/gaspacks/backend/internal/domain/cart"
	"github.com/gaspacks/backend/internal/domain/shared"
	"github.com/gaspacks/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRecordRepository is a mock implementation of cart.RecordRepository
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) FindByUserID(ctx context.Context, userID string) (*cart.Record, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Record), args.Error(1)
}

func (m *MockRecordRepository) Save(ctx context.Context, record *cart.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func gasOG(qty int) cart.LineItem {
	return cart.LineItem{
		ProductID: "gas-og",
		Name:      "Gas OG",
		Variant:   "3.5g",
		UnitPrice: decimal.NewFromInt(40),
		Quantity:  qty,
	}
}

func newService(records cart.RecordRepository) *Service {
	return NewService(cache.NewInMemorySnapshotStore(), records)
}

func TestService_AddAndGet(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, "dev-1", gasOG(0), 2)
	require.NoError(t, err)

	// same identity merges, different device stays isolated
	_, err = svc.Add(ctx, "dev-1", gasOG(0), 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "dev-2", gasOG(0), 5)
	require.NoError(t, err)

	c, err := svc.Get(ctx, "dev-1")
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 3, c.Lines[0].Quantity)

	other, err := svc.Get(ctx, "dev-2")
	require.NoError(t, err)
	assert.Equal(t, 5, other.ItemCount())
}

func TestService_QuantityOperations(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()
	key := gasOG(0).Key()

	_, err := svc.Add(ctx, "dev-1", gasOG(0), 2)
	require.NoError(t, err)

	c, err := svc.Increment(ctx, "dev-1", key)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Lines[0].Quantity)

	c, err = svc.Decrement(ctx, "dev-1", key)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Lines[0].Quantity)

	c, err = svc.SetQuantity(ctx, "dev-1", key, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, c.Lines[0].Quantity)

	// zero removes the line
	c, err = svc.SetQuantity(ctx, "dev-1", key, 0)
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
}

func TestService_Clear(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, "dev-1", gasOG(0), 2)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, "dev-1"))

	c, err := svc.Get(ctx, "dev-1")
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
}

func TestService_MutationRestartsRetentionClock(t *testing.T) {
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	clock := base
	now := func() time.Time { return clock }

	store := cache.NewInMemorySnapshotStore().WithClock(now)
	svc := NewService(store, nil).WithClock(now)
	ctx := context.Background()

	_, err := svc.Add(ctx, "dev-1", gasOG(0), 1)
	require.NoError(t, err)

	// two days later the shopper touches the cart again
	clock = base.Add(48 * time.Hour)
	_, err = svc.Increment(ctx, "dev-1", gasOG(0).Key())
	require.NoError(t, err)

	// two more days: four days since creation, but only two since the
	// last mutation, so the cart survives
	clock = base.Add(96 * time.Hour)
	c, err := svc.Get(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, 2, c.ItemCount())
}

func TestService_Reconcile_SeedsMissingRecord(t *testing.T) {
	records := new(MockRecordRepository)
	svc := newService(records)
	ctx := context.Background()

	_, err := svc.Add(ctx, "dev-1", gasOG(0), 3)
	require.NoError(t, err)

	records.On("FindByUserID", mock.Anything, "auth0|u1").Return(nil, shared.ErrNotFound)
	records.On("Save", mock.Anything, mock.MatchedBy(func(r *cart.Record) bool {
		lines, err := r.Lines()
		return err == nil && r.UserID == "auth0|u1" && len(lines) == 1 && lines[0].Quantity == 3
	})).Return(nil)

	c, err := svc.Reconcile(ctx, "auth0|u1", "dev-1")
	require.NoError(t, err)
	assert.Equal(t, 3, c.ItemCount())
	records.AssertExpectations(t)
}

func TestService_Reconcile_MergesWithRemote(t *testing.T) {
	records := new(MockRecordRepository)
	svc := newService(records)
	ctx := context.Background()

	// local device cart: A x3, C x1
	_, err := svc.Add(ctx, "dev-1", gasOG(0), 3)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "dev-1", cart.LineItem{ProductID: "c", UnitPrice: decimal.NewFromInt(10)}, 1)
	require.NoError(t, err)

	// remote record: A x1, B x2
	remote, err := cart.NewRecord("auth0|u1", []cart.LineItem{
		{ProductID: "gas-og", Variant: "3.5g", UnitPrice: decimal.NewFromInt(40), Quantity: 1},
		{ProductID: "b", UnitPrice: decimal.NewFromInt(25), Quantity: 2},
	})
	require.NoError(t, err)

	records.On("FindByUserID", mock.Anything, "auth0|u1").Return(remote, nil)
	records.On("Save", mock.Anything, mock.Anything).Return(nil)

	c, err := svc.Reconcile(ctx, "auth0|u1", "dev-1")
	require.NoError(t, err)

	// remote order first, then unmatched local lines
	require.Len(t, c.Lines, 3)
	assert.Equal(t, "gas-og", c.Lines[0].ProductID)
	assert.Equal(t, 4, c.Lines[0].Quantity) // 1 remote + 3 local
	assert.Equal(t, "b", c.Lines[1].ProductID)
	assert.Equal(t, "c", c.Lines[2].ProductID)

	// the merged cart also becomes the device snapshot
	again, err := svc.Get(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, 7, again.ItemCount())
	records.AssertExpectations(t)
}
