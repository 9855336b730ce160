package persistence

import (
	"context"
	"testing"

	"github.com/gaspacks/backend/internal/domain/identity"
	"github.com/gaspacks/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProfileRepository(t *testing.T) {
	db := newTestDB(t, &identity.Profile{}, &identity.IdentityRecord{})
	repo := NewGormProfileRepository(db)
	ctx := context.Background()

	t.Run("returns not found for unknown email", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("upserts and finds by email", func(t *testing.T) {
		profile, err := identity.NewProfile("auth0|abc", "Buyer@Example.com", "Buyer One")
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, profile))

		got, err := repo.FindByEmail(ctx, "BUYER@example.com")
		require.NoError(t, err)
		assert.Equal(t, "auth0|abc", got.ID)
		assert.Equal(t, identity.StatusPending, got.Status)
	})

	t.Run("upsert does not reset an approved status", func(t *testing.T) {
		// approve out of band
		require.NoError(t, db.Model(&identity.Profile{}).
			Where("id = ?", "auth0|abc").
			Update("status", identity.StatusActive).Error)

		// webhook replays the signup payload
		replay, err := identity.NewProfile("auth0|abc", "buyer@example.com", "Buyer Renamed")
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, replay))

		got, err := repo.FindByEmail(ctx, "buyer@example.com")
		require.NoError(t, err)
		assert.Equal(t, identity.StatusActive, got.Status)
		assert.Equal(t, "Buyer Renamed", got.FullName)
	})
}

func TestGormIdentityRecordRepository(t *testing.T) {
	db := newTestDB(t, &identity.Profile{}, &identity.IdentityRecord{})
	repo := NewGormIdentityRecordRepository(db)
	ctx := context.Background()

	record, err := identity.NewIdentityRecord("auth0|abc", identity.IdentityFields{
		DOBMonth: "04", DOBDay: "20", DOBYear: "1990",
		StreetNumber: "1", StreetName: "Main St", City: "New York", State: "NY", Zip: "10001",
		SSN: "123-45-6789", Phone: "555-0100",
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, record))

	var count int64
	require.NoError(t, db.Model(&identity.IdentityRecord{}).Where("user_id = ?", "auth0|abc").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
