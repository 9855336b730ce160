package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/gaspacks/backend/internal/domain/identity"
	"github.com/gaspacks/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProfileRepository implements identity.ProfileRepository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindByEmail finds a profile by email, case-insensitive
func (r *GormProfileRepository) FindByEmail(ctx context.Context, email string) (*identity.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var profile identity.Profile
	if err := r.db.WithContext(ctx).First(&profile, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert inserts the profile or refreshes email and full name on conflict.
// Status is deliberately not assigned: approval state is managed out of
// band and a webhook replay must not reset it.
func (r *GormProfileRepository) Upsert(ctx context.Context, profile *identity.Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "full_name", "updated_at"}),
		}).
		Create(profile).Error
}

// GormIdentityRecordRepository implements identity.IdentityRecordRepository using GORM
type GormIdentityRecordRepository struct {
	db *gorm.DB
}

// NewGormIdentityRecordRepository creates a new GormIdentityRecordRepository
func NewGormIdentityRecordRepository(db *gorm.DB) *GormIdentityRecordRepository {
	return &GormIdentityRecordRepository{db: db}
}

// Save appends a background-check submission
func (r *GormIdentityRecordRepository) Save(ctx context.Context, record *identity.IdentityRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}
