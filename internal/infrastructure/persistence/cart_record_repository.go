package persistence

import (
	"context"
	"errors"

	"github.com/gaspacks/backend/internal/domain/cart"
	"github.com/gaspacks/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRecordRepository implements cart.RecordRepository using GORM
type GormCartRecordRepository struct {
	db *gorm.DB
}

// NewGormCartRecordRepository creates a new GormCartRecordRepository
func NewGormCartRecordRepository(db *gorm.DB) *GormCartRecordRepository {
	return &GormCartRecordRepository{db: db}
}

// FindByUserID finds the remote cart for an account
func (r *GormCartRecordRepository) FindByUserID(ctx context.Context, userID string) (*cart.Record, error) {
	if userID == "" {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	var record cart.Record
	if err := r.db.WithContext(ctx).First(&record, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Save inserts the record or replaces the stored items on conflict.
// Reconciliation is last-writer-wins, so no version column is checked.
func (r *GormCartRecordRepository) Save(ctx context.Context, record *cart.Record) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
		}).
		Create(record).Error
}
