package persistence

import (
	"context"
	"strings"

	"github.com/gaspacks/backend/internal/domain/dispensary"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDispensaryRepository implements dispensary.Repository using GORM
type GormDispensaryRepository struct {
	db *gorm.DB
}

// NewGormDispensaryRepository creates a new GormDispensaryRepository
func NewGormDispensaryRepository(db *gorm.DB) *GormDispensaryRepository {
	return &GormDispensaryRepository{db: db}
}

// FindAll returns every dispensary, ordered by name
func (r *GormDispensaryRepository) FindAll(ctx context.Context) ([]dispensary.Dispensary, error) {
	var rows []dispensary.Dispensary
	if err := r.db.WithContext(ctx).Order("name asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SearchByAddress returns dispensaries whose address contains the query,
// case-insensitive. An empty query matches nothing.
func (r *GormDispensaryRepository) SearchByAddress(ctx context.Context, query string) ([]dispensary.Dispensary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []dispensary.Dispensary{}, nil
	}
	var rows []dispensary.Dispensary
	if err := r.db.WithContext(ctx).
		Where("address ILIKE ?", "%"+query+"%").
		Order("name asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SaveBatch upserts the given dispensaries keyed by (name, address) and
// returns how many rows were written.
func (r *GormDispensaryRepository) SaveBatch(ctx context.Context, rows []*dispensary.Dispensary) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "address"}},
			DoUpdates: clause.AssignmentColumns([]string{"phone", "website", "updated_at"}),
		}).
		Create(&rows).Error
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
