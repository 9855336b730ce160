package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository provides access to catalog products.
type ProductRepository interface {
	// FindByID returns the product, or shared.ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindAll returns products, optionally narrowed by a case-insensitive
	// name substring and/or an exact category match. Empty filters match
	// everything.
	FindAll(ctx context.Context, search, category string) ([]Product, error)
	// Save inserts or updates a product.
	Save(ctx context.Context, product *Product) error
}
