// Package catalog serves the storefront product listing.
package catalog

import (
	"context"
	"strings"

	"github.com/gaspacks/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// Service answers shop-page queries over the product catalog.
type Service struct {
	products catalog.ProductRepository
}

// NewService creates a new catalog Service
func NewService(products catalog.ProductRepository) *Service {
	return &Service{products: products}
}

// List returns active products, optionally narrowed by a name search
// term and a category. Category matching is case-insensitive.
func (s *Service) List(ctx context.Context, search, category string) ([]catalog.Product, error) {
	return s.products.FindAll(ctx,
		strings.TrimSpace(search),
		strings.ToLower(strings.TrimSpace(category)))
}

// Get returns one product by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return s.products.FindByID(ctx, id)
}

// Create adds a product to the catalog.
func (s *Service) Create(ctx context.Context, name, category, description, imageURL string, variants []catalog.Variant) (*catalog.Product, error) {
	product, err := catalog.NewProduct(name, category, variants)
	if err != nil {
		return nil, err
	}
	product.Description = strings.TrimSpace(description)
	product.ImageURL = strings.TrimSpace(imageURL)

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}
