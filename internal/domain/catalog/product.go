package catalog

import (
	"encoding/json"
	"strings"

	"github.com/gaspacks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Variant is one purchasable configuration of a product, a weight/size
// value with its own price.
type Variant struct {
	Weight string          `json:"weight"`
	Price  decimal.Decimal `json:"price"`
}

// Product is a strain/SKU in the storefront catalog. Variants are stored
// as JSON so the shop page can render the weight/price picker directly.
type Product struct {
	shared.BaseEntity
	Name        string        `gorm:"type:varchar(200);not null"`
	Category    string        `gorm:"type:varchar(50);index"` // indica, sativa, hybrid
	Description string        `gorm:"type:text"`
	ImageURL    string        `gorm:"type:varchar(255)"`
	Variants    string        `gorm:"type:jsonb;not null;default:'[]'"`
	Status      ProductStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a catalog product.
func NewProduct(name, category string, variants []Variant) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product name is required")
	}

	p := &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Category:   strings.ToLower(strings.TrimSpace(category)),
		Status:     ProductStatusActive,
		Variants:   "[]",
	}
	if err := p.SetVariants(variants); err != nil {
		return nil, err
	}
	return p, nil
}

// VariantList decodes the stored variants.
func (p *Product) VariantList() ([]Variant, error) {
	if p.Variants == "" {
		return []Variant{}, nil
	}
	var variants []Variant
	if err := json.Unmarshal([]byte(p.Variants), &variants); err != nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Stored variants are not valid JSON")
	}
	return variants, nil
}

// SetVariants replaces the stored variants.
func (p *Product) SetVariants(variants []Variant) error {
	if variants == nil {
		variants = []Variant{}
	}
	for _, v := range variants {
		if v.Price.IsNegative() {
			return shared.NewDomainError("INVALID_PRODUCT", "Variant price cannot be negative")
		}
	}
	raw, err := json.Marshal(variants)
	if err != nil {
		return err
	}
	p.Variants = string(raw)
	return nil
}

// IsActive reports whether the product is visible in the shop.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}
