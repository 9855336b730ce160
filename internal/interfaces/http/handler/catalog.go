package handler

import (
	catalogapp "github.com/gaspacks/backend/internal/application/catalog"
	"github.com/gaspacks/backend/internal/domain/catalog"
	"github.com/gaspacks/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductHandler handles catalog API endpoints
type ProductHandler struct {
	BaseHandler
	catalogService *catalogapp.Service
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService *catalogapp.Service) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// VariantRequest represents one weight/price option
type VariantRequest struct {
	Weight string          `json:"weight" binding:"required,max=20"`
	Price  decimal.Decimal `json:"price" binding:"required"`
}

// CreateProductRequest represents a request to add a catalog product
type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required,max=200"`
	Category    string           `json:"category" binding:"omitempty,oneof=indica sativa hybrid"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url" binding:"omitempty,url,max=255"`
	Variants    []VariantRequest `json:"variants" binding:"required,min=1,dive"`
}

// ProductView is the API shape of a catalog product
type ProductView struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Category    string            `json:"category,omitempty"`
	Description string            `json:"description,omitempty"`
	ImageURL    string            `json:"image_url,omitempty"`
	Variants    []catalog.Variant `json:"variants"`
}

func newProductView(p *catalog.Product) (ProductView, error) {
	variants, err := p.VariantList()
	if err != nil {
		return ProductView{}, err
	}
	return ProductView{
		ID:          p.ID.String(),
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Variants:    variants,
	}, nil
}

// List returns active products, filtered by search term and category
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.catalogService.List(c.Request.Context(), c.Query("search"), c.Query("category"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		view, err := newProductView(&products[i])
		if err != nil {
			h.HandleError(c, err)
			return
		}
		views = append(views, view)
	}
	h.Success(c, gin.H{"products": views})
}

// GetByID returns one product
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.catalogService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	view, err := newProductView(product)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Create adds a product to the catalog. Guarded by the admin key.
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	variants := make([]catalog.Variant, 0, len(req.Variants))
	for _, v := range req.Variants {
		variants = append(variants, catalog.Variant{Weight: v.Weight, Price: v.Price})
	}

	product, err := h.catalogService.Create(c.Request.Context(),
		req.Name, req.Category, req.Description, req.ImageURL, variants)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	view, err := newProductView(product)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}
