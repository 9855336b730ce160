package handler

import (
	"context"

	cartapp "github.com/gaspacks/backend/internal/application/cart"
	"github.com/gaspacks/backend/internal/application/cartui"
	"github.com/gaspacks/backend/internal/domain/cart"
	"github.com/gaspacks/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CartHandler handles cart API endpoints. All routes are keyed by the
// shopper's device ID; the reconcile route additionally needs a signed-in
// account.
type CartHandler struct {
	BaseHandler
	cartService  *cartapp.Service
	panelService *cartui.PanelService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.Service, panelService *cartui.PanelService) *CartHandler {
	return &CartHandler{
		cartService:  cartService,
		panelService: panelService,
	}
}

// AddItemRequest represents a request to add an item to the cart
type AddItemRequest struct {
	ID      string          `json:"id" binding:"required"`
	Name    string          `json:"name"`
	Variant string          `json:"variant"`
	Price   decimal.Decimal `json:"price" binding:"required"`
	Qty     int             `json:"qty"`
}

// ItemKeyRequest identifies one cart line by its composite identity
type ItemKeyRequest struct {
	ID      string          `json:"id" binding:"required"`
	Variant string          `json:"variant"`
	Price   decimal.Decimal `json:"price"`
}

func (r *ItemKeyRequest) key() cart.ItemKey {
	return cart.ItemKey{ProductID: r.ID, Variant: r.Variant, UnitPrice: r.Price}
}

// SetQuantityRequest represents a request to overwrite a line quantity
type SetQuantityRequest struct {
	ItemKeyRequest
	Qty int `json:"qty"`
}

// CartView is the API shape of a cart
type CartView struct {
	Items     []cart.LineItem `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}

func newCartView(c *cart.Cart) CartView {
	return CartView{
		Items:     c.Lines,
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal(),
		Tax:       c.Tax(),
		Total:     c.Total(),
	}
}

// Get returns the device's current cart
func (h *CartHandler) Get(c *gin.Context) {
	deviceID, ok := h.requireDeviceID(c)
	if !ok {
		return
	}
	current, err := h.cartService.Get(c.Request.Context(), deviceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newCartView(current))
}

// AddItem merges an item into the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	deviceID, ok := h.requireDeviceID(c)
	if !ok {
		return
	}
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	current, err := h.cartService.Add(c.Request.Context(), deviceID, cart.LineItem{
		ProductID: req.ID,
		Name:      req.Name,
		Variant:   req.Variant,
		UnitPrice: req.Price,
	}, req.Qty)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newCartView(current))
}

// SetQuantity overwrites a line's quantity; zero removes the line
func (h *CartHandler) SetQuantity(c *gin.Context) {
	deviceID, ok := h.requireDeviceID(c)
	if !ok {
		return
	}
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	current, err := h.cartService.SetQuantity(c.Request.Context(), deviceID, req.key(), req.Qty)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newCartView(current))
}

// IncrementItem raises a line's quantity by one
func (h *CartHandler) IncrementItem(c *gin.Context) {
	h.mutateByKey(c, h.cartService.Increment)
}

// DecrementItem lowers a line's quantity by one, clamped at 1
func (h *CartHandler) DecrementItem(c *gin.Context) {
	h.mutateByKey(c, h.cartService.Decrement)
}

// RemoveItem deletes a line regardless of quantity
func (h *CartHandler) RemoveItem(c *gin.Context) {
	h.mutateByKey(c, h.cartService.Remove)
}

// mutateByKey binds an item key and applies one of the key-addressed
// cart operations.
func (h *CartHandler) mutateByKey(c *gin.Context, op func(ctx context.Context, deviceID string, key cart.ItemKey) (*cart.Cart, error)) {
	deviceID, ok := h.requireDeviceID(c)
	if !ok {
		return
	}
	var req ItemKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	current, err := op(c.Request.Context(), deviceID, req.key())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newCartView(current))
}

// Clear empties the device's cart
func (h *CartHandler) Clear(c *gin.Context) {
	deviceID, ok := h.requireDeviceID(c)
	if !ok {
		return
	}
	if err := h.cartService.Clear(c.Request.Context(), deviceID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Reconcile folds the device cart into the signed-in account's saved
// cart and returns the merged result. Requires authentication.
func (h *CartHandler) Reconcile(c *gin.Context) {
	deviceID, ok := h.requireDeviceID(c)
	if !ok {
		return
	}
	userID := middleware.GetJWTUserID(c)
	if userID == "" {
		h.Unauthorized(c, "Authentication required")
		return
	}

	merged, err := h.cartService.Reconcile(c.Request.Context(), userID, deviceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newCartView(merged))
}

// PanelState reports whether the cart panel is open for this device
func (h *CartHandler) PanelState(c *gin.Context) {
	deviceID, ok := h.requireDeviceID(c)
	if !ok {
		return
	}
	h.Success(c, gin.H{"open": h.panelService.IsOpen(deviceID)})
}

// OpenPanel shows the cart panel
func (h *CartHandler) OpenPanel(c *gin.Context) {
	deviceID, ok := h.requireDeviceID(c)
	if !ok {
		return
	}
	h.panelService.Open(deviceID)
	h.Success(c, gin.H{"open": true})
}

// ClosePanel hides the cart panel
func (h *CartHandler) ClosePanel(c *gin.Context) {
	deviceID, ok := h.requireDeviceID(c)
	if !ok {
		return
	}
	h.panelService.Close(deviceID)
	h.Success(c, gin.H{"open": false})
}

// TogglePanel flips the cart panel and reports the new state
func (h *CartHandler) TogglePanel(c *gin.Context) {
	deviceID, ok := h.requireDeviceID(c)
	if !ok {
		return
	}
	h.Success(c, gin.H{"open": h.panelService.Toggle(deviceID)})
}
