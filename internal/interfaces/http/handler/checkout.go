package handler

import (
	"github.com/gaspacks/backend/internal/application/checkout"
	"github.com/gaspacks/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles checkout API endpoints
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkout.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// QuoteRequest represents a request to price the cart with a coupon
type QuoteRequest struct {
	Coupon string `json:"coupon" binding:"max=50"`
}

// ShippingAddressRequest represents the delivery address for shipped orders
type ShippingAddressRequest struct {
	Name     string `json:"name" binding:"max=200"`
	Address1 string `json:"address1" binding:"max=200"`
	Address2 string `json:"address2" binding:"max=200"`
	City     string `json:"city" binding:"max=100"`
	State    string `json:"state" binding:"max=100"`
	Zip      string `json:"zip" binding:"max=20"`
	Country  string `json:"country" binding:"max=100"`
}

// SubmitRequest represents a checkout submission
type SubmitRequest struct {
	Fulfillment     string                  `json:"fulfillment" binding:"required,fulfillment"`
	Address         *ShippingAddressRequest `json:"address"`
	PickupLocation  string                  `json:"pickup_location"`
	PayCurrency     string                  `json:"pay_currency" binding:"required,paycurrency"`
	Coupon          string                  `json:"coupon" binding:"max=50"`
	Email           string                  `json:"email" binding:"omitempty,email,max=200"`
	Name            string                  `json:"name" binding:"max=200"`
	NewsletterOptIn bool                    `json:"newsletter_opt_in"`
}

// Quote prices the device's cart, applying the coupon when it matches
func (h *CheckoutHandler) Quote(c *gin.Context) {
	deviceID, ok := h.requireDeviceID(c)
	if !ok {
		return
	}
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	quote, err := h.checkoutService.Quote(c.Request.Context(), deviceID, req.Coupon)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// Submit creates the payment invoice for the device's cart. The result
// carries the hosted invoice URL the browser must redirect to.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	deviceID, ok := h.requireDeviceID(c)
	if !ok {
		return
	}
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	submission := &checkout.Request{
		Fulfillment:     req.Fulfillment,
		PickupLocation:  req.PickupLocation,
		PayCurrency:     req.PayCurrency,
		Coupon:          req.Coupon,
		Email:           req.Email,
		Name:            req.Name,
		NewsletterOptIn: req.NewsletterOptIn,
	}
	if req.Address != nil {
		submission.Address = &checkout.ShippingAddress{
			Name:     req.Address.Name,
			Address1: req.Address.Address1,
			Address2: req.Address.Address2,
			City:     req.Address.City,
			State:    req.Address.State,
			Zip:      req.Address.Zip,
			Country:  req.Address.Country,
		}
	}

	result, err := h.checkoutService.Submit(c.Request.Context(), deviceID, submission)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
