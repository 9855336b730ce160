package handler

import (
	"github.com/gaspacks/backend/internal/application/locator"
	"github.com/gaspacks/backend/internal/domain/dispensary"
	"github.com/gaspacks/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// DispensaryHandler handles store locator API endpoints
type DispensaryHandler struct {
	BaseHandler
	locatorService *locator.Service
}

// NewDispensaryHandler creates a new DispensaryHandler
func NewDispensaryHandler(locatorService *locator.Service) *DispensaryHandler {
	return &DispensaryHandler{locatorService: locatorService}
}

// NearbyRequest represents a proximity query
type NearbyRequest struct {
	Lat float64 `form:"lat" binding:"required,min=-90,max=90"`
	Lng float64 `form:"lng" binding:"required,min=-180,max=180"`
}

// ImportRequest represents a bulk store import
type ImportRequest struct {
	Dispensaries []locator.ImportEntry `json:"dispensaries" binding:"required,min=1,dive"`
}

// Nearby returns stores within the fixed radius of the given point
func (h *DispensaryHandler) Nearby(c *gin.Context) {
	var req NearbyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	stores, err := h.locatorService.Nearby(c.Request.Context(),
		dispensary.Coordinates{Lat: req.Lat, Lng: req.Lng})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"stores": stores})
}

// Search matches stores by address substring
func (h *DispensaryHandler) Search(c *gin.Context) {
	result, err := h.locatorService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Import bulk-loads store rows. Guarded by the admin key middleware.
func (h *DispensaryHandler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	count, err := h.locatorService.Import(c.Request.Context(), req.Dispensaries)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"imported": count})
}
