package handler

import (
	identityapp "github.com/gaspacks/backend/internal/application/identity"
	"github.com/gaspacks/backend/internal/domain/identity"
	"github.com/gaspacks/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// IdentityHandler handles account status and identity submissions
type IdentityHandler struct {
	BaseHandler
	identityService *identityapp.Service
}

// NewIdentityHandler creates a new IdentityHandler
func NewIdentityHandler(identityService *identityapp.Service) *IdentityHandler {
	return &IdentityHandler{identityService: identityService}
}

// IdentitySubmissionRequest represents a background-check submission
type IdentitySubmissionRequest struct {
	DOBYear      string `json:"dob_year" binding:"required,len=4,numeric"`
	DOBMonth     string `json:"dob_month" binding:"required,min=1,max=2,numeric"`
	DOBDay       string `json:"dob_day" binding:"required,min=1,max=2,numeric"`
	StreetNumber string `json:"street_number" binding:"max=20"`
	StreetName   string `json:"street_name" binding:"max=200"`
	City         string `json:"city" binding:"max=100"`
	State        string `json:"state" binding:"max=100"`
	Zip          string `json:"zip" binding:"max=20"`
	SSN          string `json:"ssn" binding:"required,max=11"`
	Phone        string `json:"phone" binding:"max=32"`
}

// ProfileWebhookRequest represents an identity-provider webhook event
type ProfileWebhookRequest struct {
	ID       string `json:"id" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,email,max=255"`
	FullName string `json:"full_name" binding:"max=200"`
}

// Status reports the signed-in account's status so the frontend can
// gate its pages. Unknown accounts read as pending.
func (h *IdentityHandler) Status(c *gin.Context) {
	email := middleware.GetJWTEmail(c)
	if email == "" {
		h.Unauthorized(c, "Authentication required")
		return
	}

	status := h.identityService.StatusForEmail(c.Request.Context(), email)
	h.Success(c, gin.H{
		"status": status,
		"active": status == identity.StatusActive,
	})
}

// SubmitIdentity stores a background-check submission for the account
func (h *IdentityHandler) SubmitIdentity(c *gin.Context) {
	userID := middleware.GetJWTUserID(c)
	if userID == "" {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req IdentitySubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	err := h.identityService.SaveIdentity(c.Request.Context(), userID, identity.IdentityFields{
		DOBYear:      req.DOBYear,
		DOBMonth:     req.DOBMonth,
		DOBDay:       req.DOBDay,
		StreetNumber: req.StreetNumber,
		StreetName:   req.StreetName,
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
		SSN:          req.SSN,
		Phone:        req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"submitted": true})
}

// ProfileWebhook upserts a profile from the identity provider. Replays
// are safe: an approved account is never knocked back to pending.
func (h *IdentityHandler) ProfileWebhook(c *gin.Context) {
	var req ProfileWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.identityService.SyncFromWebhook(c.Request.Context(), req.ID, req.Email, req.FullName); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"synced": true})
}
