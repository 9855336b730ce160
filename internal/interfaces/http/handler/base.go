package handler

import (
	"errors"
	"net/http"

	"github.com/gaspacks/backend/internal/domain/payment"
	"github.com/gaspacks/backend/internal/domain/shared"
	"github.com/gaspacks/backend/internal/interfaces/http/dto"
	"github.com/gaspacks/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDContextKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// requireDeviceID extracts the shopper's device ID or writes a 400.
// Cart state is keyed by this value, so cart-touching routes cannot
// proceed without it.
func (h *BaseHandler) requireDeviceID(c *gin.Context) (string, bool) {
	deviceID := middleware.GetDeviceID(c)
	if deviceID == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "X-Device-ID header is required")
		return "", false
	}
	return deviceID, true
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts service-layer errors to HTTP responses. Gateway
// errors relay the upstream status and message; domain errors map by
// code; anything else becomes a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var gwErr *payment.GatewayError
	if errors.As(err, &gwErr) {
		status := gwErr.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusInternalServerError
		}
		h.Error(c, status, dto.ErrCodeUpstream, gwErr.Message)
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	h.InternalError(c, "An unexpected error occurred")
}
