package middleware

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gaspacks/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator configures the validator with custom tags
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Use JSON tag names for field names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	// paycurrency: one of the accepted settlement tickers, any case
	_ = v.RegisterValidation("paycurrency", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "usdt", "btc", "eth":
			return true
		}
		return false
	})

	// fulfillment: ship or pickup
	_ = v.RegisterValidation("fulfillment", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "ship" || s == "pickup"
	})
}

// HandleValidationError returns a 400 with per-field details when the
// error is a validator error, or a generic bad-request otherwise.
func HandleValidationError(c *gin.Context, err error) {
	requestID := c.GetString(RequestIDContextKey)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidJSON, "Request body could not be parsed", requestID))
		return
	}

	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: validationMessage(e),
		})
	}
	c.JSON(http.StatusBadRequest,
		dto.NewValidationErrorResponse("Request validation failed", requestID, details))
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "paycurrency":
		return "Must be one of usdt, btc, eth"
	case "fulfillment":
		return "Must be ship or pickup"
	case "min":
		return "Must be at least " + e.Param()
	case "max":
		return "Must be at most " + e.Param()
	default:
		return "Invalid value"
	}
}
