package dto

import "net/http"

// Error code constants
// Format: ERR_<CATEGORY>_<DESCRIPTION>
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the account may not enter gated pages
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeMethodNotAllowed is used when the path exists but not for this verb
	ErrCodeMethodNotAllowed = "ERR_METHOD_NOT_ALLOWED"
	// ErrCodeConflict is used when a duplicate operation is rejected
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeUpstream is used when a dependency (payment gateway, geocoder)
	// fails or violates its contract
	ErrCodeUpstream = "ERR_UPSTREAM"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:         http.StatusInternalServerError,
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeInvalidJSON:      http.StatusBadRequest,
	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeUnauthorized:     http.StatusUnauthorized,
	ErrCodeForbidden:        http.StatusForbidden,
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeMethodNotAllowed: http.StatusMethodNotAllowed,
	ErrCodeConflict:         http.StatusConflict,
	// Upstream failures are reported as our own failure to the browser.
	ErrCodeUpstream: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":        ErrCodeNotFound,
	"ALREADY_EXISTS":   ErrCodeConflict,
	"UNAUTHORIZED":     ErrCodeUnauthorized,
	"FORBIDDEN":        ErrCodeForbidden,
	"UPSTREAM_ERROR":   ErrCodeUpstream,
	"GEOCODE_NO_MATCH": ErrCodeNotFound,

	// Checkout
	"EMPTY_CART":              ErrCodeBadRequest,
	"INVALID_FULFILLMENT":     ErrCodeBadRequest,
	"MISSING_ADDRESS":         ErrCodeBadRequest,
	"UNKNOWN_PICKUP_LOCATION": ErrCodeBadRequest,
	"INVALID_PAY_CURRENCY":    ErrCodeBadRequest,
	"CHECKOUT_IN_FLIGHT":      ErrCodeConflict,

	// Invoice contract
	"INVALID_AMOUNT":       ErrCodeBadRequest,
	"MISSING_PAY_CURRENCY": ErrCodeBadRequest,
	"MISSING_ORDER_ID":     ErrCodeBadRequest,
	"DESCRIPTION_TOO_LONG": ErrCodeBadRequest,
	"INVOICE_URL_MISSING":  ErrCodeUpstream,

	// Entity validation
	"INVALID_INPUT":       ErrCodeBadRequest,
	"INVALID_CART_RECORD": ErrCodeBadRequest,
	"INVALID_PRODUCT":     ErrCodeBadRequest,
	"INVALID_DISPENSARY":  ErrCodeBadRequest,
	"INVALID_PROFILE":     ErrCodeBadRequest,
	"INVALID_IDENTITY":    ErrCodeBadRequest,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Unknown codes map to ERR_INTERNAL so internals never leak verbatim.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return ErrCodeInternal
}
