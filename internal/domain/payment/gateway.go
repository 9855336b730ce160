package payment

import (
	"context"
	"strings"

	"github.com/gaspacks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// maxDescriptionLength is the gateway's limit on order descriptions.
const maxDescriptionLength = 500

// CreateInvoiceRequest is the outbound invoice-creation contract.
type CreateInvoiceRequest struct {
	PriceAmount      decimal.Decimal
	PriceCurrency    string
	PayCurrency      string
	OrderID          string
	OrderDescription string
	CustomerEmail    string
	CustomerName     string
	Metadata         map[string]any
}

// Validate checks the minimal request shape before it leaves the process.
func (r *CreateInvoiceRequest) Validate() error {
	if !r.PriceAmount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(r.PayCurrency) == "" {
		return ErrMissingPayCurrency
	}
	if strings.TrimSpace(r.OrderID) == "" {
		return ErrMissingOrderID
	}
	if len(r.OrderDescription) > maxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// CreateInvoiceResponse carries what the checkout flow needs from the
// gateway: the hosted payment page to send the buyer to. A success
// response without an invoice URL is a contract violation.
type CreateInvoiceResponse struct {
	InvoiceID   string
	InvoiceURL  string
	RawResponse string
}

// InvoiceGateway creates hosted crypto payment invoices.
type InvoiceGateway interface {
	CreateInvoice(ctx context.Context, req *CreateInvoiceRequest) (*CreateInvoiceResponse, error)
}

// Invoice request errors
var (
	ErrInvalidAmount      = shared.NewDomainError("INVALID_AMOUNT", "Invoice amount must be positive")
	ErrMissingPayCurrency = shared.NewDomainError("MISSING_PAY_CURRENCY", "Settlement currency is required")
	ErrMissingOrderID     = shared.NewDomainError("MISSING_ORDER_ID", "Order ID is required")
	ErrDescriptionTooLong = shared.NewDomainError("DESCRIPTION_TOO_LONG", "Order description exceeds 500 characters")
	ErrInvoiceURLMissing  = shared.NewDomainError("INVOICE_URL_MISSING", "Gateway response did not include an invoice URL")
)

// GatewayError wraps an upstream failure so the caller can relay the
// gateway's own status and message.
type GatewayError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *GatewayError) Error() string {
	return e.Message
}

// NewGatewayError creates a gateway error with the upstream status.
func NewGatewayError(statusCode int, message string) *GatewayError {
	if message == "" {
		message = "Payment gateway request failed"
	}
	return &GatewayError{StatusCode: statusCode, Message: message}
}
