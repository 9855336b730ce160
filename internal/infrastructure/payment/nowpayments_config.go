package payment

import (
	"errors"
	"time"
)

// NOWPaymentsConfig contains configuration for the NOWPayments API
type NOWPaymentsConfig struct {
	// APIKey authenticates requests via the x-api-key header
	APIKey string
	// BaseURL is the API root, e.g. "https://api.nowpayments.io"
	BaseURL string
	// IPNCallbackURL receives payment status notifications
	IPNCallbackURL string
	// SuccessURL is where the buyer lands after paying
	SuccessURL string
	// CancelURL is where the buyer lands after abandoning the invoice
	CancelURL string
	// Timeout bounds each outbound request
	Timeout time.Duration
}

// Errors for configuration validation
var (
	ErrNOWPaymentsMissingAPIKey  = errors.New("nowpayments: missing API key")
	ErrNOWPaymentsMissingBaseURL = errors.New("nowpayments: missing base URL")
)

// Validate validates the configuration
func (c *NOWPaymentsConfig) Validate() error {
	if c.APIKey == "" {
		return ErrNOWPaymentsMissingAPIKey
	}
	if c.BaseURL == "" {
		return ErrNOWPaymentsMissingBaseURL
	}
	return nil
}
