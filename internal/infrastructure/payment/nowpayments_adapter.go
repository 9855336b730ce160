package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gaspacks/backend/internal/domain/payment"
)

const nowInvoicePath = "/v1/invoice"

// NOWPaymentsAdapter implements payment.InvoiceGateway against the
// NOWPayments hosted invoice API.
type NOWPaymentsAdapter struct {
	config     *NOWPaymentsConfig
	httpClient *http.Client
}

// NewNOWPaymentsAdapter creates a new NOWPayments adapter
func NewNOWPaymentsAdapter(config *NOWPaymentsConfig) (*NOWPaymentsAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &NOWPaymentsAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// CreateInvoice creates a hosted invoice and returns its payment page URL
func (a *NOWPaymentsAdapter) CreateInvoice(ctx context.Context, req *payment.CreateInvoiceRequest) (*payment.CreateInvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body := nowInvoiceRequest{
		PriceAmount:      json.Number(req.PriceAmount.String()),
		PriceCurrency:    req.PriceCurrency,
		PayCurrency:      req.PayCurrency,
		OrderID:          req.OrderID,
		OrderDescription: req.OrderDescription,
		CustomerEmail:    req.CustomerEmail,
		CustomerName:     req.CustomerName,
		IPNCallbackURL:   a.config.IPNCallbackURL,
		SuccessURL:       a.config.SuccessURL,
		CancelURL:        a.config.CancelURL,
		Metadata:         req.Metadata,
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("nowpayments: failed to marshal request: %w", err)
	}

	respBody, err := a.doRequest(ctx, http.MethodPost, nowInvoicePath, bodyBytes)
	if err != nil {
		return nil, err
	}

	var respData nowInvoiceResponse
	if err := json.Unmarshal(respBody, &respData); err != nil {
		return nil, fmt.Errorf("nowpayments: failed to parse response: %w", err)
	}

	// A success status without a payment page URL is unusable: the buyer
	// has nowhere to go.
	if respData.InvoiceURL == "" {
		return nil, payment.ErrInvoiceURLMissing
	}

	return &payment.CreateInvoiceResponse{
		InvoiceID:   respData.ID.String(),
		InvoiceURL:  respData.InvoiceURL,
		RawResponse: string(respBody),
	}, nil
}

// doRequest performs an authenticated API call and returns the raw body.
// Non-2xx responses are returned as *payment.GatewayError carrying the
// upstream status and message.
func (a *NOWPaymentsAdapter) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.config.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("nowpayments: failed to build request: %w", err)
	}
	req.Header.Set("x-api-key", a.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nowpayments: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("nowpayments: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errData nowErrorResponse
		// The gateway serves plain-text bodies for some failures (404
		// pages and the like); fall back to the raw text.
		message := string(respBody)
		if json.Unmarshal(respBody, &errData) == nil && errData.text() != "" {
			message = errData.text()
		}
		return nil, payment.NewGatewayError(resp.StatusCode, message)
	}

	return respBody, nil
}

// Ensure NOWPaymentsAdapter implements InvoiceGateway
var _ payment.InvoiceGateway = (*NOWPaymentsAdapter)(nil)
