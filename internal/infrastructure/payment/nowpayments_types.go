package payment

import "encoding/json"

// nowInvoiceRequest is the wire form of an invoice creation call
type nowInvoiceRequest struct {
	PriceAmount      json.Number    `json:"price_amount"`
	PriceCurrency    string         `json:"price_currency"`
	PayCurrency      string         `json:"pay_currency"`
	OrderID          string         `json:"order_id"`
	OrderDescription string         `json:"order_description,omitempty"`
	CustomerEmail    string         `json:"customer_email,omitempty"`
	CustomerName     string         `json:"customer_name,omitempty"`
	IPNCallbackURL   string         `json:"ipn_callback_url,omitempty"`
	SuccessURL       string         `json:"success_url,omitempty"`
	CancelURL        string         `json:"cancel_url,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

// nowInvoiceResponse is the subset of the invoice response we consume.
// The gateway returns the invoice ID as a JSON number.
type nowInvoiceResponse struct {
	ID         json.Number `json:"id"`
	InvoiceURL string      `json:"invoice_url"`
}

// nowErrorResponse is the gateway's error envelope
type nowErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e *nowErrorResponse) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}
