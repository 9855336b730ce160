// Package checkout turns a device's cart into a hosted crypto invoice.
package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gaspacks/backend/internal/domain/cart"
	"github.com/gaspacks/backend/internal/domain/payment"
	"github.com/gaspacks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fulfillment modes. Exactly one must be chosen per order.
const (
	FulfillmentShip   = "ship"
	FulfillmentPickup = "pickup"
)

const (
	couponCode    = "GAS10"
	priceCurrency = "usd"

	// maxDescriptionBytes mirrors the gateway's order description limit.
	maxDescriptionBytes = 500
)

// discountRate is the flat coupon discount (10% of the order total).
var discountRate = decimal.RequireFromString("0.1")

// payCurrencies is the fixed set of accepted settlement tickers.
var payCurrencies = map[string]struct{}{
	"usdt": {},
	"btc":  {},
	"eth":  {},
}

// PickupLocations is the fixed list of stores offering in-person pickup.
var PickupLocations = []string{
	"Los Angeles – Fairfax",
	"Los Angeles – DTLA",
	"New York – SoHo",
	"Miami – Wynwood",
}

// Checkout errors
var (
	ErrEmptyCart             = shared.NewDomainError("EMPTY_CART", "Cart has no items to check out")
	ErrInvalidFulfillment    = shared.NewDomainError("INVALID_FULFILLMENT", "Fulfillment must be ship or pickup")
	ErrMissingAddress        = shared.NewDomainError("MISSING_ADDRESS", "Shipping orders require a delivery address")
	ErrUnknownPickupLocation = shared.NewDomainError("UNKNOWN_PICKUP_LOCATION", "Pickup location is not one of the available stores")
	ErrInvalidPayCurrency    = shared.NewDomainError("INVALID_PAY_CURRENCY", "Settlement currency is not supported")
	ErrCheckoutInFlight      = shared.NewDomainError("CHECKOUT_IN_FLIGHT", "A checkout for this cart is already in progress")
)

// ShippingAddress is the delivery destination for shipped orders.
type ShippingAddress struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

func (a *ShippingAddress) summary() string {
	line := a.Address1
	if a.Address2 != "" {
		line += ", " + a.Address2
	}
	return fmt.Sprintf("%s | %s, %s, %s %s, %s", a.Name, line, a.City, a.State, a.Zip, a.Country)
}

// Request carries everything the buyer submits at checkout.
type Request struct {
	Fulfillment     string
	Address         *ShippingAddress
	PickupLocation  string
	PayCurrency     string
	Coupon          string
	Email           string
	Name            string
	NewsletterOptIn bool
}

func (r *Request) validate() error {
	switch r.Fulfillment {
	case FulfillmentShip:
		if r.Address == nil || strings.TrimSpace(r.Address.Address1) == "" || strings.TrimSpace(r.Address.City) == "" {
			return ErrMissingAddress
		}
	case FulfillmentPickup:
		found := false
		for _, loc := range PickupLocations {
			if loc == r.PickupLocation {
				found = true
				break
			}
		}
		if !found {
			return ErrUnknownPickupLocation
		}
	default:
		return ErrInvalidFulfillment
	}
	if _, ok := payCurrencies[strings.ToLower(r.PayCurrency)]; !ok {
		return ErrInvalidPayCurrency
	}
	return nil
}

// Quote is the priced view of a cart with an optional coupon applied.
type Quote struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Discount      decimal.Decimal `json:"discount"`
	Payable       decimal.Decimal `json:"payable"`
	CouponApplied bool            `json:"coupon_applied"`
}

// Result is the outcome of a successful checkout submission.
type Result struct {
	Quote
	OrderID    string `json:"order_id"`
	InvoiceID  string `json:"invoice_id"`
	InvoiceURL string `json:"invoice_url"`
}

// CartReader loads the current cart for a device.
type CartReader interface {
	Get(ctx context.Context, deviceID string) (*cart.Cart, error)
}

// Service orchestrates checkout: it prices the cart, validates the
// buyer's submission, and creates exactly one invoice per attempt. A
// second submission for the same device while one is outstanding is
// rejected rather than queued.
type Service struct {
	carts      CartReader
	gateway    payment.InvoiceGateway
	inflight   sync.Map
	newOrderID func() string
}

// NewService creates a new checkout Service
func NewService(carts CartReader, gateway payment.InvoiceGateway) *Service {
	return &Service{
		carts:   carts,
		gateway: gateway,
		newOrderID: func() string {
			return "order_" + uuid.NewString()
		},
	}
}

// WithOrderID overrides order ID generation. Test hook.
func (s *Service) WithOrderID(gen func() string) *Service {
	s.newOrderID = gen
	return s
}

// Quote prices the device's cart, applying the coupon when it matches.
// A non-matching coupon yields a zero discount, not an error.
func (s *Service) Quote(ctx context.Context, deviceID, coupon string) (*Quote, error) {
	c, err := s.carts.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	q := quoteCart(c, coupon)
	return &q, nil
}

// Submit validates the request, prices the cart, and creates the
// invoice. The returned result carries the hosted invoice URL the buyer
// must be redirected to.
func (s *Service) Submit(ctx context.Context, deviceID string, req *Request) (*Result, error) {
	if _, busy := s.inflight.LoadOrStore(deviceID, struct{}{}); busy {
		return nil, ErrCheckoutInFlight
	}
	defer s.inflight.Delete(deviceID)

	if err := req.validate(); err != nil {
		return nil, err
	}

	c, err := s.carts.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if len(c.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	q := quoteCart(c, req.Coupon)
	orderID := s.newOrderID()

	invoice, err := s.gateway.CreateInvoice(ctx, &payment.CreateInvoiceRequest{
		PriceAmount:      q.Payable,
		PriceCurrency:    priceCurrency,
		PayCurrency:      strings.ToLower(req.PayCurrency),
		OrderID:          orderID,
		OrderDescription: describeOrder(c, req),
		CustomerEmail:    req.Email,
		CustomerName:     req.Name,
		Metadata:         buildMetadata(c, req, q),
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Quote:      q,
		OrderID:    orderID,
		InvoiceID:  invoice.InvoiceID,
		InvoiceURL: invoice.InvoiceURL,
	}, nil
}

// quoteCart prices the cart. The coupon check is a literal comparison;
// the discount is 10% of the pre-tax subtotal, and the payable amount
// never goes below zero.
func quoteCart(c *cart.Cart, coupon string) Quote {
	q := Quote{
		Subtotal: c.Subtotal(),
		Tax:      c.Tax(),
		Total:    c.Total(),
		Discount: decimal.Zero,
	}
	if strings.ToUpper(strings.TrimSpace(coupon)) == couponCode {
		q.Discount = q.Subtotal.Mul(discountRate).Round(2)
		q.CouponApplied = true
	}
	q.Payable = q.Total.Sub(q.Discount)
	if q.Payable.IsNegative() {
		q.Payable = decimal.Zero
	}
	return q
}

// describeOrder builds the human-readable order description: line items,
// fulfillment mode, and the destination, truncated to the gateway limit.
func describeOrder(c *cart.Cart, req *Request) string {
	items := make([]string, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, fmt.Sprintf("%s x%d ($%s)", l.Name, l.Quantity, l.LineTotal().StringFixed(2)))
	}

	var destination string
	if req.Fulfillment == FulfillmentPickup {
		destination = "Pickup @ " + req.PickupLocation
	} else {
		destination = req.Address.summary()
	}

	desc := fmt.Sprintf("%s | Fulfillment: %s | %s",
		strings.Join(items, ", "), strings.ToUpper(req.Fulfillment), destination)
	return truncate(desc, maxDescriptionBytes)
}

func buildMetadata(c *cart.Cart, req *Request, q Quote) map[string]any {
	md := map[string]any{
		"items":             c.Lines,
		"newsletter_opt_in": req.NewsletterOptIn,
		"fulfillment":       req.Fulfillment,
		"discount":          q.Discount,
	}
	if req.Coupon != "" {
		md["coupon"] = req.Coupon
	}
	if req.Fulfillment == FulfillmentPickup {
		md["pickup_location"] = req.PickupLocation
	} else {
		md["address"] = req.Address
	}
	return md
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	for len(s) > max {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	return s
}
