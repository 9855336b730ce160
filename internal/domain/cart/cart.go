package cart

import (
	"github.com/shopspring/decimal"
)

// taxRate is the fixed sales tax applied to the cart subtotal (8.875%).
var taxRate = decimal.RequireFromString("0.08875")

// LineItem represents one distinct purchasable configuration in a cart.
// Identity is the (ProductID, Variant, UnitPrice) triple; quantity is the
// only mutable field once identity matches. The same product at two
// different prices is tracked as two separate lines.
type LineItem struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name,omitempty"`
	Variant   string          `json:"variant,omitempty"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"qty"`
}

// Key returns the composite identity of the line item.
func (l LineItem) Key() ItemKey {
	return ItemKey{ProductID: l.ProductID, Variant: l.Variant, UnitPrice: l.UnitPrice}
}

// LineTotal returns unit price multiplied by quantity.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ItemKey is the composite identity used to decide whether two cart
// entries are the same. Prices compare by numeric equality, so 40 and
// 40.00 identify the same line.
type ItemKey struct {
	ProductID string          `json:"id"`
	Variant   string          `json:"variant,omitempty"`
	UnitPrice decimal.Decimal `json:"price"`
}

// Matches reports whether the line item carries this identity.
func (k ItemKey) Matches(l LineItem) bool {
	return k.ProductID == l.ProductID &&
		k.Variant == l.Variant &&
		k.UnitPrice.Equal(l.UnitPrice)
}

// Cart is the ordered collection of line items for one shopper.
type Cart struct {
	Lines []LineItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{Lines: make([]LineItem, 0)}
}

// indexOf returns the position of the line with the given identity, or -1.
func (c *Cart) indexOf(key ItemKey) int {
	for i, l := range c.Lines {
		if key.Matches(l) {
			return i
		}
	}
	return -1
}

// Add merges the item into the cart. A non-positive requested quantity
// defaults to 1. If a line with the same identity exists its quantity is
// incremented; otherwise the item is appended as a new line.
func (c *Cart) Add(item LineItem, requestedQty int) {
	if requestedQty <= 0 {
		requestedQty = 1
	}
	if i := c.indexOf(item.Key()); i >= 0 {
		c.Lines[i].Quantity += requestedQty
		return
	}
	item.Quantity = requestedQty
	c.Lines = append(c.Lines, item)
}

// SetQuantity overwrites the quantity of the identified line. A quantity
// below 1 removes the line entirely. Setting a quantity on a line that is
// not present is a no-op.
func (c *Cart) SetQuantity(key ItemKey, qty int) {
	if qty < 1 {
		c.Remove(key)
		return
	}
	if i := c.indexOf(key); i >= 0 {
		c.Lines[i].Quantity = qty
	}
}

// Increment raises the identified line's quantity by one.
func (c *Cart) Increment(key ItemKey) {
	if i := c.indexOf(key); i >= 0 {
		c.Lines[i].Quantity++
	}
}

// Decrement lowers the identified line's quantity by one, clamped at 1.
// Removal only happens through Remove or SetQuantity(0).
func (c *Cart) Decrement(key ItemKey) {
	if i := c.indexOf(key); i >= 0 && c.Lines[i].Quantity > 1 {
		c.Lines[i].Quantity--
	}
}

// Remove deletes the identified line regardless of quantity.
func (c *Cart) Remove(key ItemKey) {
	for i, l := range c.Lines {
		if key.Matches(l) {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = c.Lines[:0]
}

// Get returns the line with the given identity, if present.
func (c *Cart) Get(key ItemKey) (LineItem, bool) {
	if i := c.indexOf(key); i >= 0 {
		return c.Lines[i], true
	}
	return LineItem{}, false
}

// Contains reports whether a line with the given identity is in the cart.
func (c *Cart) Contains(key ItemKey) bool {
	return c.indexOf(key) >= 0
}

// ItemCount returns the sum of quantities over all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

// Subtotal returns the sum of price times quantity over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

// Tax returns the subtotal multiplied by the fixed tax rate, rounded to
// two decimals.
func (c *Cart) Tax() decimal.Decimal {
	return c.Subtotal().Mul(taxRate).Round(2)
}

// Total returns subtotal plus tax, rounded to two decimals.
func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(c.Tax()).Round(2)
}

// Merge folds the local lines into the remote lines: quantities are summed
// when identities match, unmatched local lines are appended. Remote line
// order is preserved, then new local lines in their own order. Neither
// input is mutated.
func Merge(remote, local []LineItem) []LineItem {
	merged := make([]LineItem, len(remote))
	copy(merged, remote)

	for _, localLine := range local {
		key := localLine.Key()
		found := false
		for i := range merged {
			if key.Matches(merged[i]) {
				merged[i].Quantity += localLine.Quantity
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, localLine)
		}
	}
	return merged
}
