package domain

import (
	"slices"
	"time"
)

// MaxLineQuantity caps a single cart line.
const MaxLineQuantity = 1_000_000

// CartItem is one product line in a quote cart.
type CartItem struct {
	ProductID string
	Quantity  int
}

// Cart collects products a visitor wants a quote for. Each product appears
// on at most one line and every line has a positive quantity.
type Cart struct {
	ID        string
	Items     []CartItem
	UpdatedAt time.Time
}

// NewCart creates an empty cart.
func NewCart(id string, now time.Time) *Cart {
	return &Cart{ID: id, Items: []CartItem{}, UpdatedAt: now}
}

// Quantity returns the quantity on the line for productID, or 0.
func (c *Cart) Quantity(productID string) int {
	if i := c.index(productID); i >= 0 {
		return c.Items[i].Quantity
	}

	return 0
}

// Add increases the quantity of productID by qty, creating the line if needed.
func (c *Cart) Add(productID string, qty int, now time.Time) error {
	if qty < 1 {
		return NewValidationError("quantity", "must be at least 1")
	}

	return c.SetQuantity(productID, c.Quantity(productID)+qty, now)
}

// SetQuantity replaces the quantity of productID. Zero removes the line.
func (c *Cart) SetQuantity(productID string, qty int, now time.Time) error {
	if productID == "" {
		return NewValidationError("productId", "is required")
	}

	if qty < 0 {
		return NewValidationError("quantity", "must not be negative")
	}

	if qty > MaxLineQuantity {
		return NewValidationError("quantity", "exceeds the maximum per line")
	}

	i := c.index(productID)

	switch {
	case qty == 0 && i >= 0:
		c.Items = slices.Delete(c.Items, i, i+1)
	case qty == 0:
		return NewNotFoundError("cart item", productID)
	case i >= 0:
		c.Items[i].Quantity = qty
	default:
		c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: qty})
	}

	c.UpdatedAt = now

	return nil
}

// Remove deletes the line for productID.
func (c *Cart) Remove(productID string, now time.Time) error {
	return c.SetQuantity(productID, 0, now)
}

// Clear empties the cart.
func (c *Cart) Clear(now time.Time) {
	c.Items = []CartItem{}
	c.UpdatedAt = now
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalQuantity sums all line quantities.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}

	return total
}

func (c *Cart) index(productID string) int {
	return slices.IndexFunc(c.Items, func(it CartItem) bool { return it.ProductID == productID })
}
