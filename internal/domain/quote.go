package domain

import (
	"net/mail"
	"strings"
	"time"
)

// QuoteStatus tracks a quote request through forwarding to sales.
type QuoteStatus string

const (
	QuoteStatusReceived      QuoteStatus = "received"
	QuoteStatusForwarded     QuoteStatus = "forwarded"
	QuoteStatusForwardFailed QuoteStatus = "forward_failed"
)

// Contact is the person asking for a quote.
type Contact struct {
	Name    string
	Email   string
	Company string
	Phone   string
	Country string
}

// Validate checks that sales can reach the contact.
func (c *Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("name", "is required")
	}

	if _, err := mail.ParseAddress(c.Email); err != nil {
		return NewValidationError("email", "must be a valid email address")
	}

	return nil
}

// QuoteLine is a product snapshot taken when the quote was requested.
type QuoteLine struct {
	ProductID string
	SKU       string
	Name      string
	Quantity  int
}

// QuoteRequest is a visitor's request for pricing on the products in their cart.
type QuoteRequest struct {
	ID        string
	Contact   Contact
	Items     []QuoteLine
	Message   string
	Locale    Locale
	Status    QuoteStatus
	CreatedAt time.Time
}

// NewQuoteRequest snapshots the cart lines against the catalog. Every cart
// product must exist in products.
func NewQuoteRequest(id string, cart *Cart, products []Product, contact Contact, message string, locale Locale, now time.Time) (*QuoteRequest, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, NewValidationError("cart", "must contain at least one product")
	}

	lines := make([]QuoteLine, 0, len(cart.Items))
	for _, it := range cart.Items {
		p, ok := FindProduct(products, it.ProductID)
		if !ok {
			return nil, NewNotFoundError("product", it.ProductID)
		}

		lines = append(lines, QuoteLine{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name.Get(locale),
			Quantity:  it.Quantity,
		})
	}

	return &QuoteRequest{
		ID:        id,
		Contact:   contact,
		Items:     lines,
		Message:   strings.TrimSpace(message),
		Locale:    locale,
		Status:    QuoteStatusReceived,
		CreatedAt: now,
	}, nil
}
