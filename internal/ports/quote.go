package ports

import (
	"context"

	"github.com/polyworks/site-api/internal/domain"
)

// CartStore persists quote carts keyed by the id held in the visitor's session.
type CartStore interface {
	// Get returns the cart.
	// Returns domain.ErrNotFound if the cart does not exist.
	Get(ctx context.Context, id string) (*domain.Cart, error)

	// Save creates or replaces the cart.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the cart. Deleting a missing cart is not an error.
	Delete(ctx context.Context, id string) error
}

// QuoteStore archives submitted quote requests.
type QuoteStore interface {
	// Save creates or replaces the quote request.
	Save(ctx context.Context, quote *domain.QuoteRequest) error

	// Get returns one quote request.
	// Returns domain.ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (*domain.QuoteRequest, error)

	// List returns one page of quote requests newest first and the total count.
	List(ctx context.Context, offset, limit int) ([]domain.QuoteRequest, int, error)

	// Delete removes a quote request. Deleting a missing quote is not an error.
	Delete(ctx context.Context, id string) error
}

// QuoteForwarder hands a quote request to the sales team's CRM.
//
// Implementations should respect context deadlines and return
// domain.ErrUnavailable when the CRM cannot be reached.
type QuoteForwarder interface {
	Forward(ctx context.Context, quote *domain.QuoteRequest) error
}
