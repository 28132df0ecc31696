package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/polyworks/site-api/internal/domain"
	"github.com/polyworks/site-api/internal/ports"
)

// Cart mutation names used in metrics and logs.
const (
	CartOpAdd    = "add"
	CartOpSet    = "set"
	CartOpRemove = "remove"
	CartOpClear  = "clear"
)

// CartService manages the quote cart held in a visitor's session.
type CartService struct {
	carts   ports.CartStore
	catalog ports.ProductCatalog
	metrics Metrics
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// CartServiceConfig contains the dependencies of CartService.
type CartServiceConfig struct {
	Carts   ports.CartStore
	Catalog ports.ProductCatalog
	Metrics Metrics
	Logger  *slog.Logger

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// NewCartService creates a cart service. It panics without a store or catalog.
func NewCartService(cfg CartServiceConfig) *CartService {
	if cfg.Carts == nil || cfg.Catalog == nil {
		panic("app: CartService requires a cart store and a product catalog")
	}

	s := &CartService{
		carts:   cfg.Carts,
		catalog: cfg.Catalog,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
		now:     cfg.Now,
		newID:   cfg.NewID,
	}

	if s.metrics == nil {
		s.metrics = noopMetrics{}
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.logger = s.logger.With(slog.String("component", "app.CartService"))

	if s.now == nil {
		s.now = time.Now
	}

	if s.newID == nil {
		s.newID = uuid.NewString
	}

	return s
}

// CartLine is a cart item joined with its catalog record.
type CartLine struct {
	ProductID   string
	SKU         string
	Name        domain.LocalizedText
	Quantity    int
	MinOrderQty int
	// Available is false when the product has left the catalog since it
	// was added.
	Available bool
}

// CartView is the cart as shown to the visitor.
type CartView struct {
	ID            string
	Lines         []CartLine
	TotalQuantity int
	UpdatedAt     time.Time
}

// Get returns the cart. An empty or unknown id yields an empty, unsaved cart.
func (s *CartService) Get(ctx context.Context, cartID string) (*CartView, error) {
	cart, err := s.find(ctx, cartID)
	if err != nil {
		return nil, err
	}

	return s.view(ctx, cart)
}

// AddItem adds qty of productID. The accumulated quantity must reach the
// product's minimum order quantity. A new cart is created when cartID is
// empty or unknown; the returned view carries its id.
func (s *CartService) AddItem(ctx context.Context, cartID, productID string, qty int) (*CartView, error) {
	return s.mutate(ctx, cartID, CartOpAdd, func(cart *domain.Cart) error {
		p, err := s.product(ctx, productID)
		if err != nil {
			return err
		}

		if err := cart.Add(productID, qty, s.now()); err != nil {
			return err
		}

		return checkMinOrder(p, cart.Quantity(productID))
	})
}

// SetQuantity replaces the quantity of productID. Zero removes the line.
func (s *CartService) SetQuantity(ctx context.Context, cartID, productID string, qty int) (*CartView, error) {
	return s.mutate(ctx, cartID, CartOpSet, func(cart *domain.Cart) error {
		if qty > 0 {
			p, err := s.product(ctx, productID)
			if err != nil {
				return err
			}

			if err := checkMinOrder(p, qty); err != nil {
				return err
			}
		}

		return cart.SetQuantity(productID, qty, s.now())
	})
}

// RemoveItem deletes the line for productID.
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID string) (*CartView, error) {
	return s.mutate(ctx, cartID, CartOpRemove, func(cart *domain.Cart) error {
		return cart.Remove(productID, s.now())
	})
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, cartID string) (*CartView, error) {
	return s.mutate(ctx, cartID, CartOpClear, func(cart *domain.Cart) error {
		cart.Clear(s.now())
		return nil
	})
}

func (s *CartService) mutate(ctx context.Context, cartID, op string, fn func(*domain.Cart) error) (*CartView, error) {
	cart, err := s.find(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if cart.ID == "" {
		cart.ID = s.newID()
	}

	if err := fn(cart); err != nil {
		return nil, err
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("saving cart: %w", err)
	}

	s.metrics.CartMutated(op)
	s.logger.DebugContext(ctx, "cart updated",
		slog.String("cart_id", cart.ID),
		slog.String("operation", op),
		slog.Int("lines", len(cart.Items)),
	)

	return s.view(ctx, cart)
}

// find loads the cart. A missing cart comes back unsaved, without id or
// timestamp; the first mutation stamps both.
func (s *CartService) find(ctx context.Context, cartID string) (*domain.Cart, error) {
	if cartID == "" {
		return domain.NewCart("", time.Time{}), nil
	}

	cart, err := s.carts.Get(ctx, cartID)
	if domain.IsNotFound(err) {
		return domain.NewCart("", time.Time{}), nil
	}

	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}

	return cart, nil
}

func (s *CartService) product(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.catalog.Product(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("looking up product %q: %w", id, err)
	}

	return p, nil
}

func (s *CartService) view(ctx context.Context, cart *domain.Cart) (*CartView, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	lines := make([]CartLine, 0, len(cart.Items))
	for _, it := range cart.Items {
		line := CartLine{ProductID: it.ProductID, Quantity: it.Quantity}

		if p, ok := domain.FindProduct(products, it.ProductID); ok {
			line.SKU = p.SKU
			line.Name = p.Name
			line.MinOrderQty = p.MinOrderQty
			line.Available = true
		}

		lines = append(lines, line)
	}

	return &CartView{
		ID:            cart.ID,
		Lines:         lines,
		TotalQuantity: cart.TotalQuantity(),
		UpdatedAt:     cart.UpdatedAt,
	}, nil
}

func checkMinOrder(p *domain.Product, qty int) error {
	if qty < p.MinOrderQty {
		return domain.NewValidationError("quantity",
			fmt.Sprintf("%s has a minimum order quantity of %d", p.SKU, p.MinOrderQty))
	}

	return nil
}
