package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/polyworks/site-api/internal/app/reqctx"
	"github.com/polyworks/site-api/internal/domain"
	"github.com/polyworks/site-api/internal/ports"
)

// QuoteService turns a visitor's cart into a quote request for sales.
type QuoteService struct {
	quotes    ports.QuoteStore
	carts     ports.CartStore
	catalog   ports.ProductCatalog
	forwarder ports.QuoteForwarder
	flags     ports.FeatureFlags
	executor  *Executor
	metrics   Metrics
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// QuoteServiceConfig contains the dependencies of QuoteService.
// Forwarder may be nil, in which case quotes are only stored.
type QuoteServiceConfig struct {
	Quotes    ports.QuoteStore
	Carts     ports.CartStore
	Catalog   ports.ProductCatalog
	Forwarder ports.QuoteForwarder
	Flags     ports.FeatureFlags
	Metrics   Metrics
	Logger    *slog.Logger
	Now       func() time.Time
	NewID     func() string
}

// NewQuoteService creates a quote service. It panics when a store or the
// catalog is missing.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Quotes == nil || cfg.Carts == nil || cfg.Catalog == nil {
		panic("app: QuoteService requires quote and cart stores and a product catalog")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &QuoteService{
		quotes:    cfg.Quotes,
		carts:     cfg.Carts,
		catalog:   cfg.Catalog,
		forwarder: cfg.Forwarder,
		flags:     cfg.Flags,
		executor:  NewExecutor(logger),
		metrics:   cfg.Metrics,
		logger:    logger.With(slog.String("component", "app.QuoteService")),
		now:       cfg.Now,
		newID:     cfg.NewID,
	}

	if s.metrics == nil {
		s.metrics = noopMetrics{}
	}

	if s.now == nil {
		s.now = time.Now
	}

	if s.newID == nil {
		s.newID = uuid.NewString
	}

	return s
}

// SubmitQuoteInput is a visitor's quote request form.
type SubmitQuoteInput struct {
	CartID  string
	Contact domain.Contact
	Message string
	Locale  domain.Locale
}

type builtQuote struct {
	quote    *domain.QuoteRequest
	cart     *domain.Cart
	products []domain.Product
}

// Submit stores a quote request built from the cart, empties the cart and
// then forwards the request to the CRM. Forwarding is best effort: the
// stored request records whether it reached the CRM.
func (s *QuoteService) Submit(ctx context.Context, in SubmitQuoteInput) (*domain.QuoteRequest, error) {
	quote, err := Execute(ctx, s.executor, Operation[SubmitQuoteInput, *builtQuote, *builtQuote, *domain.QuoteRequest]{
		Name:     "submit-quote",
		Validate: s.validateSubmit,
		Perform:  s.buildQuote,
		Verify:   s.verifyQuote,
		Archive:  s.archiveQuote,
		Respond: func(_ context.Context, _ SubmitQuoteInput, b *builtQuote) (*domain.QuoteRequest, error) {
			return b.quote, nil
		},
	}, in)
	if err != nil {
		s.metrics.QuoteSubmitted(OutcomeRejected)
		return nil, err
	}

	s.forward(ctx, quote)

	return quote, nil
}

func (s *QuoteService) validateSubmit(_ context.Context, in SubmitQuoteInput) error {
	if in.CartID == "" {
		return domain.NewValidationError("cart", "must contain at least one product")
	}

	return in.Contact.Validate()
}

func (s *QuoteService) buildQuote(ctx context.Context, in SubmitQuoteInput) (*builtQuote, error) {
	cart, products, err := Parallel2(ctx,
		func(ctx context.Context) (*domain.Cart, error) {
			cart, err := s.carts.Get(ctx, in.CartID)
			if domain.IsNotFound(err) {
				return nil, domain.NewValidationError("cart", "must contain at least one product")
			}
			if err != nil {
				return nil, fmt.Errorf("loading cart: %w", err)
			}
			return cart, nil
		},
		func(ctx context.Context) ([]domain.Product, error) {
			products, err := s.catalog.Products(ctx)
			if err != nil {
				return nil, fmt.Errorf("loading catalog: %w", err)
			}
			return products, nil
		},
	)
	if err != nil {
		return nil, err
	}

	locale := in.Locale
	if locale == "" {
		locale = domain.DefaultLocale
	}

	quote, err := domain.NewQuoteRequest(s.newID(), cart, products, in.Contact, in.Message, locale, s.now())
	if err != nil {
		return nil, err
	}

	return &builtQuote{quote: quote, cart: cart, products: products}, nil
}

// verifyQuote re-checks minimum order quantities; the cart may predate a
// catalog change.
func (s *QuoteService) verifyQuote(_ context.Context, _ SubmitQuoteInput, b *builtQuote) (*builtQuote, error) {
	for _, line := range b.quote.Items {
		p, ok := domain.FindProduct(b.products, line.ProductID)
		if !ok {
			return nil, domain.NewNotFoundError("product", line.ProductID)
		}

		if err := checkMinOrder(&p, line.Quantity); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func (s *QuoteService) archiveQuote(ctx context.Context, _ SubmitQuoteInput, b *builtQuote) error {
	rc := reqctx.New(ctx)

	err := rc.AddAction(reqctx.ActionFunc{
		Name: "save quote request",
		Do:   func(ctx context.Context) error { return s.quotes.Save(ctx, b.quote) },
		Undo: func(ctx context.Context) error { return s.quotes.Delete(ctx, b.quote.ID) },
	})
	if err != nil {
		return err
	}

	err = rc.AddAction(reqctx.ActionFunc{
		Name: "clear cart",
		Do:   func(ctx context.Context) error { return s.carts.Delete(ctx, b.cart.ID) },
		Undo: func(ctx context.Context) error { return s.carts.Save(ctx, b.cart) },
	})
	if err != nil {
		return err
	}

	return rc.Commit(ctx)
}

func (s *QuoteService) forward(ctx context.Context, quote *domain.QuoteRequest) {
	logger := s.logger.With(slog.String("quote_id", quote.ID))

	enabled := s.flags == nil || s.flags.IsEnabled(ctx, ports.FlagQuoteForwarding, true)
	if s.forwarder == nil || !enabled {
		s.metrics.QuoteSubmitted(OutcomeStored)
		logger.InfoContext(ctx, "quote request stored, forwarding disabled")

		return
	}

	outcome := OutcomeForwarded
	quote.Status = domain.QuoteStatusForwarded

	if err := s.forwarder.Forward(ctx, quote); err != nil {
		outcome = OutcomeForwardFailed
		quote.Status = domain.QuoteStatusForwardFailed

		logger.WarnContext(ctx, "forwarding quote request failed", slog.Any("error", err))
	}

	if err := s.quotes.Save(ctx, quote); err != nil {
		logger.ErrorContext(ctx, "recording forward status failed", slog.Any("error", err))
	}

	s.metrics.QuoteSubmitted(outcome)
	logger.InfoContext(ctx, "quote request submitted",
		slog.String("status", string(quote.Status)),
		slog.Int("lines", len(quote.Items)),
	)
}

// Get returns a stored quote request.
func (s *QuoteService) Get(ctx context.Context, id string) (*domain.QuoteRequest, error) {
	q, err := s.quotes.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting quote request %q: %w", id, err)
	}

	return q, nil
}

// List returns one page of stored quote requests, newest first.
func (s *QuoteService) List(ctx context.Context, offset, limit int) ([]domain.QuoteRequest, int, error) {
	items, total, err := s.quotes.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("listing quote requests: %w", err)
	}

	return items, total, nil
}
