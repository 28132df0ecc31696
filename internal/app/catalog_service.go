package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/polyworks/site-api/internal/app/reqctx"
	"github.com/polyworks/site-api/internal/domain"
	"github.com/polyworks/site-api/internal/ports"
)

// CatalogService serves the product range. Unit prices are only exposed
// while the catalog.show-prices flag is on.
type CatalogService struct {
	catalog ports.ProductCatalog
	flags   ports.FeatureFlags
	logger  *slog.Logger
}

// CatalogServiceConfig contains the dependencies of CatalogService.
type CatalogServiceConfig struct {
	Catalog ports.ProductCatalog
	Flags   ports.FeatureFlags
	Logger  *slog.Logger
}

// NewCatalogService creates a catalog service. It panics without a catalog.
func NewCatalogService(cfg CatalogServiceConfig) *CatalogService {
	if cfg.Catalog == nil {
		panic("app: CatalogService requires a product catalog")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &CatalogService{
		catalog: cfg.Catalog,
		flags:   cfg.Flags,
		logger:  logger.With(slog.String("component", "app.CatalogService")),
	}
}

// ProductListing is one page of the filtered catalog.
type ProductListing struct {
	Items  []domain.Product
	Total  int
	Offset int
	Limit  int
}

// List filters and pages the catalog.
func (s *CatalogService) List(ctx context.Context, q domain.ProductQuery) (*ProductListing, error) {
	products, err := s.products(ctx)
	if err != nil {
		return nil, err
	}

	res := q.Apply(products)

	return &ProductListing{
		Items:  s.withPricing(ctx, res.Items),
		Total:  res.Total,
		Offset: q.Offset,
		Limit:  q.Limit,
	}, nil
}

// Get returns one product.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.catalog.Product(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting product %q: %w", id, err)
	}

	priced := s.withPricing(ctx, []domain.Product{*p})

	return &priced[0], nil
}

// Facets returns the categories and materials of the catalog.
func (s *CatalogService) Facets(ctx context.Context) (domain.CatalogFacets, error) {
	products, err := s.products(ctx)
	if err != nil {
		return domain.CatalogFacets{}, err
	}

	return domain.CollectCatalogFacets(products), nil
}

func (s *CatalogService) products(ctx context.Context) ([]domain.Product, error) {
	products, err := reqctx.Fetch(reqctx.Ensure(ctx), "catalog:products", s.catalog.Products)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	return products, nil
}

// withPricing returns a copy of products with prices removed unless the
// flag allows them.
func (s *CatalogService) withPricing(ctx context.Context, products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)

	if s.flags != nil && s.flags.IsEnabled(ctx, ports.FlagShowPrices, false) {
		return out
	}

	for i := range out {
		out[i].UnitPriceCents = nil
	}

	return out
}
