// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port conventions:
//   - Context is always the first parameter
//   - Methods return domain types, never storage rows or wire DTOs
//   - Failures use the domain error types (ErrNotFound, ErrConflict, ...)
package ports

import (
	"context"

	"github.com/polyworks/site-api/internal/domain"
)

// ContentSource supplies the entries of one content collection.
// The static data set and the custom override store both implement it.
type ContentSource interface {
	// Name identifies the source in logs and debug output ("static", "custom").
	Name() string

	// Entries returns every entry of kind in source order.
	// An empty collection is not an error.
	Entries(ctx context.Context, kind domain.Kind) ([]domain.Entry, error)
}

// CustomContentStore is the writable override source edited by site admins.
type CustomContentStore interface {
	ContentSource

	// Upsert creates or replaces the entry with the same kind and id.
	Upsert(ctx context.Context, entry *domain.Entry) error

	// Delete removes an override.
	// Returns domain.ErrNotFound if no override exists for kind/id.
	Delete(ctx context.Context, kind domain.Kind, id string) error
}

// ProductCatalog exposes the product range.
type ProductCatalog interface {
	// Products returns the full catalog.
	Products(ctx context.Context) ([]domain.Product, error)

	// Product returns a single product.
	// Returns domain.ErrNotFound if the id is unknown.
	Product(ctx context.Context, id string) (*domain.Product, error)
}
