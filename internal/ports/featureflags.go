package ports

import (
	"context"
)

// Flag names evaluated by the application.
const (
	// FlagContentDebug allows ?debug=true on the combined content endpoints.
	FlagContentDebug = "content.debug"

	// FlagShowPrices exposes unit prices in catalog responses.
	FlagShowPrices = "catalog.show-prices"

	// FlagQuoteForwarding enables handing quote requests to the CRM.
	FlagQuoteForwarding = "quotes.forward"

	// FlagRelatedLimit caps the related entries returned with a detail view.
	FlagRelatedLimit = "content.related-limit"
)

// FeatureFlags defines the contract for feature flag evaluation.
// Every accessor takes a default that is returned when the flag is unset
// or cannot be evaluated, so callers never fail on a missing flag.
//
// Example usage:
//
//	if flags.IsEnabled(ctx, ports.FlagShowPrices, false) {
//	    view.UnitPriceCents = p.UnitPriceCents
//	}
type FeatureFlags interface {
	// IsEnabled checks if a boolean feature flag is enabled.
	IsEnabled(ctx context.Context, flag string, defaultValue bool) bool

	// GetString retrieves a string feature flag value.
	GetString(ctx context.Context, flag string, defaultValue string) string

	// GetInt retrieves an integer feature flag value.
	GetInt(ctx context.Context, flag string, defaultValue int) int
}
