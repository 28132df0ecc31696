// Package flags provides a ports.FeatureFlags implementation backed by the
// features section of the service configuration.
package flags

import (
	"context"
	"log/slog"
	"maps"

	"github.com/spf13/cast"

	"github.com/polyworks/site-api/internal/platform/logging"
	"github.com/polyworks/site-api/internal/ports"
)

// Static evaluates flags from a fixed map keyed by dotted flag name.
// Values may be native YAML types or strings from environment variables.
type Static struct {
	values map[string]any
}

var _ ports.FeatureFlags = (*Static)(nil)

// NewStatic copies values so later changes to the map are not observed.
func NewStatic(values map[string]any) *Static {
	return &Static{values: maps.Clone(values)}
}

// IsEnabled implements ports.FeatureFlags.
func (s *Static) IsEnabled(ctx context.Context, flag string, defaultValue bool) bool {
	raw, ok := s.values[flag]
	if !ok {
		return defaultValue
	}

	v, err := cast.ToBoolE(raw)
	if err != nil {
		invalid(ctx, flag, raw, err)
		return defaultValue
	}

	return v
}

// GetString implements ports.FeatureFlags.
func (s *Static) GetString(ctx context.Context, flag string, defaultValue string) string {
	raw, ok := s.values[flag]
	if !ok {
		return defaultValue
	}

	v, err := cast.ToStringE(raw)
	if err != nil {
		invalid(ctx, flag, raw, err)
		return defaultValue
	}

	return v
}

// GetInt implements ports.FeatureFlags.
func (s *Static) GetInt(ctx context.Context, flag string, defaultValue int) int {
	raw, ok := s.values[flag]
	if !ok {
		return defaultValue
	}

	v, err := cast.ToIntE(raw)
	if err != nil {
		invalid(ctx, flag, raw, err)
		return defaultValue
	}

	return v
}

// Values returns a copy of the configured flags.
func (s *Static) Values() map[string]any {
	return maps.Clone(s.values)
}

func invalid(ctx context.Context, flag string, raw any, err error) {
	logging.FromContext(ctx).Warn("invalid feature flag value, using default",
		slog.String("flag", flag),
		slog.Any("value", raw),
		slog.String("error", err.Error()),
	)
}
