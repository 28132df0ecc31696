// Package app contains the application services behind the HTTP handlers
// and the operator CLI. Services depend on ports only; the adapters are
// chosen in cmd.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/polyworks/site-api/internal/app/reqctx"
	"github.com/polyworks/site-api/internal/domain"
	"github.com/polyworks/site-api/internal/platform/logging"
	"github.com/polyworks/site-api/internal/ports"
)

const defaultRelatedLimit = 3

// Source names reported in listings.
const (
	SourceStatic = "static"
	SourceCustom = "custom"
)

// ContentService lists and edits the blog, news and case study collections.
// Each listing is the static collection merged with the custom overrides.
type ContentService struct {
	static   ports.ContentSource
	custom   ports.CustomContentStore
	flags    ports.FeatureFlags
	renderer *Renderer
	metrics  Metrics
	logger   *slog.Logger
}

// ContentServiceConfig contains the dependencies of ContentService.
// Custom may be nil, which makes the collections read-only.
type ContentServiceConfig struct {
	Static   ports.ContentSource
	Custom   ports.CustomContentStore
	Flags    ports.FeatureFlags
	Renderer *Renderer
	Metrics  Metrics
	Logger   *slog.Logger
}

// NewContentService creates a content service. It panics without a static source.
func NewContentService(cfg ContentServiceConfig) *ContentService {
	if cfg.Static == nil {
		panic("app: ContentService requires a static content source")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	renderer := cfg.Renderer
	if renderer == nil {
		renderer = NewRenderer()
	}

	var metrics Metrics = noopMetrics{}
	if cfg.Metrics != nil {
		metrics = cfg.Metrics
	}

	return &ContentService{
		static:   cfg.Static,
		custom:   cfg.Custom,
		flags:    cfg.Flags,
		renderer: renderer,
		metrics:  metrics,
		logger:   logger.With(slog.String("component", "app.ContentService")),
	}
}

// ListOptions selects the optional parts of a Listing.
type ListOptions struct {
	// Debug adds facets and per-source counts.
	Debug bool
}

// Listing is one page of a merged content collection.
type Listing struct {
	Items  []domain.Entry
	Total  int
	Offset int
	Limit  int

	// Set only when ListOptions.Debug is true. Facets cover the whole merged
	// collection, not just the filtered page.
	Facets       *domain.Facets
	SourceCounts map[string]int
}

// EntryView is a single entry prepared for display.
type EntryView struct {
	Entry   domain.Entry
	Locale  domain.Locale
	HTML    string
	Related []domain.Entry
}

// merged is the memoized result of loading one collection.
type merged struct {
	entries     []domain.Entry
	staticCount int
	customCount int
}

func (s *ContentService) log(ctx context.Context) *slog.Logger {
	if l, ok := logging.Lookup(ctx); ok {
		return l.With(slog.String("component", "app.ContentService"))
	}

	return s.logger
}

// DebugAllowed reports whether listings may include debug output.
func (s *ContentService) DebugAllowed(ctx context.Context) bool {
	return s.flags != nil && s.flags.IsEnabled(ctx, ports.FlagContentDebug, false)
}

// List merges, filters, sorts and pages the collection of kind.
func (s *ContentService) List(ctx context.Context, kind domain.Kind, q domain.Query, opts ListOptions) (*Listing, error) {
	m, err := s.load(ctx, kind)
	if err != nil {
		return nil, err
	}

	res := q.Apply(m.entries)
	listing := &Listing{
		Items:  res.Items,
		Total:  res.Total,
		Offset: q.Offset,
		Limit:  q.Limit,
	}

	if opts.Debug {
		facets := domain.CollectFacets(m.entries)
		listing.Facets = &facets
		listing.SourceCounts = map[string]int{
			SourceStatic: m.staticCount,
			SourceCustom: m.customCount,
		}
	}

	s.metrics.ContentQueried(kind, opts.Debug)

	return listing, nil
}

// Facets returns the filter values of the merged collection.
func (s *ContentService) Facets(ctx context.Context, kind domain.Kind) (domain.Facets, error) {
	m, err := s.load(ctx, kind)
	if err != nil {
		return domain.Facets{}, err
	}

	return domain.CollectFacets(m.entries), nil
}

// Get returns the entry with the given id or slug, its body rendered for
// locale, and entries sharing a tag with it.
func (s *ContentService) Get(ctx context.Context, kind domain.Kind, idOrSlug string, locale domain.Locale) (*EntryView, error) {
	m, err := s.load(ctx, kind)
	if err != nil {
		return nil, err
	}

	entry, ok := domain.FindEntry(m.entries, idOrSlug)
	if !ok {
		return nil, domain.NewNotFoundError(kind.Entity(), idOrSlug)
	}

	html, err := s.renderer.Render(entry.Body.Get(locale))
	if err != nil {
		return nil, fmt.Errorf("rendering %s %q: %w", kind.Entity(), entry.ID, err)
	}

	limit := defaultRelatedLimit
	if s.flags != nil {
		limit = s.flags.GetInt(ctx, ports.FlagRelatedLimit, defaultRelatedLimit)
	}

	return &EntryView{
		Entry:   entry,
		Locale:  locale,
		HTML:    html,
		Related: domain.Related(m.entries, entry, limit),
	}, nil
}

// Upsert stores entry as a custom override.
func (s *ContentService) Upsert(ctx context.Context, entry *domain.Entry) error {
	if s.custom == nil {
		return domain.NewUnavailableError("custom-content", "no writable store configured")
	}

	entry.Slug = strings.TrimSpace(entry.Slug)
	if entry.Slug == "" {
		entry.Slug = entry.ID
	}

	if entry.ReadingMinutes == 0 && entry.Kind != domain.KindNews {
		entry.ReadingMinutes = ReadingMinutes(entry.Body.Get(domain.DefaultLocale))
	}

	if err := entry.Validate(); err != nil {
		return err
	}

	if err := s.custom.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("saving %s %q: %w", entry.Kind.Entity(), entry.ID, err)
	}

	s.log(ctx).InfoContext(ctx, "custom entry saved",
		slog.String("kind", string(entry.Kind)),
		slog.String("entry_id", entry.ID),
	)

	return nil
}

// Delete removes a custom override. The static entry with the same id, if
// any, becomes visible again.
func (s *ContentService) Delete(ctx context.Context, kind domain.Kind, id string) error {
	if s.custom == nil {
		return domain.NewUnavailableError("custom-content", "no writable store configured")
	}

	if err := s.custom.Delete(ctx, kind, id); err != nil {
		return fmt.Errorf("deleting %s %q: %w", kind.Entity(), id, err)
	}

	s.log(ctx).InfoContext(ctx, "custom entry deleted",
		slog.String("kind", string(kind)),
		slog.String("entry_id", id),
	)

	return nil
}

// load reads both sources concurrently once per request. A failing custom
// source degrades to the static collection; a failing static source fails
// the request.
func (s *ContentService) load(ctx context.Context, kind domain.Kind) (*merged, error) {
	rc := reqctx.Ensure(ctx)

	return reqctx.Fetch(rc, "content:"+string(kind), func(context.Context) (*merged, error) {
		static, custom, err := Parallel2(ctx,
			func(ctx context.Context) ([]domain.Entry, error) {
				return s.static.Entries(ctx, kind)
			},
			func(ctx context.Context) ([]domain.Entry, error) {
				return s.loadCustom(ctx, kind), nil
			},
		)
		if err != nil {
			return nil, fmt.Errorf("loading %s collection: %w", kind, err)
		}

		return &merged{
			entries:     domain.Merge(static, custom),
			staticCount: len(static),
			customCount: len(custom),
		}, nil
	})
}

func (s *ContentService) loadCustom(ctx context.Context, kind domain.Kind) []domain.Entry {
	if s.custom == nil {
		return nil
	}

	entries, err := s.custom.Entries(ctx, kind)
	if err != nil {
		s.log(ctx).WarnContext(ctx, "custom content unavailable, serving static only",
			slog.String("kind", string(kind)),
			slog.Any("error", err),
		)

		return nil
	}

	return entries
}
