package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polyworks/site-api/internal/adapters/http/dto"
	"github.com/polyworks/site-api/internal/app"
	"github.com/polyworks/site-api/internal/domain"
	"github.com/polyworks/site-api/internal/platform/config"
)

// combinedCollections maps the public combined-* paths to their kinds.
var combinedCollections = map[string]domain.Kind{
	"/combined-blog-posts":   domain.KindBlog,
	"/combined-news":         domain.KindNews,
	"/combined-case-studies": domain.KindCaseStudy,
}

// ContentHandler serves the blog, news and case study collections.
type ContentHandler struct {
	service      *app.ContentService
	defaultLimit int
	maxLimit     int
}

// NewContentHandler creates a content handler. Limits come from the content
// config; a nil config uses the package defaults.
func NewContentHandler(service *app.ContentService, cfg *config.ContentConfig) *ContentHandler {
	h := &ContentHandler{
		service:      service,
		defaultLimit: config.DefaultPageLimit,
		maxLimit:     config.DefaultMaxPageLimit,
	}

	if cfg != nil {
		h.defaultLimit = cfg.DefaultLimit
		h.maxLimit = cfg.MaxLimit
	}

	return h
}

// Combined returns the handler for GET /api/combined-{collection}.
//
// Without a limit the whole filtered collection is returned as a JSON array.
// With debug=true, and only while the content.debug flag is on, the array is
// wrapped in an object carrying facets and source counts.
func (h *ContentHandler) Combined(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ContentQuery
		if err := dto.BindQueryAndValidate(c, &req); err != nil {
			dto.HandleError(c, err)
			return
		}

		query, err := req.ToDomain(0, h.maxLimit)
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		ctx := c.Request.Context()
		debug := req.Debug && h.service.DebugAllowed(ctx)

		listing, err := h.service.List(ctx, kind, query, app.ListOptions{Debug: debug})
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		items := dto.NewEntryResponses(listing.Items)
		if !debug {
			c.JSON(http.StatusOK, items)
			return
		}

		facets := dto.NewFacetsResponse(*listing.Facets)
		c.JSON(http.StatusOK, dto.CombinedDebugResponse{
			Items: items,
			Total: listing.Total,
			Debug: dto.DebugInfo{
				AvailableTags:       facets.Tags,
				AvailableAuthors:    facets.Authors,
				AvailableCategories: facets.Categories,
				StaticCount:         listing.SourceCounts[app.SourceStatic],
				CustomCount:         listing.SourceCounts[app.SourceCustom],
				AppliedFilters:      dto.AppliedFilters(query),
			},
		})
	}
}

// CombinedDetail returns the handler for GET /api/combined-{collection}/:id.
func (h *ContentHandler) CombinedDetail(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.detail(c, kind)
	}
}

// List handles GET /api/v1/content/:kind.
func (h *ContentHandler) List(c *gin.Context) {
	kind, err := domain.ParseKind(c.Param("kind"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	var req dto.ContentQuery
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	query, err := req.ToDomain(h.defaultLimit, h.maxLimit)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	listing, err := h.service.List(c.Request.Context(), kind, query, app.ListOptions{})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(
		dto.NewEntryResponses(listing.Items), listing.Total, listing.Offset, listing.Limit))
}

// Get handles GET /api/v1/content/:kind/:id. The id may also be a slug.
func (h *ContentHandler) Get(c *gin.Context) {
	kind, err := domain.ParseKind(c.Param("kind"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.detail(c, kind)
}

// Facets handles GET /api/v1/content/:kind/facets.
func (h *ContentHandler) Facets(c *gin.Context) {
	kind, err := domain.ParseKind(c.Param("kind"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	facets, err := h.service.Facets(c.Request.Context(), kind)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewFacetsResponse(facets))
}

func (h *ContentHandler) detail(c *gin.Context, kind domain.Kind) {
	locale := dto.ResolveLocale(c.Query("lang"), c.GetHeader("Accept-Language"))

	view, err := h.service.Get(c.Request.Context(), kind, c.Param("id"), locale)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Content-Language", string(locale))
	c.JSON(http.StatusOK, dto.EntryDetailResponse{
		EntryResponse: dto.NewEntryResponse(&view.Entry),
		Locale:        string(view.Locale),
		HTML:          view.HTML,
		Related:       dto.NewEntryResponses(view.Related),
	})
}

// RegisterCombinedRoutes registers the combined endpoints the site front end
// reads, on the /api group.
func (h *ContentHandler) RegisterCombinedRoutes(rg *gin.RouterGroup) {
	for path, kind := range combinedCollections {
		rg.GET(path, h.Combined(kind))
		rg.GET(path+"/:id", h.CombinedDetail(kind))
	}
}

// RegisterContentRoutes registers the paginated content API on /api/v1.
func (h *ContentHandler) RegisterContentRoutes(rg *gin.RouterGroup) {
	content := rg.Group("/content")
	content.GET("/:kind", h.List)
	content.GET("/:kind/facets", h.Facets)
	content.GET("/:kind/:id", h.Get)
}
