package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polyworks/site-api/internal/adapters/http/dto"
	"github.com/polyworks/site-api/internal/app"
	"github.com/polyworks/site-api/internal/domain"
	"github.com/polyworks/site-api/internal/platform/config"
)

// AdminHandler serves the editor and sales endpoints. Authentication is
// applied by the router.
type AdminHandler struct {
	content      *app.ContentService
	quotes       *app.QuoteService
	defaultLimit int
	maxLimit     int
}

func NewAdminHandler(content *app.ContentService, quotes *app.QuoteService, cfg *config.ContentConfig) *AdminHandler {
	h := &AdminHandler{
		content:      content,
		quotes:       quotes,
		defaultLimit: config.DefaultPageLimit,
		maxLimit:     config.DefaultMaxPageLimit,
	}

	if cfg != nil {
		h.defaultLimit = cfg.DefaultLimit
		h.maxLimit = cfg.MaxLimit
	}

	return h
}

// PutEntry handles PUT /api/v1/admin/content/:kind/:id. The entry is stored
// as a custom override and shadows a static entry with the same id.
func (h *AdminHandler) PutEntry(c *gin.Context) {
	kind, err := domain.ParseKind(c.Param("kind"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	var req dto.EntryRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	entry, err := req.ToDomain(kind, c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if err := h.content.Upsert(c.Request.Context(), entry); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewEntryResponse(entry))
}

// DeleteEntry handles DELETE /api/v1/admin/content/:kind/:id.
func (h *AdminHandler) DeleteEntry(c *gin.Context) {
	kind, err := domain.ParseKind(c.Param("kind"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if err := h.content.Delete(c.Request.Context(), kind, c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListQuotes handles GET /api/v1/admin/quotes, newest first.
func (h *AdminHandler) ListQuotes(c *gin.Context) {
	var req dto.PaginationRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	offset, limit, err := req.Window(h.defaultLimit, h.maxLimit)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	quotes, total, err := h.quotes.List(c.Request.Context(), offset, limit)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(dto.NewQuoteResponses(quotes), total, offset, limit))
}

// GetQuote handles GET /api/v1/admin/quotes/:id.
func (h *AdminHandler) GetQuote(c *gin.Context) {
	quote, err := h.quotes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// RegisterAdminRoutes registers the admin routes on rg, which the router
// has already wrapped in authentication.
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.PUT("/content/:kind/:id", h.PutEntry)
	rg.DELETE("/content/:kind/:id", h.DeleteEntry)
	rg.GET("/quotes", h.ListQuotes)
	rg.GET("/quotes/:id", h.GetQuote)
}
