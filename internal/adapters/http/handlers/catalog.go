package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polyworks/site-api/internal/adapters/http/dto"
	"github.com/polyworks/site-api/internal/app"
	"github.com/polyworks/site-api/internal/platform/config"
)

// CatalogHandler serves the product catalog.
type CatalogHandler struct {
	service      *app.CatalogService
	defaultLimit int
	maxLimit     int
}

func NewCatalogHandler(service *app.CatalogService, cfg *config.ContentConfig) *CatalogHandler {
	h := &CatalogHandler{
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

// List handles GET /api/v1/products.
func (h *CatalogHandler) List(c *gin.Context) {
	var req dto.ProductQuery
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	query, err := req.ToDomain(h.defaultLimit, h.maxLimit)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	listing, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(
		dto.NewProductResponses(listing.Items), listing.Total, listing.Offset, listing.Limit))
}

// Get handles GET /api/v1/products/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	product, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProductResponse(product))
}

// Facets handles GET /api/v1/products/facets.
func (h *CatalogHandler) Facets(c *gin.Context) {
	facets, err := h.service.Facets(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCatalogFacetsResponse(facets))
}

func (h *CatalogHandler) RegisterCatalogRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.GET("", h.List)
	products.GET("/facets", h.Facets)
	products.GET("/:id", h.Get)
}
