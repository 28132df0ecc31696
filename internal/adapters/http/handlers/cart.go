package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polyworks/site-api/internal/adapters/http/dto"
	"github.com/polyworks/site-api/internal/adapters/http/middleware"
	"github.com/polyworks/site-api/internal/app"
)

// CartHandler serves the visitor's quote cart. The cart id lives in the
// session cookie; the handler stores it after the first mutation.
type CartHandler struct {
	service *app.CartService
}

func NewCartHandler(service *app.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// Get handles GET /api/v1/cart.
func (h *CartHandler) Get(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), middleware.CartID(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.respond(c, view)
}

// AddItem handles POST /api/v1/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	view, err := h.service.AddItem(c.Request.Context(), middleware.CartID(c), req.ProductID, req.Quantity)
	h.mutated(c, view, err)
}

// SetQuantity handles PUT /api/v1/cart/items/:productId.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req dto.SetCartQuantityRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	view, err := h.service.SetQuantity(c.Request.Context(), middleware.CartID(c), c.Param("productId"), *req.Quantity)
	h.mutated(c, view, err)
}

// RemoveItem handles DELETE /api/v1/cart/items/:productId.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	view, err := h.service.RemoveItem(c.Request.Context(), middleware.CartID(c), c.Param("productId"))
	h.mutated(c, view, err)
}

// Clear handles DELETE /api/v1/cart. Visitors without a cart get an empty
// one back and nothing is stored.
func (h *CartHandler) Clear(c *gin.Context) {
	cartID := middleware.CartID(c)
	if cartID == "" {
		h.respond(c, &app.CartView{})
		return
	}

	view, err := h.service.Clear(c.Request.Context(), cartID)
	h.mutated(c, view, err)
}

func (h *CartHandler) mutated(c *gin.Context, view *app.CartView, err error) {
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if err := middleware.SetCartID(c, view.ID); err != nil {
		dto.HandleError(c, err)
		return
	}

	h.respond(c, view)
}

func (h *CartHandler) respond(c *gin.Context, view *app.CartView) {
	locale := dto.ResolveLocale(c.Query("lang"), c.GetHeader("Accept-Language"))
	c.JSON(http.StatusOK, dto.NewCartResponse(view, locale))
}

func (h *CartHandler) RegisterCartRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	cart.GET("", h.Get)
	cart.DELETE("", h.Clear)
	cart.POST("/items", h.AddItem)
	cart.PUT("/items/:productId", h.SetQuantity)
	cart.DELETE("/items/:productId", h.RemoveItem)
}
