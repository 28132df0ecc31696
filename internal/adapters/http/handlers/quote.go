package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polyworks/site-api/internal/adapters/http/dto"
	"github.com/polyworks/site-api/internal/adapters/http/middleware"
	"github.com/polyworks/site-api/internal/app"
	"github.com/polyworks/site-api/internal/platform/logging"
)

// QuoteHandler accepts quote requests built from the session cart.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// Submit handles POST /api/v1/quotes.
//
// @Summary Request a quote for the cart
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body dto.SubmitQuoteRequest true "Contact details"
// @Success 201 {object} dto.QuoteReceiptResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes [post]
func (h *QuoteHandler) Submit(c *gin.Context) {
	var req dto.SubmitQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	ctx := c.Request.Context()

	quote, err := h.service.Submit(ctx, app.SubmitQuoteInput{
		CartID:  middleware.CartID(c),
		Contact: req.Contact(),
		Message: req.Message,
		Locale:  dto.ResolveLocale(req.Locale, c.GetHeader("Accept-Language")),
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	// The stored cart is already gone; a stale cookie only yields an empty cart.
	if err := middleware.ClearCartID(c); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "clearing cart from session failed", slog.Any("error", err))
	}

	c.JSON(http.StatusCreated, dto.NewQuoteReceiptResponse(quote))
}

// RegisterQuoteRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	rg.POST("/quotes", h.Submit)
}
