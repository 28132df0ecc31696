package dto

import (
	"time"

	"github.com/polyworks/site-api/internal/app"
	"github.com/polyworks/site-api/internal/domain"
)

// AddCartItemRequest is the body of POST /api/v1/cart/items.
type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required,max=100"`
	Quantity  int    `json:"quantity"  validate:"required,gte=1,lte=1000000"`
}

// SetCartQuantityRequest is the body of PUT /api/v1/cart/items/:productId.
// Zero removes the line.
type SetCartQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0,lte=1000000"`
}

// CartLineResponse is one cart line with the product name in the
// request's locale.
type CartLineResponse struct {
	ProductID   string `json:"productId"`
	SKU         string `json:"sku,omitempty"`
	Name        string `json:"name,omitempty"`
	Quantity    int    `json:"quantity"`
	MinOrderQty int    `json:"minOrderQty,omitempty"`
	Available   bool   `json:"available"`
}

// CartResponse is the visitor's quote cart.
type CartResponse struct {
	Items         []CartLineResponse `json:"items"`
	TotalQuantity int                `json:"totalQuantity"`
	UpdatedAt     *time.Time         `json:"updatedAt,omitempty"`
}

func NewCartResponse(v *app.CartView, locale domain.Locale) CartResponse {
	lines := make([]CartLineResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, CartLineResponse{
			ProductID:   l.ProductID,
			SKU:         l.SKU,
			Name:        l.Name.Get(locale),
			Quantity:    l.Quantity,
			MinOrderQty: l.MinOrderQty,
			Available:   l.Available,
		})
	}

	resp := CartResponse{Items: lines, TotalQuantity: v.TotalQuantity}
	if !v.UpdatedAt.IsZero() {
		updated := v.UpdatedAt.UTC()
		resp.UpdatedAt = &updated
	}

	return resp
}
