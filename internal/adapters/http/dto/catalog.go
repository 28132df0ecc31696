package dto

import (
	"strings"

	"github.com/polyworks/site-api/internal/domain"
)

// ProductQuery holds the GET /api/v1/products parameters.
type ProductQuery struct {
	PaginationRequest

	Search   string `form:"search"   json:"search"   validate:"max=200"`
	Category string `form:"category" json:"category" validate:"max=100"`
	Material string `form:"material" json:"material" validate:"max=50"`
	Tag      string `form:"tag"      json:"tag"      validate:"max=100"`
	Featured *bool  `form:"featured" json:"featured"`
}

func (q *ProductQuery) ToDomain(defaultLimit, maxLimit int) (domain.ProductQuery, error) {
	offset, limit, err := q.Window(defaultLimit, maxLimit)
	if err != nil {
		return domain.ProductQuery{}, err
	}

	return domain.ProductQuery{
		Search:   strings.TrimSpace(q.Search),
		Category: strings.TrimSpace(q.Category),
		Material: strings.TrimSpace(q.Material),
		Tag:      strings.TrimSpace(q.Tag),
		Featured: q.Featured,
		Offset:   offset,
		Limit:    limit,
	}, nil
}

// ProductResponse is a catalog item. UnitPriceCents is omitted when prices
// are hidden or the product is price-on-request.
type ProductResponse struct {
	ID             string    `json:"id"`
	SKU            string    `json:"sku"`
	Name           Localized `json:"name"`
	Description    Localized `json:"description,omitempty"`
	Category       string    `json:"category"`
	Material       string    `json:"material"`
	Process        string    `json:"process,omitempty"`
	Tags           []string  `json:"tags"`
	Featured       bool      `json:"featured"`
	MinOrderQty    int       `json:"minOrderQty"`
	UnitPriceCents *int64    `json:"unitPriceCents,omitempty"`
	Image          string    `json:"image,omitempty"`
}

func NewProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           NewLocalized(p.Name),
		Description:    NewLocalized(p.Description),
		Category:       p.Category,
		Material:       p.Material,
		Process:        p.Process,
		Tags:           nonNil(p.Tags),
		Featured:       p.Featured,
		MinOrderQty:    p.MinOrderQty,
		UnitPriceCents: p.UnitPriceCents,
		Image:          p.ImageURL,
	}
}

func NewProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, NewProductResponse(&products[i]))
	}

	return out
}

// CatalogFacetsResponse lists the catalog filter values.
type CatalogFacetsResponse struct {
	Categories []string `json:"categories"`
	Materials  []string `json:"materials"`
}

func NewCatalogFacetsResponse(f domain.CatalogFacets) CatalogFacetsResponse {
	return CatalogFacetsResponse{
		Categories: nonNil(f.Categories),
		Materials:  nonNil(f.Materials),
	}
}
