package domain

import (
	"cmp"
	"slices"
	"strings"
)

// Product is a catalog item that can be added to a quote cart.
type Product struct {
	ID          string
	SKU         string
	Name        LocalizedText
	Description LocalizedText
	Category    string
	Material    string
	Process     string // injection moulding, extrusion, thermoforming...
	Tags        []string
	Featured    bool
	MinOrderQty int
	// UnitPriceCents is nil for price-on-request products.
	UnitPriceCents *int64
	ImageURL       string
}

// Validate checks the catalog invariants for a product.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return NewValidationError("id", "is required")
	}

	if strings.TrimSpace(p.SKU) == "" {
		return NewValidationError("sku", "is required")
	}

	if p.Name.IsEmpty() {
		return NewValidationError("name", "an English name is required")
	}

	if p.MinOrderQty < 1 {
		return NewValidationError("minOrderQty", "must be at least 1")
	}

	if p.UnitPriceCents != nil && *p.UnitPriceCents < 0 {
		return NewValidationError("unitPrice", "must not be negative")
	}

	return nil
}

// ProductQuery narrows and pages the catalog.
type ProductQuery struct {
	Search   string
	Category string
	Material string
	Tag      string
	Featured *bool
	Offset   int
	Limit    int
}

// ProductResult is one page of the filtered catalog.
type ProductResult struct {
	Items []Product
	Total int
}

// Matches reports whether p passes every filter of q.
func (q *ProductQuery) Matches(p *Product) bool {
	if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
		return false
	}

	if q.Material != "" && !strings.EqualFold(p.Material, q.Material) {
		return false
	}

	if q.Tag != "" && !slices.ContainsFunc(p.Tags, func(t string) bool { return strings.EqualFold(t, q.Tag) }) {
		return false
	}

	if q.Featured != nil && p.Featured != *q.Featured {
		return false
	}

	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		haystack := strings.ToLower(strings.Join([]string{
			p.SKU,
			p.Name.Joined(),
			p.Description.Joined(),
			p.Material,
			p.Process,
			strings.Join(p.Tags, " "),
		}, " "))
		if !strings.Contains(haystack, s) {
			return false
		}
	}

	return true
}

// Apply filters the catalog, orders it by English name then id, and slices it.
func (q *ProductQuery) Apply(products []Product) ProductResult {
	filtered := make([]Product, 0, len(products))
	for i := range products {
		if q.Matches(&products[i]) {
			filtered = append(filtered, products[i])
		}
	}

	slices.SortStableFunc(filtered, func(a, b Product) int {
		if c := cmp.Compare(strings.ToLower(a.Name.Get(LocaleEnglish)), strings.ToLower(b.Name.Get(LocaleEnglish))); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	return ProductResult{
		Items: Page(filtered, q.Offset, q.Limit),
		Total: len(filtered),
	}
}

// CatalogFacets lists the categories and materials present in the catalog.
type CatalogFacets struct {
	Categories []string
	Materials  []string
}

// CollectCatalogFacets returns sorted, de-duplicated catalog facets.
func CollectCatalogFacets(products []Product) CatalogFacets {
	categories := newFacetSet()
	materials := newFacetSet()

	for _, p := range products {
		categories.add(p.Category)
		materials.add(p.Material)
	}

	return CatalogFacets{
		Categories: categories.sorted(),
		Materials:  materials.sorted(),
	}
}

// FindProduct returns the product with id.
func FindProduct(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}

	return Product{}, false
}
