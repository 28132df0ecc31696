package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cents(v int64) *int64 { return &v }

func sampleProducts() []Product {
	return []Product{
		{
			ID: "crate", SKU: "PP-CR-600", Name: LocalizedText{LocaleEnglish: "Stackable crate", LocaleGerman: "Stapelkiste"},
			Category: "Logistics", Material: "PP", Process: "injection moulding", Tags: []string{"reusable"},
			Featured: true, MinOrderQty: 100, UnitPriceCents: cents(450),
		},
		{
			ID: "preform", SKU: "PET-PF-28", Name: Text("Bottle preform"),
			Description: LocalizedText{LocaleHungarian: "Palack előforma 28 mm"},
			Category:    "Packaging", Material: "PET", Process: "injection moulding", MinOrderQty: 10000,
		},
		{
			ID: "tray", SKU: "PS-TR-01", Name: Text("blister tray"),
			Category: "packaging", Material: "PS", Process: "thermoforming", Tags: []string{"Medical"}, MinOrderQty: 500,
		},
	}
}

func productIDs(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}

	return out
}

func TestProduct_Validate(t *testing.T) {
	for _, p := range sampleProducts() {
		require.NoError(t, p.Validate(), p.ID)
	}

	tests := []struct {
		name   string
		mutate func(p *Product)
	}{
		{"missing id", func(p *Product) { p.ID = "" }},
		{"missing sku", func(p *Product) { p.SKU = " " }},
		{"missing name", func(p *Product) { p.Name = nil }},
		{"zero min order", func(p *Product) { p.MinOrderQty = 0 }},
		{"negative price", func(p *Product) { p.UnitPriceCents = cents(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sampleProducts()[0]
			tt.mutate(&p)
			assert.True(t, IsValidation(p.Validate()))
		})
	}
}

func TestProductQuery_Apply(t *testing.T) {
	yes := true

	tests := []struct {
		name     string
		query    ProductQuery
		expected []string
		total    int
	}{
		{"all sorted by name", ProductQuery{}, []string{"tray", "preform", "crate"}, 3},
		{"category ignores case", ProductQuery{Category: "PACKAGING"}, []string{"tray", "preform"}, 2},
		{"material", ProductQuery{Material: "pet"}, []string{"preform"}, 1},
		{"tag", ProductQuery{Tag: "medical"}, []string{"tray"}, 1},
		{"featured", ProductQuery{Featured: &yes}, []string{"crate"}, 1},
		{"search sku", ProductQuery{Search: "pp-cr"}, []string{"crate"}, 1},
		{"search german name", ProductQuery{Search: "stapelkiste"}, []string{"crate"}, 1},
		{"search hungarian description", ProductQuery{Search: "előforma"}, []string{"preform"}, 1},
		{"search process", ProductQuery{Search: "injection"}, []string{"preform", "crate"}, 2},
		{"paged", ProductQuery{Offset: 1, Limit: 1}, []string{"preform"}, 3},
		{"offset past end", ProductQuery{Offset: 10}, []string{}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.query.Apply(sampleProducts())
			assert.Equal(t, tt.expected, productIDs(res.Items))
			assert.Equal(t, tt.total, res.Total)
		})
	}
}

func TestCollectCatalogFacets(t *testing.T) {
	f := CollectCatalogFacets(sampleProducts())

	assert.Equal(t, []string{"Logistics", "Packaging"}, f.Categories)
	assert.Equal(t, []string{"PET", "PP", "PS"}, f.Materials)
}

func TestFindProduct(t *testing.T) {
	p, ok := FindProduct(sampleProducts(), "tray")
	require.True(t, ok)
	assert.Equal(t, "PS-TR-01", p.SKU)

	_, ok = FindProduct(sampleProducts(), "nope")
	assert.False(t, ok)
}
