package app

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/polyworks/site-api/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedNow = time.Date(2024, time.September, 2, 14, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type recordedMetrics struct {
	mu      sync.Mutex
	queries []domain.Kind
	carts   []string
	quotes  []string
}

func (r *recordedMetrics) ContentQueried(kind domain.Kind, _ bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, kind)
}

func (r *recordedMetrics) CartMutated(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts = append(r.carts, op)
}

func (r *recordedMetrics) QuoteSubmitted(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotes = append(r.quotes, outcome)
}

func blogEntry(id string, day int, tags ...string) domain.Entry {
	return domain.Entry{
		ID:          id,
		Kind:        domain.KindBlog,
		Slug:        id + "-slug",
		Title:       domain.Text("Post " + id),
		Body:        domain.LocalizedText{domain.LocaleEnglish: "Hello **" + id + "**", domain.LocaleGerman: "Hallo *" + id + "*"},
		Tags:        tags,
		Author:      domain.Author{Name: "Anna Kovács"},
		PublishedAt: time.Date(2024, time.May, day, 0, 0, 0, 0, time.UTC),
	}
}

func price(v int64) *int64 { return &v }

func catalogProducts() []domain.Product {
	return []domain.Product{
		{ID: "crate", SKU: "PP-CR-600", Name: domain.Text("Stackable crate"), Category: "Logistics", Material: "PP", MinOrderQty: 100, UnitPriceCents: price(450)},
		{ID: "cap", SKU: "HDPE-CAP-38", Name: domain.Text("Closure cap"), Category: "Packaging", Material: "HDPE", MinOrderQty: 5000},
	}
}
