package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/polyworks/site-api/internal/adapters/http/dto"
	"github.com/polyworks/site-api/internal/app"
	"github.com/polyworks/site-api/internal/domain"
	"github.com/polyworks/site-api/internal/mocks"
	"github.com/polyworks/site-api/internal/platform/config"
)

func newAdminEngine(t *testing.T, custom *mocks.MockCustomContentStore, quotes *mocks.MockQuoteStore) *gin.Engine {
	t.Helper()

	content := app.NewContentService(app.ContentServiceConfig{
		Static: mocks.NewMockContentSource(t),
		Custom: custom,
		Logger: discardLogger(),
	})

	quoteSvc := app.NewQuoteService(app.QuoteServiceConfig{
		Quotes:  quotes,
		Carts:   newMemCarts(),
		Catalog: mocks.NewMockProductCatalog(t),
		Logger:  discardLogger(),
	})

	engine := gin.New()
	NewAdminHandler(content, quoteSvc, &config.ContentConfig{DefaultLimit: 20, MaxLimit: 100}).
		RegisterAdminRoutes(engine.Group("/api/v1/admin"))

	return engine
}

func TestAdminHandler_PutEntry(t *testing.T) {
	custom := mocks.NewMockCustomContentStore(t)
	custom.EXPECT().Upsert(mock.Anything, mock.MatchedBy(func(e *domain.Entry) bool {
		return e.ID == "cs-9" && e.Kind == domain.KindCaseStudy && e.Slug == "cs-9" && e.ReadingMinutes == 1
	})).Return(nil)

	engine := newAdminEngine(t, custom, mocks.NewMockQuoteStore(t))

	body := `{
		"title": {"en": "Medical trays", "hu": "Orvosi tálcák"},
		"body": {"en": "Cleanroom thermoforming for a medical OEM."},
		"tags": ["medical"],
		"author": {"name": "Anna Kovács"},
		"date": "2024-07-01",
		"client": "MedTech Kft."
	}`

	w := do(engine, http.MethodPut, "/api/v1/admin/content/case-studies/cs-9", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[dto.EntryResponse](t, w)
	assert.Equal(t, "case-study", resp.Kind)
	assert.Equal(t, "cs-9", resp.Slug)
	assert.Equal(t, "2024-07-01", resp.Date)
	assert.Equal(t, "Orvosi tálcák", resp.Title["hu"])
}

func TestAdminHandler_PutEntry_Invalid(t *testing.T) {
	engine := newAdminEngine(t, mocks.NewMockCustomContentStore(t), mocks.NewMockQuoteStore(t))

	tests := []struct {
		name   string
		target string
		body   string
		code   string
	}{
		{"unknown kind", "/api/v1/admin/content/podcasts/p1", `{}`, dto.ErrorCodeValidation},
		{"missing title", "/api/v1/admin/content/news/n1", `{"author":{"name":"A"},"date":"2024-01-01"}`, dto.ErrorCodeValidation},
		{"no english title", "/api/v1/admin/content/news/n1", `{"title":{"de":"Nur Deutsch"},"author":{"name":"A"},"date":"2024-01-01"}`, dto.ErrorCodeValidation},
		{"bad date", "/api/v1/admin/content/news/n1", `{"title":{"en":"T"},"author":{"name":"A"},"date":"July"}`, dto.ErrorCodeValidation},
		{"unsupported locale key", "/api/v1/admin/content/news/n1", `{"title":{"en":"T","fr":"T"},"author":{"name":"A"},"date":"2024-01-01"}`, dto.ErrorCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(engine, http.MethodPut, tt.target, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}
}

func TestAdminHandler_DeleteEntry(t *testing.T) {
	custom := mocks.NewMockCustomContentStore(t)
	custom.EXPECT().Delete(mock.Anything, domain.KindBlog, "b1").Return(nil)
	custom.EXPECT().Delete(mock.Anything, domain.KindBlog, "gone").Return(domain.NewNotFoundError("blog post", "gone"))

	engine := newAdminEngine(t, custom, mocks.NewMockQuoteStore(t))

	w := do(engine, http.MethodDelete, "/api/v1/admin/content/blog/b1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(engine, http.MethodDelete, "/api/v1/admin/content/blog-posts/gone", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminHandler_Quotes(t *testing.T) {
	q := domain.QuoteRequest{
		ID:        "q-7",
		Contact:   domain.Contact{Name: "Réka", Email: "reka@example.hu"},
		Items:     []domain.QuoteLine{{ProductID: "tray", SKU: "PS-TR-01", Name: "Blister tray", Quantity: 500}},
		Locale:    domain.LocaleHungarian,
		Status:    domain.QuoteStatusForwarded,
		CreatedAt: time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC),
	}

	quotes := mocks.NewMockQuoteStore(t)
	quotes.EXPECT().List(mock.Anything, 20, 10).Return([]domain.QuoteRequest{q}, 21, nil)
	quotes.EXPECT().Get(mock.Anything, "q-7").Return(&q, nil)
	quotes.EXPECT().Get(mock.Anything, "q-0").Return(nil, domain.NewNotFoundError("quote request", "q-0"))

	engine := newAdminEngine(t, mocks.NewMockCustomContentStore(t), quotes)

	w := do(engine, http.MethodGet, "/api/v1/admin/quotes?page=3&limit=10", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	page := decode[dto.PageResponse[dto.QuoteResponse]](t, w)
	assert.Equal(t, 21, page.Total)
	assert.Equal(t, 20, page.Offset)
	assert.False(t, page.HasMore)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "PS-TR-01", page.Items[0].Items[0].SKU)

	w = do(engine, http.MethodGet, "/api/v1/admin/quotes/q-7", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "forwarded", decode[dto.QuoteResponse](t, w).Status)

	w = do(engine, http.MethodGet, "/api/v1/admin/quotes/q-0", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(engine, http.MethodGet, "/api/v1/admin/quotes?limit=500", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
