package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/polyworks/site-api/internal/adapters/http/dto"
	"github.com/polyworks/site-api/internal/adapters/http/middleware"
	"github.com/polyworks/site-api/internal/app"
	"github.com/polyworks/site-api/internal/domain"
	"github.com/polyworks/site-api/internal/mocks"
)

var submittedAt = time.Date(2024, 9, 2, 7, 15, 0, 0, time.UTC)

func newQuoteEngine(t *testing.T, carts *memCarts, quotes *mocks.MockQuoteStore, forwarder *mocks.MockQuoteForwarder) *gin.Engine {
	t.Helper()

	catalog := catalogMock(t)

	cartSvc := app.NewCartService(app.CartServiceConfig{
		Carts: carts, Catalog: catalog, Logger: discardLogger(),
		NewID: func() string { return "cart-1" },
	})

	cfg := app.QuoteServiceConfig{
		Quotes: quotes, Carts: carts, Catalog: catalog, Logger: discardLogger(),
		Now:   func() time.Time { return submittedAt },
		NewID: func() string { return "q-1" },
	}
	if forwarder != nil {
		cfg.Forwarder = forwarder
	}

	engine := gin.New()
	engine.Use(middleware.Session(testSessionConfig()))

	v1 := engine.Group("/api/v1")
	NewCartHandler(cartSvc).RegisterCartRoutes(v1)
	NewQuoteHandler(app.NewQuoteService(cfg)).RegisterQuoteRoutes(v1)

	return engine
}

const quoteBody = `{"name":"Jonas Weber","email":"jonas@example.de","company":"Weber Logistik","country":"de","message":"Delivery to Graz","locale":"de"}`

func TestQuoteHandler_Submit(t *testing.T) {
	tests := []struct {
		name       string
		forwardErr error
		status     string
	}{
		{"forwarded", nil, "forwarded"},
		{"crm failure still accepts the request", errors.New("crm timeout"), "forward_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carts := newMemCarts()

			var stored []domain.QuoteRequest

			quotes := mocks.NewMockQuoteStore(t)
			quotes.EXPECT().Save(mock.Anything, mock.Anything).
				Run(func(_ context.Context, q *domain.QuoteRequest) { stored = append(stored, *q) }).
				Return(nil)

			forwarder := mocks.NewMockQuoteForwarder(t)
			forwarder.EXPECT().Forward(mock.Anything, mock.MatchedBy(func(q *domain.QuoteRequest) bool {
				return q.ID == "q-1" && q.Locale == domain.LocaleGerman && q.Contact.Country == "DE"
			})).Return(tt.forwardErr)

			engine := newQuoteEngine(t, carts, quotes, forwarder)

			w := do(engine, http.MethodPost, "/api/v1/cart/items", `{"productId":"tray","quantity":500}`)
			require.Equal(t, http.StatusOK, w.Code)
			cookie := sessionCookie(t, w)

			w = do(engine, http.MethodPost, "/api/v1/quotes", quoteBody, cookie)

			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

			receipt := decode[dto.QuoteReceiptResponse](t, w)
			assert.Equal(t, "q-1", receipt.ID)
			assert.Equal(t, tt.status, receipt.Status)
			assert.Equal(t, 1, receipt.ItemCount)
			assert.True(t, submittedAt.Equal(receipt.CreatedAt))

			require.Len(t, stored, 2)
			assert.Equal(t, domain.QuoteStatusReceived, stored[0].Status)
			assert.Equal(t, tt.status, string(stored[1].Status))
			assert.Equal(t, "Delivery to Graz", stored[1].Message)
			assert.Zero(t, carts.len())

			cleared := sessionCookie(t, w)
			w = do(engine, http.MethodGet, "/api/v1/cart", "", cleared)
			assert.Empty(t, decode[dto.CartResponse](t, w).Items)
		})
	}
}

func TestQuoteHandler_Submit_Rejected(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"empty cart", quoteBody, dto.ErrorCodeValidation},
		{"invalid email", `{"name":"Jonas","email":"jonas"}`, dto.ErrorCodeValidation},
		{"unsupported locale", `{"name":"Jonas","email":"jonas@example.de","locale":"fr"}`, dto.ErrorCodeValidation},
		{"malformed", `not json`, dto.ErrorCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newQuoteEngine(t, newMemCarts(), mocks.NewMockQuoteStore(t), nil)

			w := do(engine, http.MethodPost, "/api/v1/quotes", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}
}

func TestQuoteHandler_Submit_WithoutForwarder(t *testing.T) {
	carts := newMemCarts()

	quotes := mocks.NewMockQuoteStore(t)
	quotes.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()

	engine := newQuoteEngine(t, carts, quotes, nil)

	w := do(engine, http.MethodPost, "/api/v1/cart/items", `{"productId":"tray","quantity":600}`)
	cookie := sessionCookie(t, w)

	w = do(engine, http.MethodPost, "/api/v1/quotes", quoteBody, cookie)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "received", decode[dto.QuoteReceiptResponse](t, w).Status)
}
