package acl

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyworks/site-api/internal/adapters/clients"
	"github.com/polyworks/site-api/internal/domain"
	"github.com/polyworks/site-api/internal/platform/config"
)

func testClient(t *testing.T, baseURL string) *clients.Client {
	t.Helper()

	return testClientWithAuth(t, baseURL, nil)
}

func testClientWithAuth(t *testing.T, baseURL string, auth func(*http.Request)) *clients.Client {
	t.Helper()

	c, err := clients.New(clients.Config{
		BaseURL:     baseURL,
		ServiceName: "crm",
		AuthFunc:    auth,
		HTTP: config.ClientConfig{
			Timeout: 5 * time.Second,
			Retry: config.RetryConfig{
				MaxAttempts:     1,
				InitialInterval: 5 * time.Millisecond,
				MaxInterval:     10 * time.Millisecond,
				Multiplier:      2.0,
			},
			CircuitBreaker: config.CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       time.Second,
				HalfOpenLimit: 1,
			},
		},
	})
	require.NoError(t, err)

	return c
}

type sample struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

func TestDecodeResponse(t *testing.T) {
	got, err := DecodeResponse[sample](io.NopCloser(strings.NewReader(`{"name":"crate","qty":3}`)))
	require.NoError(t, err)
	assert.Equal(t, &sample{Name: "crate", Qty: 3}, got)

	_, err = DecodeResponse[sample](io.NopCloser(strings.NewReader(`{`)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")

	_, err = DecodeResponse[sample](nil)
	require.Error(t, err)
}

func TestTranslateSlice(t *testing.T) {
	double := func(s *sample) (*sample, error) {
		if err := ValidatePositive(s.Qty, "qty"); err != nil {
			return nil, err
		}

		return &sample{Name: s.Name, Qty: s.Qty * 2}, nil
	}

	got, err := TranslateSlice([]sample{{"a", 1}, {"b", 2}}, double)
	require.NoError(t, err)
	assert.Equal(t, []sample{{"a", 2}, {"b", 4}}, got)

	empty, err := TranslateSlice([]sample{}, double)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = TranslateSlice([]sample{{"a", 1}, {"b", 0}}, double)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "translating item 1")
}

func TestValidateRequired(t *testing.T) {
	require.NoError(t, ValidateRequired("x", "sku"))

	var verr *domain.ValidationError
	require.ErrorAs(t, ValidateRequired("", "sku"), &verr)
	assert.Equal(t, "sku", verr.Field)
}

func TestValidatePositive(t *testing.T) {
	assert.NoError(t, ValidatePositive(1, "qty"))
	assert.NoError(t, ValidatePositive(0.5, "ratio"))
	assert.True(t, domain.IsValidation(ValidatePositive(0, "qty")))
	assert.True(t, domain.IsValidation(ValidatePositive(int64(-4), "qty")))
}

func TestBaseAdapter_MapsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"name":"ok"}`))
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":"VALIDATION_ERROR","message":"bad","details":{"name":"too long"}}}`))
		}
	}))
	defer srv.Close()

	a := NewBaseAdapter(testClient(t, srv.URL), "crm")
	assert.Equal(t, "crm", a.ServiceName())

	body, err := a.Get(context.Background(), "/ok", "lead")
	require.NoError(t, err)
	got, err := DecodeResponse[sample](body)
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Name)

	_, err = a.Get(context.Background(), "/missing", "lead")
	assert.True(t, domain.IsNotFound(err))

	_, err = a.PostJSON(context.Background(), "/invalid", sample{Name: "x"}, "submit", "id-1")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestBaseAdapter_ContextErrorsPassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := NewBaseAdapter(testClient(t, srv.URL), "crm")
	_, err := a.Get(ctx, "/", "lead")

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, domain.IsUnavailable(err))
}
