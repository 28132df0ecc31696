package clients

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyworks/site-api/internal/adapters/http/middleware"
	"github.com/polyworks/site-api/internal/platform/config"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:     baseURL,
		ServiceName: "crm",
		HTTP: config.ClientConfig{
			Timeout: 5 * time.Second,
			Retry: config.RetryConfig{
				MaxAttempts:     3,
				InitialInterval: 5 * time.Millisecond,
				MaxInterval:     20 * time.Millisecond,
				Multiplier:      2.0,
				JitterFactor:    0.25,
			},
			CircuitBreaker: config.CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       time.Second,
				HalfOpenLimit: 2,
			},
		},
	}
}

func newTestClient(t *testing.T, cfg Config) *Client {
	t.Helper()

	c, err := New(cfg)
	require.NoError(t, err)

	return c
}

func closeBody(t *testing.T, resp *http.Response) {
	t.Helper()

	if err := resp.Body.Close(); err != nil {
		t.Errorf("failed to close response body: %v", err)
	}
}

func TestNew_RequiresServiceName(t *testing.T) {
	cfg := testConfig("")
	cfg.ServiceName = ""

	_, err := New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service name is required")
}

func TestNew_Defaults(t *testing.T) {
	c := newTestClient(t, Config{ServiceName: "crm", BaseURL: "https://crm.example.com/"})

	assert.Equal(t, "https://crm.example.com", c.baseURL)
	assert.Equal(t, 1, c.retry.MaxAttempts)
	assert.Equal(t, defaultTimeout, c.http.Timeout)
	assert.Equal(t, "crm", c.ServiceName())
}

func TestClient_HeaderPropagation(t *testing.T) {
	var requestID, correlationID, accept atomic.Value

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID.Store(r.Header.Get(middleware.HeaderRequestID))
		correlationID.Store(r.Header.Get(middleware.HeaderCorrelationID))
		accept.Store(r.Header.Get("Accept"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := newTestClient(t, testConfig(server.URL))

	ctx := middleware.ContextWithRequestID(context.Background(), "req-123")
	ctx = middleware.ContextWithCorrelationID(ctx, "corr-456")

	resp, err := c.Get(ctx, "/health")
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, "req-123", requestID.Load())
	assert.Equal(t, "corr-456", correlationID.Load())
	assert.Equal(t, "application/json", accept.Load())
}

func TestClient_RetryOnServerError(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := newTestClient(t, testConfig(server.URL))

	resp, err := c.Get(context.Background(), "/health")
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestClient_RetryOnTooManyRequests(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := newTestClient(t, testConfig(server.URL))

	resp, err := c.Get(context.Background(), "/health")
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestClient_NoRetryOnClientError(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	c := newTestClient(t, testConfig(server.URL))

	resp, err := c.Get(context.Background(), "/health")
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestClient_MaxRetriesExceeded(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := newTestClient(t, testConfig(server.URL))

	_, err := c.Get(context.Background(), "/health")
	require.ErrorIs(t, err, ErrMaxRetriesExceeded)
	assert.Contains(t, err.Error(), "server responded 503")
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestClient_PostJSONReplaysBodyOnRetry(t *testing.T) {
	var attempts int32
	bodies := make(chan string, 3)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies <- r.Header.Get("Content-Type") + " " + string(body)

		if atomic.AddInt32(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	c := newTestClient(t, testConfig(server.URL))

	resp, err := c.PostJSON(context.Background(), "leads", map[string]string{"email": "jonas@example.de"})
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, bodies, 2)
	assert.Equal(t, `application/json {"email":"jonas@example.de"}`, <-bodies)
	assert.Equal(t, `application/json {"email":"jonas@example.de"}`, <-bodies)
}

func TestClient_PostJSONEncodingError(t *testing.T) {
	c := newTestClient(t, testConfig("http://127.0.0.1:1"))

	_, err := c.PostJSON(context.Background(), "/leads", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encoding request body")
}

func TestClient_CircuitBreakerShortCircuitsWhenOpen(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.HTTP.Retry.MaxAttempts = 1
	cfg.HTTP.CircuitBreaker.MaxFailures = 2

	c := newTestClient(t, cfg)

	_, err := c.Get(context.Background(), "/health")
	require.Error(t, err)
	assert.Equal(t, StateClosed, c.CircuitState())

	_, err = c.Get(context.Background(), "/health")
	require.Error(t, err)
	assert.Equal(t, StateOpen, c.CircuitState())

	before := atomic.LoadInt32(&calls)

	_, err = c.Get(context.Background(), "/health")
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, before, atomic.LoadInt32(&calls))
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	defer close(release)

	cfg := testConfig(server.URL)
	cfg.HTTP.Timeout = 50 * time.Millisecond
	cfg.HTTP.Retry.MaxAttempts = 1

	c := newTestClient(t, cfg)

	_, err := c.Get(context.Background(), "/slow")
	require.Error(t, err)
}

func TestClient_ContextCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	defer close(release)

	c := newTestClient(t, testConfig(server.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Get(ctx, "/slow")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrMaxRetriesExceeded)
}

func TestClient_AuthFuncCalledPerAttempt(t *testing.T) {
	var authCalls, requests int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer crm-key", r.Header.Get("Authorization"))

		if atomic.AddInt32(&requests, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.AuthFunc = func(r *http.Request) {
		atomic.AddInt32(&authCalls, 1)
		r.Header.Set("Authorization", "Bearer crm-key")
	}

	c := newTestClient(t, cfg)

	resp, err := c.Get(context.Background(), "/health")
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, int32(2), atomic.LoadInt32(&authCalls))
}

func TestClient_BuildURL(t *testing.T) {
	c := newTestClient(t, testConfig("https://crm.example.com/api"))

	assert.Equal(t, "https://crm.example.com/api/leads", c.buildURL("/leads"))
	assert.Equal(t, "https://crm.example.com/api/leads", c.buildURL("leads"))
}

func TestCalculateBackoff(t *testing.T) {
	cfg := testConfig("")
	cfg.HTTP.Retry.InitialInterval = 100 * time.Millisecond
	cfg.HTTP.Retry.MaxInterval = time.Second

	c := newTestClient(t, cfg)

	assert.InDelta(t, 100*time.Millisecond, c.calculateBackoff(0), float64(25*time.Millisecond))
	assert.InDelta(t, 200*time.Millisecond, c.calculateBackoff(1), float64(50*time.Millisecond))
	assert.InDelta(t, 400*time.Millisecond, c.calculateBackoff(2), float64(100*time.Millisecond))
	assert.LessOrEqual(t, c.calculateBackoff(10), time.Second+time.Second/4)

	cfg.HTTP.Retry.JitterFactor = 0
	exact := newTestClient(t, cfg)
	assert.Equal(t, 200*time.Millisecond, exact.calculateBackoff(1))
}

type testNetError struct{ timeout bool }

func (e testNetError) Error() string   { return "test net error" }
func (e testNetError) Timeout() bool   { return e.timeout }
func (e testNetError) Temporary() bool { return true }

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil error", nil, false},
		{"context canceled", context.Canceled, false},
		{"context deadline exceeded", context.DeadlineExceeded, false},
		{"net error with timeout", testNetError{timeout: true}, true},
		{"net error without timeout", testNetError{timeout: false}, false},
		{"connection refused", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, isRetryableError(tt.err))
		})
	}
}
