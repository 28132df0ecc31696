package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMiddleware_StoresTraceID(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	engine := gin.New()
	engine.Use(TracingMiddleware("site-api", otelgin.WithTracerProvider(tp)), Middleware())

	var seen string
	engine.GET("/ping", func(c *gin.Context) {
		seen = c.GetString(ContextKeyTraceID)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, seen, 32)
	assert.Equal(t, seen, w.Header().Get("X-Trace-ID"))
}

func TestMiddleware_WithoutSpan(t *testing.T) {
	engine := gin.New()
	engine.Use(Middleware())

	var seen string
	engine.GET("/ping", func(c *gin.Context) {
		seen = c.GetString(ContextKeyTraceID)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, seen)
	assert.Empty(t, w.Header().Get("X-Trace-ID"))
}

func TestNew_Disabled(t *testing.T) {
	p, err := New(t.Context(), &Config{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, p.Shutdown(t.Context()))
}
