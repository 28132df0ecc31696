package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/polyworks/site-api/internal/platform/logging"
)

const (
	HeaderRequestID = "X-Request-ID"

	// ContextKeyRequestID is the gin context key holding the request ID.
	ContextKeyRequestID = "request_id"
)

// RequestID takes X-Request-ID from the caller when it looks sane and
// otherwise generates a UUID. The ID is echoed in the response, added to
// the context logger and made available to outbound clients.
func RequestID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName: HeaderRequestID,
		contextKey: ContextKeyRequestID,
		enrichers:  []func(ctx context.Context, id string) context.Context{logging.WithRequestID, ContextWithRequestID},
	})
}

// GetRequestID returns the request ID or "".
func GetRequestID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyRequestID)
}

// MustGetRequestID returns the request ID or "unknown".
func MustGetRequestID(c *gin.Context) string {
	if id := GetRequestID(c); id != "" {
		return id
	}

	return "unknown"
}
