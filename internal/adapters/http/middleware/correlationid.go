package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/polyworks/site-api/internal/platform/logging"
)

const (
	// HeaderCorrelationID ties together every call made for one visitor
	// action, including the CRM request a quote submission triggers.
	HeaderCorrelationID = "X-Correlation-ID"

	ContextKeyCorrelationID = "correlation_id"
)

// CorrelationID propagates X-Correlation-ID or starts a new one.
func CorrelationID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName: HeaderCorrelationID,
		contextKey: ContextKeyCorrelationID,
		enrichers:  []func(ctx context.Context, id string) context.Context{logging.WithCorrelationID, ContextWithCorrelationID},
	})
}

// GetCorrelationID returns the correlation ID or "".
func GetCorrelationID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyCorrelationID)
}
