package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/polyworks/site-api/internal/app/reqctx"
)

// RequestContext attaches a fresh reqctx.RequestContext so services share
// loaded collections for the rest of the request.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		c.Request = c.Request.WithContext(reqctx.WithContext(ctx, reqctx.New(ctx)))

		c.Next()
	}
}
