package middleware

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polyworks/site-api/internal/adapters/http/dto"
	"github.com/polyworks/site-api/internal/platform/config"
	"github.com/polyworks/site-api/internal/platform/logging"
)

// ContextKeyClaims is the gin context key holding *Claims.
const ContextKeyClaims = "claims"

const (
	defaultSubjectHeader = "X-User-ID"
	defaultRolesHeader   = "X-User-Roles"
	defaultScopesHeader  = "X-User-Scopes"
)

// Claims is the caller identity forwarded by the API gateway. The gateway
// has already validated the token; these headers are trusted as-is.
type Claims struct {
	Subject string
	Roles   []string
	Scopes  []string
}

func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// ExtractClaims reads the identity headers named in cfg. Roles are comma
// separated; scopes are space separated as in OAuth2.
func ExtractClaims(c *gin.Context, cfg *config.AuthConfig) *Claims {
	subjectHeader, rolesHeader, scopesHeader := defaultSubjectHeader, defaultRolesHeader, defaultScopesHeader

	if cfg != nil {
		subjectHeader = cmp.Or(cfg.SubjectHeader, subjectHeader)
		rolesHeader = cmp.Or(cfg.RolesHeader, rolesHeader)
		scopesHeader = cmp.Or(cfg.ScopesHeader, scopesHeader)
	}

	claims := &Claims{Subject: strings.TrimSpace(c.GetHeader(subjectHeader))}

	for _, r := range strings.Split(c.GetHeader(rolesHeader), ",") {
		if r = strings.TrimSpace(r); r != "" {
			claims.Roles = append(claims.Roles, r)
		}
	}

	claims.Scopes = strings.Fields(c.GetHeader(scopesHeader))

	return claims
}

// GetClaims returns the claims stored by RequireAuth, or nil.
func GetClaims(c *gin.Context) *Claims {
	if v, ok := c.Get(ContextKeyClaims); ok {
		if cl, ok := v.(*Claims); ok {
			return cl
		}
	}

	return nil
}

// RequireAuth rejects requests without a subject with 401 and stores the
// claims for later middleware and handlers.
func RequireAuth(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ExtractClaims(c, cfg)
		if claims.Subject == "" {
			dto.AbortWithErrorCode(c, dto.ErrorCodeUnauthorized, "authentication required")
			return
		}

		c.Set(ContextKeyClaims, claims)

		ctx := c.Request.Context()
		c.Request = c.Request.WithContext(logging.WithContext(ctx,
			logging.FromContext(ctx).With(slog.String("subject", claims.Subject))))

		c.Next()
	}
}

// RequireRole rejects callers without role with 403.
func RequireRole(cfg *config.AuthConfig, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			claims = ExtractClaims(c, cfg)
			c.Set(ContextKeyClaims, claims)
		}

		if !claims.HasRole(role) {
			dto.AbortWithErrorCode(c, dto.ErrorCodeForbidden, "role "+role+" required")
			return
		}

		c.Next()
	}
}
