package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/polyworks/site-api/internal/platform/config"
)

// sessionKeyCartID is the only value kept in the visitor session.
const sessionKeyCartID = "cart_id"

// Session installs a signed cookie session. The cookie holds nothing but the
// cart id; the cart itself lives in the database.
func Session(cfg *config.SessionConfig) gin.HandlerFunc {
	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: sameSite(cfg.SameSite),
	})

	return sessions.Sessions(cfg.Name, store)
}

func sameSite(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// CartID returns the cart id from the session, or "".
func CartID(c *gin.Context) string {
	id, _ := sessions.Default(c).Get(sessionKeyCartID).(string)
	return id
}

// SetCartID stores id in the session cookie. It is a no-op when id is
// already stored.
func SetCartID(c *gin.Context, id string) error {
	s := sessions.Default(c)
	if current, _ := s.Get(sessionKeyCartID).(string); current == id {
		return nil
	}

	s.Set(sessionKeyCartID, id)

	return s.Save()
}

// ClearCartID forgets the cart.
func ClearCartID(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(sessionKeyCartID)

	return s.Save()
}
