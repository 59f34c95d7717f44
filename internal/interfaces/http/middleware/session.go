// internal/interfaces/http/middleware/session.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/storefront-cart/internal/config"
	"github.com/your-org/storefront-cart/internal/pkg/session"
)

const sessionIDKey = "cart_session_id"

// ShopperSession ensures every request carries a shopper session id. The id
// travels in a signed http-only cookie; a missing or invalid cookie gets a
// fresh session minted transparently, so cart endpoints never fail on
// session grounds.
func ShopperSession(cfg *config.Config, tokens *session.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sessionID string

		if cookie, err := c.Cookie(cfg.Session.CookieName); err == nil && cookie != "" {
			if id, err := tokens.Validate(cookie); err == nil {
				sessionID = id
			}
		}

		if sessionID == "" {
			sessionID = uuid.New().String()
			if token, err := tokens.Generate(sessionID); err == nil {
				c.SetCookie(
					cfg.Session.CookieName,
					token,
					int(cfg.Session.CookieMaxAge.Seconds()),
					"/",
					"",
					cfg.IsProduction(),
					true,
				)
			}
		}

		c.Set(sessionIDKey, sessionID)
		c.Next()
	}
}

// GetSessionIDFromContext extracts the shopper session id set by ShopperSession
func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	sessionID, exists := c.Get(sessionIDKey)
	if !exists {
		return "", false
	}
	id, ok := sessionID.(string)
	return id, ok && id != ""
}
