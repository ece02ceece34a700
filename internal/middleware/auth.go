// File: internal/middleware/auth.go
package middleware

import (
	"marketplace_backend/internal/common"
	"marketplace_backend/internal/config"
	"marketplace_backend/internal/guard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// IdentityContextKey is the context key for the resolved identity
	IdentityContextKey = "identity"
)

// credentialFromCookie reads the raw credential from the token cookie.
// Missing cookie yields an empty string; the guard decides what that means.
func credentialFromCookie(c *gin.Context, cfg *config.Config) string {
	cookie, err := c.Request.Cookie(cfg.TokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// AuthMiddleware resolves the credential cookie through the access guard and
// aborts unauthenticated requests.
func AuthMiddleware(g *guard.Guard, cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := g.Authenticate(c.Request.Context(), credentialFromCookie(c, cfg))
		if err != nil {
			logger.Debug("Authentication failed", zap.Error(err))
			common.RespondWithError(c, err)
			return
		}

		c.Set(IdentityContextKey, identity)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the credential if present; absent or invalid
// credentials degrade to an anonymous customer identity. Used on the public
// listing route only.
func OptionalAuthMiddleware(g *guard.Guard, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := g.AuthenticateOptional(c.Request.Context(), credentialFromCookie(c, cfg))
		c.Set(IdentityContextKey, identity)
		c.Next()
	}
}

// GetIdentityFromContext retrieves the resolved identity from the Gin context.
// Falls back to anonymous if no auth middleware ran.
func GetIdentityFromContext(c *gin.Context) guard.Identity {
	val, exists := c.Get(IdentityContextKey)
	if !exists {
		return guard.AnonymousIdentity()
	}
	identity, ok := val.(guard.Identity)
	if !ok {
		return guard.AnonymousIdentity()
	}
	return identity
}
