// File: internal/auth/auth_helper.go
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"

	"marketplace_backend/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// setOAuthCookie sets a short-lived cookie for the CSRF state.
func setOAuthCookie(c *gin.Context, cfg *config.Config, name, value string) {
	maxAge := cfg.OAuthCookieMaxAgeMinutes * 60
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   cfg.OAuthCookieDomain,
		MaxAge:   maxAge,
		Secure:   cfg.OAuthCookieSecure,
		HttpOnly: cfg.OAuthCookieHTTPOnly,
		SameSite: ParseSameSite(cfg.OAuthCookieSameSite),
	})
}

// getOAuthCookie retrieves and deletes an OAuth cookie.
func getOAuthCookie(c *gin.Context, cfg *config.Config, name string) (string, error) {
	cookie, err := c.Request.Cookie(name)
	if err != nil {
		return "", fmt.Errorf("%s cookie not found: %w", name, err)
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   cfg.OAuthCookieDomain,
		MaxAge:   -1,
		Secure:   cfg.OAuthCookieSecure,
		HttpOnly: cfg.OAuthCookieHTTPOnly,
		SameSite: ParseSameSite(cfg.OAuthCookieSameSite),
	})
	return cookie.Value, nil
}

// ParseSameSite maps the configured SameSite name to the http constant.
func ParseSameSite(s string) http.SameSite {
	switch s {
	case "Lax":
		return http.SameSiteLaxMode
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// newStateToken produces the unguessable value that ties the provider
// redirect back to this browser session.
func newStateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func generateAndSetOAuthState(c *gin.Context, cfg *config.Config) (string, error) {
	state, err := newStateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	setOAuthCookie(c, cfg, cfg.OAuthStateCookieName, state)
	return state, nil
}

func getGoogleOAuthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURI,
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     google.Endpoint,
	}
}

// SetTokenCookie delivers the credential to the browser. Contract: http-only,
// SameSite from config (Lax by default), Max-Age equal to the token lifetime.
func SetTokenCookie(c *gin.Context, cfg *config.Config, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.TokenCookieName,
		Value:    token,
		Path:     "/",
		Domain:   cfg.TokenCookieDomain,
		MaxAge:   int(cfg.TokenLifetime.Seconds()),
		Secure:   cfg.TokenCookieSecure,
		HttpOnly: true,
		SameSite: ParseSameSite(cfg.TokenCookieSameSite),
	})
}

// ClearTokenCookie removes the credential cookie.
func ClearTokenCookie(c *gin.Context, cfg *config.Config) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.TokenCookieName,
		Value:    "",
		Path:     "/",
		Domain:   cfg.TokenCookieDomain,
		MaxAge:   -1,
		Secure:   cfg.TokenCookieSecure,
		HttpOnly: true,
		SameSite: ParseSameSite(cfg.TokenCookieSameSite),
	})
}
