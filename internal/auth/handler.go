// File: internal/auth/handler.go
package auth

import (
	"net/http"

	"marketplace_backend/internal/common"
	"marketplace_backend/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	oauthService OAuthService
	cfg          *config.Config
	logger       *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(oauthService OAuthService, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		oauthService: oauthService,
		cfg:          cfg,
		logger:       logger,
	}
}

// RegisterRoutes sets up the routes for authentication operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.GET("/google/start", h.googleStart)
		authGroup.GET("/google/callback", h.googleCallback)
	}
	router.POST("/logout", h.logout)
}

func (h *Handler) googleStart(c *gin.Context) {
	authURL, err := h.oauthService.GetGoogleLoginURL(c)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

func (h *Handler) googleCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Missing code or state parameter."))
		return
	}

	usr, credential, err := h.oauthService.HandleGoogleCallback(c, code, state)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	SetTokenCookie(c, h.cfg, credential)
	h.logger.Info("Credential cookie issued", zap.String("userID", usr.ID.String()))
	c.Redirect(http.StatusTemporaryRedirect, h.cfg.FrontendURL)
}

func (h *Handler) logout(c *gin.Context) {
	ClearTokenCookie(c, h.cfg)
	common.RespondOK(c, "Logged out successfully.", nil)
}
