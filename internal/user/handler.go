// File: internal/user/handler.go
package user

import (
	"marketplace_backend/internal/common"
	"marketplace_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for user handlers.
type Handler struct {
	service *ServiceImplementation
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service *ServiceImplementation, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for user operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.GET("/profile", authMW, h.getProfile)
}

func (h *Handler) getProfile(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)

	usr, err := h.service.GetUserByID(c.Request.Context(), identity.UserID)
	if err != nil {
		// The auth middleware already resolved this user; a miss here means it
		// vanished mid-request, which reads as an auth failure to the client.
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User no longer exists."))
		return
	}

	common.RespondOK(c, "Profile retrieved successfully.", gin.H{"user": ToUserResponse(usr)})
}
