// File: internal/seller/handler.go
package seller

import (
	"errors"

	"marketplace_backend/internal/common"
	"marketplace_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for seller handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new seller handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for seller operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	sellerGroup := router.Group("/seller", authMW)
	{
		sellerGroup.POST("/register", h.register)
		sellerGroup.GET("/me", h.getMyShop)
	}
}

func (h *Handler) register(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)

	var req RegisterSellerRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("Seller registration: invalid form data",
			zap.Error(err), zap.String("userID", identity.UserID.String()))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid form data: "+err.Error()))
		return
	}

	// The shop photo is optional; registration proceeds without it.
	photo, err := c.FormFile("shopPhoto")
	if err != nil {
		photo = nil
	}

	newSeller, err := h.service.Register(c.Request.Context(), identity, req, photo)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondCreated(c, "Seller registered successfully.", gin.H{"seller": ToSellerResponse(newSeller)})
}

func (h *Handler) getMyShop(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)

	shop, err := h.service.GetMyShop(c.Request.Context(), identity)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "Seller retrieved successfully.", gin.H{"seller": ToSellerResponse(shop)})
}
