// File: internal/product/handler.go
package product

import (
	"errors"

	"marketplace_backend/internal/common"
	"marketplace_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for product handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new product handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for catalog operations. The listing route
// takes the optional middleware so anonymous browsing works; everything else
// requires an authenticated caller.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW, optionalAuthMW gin.HandlerFunc) {
	router.GET("/products", optionalAuthMW, h.listAll)
	router.GET("/products/my", authMW, h.listMine)

	productGroup := router.Group("/product", authMW)
	{
		productGroup.POST("/add", h.add)
		productGroup.PUT("/update/:id", h.update)
		productGroup.DELETE("/delete/:id", h.delete)
	}
}

func (h *Handler) add(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)

	var req AddProductRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("Product creation: invalid form data",
			zap.Error(err), zap.String("userID", identity.UserID.String()))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid form data: "+err.Error()))
		return
	}

	// The product image is optional at creation time.
	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	created, err := h.service.Add(c.Request.Context(), identity, req, image)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondCreated(c, "Product added successfully.", gin.H{"product": ToProductResponse(created)})
}

func (h *Handler) listAll(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)

	products, role, err := h.service.ListAll(c.Request.Context(), identity)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "Products retrieved successfully.", gin.H{
		"products": ToProductResponses(products),
		"userRole": role,
	})
}

func (h *Handler) listMine(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)

	products, err := h.service.ListMine(c.Request.Context(), identity)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "Products retrieved successfully.", gin.H{"products": ToProductResponses(products)})
}

func (h *Handler) update(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid product ID format."))
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid form data: "+err.Error()))
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	updated, err := h.service.Update(c.Request.Context(), identity, productID, req, image)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "Product updated successfully.", gin.H{"product": ToProductResponse(updated)})
}

func (h *Handler) delete(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid product ID format."))
		return
	}

	if err := h.service.Delete(c.Request.Context(), identity, productID); err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "Product deleted successfully.", nil)
}
