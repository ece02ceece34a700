// File: internal/product/service.go
package product

import (
	"context"
	"mime/multipart"

	"marketplace_backend/internal/guard"
	"marketplace_backend/internal/seller"
	"marketplace_backend/internal/upload"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the business logic for the product catalog. Every mutation
// is decided by the access guard before any write or upload happens.
type Service interface {
	Add(ctx context.Context, identity guard.Identity, req AddProductRequest, image *multipart.FileHeader) (*Product, error)
	ListAll(ctx context.Context, identity guard.Identity) ([]Product, string, error)
	ListMine(ctx context.Context, identity guard.Identity) ([]Product, error)
	Update(ctx context.Context, identity guard.Identity, productID uuid.UUID, req UpdateProductRequest, image *multipart.FileHeader) (*Product, error)
	Delete(ctx context.Context, identity guard.Identity, productID uuid.UUID) error
}

type serviceImpl struct {
	repo       Repository
	sellerRepo seller.Repository
	accessGate *guard.Guard
	uploads    upload.Service
	logger     *zap.Logger
}

// NewService creates a new product service.
func NewService(
	repo Repository,
	sellerRepo seller.Repository,
	accessGate *guard.Guard,
	uploads upload.Service,
	logger *zap.Logger,
) Service {
	return &serviceImpl{
		repo:       repo,
		sellerRepo: sellerRepo,
		accessGate: accessGate,
		uploads:    uploads,
		logger:     logger.Named("ProductService"),
	}
}

// Add creates a product under the caller's shop. The image is relayed to
// object storage before the row is written; an upload failure aborts the
// request with no partial write.
func (s *serviceImpl) Add(ctx context.Context, identity guard.Identity, req AddProductRequest, image *multipart.FileHeader) (*Product, error) {
	ownership, err := s.accessGate.RequireOwnedSeller(ctx, identity)
	if err != nil {
		return nil, err
	}

	shop, err := s.sellerRepo.FindByID(ctx, ownership.ID)
	if err != nil {
		return nil, err
	}

	var imageURL *string
	if image != nil {
		url, err := s.uploads.UploadImage(ctx, image, "products")
		if err != nil {
			return nil, err
		}
		imageURL = &url
	}

	product := &Product{
		SellerID:    shop.ID,
		ShopName:    shop.ShopName,
		ShopType:    shop.ShopType,
		Brand:       req.Brand,
		Model:       req.Model,
		ProductType: req.ProductType,
		Color:       req.Color,
		Storage:     req.Storage,
		RAM:         req.RAM,
		Price:       req.Price,
		ImageURL:    imageURL,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("productID", product.ID.String()),
		zap.String("sellerID", shop.ID.String()))
	return product, nil
}

// ListAll is the public browse path. It never fails on identity grounds; the
// caller's effective role is returned alongside the listing so clients can
// shape their UI without a second request.
func (s *serviceImpl) ListAll(ctx context.Context, identity guard.Identity) ([]Product, string, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}
	return products, identity.Role, nil
}

// ListMine returns the caller's own catalog, newest first.
func (s *serviceImpl) ListMine(ctx context.Context, identity guard.Identity) ([]Product, error) {
	ownership, err := s.accessGate.RequireOwnedSeller(ctx, identity)
	if err != nil {
		return nil, err
	}
	return s.repo.ListBySeller(ctx, ownership.ID)
}

// Update applies a partial update to an owned product. Fields absent from the
// request keep their stored values. A replacement image, when supplied, is
// uploaded before the row is touched.
func (s *serviceImpl) Update(ctx context.Context, identity guard.Identity, productID uuid.UUID, req UpdateProductRequest, image *multipart.FileHeader) (*Product, error) {
	if _, err := s.accessGate.AuthorizeProductMutation(ctx, identity, productID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Model != nil {
		updates["model"] = *req.Model
	}
	if req.ProductType != nil {
		updates["product_type"] = *req.ProductType
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.Storage != nil {
		updates["storage"] = *req.Storage
	}
	if req.RAM != nil {
		updates["ram"] = *req.RAM
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}

	if image != nil {
		url, err := s.uploads.UploadImage(ctx, image, "products")
		if err != nil {
			return nil, err
		}
		updates["image_url"] = url
	}

	if err := s.repo.Update(ctx, productID, updates); err != nil {
		return nil, err
	}

	s.logger.Info("Product updated", zap.String("productID", productID.String()))
	return s.repo.FindByID(ctx, productID)
}

// Delete removes an owned product.
func (s *serviceImpl) Delete(ctx context.Context, identity guard.Identity, productID uuid.UUID) error {
	if _, err := s.accessGate.AuthorizeProductMutation(ctx, identity, productID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return err
	}
	s.logger.Info("Product deleted",
		zap.String("productID", productID.String()),
		zap.String("userID", identity.UserID.String()))
	return nil
}
