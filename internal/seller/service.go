// File: internal/seller/service.go
package seller

import (
	"context"
	"errors"
	"mime/multipart"

	"marketplace_backend/internal/common"
	"marketplace_backend/internal/guard"
	"marketplace_backend/internal/upload"
	"marketplace_backend/internal/user"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service defines the interface for seller-related business logic.
type Service interface {
	Register(ctx context.Context, identity guard.Identity, req RegisterSellerRequest, photo *multipart.FileHeader) (*Seller, error)
	GetMyShop(ctx context.Context, identity guard.Identity) (*Seller, error)
}

// ServiceImplementation implements the seller Service interface.
type ServiceImplementation struct {
	repo     Repository
	userRepo user.Repository
	guard    *guard.Guard
	uploads  upload.Service
	logger   *zap.Logger
}

// NewService creates a new seller service.
func NewService(
	repo Repository,
	userRepo user.Repository,
	g *guard.Guard,
	uploads upload.Service,
	logger *zap.Logger,
) Service {
	return &ServiceImplementation{
		repo:     repo,
		userRepo: userRepo,
		guard:    g,
		uploads:  uploads,
		logger:   logger,
	}
}

// Register creates the caller's shop and promotes them to the seller role.
// The photo upload runs strictly before the insert so a relay failure never
// leaves a partially-created record; the unique index on user_id decides any
// registration race.
func (s *ServiceImplementation) Register(ctx context.Context, identity guard.Identity, req RegisterSellerRequest, photo *multipart.FileHeader) (*Seller, error) {
	if err := s.guard.CheckSellerRegistration(ctx, identity); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized.WithDetails("Credential subject no longer exists.")
		}
		return nil, err
	}

	var photoURL *string
	if photo != nil {
		url, err := s.uploads.UploadImage(ctx, photo, "shops")
		if err != nil {
			s.logger.Warn("Shop photo upload failed, registration aborted",
				zap.Error(err), zap.String("userID", identity.UserID.String()))
			return nil, err
		}
		photoURL = &url
	}

	newSeller := &Seller{
		UserID:       owner.ID,
		Name:         owner.Name,
		Email:        owner.Email,
		ShopName:     req.ShopName,
		ShopSlug:     slug.Make(req.ShopName),
		ShopType:     req.ShopType,
		ShopPhotoURL: photoURL,
		ShopLocation: req.ShopLocation,
	}

	if err := s.repo.Create(ctx, newSeller); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRole(ctx, owner.ID, common.RoleSeller); err != nil {
		s.logger.Error("Seller created but role promotion failed",
			zap.Error(err),
			zap.String("userID", owner.ID.String()),
			zap.String("sellerID", newSeller.ID.String()))
		return nil, err
	}

	s.logger.Info("Seller registered",
		zap.String("userID", owner.ID.String()),
		zap.String("sellerID", newSeller.ID.String()),
		zap.String("shopSlug", newSeller.ShopSlug))
	return newSeller, nil
}

// GetMyShop returns the authenticated seller's own shop.
func (s *ServiceImplementation) GetMyShop(ctx context.Context, identity guard.Identity) (*Seller, error) {
	if err := s.guard.RequireSeller(identity); err != nil {
		return nil, err
	}
	return s.repo.FindByUserID(ctx, identity.UserID)
}
