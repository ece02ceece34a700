// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace_backend/internal/common"
	"marketplace_backend/internal/config"
	"marketplace_backend/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ServiceImplementation implements the shared.UserService interface.
type ServiceImplementation struct {
	repo   Repository
	cfg    *config.Config
	logger *zap.Logger
}

var _ shared.UserService = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(repo Repository, cfg *config.Config, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *ServiceImplementation) GetUserByID(ctx context.Context, id uuid.UUID) (*shared.User, error) {
	dbUser, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return DBToShared(dbUser), nil
}

// FindOrCreateOAuthUser resolves an external profile to a local user record.
// Repeat logins with the same provider id return the existing record with
// refreshed profile fields; the role is never touched here.
func (s *ServiceImplementation) FindOrCreateOAuthUser(ctx context.Context, profile shared.OAuthUserProfile) (*shared.User, bool, error) {
	now := time.Now()

	dbUser, err := s.repo.FindByProvider(ctx, profile.Provider, profile.ProviderID)
	if err == nil {
		// Column-limited refresh: the role is owned by the promotion flow and
		// must stay out of this write.
		updates := map[string]interface{}{
			"name":          profile.Name,
			"email":         profile.Email,
			"last_login_at": &now,
		}
		if profile.PictureURL != "" {
			updates["avatar_url"] = profile.PictureURL
		}
		if err := s.repo.UpdateProfile(ctx, dbUser.ID, updates); err != nil {
			s.logger.Error("Failed to refresh user profile on login",
				zap.Error(err), zap.String("userID", dbUser.ID.String()))
			return nil, false, fmt.Errorf("failed to refresh user profile: %w", err)
		}
		dbUser.Name = profile.Name
		dbUser.Email = profile.Email
		if profile.PictureURL != "" {
			dbUser.AvatarURL = &profile.PictureURL
		}
		dbUser.LastLoginAt = &now
		return DBToShared(dbUser), false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up user by provider id: %w", err)
	}

	newUser := &User{
		AuthProvider: profile.Provider,
		ProviderID:   profile.ProviderID,
		Name:         profile.Name,
		Email:        profile.Email,
		Role:         common.RoleCustomer,
		LastLoginAt:  &now,
	}
	if profile.PictureURL != "" {
		newUser.AvatarURL = &profile.PictureURL
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		// A concurrent first login may have won the insert race; the unique
		// index makes the create-if-absent atomic, so re-read and return the
		// winner's record.
		if errors.Is(err, common.ErrConflict) {
			existing, findErr := s.repo.FindByProvider(ctx, profile.Provider, profile.ProviderID)
			if findErr == nil {
				return DBToShared(existing), false, nil
			}
		}
		s.logger.Error("Failed to create user from OAuth profile", zap.Error(err))
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User provisioned from external identity",
		zap.String("userID", newUser.ID.String()),
		zap.String("provider", profile.Provider))
	return DBToShared(newUser), true, nil
}
