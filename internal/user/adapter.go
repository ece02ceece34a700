// File: internal/user/adapter.go
package user

import (
	"context"

	"marketplace_backend/internal/guard"
	"marketplace_backend/internal/shared"

	"github.com/google/uuid"
)

// DBToShared converts a GORM user.User model to a shared.User DTO.
func DBToShared(dbUser *User) *shared.User {
	if dbUser == nil {
		return nil
	}
	return &shared.User{
		ID:           dbUser.ID,
		AuthProvider: dbUser.AuthProvider,
		ProviderID:   dbUser.ProviderID,
		Name:         dbUser.Name,
		Email:        dbUser.Email,
		AvatarURL:    dbUser.AvatarURL,
		Role:         dbUser.Role,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
		LastLoginAt:  dbUser.LastLoginAt,
	}
}

// directoryAdapter exposes the repository to the access guard.
type directoryAdapter struct {
	repo Repository
}

// NewDirectoryAdapter creates the guard-facing view of the identity store.
func NewDirectoryAdapter(repo Repository) guard.UserDirectory {
	return &directoryAdapter{repo: repo}
}

func (a *directoryAdapter) ResolveUser(ctx context.Context, id uuid.UUID) (*shared.User, error) {
	dbUser, err := a.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return DBToShared(dbUser), nil
}
