// File: internal/seller/adapter.go
package seller

import (
	"context"

	"marketplace_backend/internal/guard"

	"github.com/google/uuid"
)

// directoryAdapter exposes the repository to the access guard.
type directoryAdapter struct {
	repo Repository
}

// NewDirectoryAdapter creates the guard-facing view of the seller directory.
func NewDirectoryAdapter(repo Repository) guard.SellerDirectory {
	return &directoryAdapter{repo: repo}
}

func (a *directoryAdapter) ResolveOwner(ctx context.Context, userID uuid.UUID) (*guard.SellerRecord, error) {
	s, err := a.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &guard.SellerRecord{ID: s.ID, UserID: s.UserID}, nil
}
