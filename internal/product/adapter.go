// File: internal/product/adapter.go
package product

import (
	"context"

	"marketplace_backend/internal/guard"

	"github.com/google/uuid"
)

// catalogAdapter exposes the product repository to the access guard as a
// Catalog without letting the guard package import this one.
type catalogAdapter struct {
	repo Repository
}

// NewCatalogAdapter wraps a product repository for the guard.
func NewCatalogAdapter(repo Repository) guard.Catalog {
	return &catalogAdapter{repo: repo}
}

func (a *catalogAdapter) ResolveProduct(ctx context.Context, id uuid.UUID) (*guard.ProductRecord, error) {
	p, err := a.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &guard.ProductRecord{ID: p.ID, SellerID: p.SellerID}, nil
}
