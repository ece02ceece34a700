// File: internal/guard/guard.go
package guard

import (
	"context"
	"errors"

	"marketplace_backend/internal/common"
	"marketplace_backend/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Identity is the result of credential resolution. Role is always the role
// currently stored for the user, not the snapshot embedded in the credential.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	Role      string
	Anonymous bool
}

// AnonymousIdentity is what unauthenticated callers act as on public reads.
func AnonymousIdentity() Identity {
	return Identity{Role: common.RoleCustomer, Anonymous: true}
}

// SellerRecord is the ownership view of a seller the guard decides against.
type SellerRecord struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

// ProductRecord is the ownership view of a product the guard decides against.
type ProductRecord struct {
	ID       uuid.UUID
	SellerID uuid.UUID
}

// UserDirectory resolves a credential subject to a live user.
type UserDirectory interface {
	ResolveUser(ctx context.Context, id uuid.UUID) (*shared.User, error)
}

// SellerDirectory resolves shop ownership by user id.
// It returns common.ErrNotFound when the user owns no shop.
type SellerDirectory interface {
	ResolveOwner(ctx context.Context, userID uuid.UUID) (*SellerRecord, error)
}

// Catalog resolves a product's ownership record by product id.
type Catalog interface {
	ResolveProduct(ctx context.Context, id uuid.UUID) (*ProductRecord, error)
}

// Guard decides allow/deny for every operation class. Ownership is always
// re-derived from the stored Seller record, never from a claim carried in the
// request, so a forged seller id cannot bypass the check.
type Guard struct {
	tokens  shared.TokenService
	users   UserDirectory
	sellers SellerDirectory
	catalog Catalog
	logger  *zap.Logger
}

// New creates a new access guard.
func New(
	tokens shared.TokenService,
	users UserDirectory,
	sellers SellerDirectory,
	catalog Catalog,
	logger *zap.Logger,
) *Guard {
	return &Guard{
		tokens:  tokens,
		users:   users,
		sellers: sellers,
		catalog: catalog,
		logger:  logger.Named("Guard"),
	}
}

// Authenticate resolves a raw credential to an identity. Missing, invalid or
// expired credentials and subjects that no longer resolve to a user all fail
// with an unauthorized error.
func (g *Guard) Authenticate(ctx context.Context, credential string) (Identity, error) {
	if credential == "" {
		return Identity{}, common.ErrUnauthorized.WithDetails("Credential cookie is required.")
	}

	claims, err := g.tokens.ValidateToken(credential)
	if err != nil {
		g.logger.Debug("Credential verification failed", zap.Error(err))
		return Identity{}, common.ErrUnauthorized.WithDetails("Invalid or expired credential.")
	}

	usr, err := g.users.ResolveUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// User deleted after the token was issued.
			return Identity{}, common.ErrUnauthorized.WithDetails("Credential subject no longer exists.")
		}
		return Identity{}, err
	}

	return Identity{UserID: usr.ID, Email: usr.Email, Role: usr.Role}, nil
}

// AuthenticateOptional resolves a credential for the public read path. Any
// failure degrades to an anonymous customer identity instead of failing the
// request.
func (g *Guard) AuthenticateOptional(ctx context.Context, credential string) Identity {
	if credential == "" {
		return AnonymousIdentity()
	}
	identity, err := g.Authenticate(ctx, credential)
	if err != nil {
		g.logger.Debug("Optional credential degraded to anonymous", zap.Error(err))
		return AnonymousIdentity()
	}
	return identity
}

// RequireSeller gates seller-scoped operations on the stored role.
func (g *Guard) RequireSeller(identity Identity) error {
	if identity.Anonymous {
		return common.ErrUnauthorized.WithDetails("Credential cookie is required.")
	}
	if identity.Role != common.RoleSeller {
		return common.ErrForbidden.WithDetails("Seller role is required for this operation.")
	}
	return nil
}

// AuthorizeProductMutation authorizes update and delete of a product. The
// product lookup runs before the ownership comparison so an unknown id is
// reported as not-found rather than forbidden. The caller's Seller record is
// returned for the subsequent write.
func (g *Guard) AuthorizeProductMutation(ctx context.Context, identity Identity, productID uuid.UUID) (*SellerRecord, error) {
	if err := g.RequireSeller(identity); err != nil {
		return nil, err
	}

	prod, err := g.catalog.ResolveProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound.WithDetails("Product not found.")
		}
		return nil, err
	}

	// The two-step id chain: a product stores the seller's id, not the
	// user's, so the authenticated user is joined through the seller
	// directory into the resource-owner identity space.
	sel, err := g.sellers.ResolveOwner(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound.WithDetails("Seller profile not found.")
		}
		return nil, err
	}

	if prod.SellerID != sel.ID {
		g.logger.Warn("Ownership mismatch on product mutation",
			zap.String("productID", productID.String()),
			zap.String("userID", identity.UserID.String()))
		return nil, common.ErrForbidden.WithDetails("You do not own this product.")
	}
	return sel, nil
}

// RequireOwnedSeller resolves the caller's Seller record for seller-scoped
// reads and product creation.
func (g *Guard) RequireOwnedSeller(ctx context.Context, identity Identity) (*SellerRecord, error) {
	if err := g.RequireSeller(identity); err != nil {
		return nil, err
	}
	sel, err := g.sellers.ResolveOwner(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound.WithDetails("Seller profile not found.")
		}
		return nil, err
	}
	return sel, nil
}

// CheckSellerRegistration applies the shop uniqueness gate. The authoritative
// enforcement is the unique index on the seller's user id; this pre-check only
// shapes the error for the common case.
func (g *Guard) CheckSellerRegistration(ctx context.Context, identity Identity) error {
	if identity.Anonymous {
		return common.ErrUnauthorized.WithDetails("Credential cookie is required.")
	}
	_, err := g.sellers.ResolveOwner(ctx, identity.UserID)
	if err == nil {
		return common.ErrAlreadySeller
	}
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	return err
}
