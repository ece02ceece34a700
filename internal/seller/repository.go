// File: internal/seller/repository.go
package seller

import (
	"context"
	"errors"
	"strings"

	"marketplace_backend/internal/common"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Repository defines the interface for seller data operations. Pure
// persistence; authorization lives in the access guard.
type Repository interface {
	Create(ctx context.Context, seller *Seller) error
	FindByID(ctx context.Context, id uuid.UUID) (*Seller, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Seller, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM seller repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}

// Create inserts a new seller record. The unique index on user_id is the
// atomic create-if-absent gate: a losing concurrent registration surfaces
// here as a conflict, without a separate existence check.
func (r *gormRepository) Create(ctx context.Context, seller *Seller) error {
	err := r.db.WithContext(ctx).Create(seller).Error
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrAlreadySeller
		}
		return err
	}
	return nil
}

// FindByID retrieves a seller by its ID.
func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Seller, error) {
	var sellerModel Seller
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sellerModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Seller not found with this ID.")
		}
		return nil, err
	}
	return &sellerModel, nil
}

// FindByUserID retrieves the seller record owned by a user.
func (r *gormRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*Seller, error) {
	var sellerModel Seller
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&sellerModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("No shop is registered for this user.")
		}
		return nil, err
	}
	return &sellerModel, nil
}
