// File: internal/product/repository.go
package product

import (
	"context"
	"errors"

	"marketplace_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for products.
type Repository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]Product, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM-backed product repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, product *Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return common.ErrInternalServer.WithDetails("Failed to create product.")
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	var product Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Product not found.")
		}
		return nil, common.ErrInternalServer.WithDetails("Failed to fetch product.")
	}
	return &product, nil
}

// ListAll returns every product, newest first.
func (r *gormRepository) ListAll(ctx context.Context) ([]Product, error) {
	var products []Product
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, common.ErrInternalServer.WithDetails("Failed to list products.")
	}
	return products, nil
}

func (r *gormRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]Product, error) {
	var products []Product
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, common.ErrInternalServer.WithDetails("Failed to list seller products.")
	}
	return products, nil
}

// Update applies a partial column update. Callers build the updates map from
// supplied fields only, so omitted fields retain their stored values.
func (r *gormRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&Product{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return common.ErrInternalServer.WithDetails("Failed to update product.")
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Product not found.")
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Product{}, "id = ?", id)
	if result.Error != nil {
		return common.ErrInternalServer.WithDetails("Failed to delete product.")
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Product not found.")
	}
	return nil
}
