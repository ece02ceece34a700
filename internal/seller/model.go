// File: internal/seller/model.go
package seller

import (
	"time"

	"marketplace_backend/internal/common"

	"github.com/google/uuid"
)

// Seller represents a shop record. Exactly one may exist per user (unique
// index on user_id) and the owning-user reference is immutable after
// creation. Name and email are denormalized from the User at creation time.
type Seller struct {
	common.BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);not null"`
	ShopName     string    `gorm:"type:varchar(255);not null"`
	ShopSlug     string    `gorm:"type:varchar(255);not null;index"`
	ShopType     string    `gorm:"type:varchar(100);not null"`
	ShopPhotoURL *string   `gorm:"type:text"`
	ShopLocation string    `gorm:"type:varchar(255);not null"`
}

// TableName specifies the table name for the Seller model.
func (Seller) TableName() string {
	return "sellers"
}

// RegisterSellerRequest defines the multipart form fields for registration.
// The shop photo arrives as a separate file part.
type RegisterSellerRequest struct {
	ShopName     string `form:"shopName" binding:"required,min=2,max=255"`
	ShopType     string `form:"shopType" binding:"required,min=2,max=100"`
	ShopLocation string `form:"shopLocation" binding:"required,min=2,max=255"`
}

// SellerResponse defines the structure for seller data sent in API responses.
type SellerResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ShopName     string    `json:"shop_name"`
	ShopSlug     string    `json:"shop_slug"`
	ShopType     string    `json:"shop_type"`
	ShopPhotoURL *string   `json:"shop_photo_url,omitempty"`
	ShopLocation string    `json:"shop_location"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToSellerResponse converts a Seller model to a SellerResponse DTO.
func ToSellerResponse(s *Seller) SellerResponse {
	return SellerResponse{
		ID:           s.ID,
		UserID:       s.UserID,
		Name:         s.Name,
		Email:        s.Email,
		ShopName:     s.ShopName,
		ShopSlug:     s.ShopSlug,
		ShopType:     s.ShopType,
		ShopPhotoURL: s.ShopPhotoURL,
		ShopLocation: s.ShopLocation,
		CreatedAt:    s.CreatedAt,
	}
}
