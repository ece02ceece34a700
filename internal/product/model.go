// File: internal/product/model.go
package product

import (
	"time"

	"marketplace_backend/internal/common"

	"github.com/google/uuid"
)

// Product represents a catalog record. The schema is a flat superset covering
// heterogeneous categories: Storage and RAM are null for anything that is not
// a mobile device. Ownership (SellerID) is fixed at creation and never
// transferred; shop name and type are denormalized from the Seller at
// creation time.
type Product struct {
	common.BaseModel
	SellerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ShopName    string    `gorm:"type:varchar(255);not null"`
	ShopType    string    `gorm:"type:varchar(100);not null"`
	Brand       string    `gorm:"type:varchar(255);not null"`
	Model       string    `gorm:"type:varchar(255);not null"`
	ProductType string    `gorm:"type:varchar(100);not null"`
	Color       string    `gorm:"type:varchar(100)"`
	Storage     *string   `gorm:"type:varchar(100)"`
	RAM         *string   `gorm:"type:varchar(100)"`
	Price       float64   `gorm:"not null"`
	ImageURL    *string   `gorm:"type:text"`
}

// TableName specifies the table name for the Product model.
func (Product) TableName() string {
	return "products"
}

// AddProductRequest defines the multipart form fields for product creation.
type AddProductRequest struct {
	Brand       string  `form:"brand" binding:"required,max=255"`
	Model       string  `form:"model" binding:"required,max=255"`
	ProductType string  `form:"productType" binding:"required,max=100"`
	Color       string  `form:"color" binding:"omitempty,max=100"`
	Storage     *string `form:"storage" binding:"omitempty,max=100"`
	RAM         *string `form:"ram" binding:"omitempty,max=100"`
	Price       float64 `form:"price" binding:"required,gte=0"`
}

// UpdateProductRequest defines the partial-update form. Every field is a
// pointer: nil means "field not supplied, keep the prior value".
type UpdateProductRequest struct {
	Brand       *string  `form:"brand" binding:"omitempty,max=255"`
	Model       *string  `form:"model" binding:"omitempty,max=255"`
	ProductType *string  `form:"productType" binding:"omitempty,max=100"`
	Color       *string  `form:"color" binding:"omitempty,max=100"`
	Storage     *string  `form:"storage" binding:"omitempty,max=100"`
	RAM         *string  `form:"ram" binding:"omitempty,max=100"`
	Price       *float64 `form:"price" binding:"omitempty,gte=0"`
}

// ProductResponse defines the structure for product data sent in API responses.
type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	SellerID    uuid.UUID `json:"seller_id"`
	ShopName    string    `json:"shop_name"`
	ShopType    string    `json:"shop_type"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	ProductType string    `json:"product_type"`
	Color       string    `json:"color,omitempty"`
	Storage     *string   `json:"storage"`
	RAM         *string   `json:"ram"`
	Price       float64   `json:"price"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToProductResponse converts a Product model to a ProductResponse DTO.
func ToProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SellerID:    p.SellerID,
		ShopName:    p.ShopName,
		ShopType:    p.ShopType,
		Brand:       p.Brand,
		Model:       p.Model,
		ProductType: p.ProductType,
		Color:       p.Color,
		Storage:     p.Storage,
		RAM:         p.RAM,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
}

// ToProductResponses converts a slice of products.
func ToProductResponses(products []Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
