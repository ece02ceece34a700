// File: internal/user/model.go
package user

import (
	"time"

	"marketplace_backend/internal/common"
	"marketplace_backend/internal/shared"

	"github.com/google/uuid"
)

// User represents the user model in the database. Users are created on first
// successful external login and never deleted; the only mutation after
// creation is the role promotion during seller registration (plus profile
// refreshes on repeat logins).
type User struct {
	common.BaseModel
	AuthProvider string  `gorm:"type:varchar(50);not null;default:'google';index:idx_auth_provider_provider_id,unique"`
	ProviderID   string  `gorm:"type:varchar(255);not null;index:idx_auth_provider_provider_id,unique"`
	Name         string  `gorm:"type:varchar(255);not null"`
	Email        string  `gorm:"type:varchar(255);not null"`
	AvatarURL    *string `gorm:"type:text"`
	Role         string  `gorm:"type:varchar(50);not null;default:'customer'"`
	LastLoginAt  *time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

func (u *User) GetID() uuid.UUID {
	return u.ID
}

func (u *User) GetEmail() string {
	return u.Email
}

func (u *User) GetRole() string {
	return u.Role
}

// UserResponse defines the structure for user data sent in API responses.
type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	AuthProvider string     `json:"auth_provider"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	AvatarURL    *string    `json:"avatar_url,omitempty"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// ToUserResponse converts a shared.User to a UserResponse DTO.
func ToUserResponse(usr *shared.User) UserResponse {
	return UserResponse{
		ID:           usr.ID,
		AuthProvider: usr.AuthProvider,
		Name:         usr.Name,
		Email:        usr.Email,
		AvatarURL:    usr.AvatarURL,
		Role:         usr.Role,
		CreatedAt:    usr.CreatedAt,
		LastLoginAt:  usr.LastLoginAt,
	}
}
