// File: internal/shared/core.go
package shared

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// User is the transport-neutral view of a marketplace user.
type User struct {
	ID           uuid.UUID  `json:"id"`
	AuthProvider string     `json:"auth_provider"`
	ProviderID   string     `json:"-"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	AvatarURL    *string    `json:"avatar_url,omitempty"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// OAuthUserProfile holds the profile data returned by the identity provider.
type OAuthUserProfile struct {
	Provider      string
	ProviderID    string
	Email         string
	Name          string
	PictureURL    string
	EmailVerified bool
}

// Claims represents the JWT claims structure. The Role claim is a snapshot
// taken at issuance; the authorization layer re-derives the effective role
// from the user store on every request and treats this one as advisory.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// UserDataForToken abstracts the user data needed for token generation.
type UserDataForToken interface {
	GetID() uuid.UUID
	GetEmail() string
	GetRole() string
}

// TokenService defines the interface for credential issuance and verification.
type TokenService interface {
	GenerateToken(userData UserDataForToken) (string, time.Time, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// UserService defines the user operations the auth layer depends on.
type UserService interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindOrCreateOAuthUser(ctx context.Context, profile OAuthUserProfile) (usr *User, wasCreated bool, err error)
}
