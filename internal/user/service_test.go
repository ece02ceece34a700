package user

import (
	"context"
	"testing"

	"marketplace_backend/internal/common"
	"marketplace_backend/internal/config"
	"marketplace_backend/internal/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockRepository is a func-field mock of the Repository interface.
type mockRepository struct {
	createFunc         func(ctx context.Context, user *User) error
	findByIDFunc       func(ctx context.Context, id uuid.UUID) (*User, error)
	findByProviderFunc func(ctx context.Context, provider, providerID string) (*User, error)
	updateProfileFunc  func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	updateRoleFunc     func(ctx context.Context, id uuid.UUID, role string) error
}

func (m *mockRepository) Create(ctx context.Context, user *User) error {
	return m.createFunc(ctx, user)
}

func (m *mockRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockRepository) FindByProvider(ctx context.Context, provider, providerID string) (*User, error) {
	return m.findByProviderFunc(ctx, provider, providerID)
}

func (m *mockRepository) UpdateProfile(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return m.updateProfileFunc(ctx, id, updates)
}

func (m *mockRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	return m.updateRoleFunc(ctx, id, role)
}

func testProfile() shared.OAuthUserProfile {
	return shared.OAuthUserProfile{
		Provider:      "google",
		ProviderID:    "google-sub-123",
		Email:         "new@example.com",
		Name:          "New User",
		PictureURL:    "https://example.com/pic.jpg",
		EmailVerified: true,
	}
}

func TestFindOrCreateOAuthUser_CreatesOnFirstLogin(t *testing.T) {
	var created *User
	repo := &mockRepository{
		findByProviderFunc: func(context.Context, string, string) (*User, error) {
			return nil, common.ErrNotFound
		},
		createFunc: func(_ context.Context, u *User) error {
			u.ID = uuid.New()
			created = u
			return nil
		},
	}
	svc := NewService(repo, &config.Config{}, zap.NewNop())

	usr, wasCreated, err := svc.FindOrCreateOAuthUser(context.Background(), testProfile())
	require.NoError(t, err)
	assert.True(t, wasCreated)
	require.NotNil(t, created)
	assert.Equal(t, common.RoleCustomer, created.Role)
	assert.Equal(t, "google", created.AuthProvider)
	assert.Equal(t, "google-sub-123", created.ProviderID)
	assert.NotNil(t, created.LastLoginAt)
	assert.Equal(t, created.ID, usr.ID)
}

func TestFindOrCreateOAuthUser_RefreshesExistingUser(t *testing.T) {
	existingID := uuid.New()
	var updates map[string]interface{}
	repo := &mockRepository{
		findByProviderFunc: func(context.Context, string, string) (*User, error) {
			return &User{
				BaseModel:    common.BaseModel{ID: existingID},
				AuthProvider: "google",
				ProviderID:   "google-sub-123",
				Name:         "Old Name",
				Email:        "old@example.com",
				Role:         common.RoleSeller,
			}, nil
		},
		updateProfileFunc: func(_ context.Context, id uuid.UUID, u map[string]interface{}) error {
			require.Equal(t, existingID, id)
			updates = u
			return nil
		},
	}
	svc := NewService(repo, &config.Config{}, zap.NewNop())

	usr, wasCreated, err := svc.FindOrCreateOAuthUser(context.Background(), testProfile())
	require.NoError(t, err)
	assert.False(t, wasCreated)
	require.NotNil(t, updates)
	assert.Equal(t, "New User", updates["name"])
	assert.Equal(t, "new@example.com", updates["email"])
	assert.Contains(t, updates, "last_login_at")
	// The refresh is column-limited: the role column belongs to the promotion
	// flow and must never ride along, or a concurrent promotion could be
	// overwritten with the stale value read above.
	assert.NotContains(t, updates, "role")
	assert.Equal(t, common.RoleSeller, usr.Role)
	assert.Equal(t, existingID, usr.ID)
}

// Two concurrent first logins race on the insert; the loser must return the
// winner's record instead of an error.
func TestFindOrCreateOAuthUser_InsertRaceReturnsWinner(t *testing.T) {
	winnerID := uuid.New()
	lookups := 0
	repo := &mockRepository{
		findByProviderFunc: func(context.Context, string, string) (*User, error) {
			lookups++
			if lookups == 1 {
				return nil, common.ErrNotFound
			}
			return &User{
				BaseModel:    common.BaseModel{ID: winnerID},
				AuthProvider: "google",
				ProviderID:   "google-sub-123",
				Email:        "new@example.com",
				Role:         common.RoleCustomer,
			}, nil
		},
		createFunc: func(context.Context, *User) error {
			return common.ErrConflict
		},
	}
	svc := NewService(repo, &config.Config{}, zap.NewNop())

	usr, wasCreated, err := svc.FindOrCreateOAuthUser(context.Background(), testProfile())
	require.NoError(t, err)
	assert.False(t, wasCreated)
	assert.Equal(t, winnerID, usr.ID)
}
