package seller

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"marketplace_backend/internal/common"
	"marketplace_backend/internal/guard"
	"marketplace_backend/internal/shared"
	"marketplace_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSellerRepo struct {
	createFunc       func(ctx context.Context, seller *Seller) error
	findByIDFunc     func(ctx context.Context, id uuid.UUID) (*Seller, error)
	findByUserIDFunc func(ctx context.Context, userID uuid.UUID) (*Seller, error)
}

func (m *mockSellerRepo) Create(ctx context.Context, seller *Seller) error {
	return m.createFunc(ctx, seller)
}

func (m *mockSellerRepo) FindByID(ctx context.Context, id uuid.UUID) (*Seller, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockSellerRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*Seller, error) {
	return m.findByUserIDFunc(ctx, userID)
}

type mockUserRepo struct {
	findByIDFunc   func(ctx context.Context, id uuid.UUID) (*user.User, error)
	updateRoleFunc func(ctx context.Context, id uuid.UUID, role string) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return m.findByIDFunc(ctx, id)
}
func (m *mockUserRepo) FindByProvider(ctx context.Context, p, pid string) (*user.User, error) {
	return nil, common.ErrNotFound
}
func (m *mockUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}
func (m *mockUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	return m.updateRoleFunc(ctx, id, role)
}

type mockUploader struct {
	uploadFunc func(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error)
	calls      int
}

func (m *mockUploader) UploadImage(ctx context.Context, fh *multipart.FileHeader, folder string) (string, error) {
	m.calls++
	return m.uploadFunc(ctx, fh, folder)
}

type stubTokens struct{}

func (stubTokens) GenerateToken(shared.UserDataForToken) (string, time.Time, error) {
	return "", time.Time{}, nil
}
func (stubTokens) ValidateToken(string) (*shared.Claims, error) { return nil, common.ErrUnauthorized }

type stubUserDir struct{}

func (stubUserDir) ResolveUser(context.Context, uuid.UUID) (*shared.User, error) {
	return nil, common.ErrNotFound
}

func newTestService(repo *mockSellerRepo, userRepo *mockUserRepo, uploads *mockUploader) Service {
	g := guard.New(stubTokens{}, stubUserDir{}, NewDirectoryAdapter(repo), nil, zap.NewNop())
	return NewService(repo, userRepo, g, uploads, zap.NewNop())
}

func registrationRequest() RegisterSellerRequest {
	return RegisterSellerRequest{
		ShopName:     "Good Phones & More",
		ShopType:     "mobile",
		ShopLocation: "Addis Ababa",
	}
}

func TestRegister_PromotesUserAndSlugsShopName(t *testing.T) {
	userID := uuid.New()
	var createdSeller *Seller
	var promotedTo string

	repo := &mockSellerRepo{
		findByUserIDFunc: func(context.Context, uuid.UUID) (*Seller, error) {
			return nil, common.ErrNotFound
		},
		createFunc: func(_ context.Context, s *Seller) error {
			s.ID = uuid.New()
			createdSeller = s
			return nil
		},
	}
	userRepo := &mockUserRepo{
		findByIDFunc: func(_ context.Context, id uuid.UUID) (*user.User, error) {
			return &user.User{
				BaseModel: common.BaseModel{ID: id},
				Name:      "Abebe",
				Email:     "abebe@example.com",
				Role:      common.RoleCustomer,
			}, nil
		},
		updateRoleFunc: func(_ context.Context, id uuid.UUID, role string) error {
			require.Equal(t, userID, id)
			promotedTo = role
			return nil
		},
	}
	svc := newTestService(repo, userRepo, &mockUploader{})

	identity := guard.Identity{UserID: userID, Email: "abebe@example.com", Role: common.RoleCustomer}
	created, err := svc.Register(context.Background(), identity, registrationRequest(), nil)
	require.NoError(t, err)
	require.NotNil(t, createdSeller)
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, "Abebe", created.Name)
	assert.Equal(t, "good-phones-and-more", created.ShopSlug)
	assert.Nil(t, created.ShopPhotoURL)
	assert.Equal(t, common.RoleSeller, promotedTo)
}

func TestRegister_DuplicateShopRejected(t *testing.T) {
	userID := uuid.New()
	repo := &mockSellerRepo{
		findByUserIDFunc: func(context.Context, uuid.UUID) (*Seller, error) {
			return &Seller{UserID: userID, ShopName: "Existing Shop"}, nil
		},
	}
	userRepo := &mockUserRepo{}
	svc := newTestService(repo, userRepo, &mockUploader{})

	identity := guard.Identity{UserID: userID, Role: common.RoleSeller}
	_, err := svc.Register(context.Background(), identity, registrationRequest(), nil)
	assert.ErrorIs(t, err, common.ErrAlreadySeller)
}

// A failed photo relay must abort the registration with nothing written.
func TestRegister_UploadFailureAbortsRegistration(t *testing.T) {
	userID := uuid.New()
	createCalls := 0
	roleCalls := 0

	repo := &mockSellerRepo{
		findByUserIDFunc: func(context.Context, uuid.UUID) (*Seller, error) {
			return nil, common.ErrNotFound
		},
		createFunc: func(context.Context, *Seller) error {
			createCalls++
			return nil
		},
	}
	userRepo := &mockUserRepo{
		findByIDFunc: func(_ context.Context, id uuid.UUID) (*user.User, error) {
			return &user.User{BaseModel: common.BaseModel{ID: id}, Name: "Abebe", Email: "a@example.com"}, nil
		},
		updateRoleFunc: func(context.Context, uuid.UUID, string) error {
			roleCalls++
			return nil
		},
	}
	uploads := &mockUploader{
		uploadFunc: func(context.Context, *multipart.FileHeader, string) (string, error) {
			return "", assert.AnError
		},
	}
	svc := newTestService(repo, userRepo, uploads)

	identity := guard.Identity{UserID: userID, Role: common.RoleCustomer}
	photo := &multipart.FileHeader{Filename: "shop.jpg", Size: 1024}
	_, err := svc.Register(context.Background(), identity, registrationRequest(), photo)
	require.Error(t, err)
	assert.Equal(t, 1, uploads.calls)
	assert.Zero(t, createCalls, "no seller row may be written after a failed upload")
	assert.Zero(t, roleCalls, "no role promotion may happen after a failed upload")
}

func TestGetMyShop_RequiresSellerRole(t *testing.T) {
	repo := &mockSellerRepo{
		findByUserIDFunc: func(context.Context, uuid.UUID) (*Seller, error) {
			return &Seller{ShopName: "My Shop"}, nil
		},
	}
	svc := newTestService(repo, &mockUserRepo{}, &mockUploader{})

	_, err := svc.GetMyShop(context.Background(), guard.Identity{UserID: uuid.New(), Role: common.RoleCustomer})
	assert.ErrorIs(t, err, common.ErrForbidden)

	shop, err := svc.GetMyShop(context.Background(), guard.Identity{UserID: uuid.New(), Role: common.RoleSeller})
	require.NoError(t, err)
	assert.Equal(t, "My Shop", shop.ShopName)
}
