package product

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"marketplace_backend/internal/common"
	"marketplace_backend/internal/guard"
	"marketplace_backend/internal/seller"
	"marketplace_backend/internal/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockProductRepo struct {
	products     map[uuid.UUID]*Product
	lastUpdates  map[string]interface{}
	listAllFunc  func(ctx context.Context) ([]Product, error)
	deleteCalled bool
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[uuid.UUID]*Product)}
}

func (m *mockProductRepo) Create(ctx context.Context, p *Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, common.ErrNotFound.WithDetails("Product not found.")
	}
	return p, nil
}

func (m *mockProductRepo) ListAll(ctx context.Context) ([]Product, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	out := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProductRepo) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]Product, error) {
	var out []Product
	for _, p := range m.products {
		if p.SellerID == sellerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	p, ok := m.products[id]
	if !ok {
		return common.ErrNotFound
	}
	m.lastUpdates = updates
	if v, ok := updates["brand"]; ok {
		p.Brand = v.(string)
	}
	if v, ok := updates["price"]; ok {
		p.Price = v.(float64)
	}
	if v, ok := updates["image_url"]; ok {
		url := v.(string)
		p.ImageURL = &url
	}
	return nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.products[id]; !ok {
		return common.ErrNotFound
	}
	m.deleteCalled = true
	delete(m.products, id)
	return nil
}

type mockSellerRepo struct {
	sellers map[uuid.UUID]*seller.Seller // keyed by user id
}

func (m *mockSellerRepo) Create(ctx context.Context, s *seller.Seller) error { return nil }

func (m *mockSellerRepo) FindByID(ctx context.Context, id uuid.UUID) (*seller.Seller, error) {
	for _, s := range m.sellers {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *mockSellerRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*seller.Seller, error) {
	s, ok := m.sellers[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return s, nil
}

type mockUploader struct {
	url     string
	err     error
	calls   int
	lastDir string
}

func (m *mockUploader) UploadImage(ctx context.Context, fh *multipart.FileHeader, folder string) (string, error) {
	m.calls++
	m.lastDir = folder
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
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

type testFixture struct {
	svc      Service
	repo     *mockProductRepo
	uploads  *mockUploader
	userID   uuid.UUID
	sellerID uuid.UUID
	identity guard.Identity
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()
	userID := uuid.New()
	sellerID := uuid.New()

	sellerRepo := &mockSellerRepo{sellers: map[uuid.UUID]*seller.Seller{
		userID: {
			BaseModel: common.BaseModel{ID: sellerID},
			UserID:    userID,
			ShopName:  "Phone Palace",
			ShopType:  "mobile",
		},
	}}
	repo := newMockProductRepo()
	uploads := &mockUploader{url: "https://cdn.example.com/products/img.jpg"}

	g := guard.New(stubTokens{}, stubUserDir{},
		seller.NewDirectoryAdapter(sellerRepo), NewCatalogAdapter(repo), zap.NewNop())
	svc := NewService(repo, sellerRepo, g, uploads, zap.NewNop())

	return &testFixture{
		svc:      svc,
		repo:     repo,
		uploads:  uploads,
		userID:   userID,
		sellerID: sellerID,
		identity: guard.Identity{UserID: userID, Role: common.RoleSeller},
	}
}

func addRequest() AddProductRequest {
	storage := "128GB"
	ram := "8GB"
	return AddProductRequest{
		Brand:       "Samsung",
		Model:       "Galaxy S24",
		ProductType: "mobile",
		Color:       "black",
		Storage:     &storage,
		RAM:         &ram,
		Price:       899.99,
	}
}

func TestAdd_DenormalizesShopFields(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Add(context.Background(), f.identity, addRequest(), nil)
	require.NoError(t, err)
	assert.Equal(t, f.sellerID, created.SellerID)
	assert.Equal(t, "Phone Palace", created.ShopName)
	assert.Equal(t, "mobile", created.ShopType)
	assert.Nil(t, created.ImageURL)
}

func TestAdd_CustomerForbidden(t *testing.T) {
	f := newFixture(t)
	customer := guard.Identity{UserID: uuid.New(), Role: common.RoleCustomer}

	_, err := f.svc.Add(context.Background(), customer, addRequest(), nil)
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.Empty(t, f.repo.products)
}

func TestAdd_UploadFailureWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.uploads.err = assert.AnError

	image := &multipart.FileHeader{Filename: "p.png", Size: 512}
	_, err := f.svc.Add(context.Background(), f.identity, addRequest(), image)
	require.Error(t, err)
	assert.Empty(t, f.repo.products, "no product row may be written after a failed upload")
}

// Fields omitted from an update request must keep their stored values.
func TestUpdate_PartialFieldsRetained(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.Add(context.Background(), f.identity, addRequest(), nil)
	require.NoError(t, err)

	newPrice := 749.99
	updated, err := f.svc.Update(context.Background(), f.identity, created.ID,
		UpdateProductRequest{Price: &newPrice}, nil)
	require.NoError(t, err)

	assert.Equal(t, 749.99, updated.Price)
	assert.Equal(t, "Samsung", updated.Brand)
	assert.Equal(t, "Galaxy S24", updated.Model)
	require.NotNil(t, updated.Storage)
	assert.Equal(t, "128GB", *updated.Storage)

	_, hasBrand := f.repo.lastUpdates["brand"]
	assert.False(t, hasBrand, "omitted fields must not appear in the column update")
	_, hasImage := f.repo.lastUpdates["image_url"]
	assert.False(t, hasImage)
}

func TestUpdate_NotOwnedForbidden(t *testing.T) {
	f := newFixture(t)
	foreign := &Product{SellerID: uuid.New(), Brand: "Apple", Model: "iPhone 15"}
	require.NoError(t, f.repo.Create(context.Background(), foreign))

	newBrand := "Hijacked"
	_, err := f.svc.Update(context.Background(), f.identity, foreign.ID,
		UpdateProductRequest{Brand: &newBrand}, nil)
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.Equal(t, "Apple", f.repo.products[foreign.ID].Brand)
}

func TestUpdate_UnknownProductNotFound(t *testing.T) {
	f := newFixture(t)

	newBrand := "Nobody"
	_, err := f.svc.Update(context.Background(), f.identity, uuid.New(),
		UpdateProductRequest{Brand: &newBrand}, nil)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NotErrorIs(t, err, common.ErrForbidden)
}

func TestDelete_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.Add(context.Background(), f.identity, addRequest(), nil)
	require.NoError(t, err)

	foreign := &Product{SellerID: uuid.New(), Brand: "Apple", Model: "iPhone 15"}
	require.NoError(t, f.repo.Create(context.Background(), foreign))

	err = f.svc.Delete(context.Background(), f.identity, foreign.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)

	err = f.svc.Delete(context.Background(), f.identity, created.ID)
	require.NoError(t, err)
	assert.True(t, f.repo.deleteCalled)
	assert.NotContains(t, f.repo.products, created.ID)
}

func TestListAll_ReportsEffectiveRole(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Add(context.Background(), f.identity, addRequest(), nil)
	require.NoError(t, err)

	products, role, err := f.svc.ListAll(context.Background(), guard.AnonymousIdentity())
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, common.RoleCustomer, role)

	_, role, err = f.svc.ListAll(context.Background(), f.identity)
	require.NoError(t, err)
	assert.Equal(t, common.RoleSeller, role)
}

func TestListMine_OnlyOwnProducts(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Add(context.Background(), f.identity, addRequest(), nil)
	require.NoError(t, err)

	foreign := &Product{SellerID: uuid.New(), Brand: "Apple", Model: "iPhone 15"}
	require.NoError(t, f.repo.Create(context.Background(), foreign))

	mine, err := f.svc.ListMine(context.Background(), f.identity)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, f.sellerID, mine[0].SellerID)
}
