package upload

import (
	"context"
	"mime/multipart"
	"testing"

	"marketplace_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// The validation gate runs before any network call, so these cases exercise
// the real service without touching S3.
func newRelay(t *testing.T) Service {
	t.Helper()
	cfg := &config.Config{
		AWSRegion:          "us-east-1",
		AWSAccessKeyID:     "test",
		AWSSecretAccessKey: "test",
		S3Bucket:           "test-bucket",
		UploadMaxSizeMB:    5,
	}
	svc, err := NewService(cfg, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestUploadImage_NilFileRejected(t *testing.T) {
	svc := newRelay(t)

	_, err := svc.UploadImage(context.Background(), nil, "products")
	assert.ErrorIs(t, err, ErrUploadRejected)
}

func TestUploadImage_OversizedRejected(t *testing.T) {
	svc := newRelay(t)

	fh := &multipart.FileHeader{Filename: "huge.jpg", Size: 6 << 20}
	_, err := svc.UploadImage(context.Background(), fh, "products")
	assert.ErrorIs(t, err, ErrUploadRejected)
}

func TestUploadImage_DisallowedExtensionRejected(t *testing.T) {
	svc := newRelay(t)

	for _, name := range []string{"payload.exe", "script.svg", "noext", "archive.zip"} {
		fh := &multipart.FileHeader{Filename: name, Size: 1024}
		_, err := svc.UploadImage(context.Background(), fh, "products")
		assert.ErrorIs(t, err, ErrUploadRejected, "file %q must be rejected", name)
	}
}

func TestObjectURL(t *testing.T) {
	base := &s3Service{cfg: &config.Config{
		AWSRegion: "us-east-1",
		S3Bucket:  "shop-images",
	}}
	assert.Equal(t,
		"https://shop-images.s3.us-east-1.amazonaws.com/products/abc.png",
		base.objectURL("products/abc.png"))

	cdn := &s3Service{cfg: &config.Config{
		S3PublicBaseURL: "https://cdn.example.com/",
	}}
	assert.Equal(t,
		"https://cdn.example.com/products/abc.png",
		cdn.objectURL("products/abc.png"))
}
