// File: internal/upload/service.go
package upload

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"marketplace_backend/internal/common"
	"marketplace_backend/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// allowedExtensions is the small set of raster image formats the relay accepts.
var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ErrUploadRejected reports a payload the relay refuses to forward.
var ErrUploadRejected = common.NewAPIError(400, "UPLOAD_REJECTED", "The uploaded file was rejected.")

// Service forwards binary image payloads to object storage and returns a
// durable, publicly resolvable URL. Stateless; no retry or idempotency
// guarantee — callers must write entity records only after a successful call.
type Service interface {
	UploadImage(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error)
}

type s3Service struct {
	client *s3.S3
	cfg    *config.Config
	logger *zap.Logger
}

// NewService creates a new S3-backed upload relay.
func NewService(cfg *config.Config, logger *zap.Logger) (Service, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &s3Service{
		client: s3.New(sess),
		cfg:    cfg,
		logger: logger.Named("UploadRelay"),
	}, nil
}

// UploadImage validates the payload, forwards it to the bucket under the
// given folder and returns the public object URL.
func (s *s3Service) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error) {
	if fileHeader == nil {
		return "", ErrUploadRejected.WithDetails("No file provided.")
	}

	maxSize := s.cfg.UploadMaxSizeMB << 20
	if fileHeader.Size > maxSize {
		return "", ErrUploadRejected.WithDetails(
			fmt.Sprintf("File exceeds the maximum allowed size of %d MB.", s.cfg.UploadMaxSizeMB))
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		return "", ErrUploadRejected.WithDetails(
			fmt.Sprintf("File type %q is not allowed.", ext))
	}

	src, err := fileHeader.Open()
	if err != nil {
		s.logger.Error("Failed to open uploaded file", zap.Error(err))
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), uuid.NewString(), ext)

	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.S3Bucket),
		Key:           aws.String(key),
		Body:          src,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(fileHeader.Size),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		s.logger.Error("Failed to upload object to S3",
			zap.Error(err), zap.String("key", key))
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	url := s.objectURL(key)
	s.logger.Info("Image uploaded", zap.String("key", key), zap.String("url", url))
	return url, nil
}

func (s *s3Service) objectURL(key string) string {
	if s.cfg.S3PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.S3PublicBaseURL, "/"), key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.S3Bucket, s.cfg.AWSRegion, key)
}
