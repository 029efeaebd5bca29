package objstore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/davidrmz/tienda-catalog/internal/config"
)

// Uploader stores a file and returns the public URL it is served under.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType, originalFilename string) (string, error)
}

// ErrNotConfigured is returned when storage credentials are missing.
var ErrNotConfigured = fmt.Errorf("object storage is not configured")

var _ Uploader = (*MinioUploader)(nil)

// MinioUploader uploads files to any S3-compatible object storage.
type MinioUploader struct {
	cfg    config.Storage
	client *minio.Client
}

// NewMinioUploader creates an uploader for the configured bucket. It returns
// ErrNotConfigured when credentials are absent so callers can decide whether
// to start without an upload side channel.
func NewMinioUploader(cfg config.Storage) (*MinioUploader, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinioUploader{cfg: cfg, client: client}, nil
}

// Upload stores the file under a collision-resistant object name that keeps
// the original extension, and returns its public URL.
func (u *MinioUploader) Upload(ctx context.Context, r io.Reader, size int64, contentType, originalFilename string) (string, error) {
	objectName := uuid.NewString() + strings.ToLower(path.Ext(originalFilename))

	if _, err := u.client.PutObject(ctx, u.cfg.Bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("put object %q: %w", objectName, err)
	}

	return u.publicURL(objectName), nil
}

func (u *MinioUploader) publicURL(objectName string) string {
	if u.cfg.PublicBaseURL != "" {
		base := strings.TrimSuffix(u.cfg.PublicBaseURL, "/")
		return fmt.Sprintf("%s/%s/%s", base, u.cfg.Bucket, objectName)
	}

	scheme := "https"
	if !u.cfg.UseSSL {
		scheme = "http"
	}
	publicURL := url.URL{
		Scheme: scheme,
		Host:   u.cfg.Endpoint,
		Path:   path.Join(u.cfg.Bucket, objectName),
	}
	return publicURL.String()
}
