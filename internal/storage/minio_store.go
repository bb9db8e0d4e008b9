package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"cloudhub/pkg/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore adapts a MinIO bucket to the interfaces.BlobStore contract.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to the configured MinIO endpoint and ensures the
// bucket exists.
func NewMinioStore(ctx context.Context, cfg config.StorageConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.Bucket, err)
		}
	}

	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinioStore) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, path, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %q: %w", path, err)
	}
	return nil
}

func (s *MinioStore) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %q: %w", path, err)
	}
	return obj, nil
}

func (s *MinioStore) Remove(ctx context.Context, path string) error {
	// RemoveObject on a missing key succeeds, which keeps delete
	// idempotent across concurrent sessions.
	if err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %q: %w", path, err)
	}
	return nil
}

// SignedURL mints a presigned GET URL for path, valid for ttl.
func (s *MinioStore) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	signed, err := s.client.PresignedGetObject(ctx, s.bucket, path, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign object %q: %w", path, err)
	}
	return signed.String(), nil
}
