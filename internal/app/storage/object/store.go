package object

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"transcribe-relay/internal/config"
)

// KeyPrefix is the folder every staged object is written under.
const KeyPrefix = "uploads"

// Store is the object storage used to hand uploads to URL-capable providers.
type Store interface {
	// PutFile uploads the local file at path under key.
	PutFile(ctx context.Context, key, path, contentType string) error
	// PresignGet returns a time limited download URL for key.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// MinioStore implements Store using MinIO or any S3 compatible service.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioClient creates a MinIO client from configuration without any
// network round trip.
func NewMinioClient(cfg config.MinIOConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}
	return client, nil
}

// NewMinioStore creates the store and makes sure the bucket exists.
func NewMinioStore(ctx context.Context, cfg config.MinIOConfig) (*MinioStore, error) {
	client, err := NewMinioClient(cfg)
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return NewMinioStoreWithClient(client, cfg.Bucket), nil
}

// NewMinioStoreWithClient wraps an existing client.
func NewMinioStoreWithClient(client *minio.Client, bucket string) *MinioStore {
	return &MinioStore{client: client, bucket: bucket}
}

// PutFile implements Store.
func (s *MinioStore) PutFile(ctx context.Context, key, path, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.FPutObject(ctx, s.bucket, key, path, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-name": filepath.Base(path),
			"uploaded-at":   time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to MinIO: %w", key, err)
	}
	return nil
}

// PresignGet implements Store.
func (s *MinioStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	presignedURL, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return presignedURL.String(), nil
}

// Delete implements Store.
func (s *MinioStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %s from MinIO: %w", key, err)
	}
	return nil
}

// NewKey returns a fresh object key "uploads/yyyy/mm/dd/<uuid><ext>" for a
// file named name, dated at now.
func NewKey(name string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(name))
	return fmt.Sprintf("%s/%s/%s%s", KeyPrefix, now.UTC().Format("2006/01/02"), uuid.New().String(), ext)
}
