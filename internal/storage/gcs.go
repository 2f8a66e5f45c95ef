package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"inventory-service/pkg/config"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// GCSStorage stores images in a Google Cloud Storage bucket and addresses
// them by public URL: <baseURL>/<bucket>/<folder>/<uuid><ext>
type GCSStorage struct {
	client  *gcs.Client
	bucket  string
	baseURL string
}

// NewGCSStorage creates a GCS-backed object storage.
// With no credentials path configured it falls back to Application Default
// Credentials, which works automatically on Google Cloud environments.
func NewGCSStorage(ctx context.Context, cfg *config.GCSConfig) (*GCSStorage, error) {
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStorage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}, nil
}

// UploadImage writes the image to the bucket under a unique object name and
// returns its public URL
func (s *GCSStorage) UploadImage(ctx context.Context, data []byte, contentType, originalFilename, folder string) (string, error) {
	objectName := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), filepath.Ext(originalFilename))

	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", objectName, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, objectName), nil
}

// DeleteImage deletes the object addressed by the public URL. Returns false
// without error when the URL does not address this bucket or the object is
// already gone.
func (s *GCSStorage) DeleteImage(ctx context.Context, imageURL string) (bool, error) {
	objectName := s.objectNameFromURL(imageURL)
	if objectName == "" {
		return false, nil
	}

	err := s.client.Bucket(s.bucket).Object(objectName).Delete(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete object %s: %w", objectName, err)
	}
	return true, nil
}

// IsBucketAccessible reports whether the bucket metadata can be fetched
func (s *GCSStorage) IsBucketAccessible(ctx context.Context) bool {
	_, err := s.client.Bucket(s.bucket).Attrs(ctx)
	return err == nil
}

// objectNameFromURL strips the base URL and bucket prefix from a public URL.
// Expected format: <baseURL>/<bucket>/<folder>/<file>
func (s *GCSStorage) objectNameFromURL(url string) string {
	prefix := fmt.Sprintf("%s/%s/", s.baseURL, s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}
