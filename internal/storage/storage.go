package storage

import "context"

// ObjectStorage is the contract the image handlers depend on.
// The production implementation is GCS; tests substitute a fake.
type ObjectStorage interface {
	// UploadImage stores the image bytes under folder and returns the public URL
	UploadImage(ctx context.Context, data []byte, contentType, originalFilename, folder string) (string, error)
	// DeleteImage removes the object addressed by a public URL; the bool
	// reports whether an object was actually deleted
	DeleteImage(ctx context.Context, imageURL string) (bool, error)
	// IsBucketAccessible reports whether the backing bucket is reachable
	IsBucketAccessible(ctx context.Context) bool
}
