package storage

import (
	"context"
	"time"
)

// ServiceConfig holds the configuration required to connect to the storage service.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// StorageService defines the public interface for the object storage service.
//
// It is the signer capability of the file subsystem: every method either
// produces a time-bounded signed URL for one specific operation on one
// specific object, or removes an object. File bytes never pass through
// the application tier.
type StorageService interface {
	// PresignUpload generates a pre-signed PUT URL for uploading an object.
	// The declared MIME type and size are bound into the signature, so the
	// uploader must send exactly those request parameters.
	PresignUpload(
		ctx context.Context,
		key string,
		mimeType string,
		fileSize int64,
		duration time.Duration,
	) (string, error)

	// PresignDownload generates a pre-signed GET URL for downloading an object.
	// The response Content-Type and Content-Disposition are bound into the
	// signed parameters, so the store enforces them and a client cannot alter
	// the disposition by omitting headers.
	PresignDownload(
		ctx context.Context,
		key string,
		contentType string,
		contentDisposition string,
		duration time.Duration,
	) (string, error)

	// Delete removes the object identified by the given key.
	Delete(ctx context.Context, key string) error
}

// NewStorageService is the factory function for StorageService.
// It initializes and returns a concrete implementation based on the provided configuration.
func NewStorageService(cfg ServiceConfig) (StorageService, error) {
	// Currently, only S3 compatible implementations are supported.
	return newS3Client(cfg)
}
