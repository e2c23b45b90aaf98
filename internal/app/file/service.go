package file

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"ktchat/internal/app/storage"
	"ktchat/internal/pkg/errs"
	"ktchat/internal/pkg/logx"
	"ktchat/internal/pkg/randx"
)

// Service orchestrates the presigned upload/download flows: metadata
// validation, name and key generation, record persistence, access control,
// and delegation to the external signer.
//
// The service holds no mutable state of its own; every request is handled
// independently against the stores and the signer, both of which are
// thread-safe collaborators.
type Service struct {
	files    Store
	messages MessageLinkStore
	rooms    RoomReader
	storage  storage.StorageService

	keyPrefix string
	expiry    time.Duration
}

// NewService wires the file service with its stores, the signer, the object
// key prefix, and the presigned URL validity window.
func NewService(
	files Store,
	messages MessageLinkStore,
	rooms RoomReader,
	storageService storage.StorageService,
	keyPrefix string,
	expiry time.Duration,
) *Service {
	return &Service{
		files:     files,
		messages:  messages,
		rooms:     rooms,
		storage:   storageService,
		keyPrefix: keyPrefix,
		expiry:    expiry,
	}
}

// UploadGrant is the result of a successful upload request: a signed PUT URL,
// the headers the uploader must send, the created record's public projection,
// and the absolute instant the URL stops working.
type UploadGrant struct {
	UploadURL string            `json:"uploadUrl"`
	Headers   map[string]string `json:"headers"`
	File      *Record           `json:"file"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// AccessGrant is the result of a successful download/view request.
type AccessGrant struct {
	URL         string            `json:"url"`
	Headers     map[string]string `json:"headers"`
	Filename    string            `json:"filename"`
	ContentType string            `json:"contentType"`
	ExpiresAt   time.Time         `json:"expiresAt"`
	Inline      bool              `json:"inline"`
}

// RequestUpload validates the declared metadata, persists a new file record,
// and returns a signed PUT URL for the derived object key.
//
// The record exists before any bytes are transferred; an upload the caller
// never completes leaves a record without an object, which is a valid
// transient state.
func (s *Service) RequestUpload(
	ctx context.Context,
	meta UploadMetadata,
	uploaderID string,
	category Category,
) (*UploadGrant, *errs.CustomError) {
	if customErr := ValidateMetadata(meta); customErr != nil {
		return nil, customErr
	}

	storedName, err := GenerateSafeName(meta.OriginalName)
	if err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	rec := &Record{
		ID:           randx.FileID(),
		StoredName:   storedName,
		OriginalName: NormalizeOriginalFilename(meta.OriginalName),
		MimeType:     meta.ContentType,
		Size:         meta.Size,
		ObjectKey:    BuildObjectKey(s.keyPrefix, category, uploaderID, storedName),
		UploaderID:   uploaderID,
		Category:     category,
		UploadDate:   time.Now(),
	}

	if err := s.files.Create(ctx, rec); err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	uploadURL, err := s.storage.PresignUpload(ctx, rec.ObjectKey, rec.MimeType, rec.Size, s.expiry)
	if err != nil {
		return nil, errs.NewError(errs.ErrFileStorageFailed)
	}

	return &UploadGrant{
		UploadURL: uploadURL,
		Headers:   map[string]string{"Content-Type": rec.MimeType},
		File:      rec,
		ExpiresAt: time.Now().Add(s.expiry),
	}, nil
}

// RequestAccess resolves the record by stored name, enforces the read policy
// for the requester, and returns a signed GET URL with the response content
// type and content disposition bound into the signature.
func (s *Service) RequestAccess(
	ctx context.Context,
	storedName string,
	requesterID string,
	inline bool,
) (*AccessGrant, *errs.CustomError) {
	rec, err := s.files.GetByStoredName(ctx, storedName)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return nil, errs.NewError(errs.ErrFileNotFound)
		}
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	if customErr := s.VerifyReadAccess(ctx, rec, requesterID); customErr != nil {
		return nil, customErr
	}

	disposition := BuildContentDisposition(rec.OriginalName, inline)

	signedURL, err := s.storage.PresignDownload(ctx, rec.ObjectKey, rec.MimeType, disposition, s.expiry)
	if err != nil {
		return nil, errs.NewError(errs.ErrFileStorageFailed)
	}

	return &AccessGrant{
		URL:         signedURL,
		Headers:     map[string]string{"Content-Type": rec.MimeType},
		Filename:    rec.StoredName,
		ContentType: rec.MimeType,
		ExpiresAt:   time.Now().Add(s.expiry),
		Inline:      inline,
	}, nil
}

// GetByStoredName exposes a record lookup for callers that need the record
// itself (e.g. the preview endpoint's type check) before requesting access.
func (s *Service) GetByStoredName(ctx context.Context, storedName string) (*Record, *errs.CustomError) {
	rec, err := s.files.GetByStoredName(ctx, storedName)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return nil, errs.NewError(errs.ErrFileNotFound)
		}
		return nil, errs.NewError(errs.ErrUnknown, err)
	}
	return rec, nil
}

// DeleteOwned removes a file on behalf of its uploader: the backing object
// best-effort, the metadata record authoritatively.
//
// A backing-store failure is logged and deliberately swallowed so a transient
// outage cannot block metadata deletion; the object store is reconciled out
// of band. Metadata is the source of truth for whether the file exists.
func (s *Service) DeleteOwned(ctx context.Context, fileID, requesterID string) (bool, *errs.CustomError) {
	rec, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return false, errs.NewError(errs.ErrFileNotFound)
		}
		return false, errs.NewError(errs.ErrUnknown, err)
	}

	if customErr := s.VerifyDeleteAccess(rec, requesterID); customErr != nil {
		return false, customErr
	}

	s.deleteObject(ctx, rec.ObjectKey)

	if err := s.files.Delete(ctx, rec.ID); err != nil {
		return false, errs.NewError(errs.ErrUnknown, err)
	}

	return true, nil
}

// DeleteByKey removes the file stored under the given object key without
// re-validating ownership. It serves cascading deletes (message or room
// removal) that already hold the key. Absence of a matching record is not an
// error, so the operation is idempotent. An empty key is a no-op.
func (s *Service) DeleteByKey(ctx context.Context, objectKey string) bool {
	if strings.TrimSpace(objectKey) == "" {
		return false
	}

	rec, err := s.files.GetByStoredName(ctx, StoredNameFromKey(objectKey))
	if err == nil {
		if err := s.files.Delete(ctx, rec.ID); err != nil {
			logx.Error(err, "Failed to delete file record during cascade", "object_key", objectKey)
		}
	} else if !errors.Is(err, ErrNotExist) {
		logx.Error(err, "Failed to resolve file record during cascade", "object_key", objectKey)
	}

	s.deleteObject(ctx, objectKey)
	return true
}

// deleteObject removes the backing object, logging and swallowing failures.
func (s *Service) deleteObject(ctx context.Context, objectKey string) {
	if err := s.storage.Delete(ctx, objectKey); err != nil {
		logx.Warn(fmt.Sprintf("Backing object delete failed, continuing: %v", err), "object_key", objectKey)
	}
}

// BuildContentDisposition renders the Content-Disposition value bound into
// download signatures. Inline responses carry both the plain filename
// parameter for legacy clients and the RFC 5987 filename* form for UTF-8
// aware ones; attachments carry only the UTF-8 form. The percent-encoding
// rewrites "+" to "%20" because the form encoder produces "+" for spaces,
// which is invalid in this header.
func BuildContentDisposition(originalName string, inline bool) string {
	encoded := strings.ReplaceAll(url.QueryEscape(originalName), "+", "%20")

	if inline {
		return fmt.Sprintf("inline; filename=\"%s\"; filename*=UTF-8''%s", originalName, encoded)
	}
	return fmt.Sprintf("attachment; filename*=UTF-8''%s", encoded)
}
