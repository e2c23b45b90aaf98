package file

import (
	"strings"

	"ktchat/internal/pkg/errs"
)

const (
	// MaxFileNameBytes is the maximum UTF-8 encoded length of a declared
	// filename. The budget is bytes, not glyphs, so multi-byte names are
	// constrained tighter than their character count suggests.
	MaxFileNameBytes = 255

	// MiB is one mebibyte in bytes.
	MiB int64 = 1024 * 1024
)

// UploadMetadata is the caller-declared description of a file to be uploaded.
// Nothing in it is trusted until it passes ValidateMetadata.
type UploadMetadata struct {
	OriginalName string `json:"originalFilename"`
	ContentType  string `json:"contentType"`
	Size         int64  `json:"size"`
}

// allowedTypes is the closed allow-list mapping each accepted MIME type to
// the filename extensions it may carry. Loaded once, never mutated.
var allowedTypes = map[string][]string{
	"image/jpeg":      {"jpg", "jpeg"},
	"image/png":       {"png"},
	"image/gif":       {"gif"},
	"image/webp":      {"webp"},
	"video/mp4":       {"mp4"},
	"video/webm":      {"webm"},
	"video/quicktime": {"mov"},
	"audio/mpeg":      {"mp3"},
	"audio/wav":       {"wav"},
	"audio/ogg":       {"ogg"},
	"application/pdf": {"pdf"},
	"application/msword": {"doc"},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {"docx"},
}

// familySizeLimits caps the declared size per content-type family
// (the prefix before "/"). Types outside the listed families fall back
// to the application (document) limit.
var familySizeLimits = map[string]int64{
	"image":       10 * MiB,
	"video":       50 * MiB,
	"audio":       20 * MiB,
	"application": 20 * MiB,
}

// allowedProfileImageTypes is the stricter content-type set for profile images.
var allowedProfileImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// ValidateMetadata checks the declared filename, content type, and size
// against the upload policy tables. Rules are evaluated in order and the
// first violation wins. It has no side effects.
func ValidateMetadata(meta UploadMetadata) *errs.CustomError {
	name := strings.TrimSpace(meta.OriginalName)
	if name == "" {
		return errs.NewError(errs.ErrFileNameRequired)
	}

	if len(meta.OriginalName) > MaxFileNameBytes {
		return errs.NewError(errs.ErrFileNameTooLong)
	}

	allowedExts, ok := allowedTypes[meta.ContentType]
	if !ok {
		return errs.NewError(errs.ErrFileTypeUnsupported)
	}

	ext := strings.ToLower(Extension(meta.OriginalName))
	if !containsString(allowedExts, ext) {
		return errs.NewError(errs.ErrFileExtensionMismatch, familyLabel(meta.ContentType))
	}

	if meta.Size <= 0 {
		return errs.NewError(errs.ErrFileSizeInvalid)
	}

	limit := familyLimit(meta.ContentType)
	if meta.Size > limit {
		return errs.NewError(errs.ErrFileSizeTooLarge, familyLabel(meta.ContentType), limit/MiB)
	}

	return nil
}

// ValidateProfileImage applies the stricter profile image policy: the general
// metadata rules, then an exact image content-type check, then the separately
// configured maximum size.
func ValidateProfileImage(meta UploadMetadata, maxSize int64) *errs.CustomError {
	if customErr := ValidateMetadata(meta); customErr != nil {
		return customErr
	}

	if _, ok := allowedProfileImageTypes[meta.ContentType]; !ok {
		return errs.NewError(errs.ErrProfileImageTypeInvalid)
	}

	if meta.Size > maxSize {
		return errs.NewError(errs.ErrProfileImageTooLarge, maxSize/MiB)
	}

	return nil
}

// familyLimit returns the size cap for the content type's family,
// defaulting to the document limit for unlisted families.
func familyLimit(contentType string) int64 {
	family, _, _ := strings.Cut(contentType, "/")
	if limit, ok := familySizeLimits[family]; ok {
		return limit
	}
	return familySizeLimits["application"]
}

// familyLabel returns a human-readable label for the content type's family,
// used in validation error messages.
func familyLabel(contentType string) string {
	family, _, _ := strings.Cut(contentType, "/")
	switch family {
	case "image":
		return "Image"
	case "video":
		return "Video"
	case "audio":
		return "Audio"
	case "application":
		return "Document"
	}
	return "File"
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
