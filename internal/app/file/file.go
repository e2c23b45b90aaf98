/*
Package file implements the presigned access and authorization subsystem.

It validates declared file metadata, derives collision-resistant storage keys,
issues short-lived capability-scoped upload/download URLs through an external
signer, and enforces per-category access control: profile images are
owner-only, chat attachments require room membership discovered through the
file's linked message.
*/
package file

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Category classifies the purpose of a stored file, which determines its
// access-control policy. It is immutable after record creation.
type Category string

const (
	// CategoryChat marks a chat room attachment. Read access requires
	// membership of the room containing the linked message.
	CategoryChat Category = "CHAT"

	// CategoryProfile marks a profile image. Read access is owner-only.
	CategoryProfile Category = "PROFILE"
)

// ErrNotExist is returned by the stores when no record matches the lookup.
// Callers translate it into the appropriate not-found error for their context.
var ErrNotExist = errors.New("record does not exist")

// Record is the persisted metadata for one stored object. It is created at
// upload-request time, before any bytes are transferred; a record without a
// corresponding object is a valid transient state.
type Record struct {
	// ID is the store-assigned unique identifier.
	ID string `json:"id"`

	// StoredName is the generated, globally unique filename
	// (<unix-millis>_<16 hex chars>[.<ext>]).
	StoredName string `json:"filename"`

	// OriginalName is the user-supplied filename after normalization.
	// It is display metadata only and carries no uniqueness guarantee.
	OriginalName string `json:"originalname"`

	// MimeType is the declared content type, validated against the allow-list.
	MimeType string `json:"mimetype"`

	// Size is the declared byte size.
	Size int64 `json:"size"`

	// ObjectKey is the full path of the object in the store. It is derived
	// deterministically from (prefix, category, uploader, stored name) and
	// never mutated after creation.
	ObjectKey string `json:"-"`

	// UploaderID identifies the sole owner. Ownership never transfers.
	UploaderID string `json:"-"`

	// Category determines the access-control policy for this file.
	Category Category `json:"category"`

	// UploadDate is the instant the upload request was accepted.
	UploadDate time.Time `json:"uploadDate"`
}

// Previewable reports whether the file type supports inline browser preview.
func (r *Record) Previewable() bool {
	switch {
	case strings.HasPrefix(r.MimeType, "image/"),
		strings.HasPrefix(r.MimeType, "video/"),
		strings.HasPrefix(r.MimeType, "audio/"),
		r.MimeType == "application/pdf":
		return true
	}
	return false
}

// MessageLink associates a file record with the message that shared it.
// It is read-only to this subsystem and exists purely to resolve
// fileID -> messageID -> roomID for the access evaluator.
type MessageLink struct {
	MessageID string
	RoomID    string
}

// Room is the read-only projection of a chat room used for access decisions.
type Room struct {
	ID           string
	Participants []string
}

// HasParticipant reports whether userID is a member of the room.
func (r *Room) HasParticipant(userID string) bool {
	for _, id := range r.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// Store persists file records.
type Store interface {
	// Create inserts a new record.
	Create(ctx context.Context, rec *Record) error

	// GetByID returns the record with the given identifier, or ErrNotExist.
	GetByID(ctx context.Context, id string) (*Record, error)

	// GetByStoredName returns the record with the given stored filename, or ErrNotExist.
	GetByStoredName(ctx context.Context, storedName string) (*Record, error)

	// Delete removes the record with the given identifier. Deleting an
	// absent record is not an error.
	Delete(ctx context.Context, id string) error
}

// MessageLinkStore resolves the message associated with a file.
type MessageLinkStore interface {
	// FindByFileID returns the link for the message referencing the file,
	// or ErrNotExist when no message references it.
	FindByFileID(ctx context.Context, fileID string) (*MessageLink, error)
}

// RoomReader resolves rooms and their participant sets.
type RoomReader interface {
	// GetByID returns the room with the given identifier, or ErrNotExist.
	GetByID(ctx context.Context, roomID string) (*Room, error)
}
