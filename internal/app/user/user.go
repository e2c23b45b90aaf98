/*
Package user contains user identity data and the profile image flow.

Profile images are a special file category: owner-only access, a stricter
validation policy, and replace-on-upload semantics where the previous image
is best-effort cleaned up before a new upload URL is issued.
*/
package user

import (
	"context"
	"time"
)

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`

	// Email is the unique sign-in address.
	Email string `json:"email"`

	// Nickname is the display name shown in rooms.
	Nickname string `json:"nickname"`

	// ProfileImage is the stored filename of the user's current profile
	// image, or empty when none is set.
	ProfileImage string `json:"profileImage,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store persists user accounts.
type Store interface {
	// GetByID returns the user with the given identifier, or file.ErrNotExist.
	GetByID(ctx context.Context, id string) (*User, error)

	// UpdateProfileImage records the stored filename of the user's current
	// profile image. An empty name clears it.
	UpdateProfileImage(ctx context.Context, id, storedName string) error
}
