/*
Package chat implements rooms, membership, and messages.

Messages are the write side of the file subsystem's message link: posting a
message with an attachment is what associates a CHAT file with a room, and
deleting one cascades into the file subsystem's delete-by-key contract.
*/
package chat

import (
	"context"
	"time"

	"ktchat/internal/app/file"
)

// MaxMessageLength is the maximum number of characters in a message body.
const MaxMessageLength = 2000

// Room represents a chat room and its participant set.
type Room struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreatedBy    string    `json:"createdBy"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"createdAt"`
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

// Message represents one chat message, optionally carrying a file attachment.
type Message struct {
	ID        string       `json:"id"`
	RoomID    string       `json:"roomId"`
	SenderID  string       `json:"senderId"`
	Content   string       `json:"content"`
	File      *file.Record `json:"file,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Store persists rooms, memberships, and messages.
type Store interface {
	// CreateRoom inserts a new room and its creator's membership.
	CreateRoom(ctx context.Context, room *Room) error

	// GetRoom returns the room with its participant set, or file.ErrNotExist.
	GetRoom(ctx context.Context, roomID string) (*Room, error)

	// AddParticipant inserts a membership. Joining twice is not an error.
	AddParticipant(ctx context.Context, roomID, userID string) error

	// CreateMessage inserts a message; msg.File, when set, becomes the
	// message's file link.
	CreateMessage(ctx context.Context, msg *Message) error

	// GetMessage returns the message with the given identifier, or file.ErrNotExist.
	GetMessage(ctx context.Context, messageID string) (*Message, error)

	// DeleteMessage removes the message with the given identifier.
	DeleteMessage(ctx context.Context, messageID string) error

	// ListMessages returns up to limit most recent messages of the room,
	// oldest first.
	ListMessages(ctx context.Context, roomID string, limit int) ([]*Message, error)
}
