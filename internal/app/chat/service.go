package chat

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"ktchat/internal/app/file"
	"ktchat/internal/pkg/errs"
	"ktchat/internal/pkg/randx"
)

// Service implements room and message operations.
type Service struct {
	store       Store
	files       file.Store
	fileService *file.Service
	hub         *Hub
}

// NewService wires the chat service. hub may be nil when no live message
// stream is needed (e.g. in tests).
func NewService(store Store, files file.Store, fileService *file.Service, hub *Hub) *Service {
	return &Service{
		store:       store,
		files:       files,
		fileService: fileService,
		hub:         hub,
	}
}

// CreateRoom creates a room with the creator as its first participant.
func (s *Service) CreateRoom(ctx context.Context, name, creatorID string) (*Room, *errs.CustomError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewError(errs.ErrInvalidParams)
	}

	room := &Room{
		ID:           randx.MessageID(),
		Name:         name,
		CreatedBy:    creatorID,
		Participants: []string{creatorID},
		CreatedAt:    time.Now(),
	}

	if err := s.store.CreateRoom(ctx, room); err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	return room, nil
}

// JoinRoom adds the user to the room's participant set.
func (s *Service) JoinRoom(ctx context.Context, roomID, userID string) (*Room, *errs.CustomError) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, file.ErrNotExist) {
			return nil, errs.NewError(errs.ErrRoomNotFound)
		}
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	if room.HasParticipant(userID) {
		return room, nil
	}

	if err := s.store.AddParticipant(ctx, roomID, userID); err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	room.Participants = append(room.Participants, userID)
	return room, nil
}

// RequireMembership loads the room and verifies the user belongs to it.
func (s *Service) RequireMembership(ctx context.Context, roomID, userID string) (*Room, *errs.CustomError) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, file.ErrNotExist) {
			return nil, errs.NewError(errs.ErrRoomNotFound)
		}
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	if !room.HasParticipant(userID) {
		return nil, errs.NewError(errs.ErrNotRoomParticipant)
	}

	return room, nil
}

// PostMessage creates a message in the room, optionally linking an uploaded
// CHAT attachment by its file record identifier. The created message row is
// what makes the attachment resolvable by the file access evaluator.
func (s *Service) PostMessage(
	ctx context.Context,
	roomID, senderID, content, attachmentFileID string,
) (*Message, *errs.CustomError) {
	if _, customErr := s.RequireMembership(ctx, roomID, senderID); customErr != nil {
		return nil, customErr
	}

	content = strings.TrimSpace(content)
	if content == "" && attachmentFileID == "" {
		return nil, errs.NewError(errs.ErrInvalidParams)
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return nil, errs.NewError(errs.ErrMessageContentTooLong)
	}

	msg := &Message{
		ID:        randx.MessageID(),
		RoomID:    roomID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if attachmentFileID != "" {
		rec, err := s.files.GetByID(ctx, attachmentFileID)
		if err != nil {
			if errors.Is(err, file.ErrNotExist) {
				return nil, errs.NewError(errs.ErrAttachmentInvalid)
			}
			return nil, errs.NewError(errs.ErrUnknown, err)
		}

		// Only the uploader may share a file, and profile images never
		// enter a room.
		if rec.UploaderID != senderID || rec.Category != file.CategoryChat {
			return nil, errs.NewError(errs.ErrAttachmentInvalid)
		}

		msg.File = rec
	}

	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	if s.hub != nil {
		s.hub.Broadcast(roomID, msg)
	}

	return msg, nil
}

// DeleteMessage removes a message its sender posted. An attached file is
// cascaded into the file subsystem by object key; ownership was already
// established when the message was posted, so the cascade path does not
// re-validate it.
func (s *Service) DeleteMessage(ctx context.Context, roomID, messageID, requesterID string) *errs.CustomError {
	msg, err := s.store.GetMessage(ctx, messageID)
	if err != nil {
		if errors.Is(err, file.ErrNotExist) {
			return errs.NewError(errs.ErrMessageNotFound)
		}
		return errs.NewError(errs.ErrUnknown, err)
	}

	if msg.RoomID != roomID {
		return errs.NewError(errs.ErrMessageNotFound)
	}
	if msg.SenderID != requesterID {
		return errs.NewError(errs.ErrMessageDeleteForbidden)
	}

	if msg.File != nil {
		s.fileService.DeleteByKey(ctx, msg.File.ObjectKey)
	}

	if err := s.store.DeleteMessage(ctx, messageID); err != nil {
		return errs.NewError(errs.ErrUnknown, err)
	}

	return nil
}

// ListMessages returns the recent messages of a room the user belongs to.
func (s *Service) ListMessages(ctx context.Context, roomID, userID string, limit int) ([]*Message, *errs.CustomError) {
	if _, customErr := s.RequireMembership(ctx, roomID, userID); customErr != nil {
		return nil, customErr
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	msgs, err := s.store.ListMessages(ctx, roomID, limit)
	if err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	return msgs, nil
}
