package file

import (
	"context"
	"errors"

	"ktchat/internal/pkg/errs"
)

// VerifyReadAccess decides whether requesterID may read the given record.
//
// Profile images are owner-only and require no further lookups. Chat
// attachments resolve the navigational chain file -> message -> room as
// explicit sequential lookups with early exit on absence: a chat file with no
// linked message is an inconsistent state (e.g. orphaned between record and
// message creation) and fails closed as not-found, a vanished room likewise,
// and otherwise the requester must be a room participant.
func (s *Service) VerifyReadAccess(ctx context.Context, rec *Record, requesterID string) *errs.CustomError {
	if rec.Category == CategoryProfile {
		if rec.UploaderID != requesterID {
			return errs.NewError(errs.ErrProfileImageAccessDenied)
		}
		return nil
	}

	link, err := s.messages.FindByFileID(ctx, rec.ID)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return errs.NewError(errs.ErrFileMessageNotFound)
		}
		return errs.NewError(errs.ErrUnknown, err)
	}

	room, err := s.rooms.GetByID(ctx, link.RoomID)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return errs.NewError(errs.ErrRoomNotFound)
		}
		return errs.NewError(errs.ErrUnknown, err)
	}

	if !room.HasParticipant(requesterID) {
		return errs.NewError(errs.ErrFileAccessDenied)
	}

	return nil
}

// VerifyDeleteAccess decides whether requesterID may delete the given record.
// Deletion authority is ownership regardless of category: a non-uploading
// room participant must not be able to destroy shared content.
func (s *Service) VerifyDeleteAccess(rec *Record, requesterID string) *errs.CustomError {
	if rec.UploaderID != requesterID {
		return errs.NewError(errs.ErrFileDeleteForbidden)
	}
	return nil
}
