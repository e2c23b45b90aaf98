package user

import (
	"context"
	"errors"
	"fmt"

	"ktchat/internal/app/file"
	"ktchat/internal/pkg/errs"
	"ktchat/internal/pkg/logx"
)

// ProfileService implements the profile image flow on top of the file service.
type ProfileService struct {
	users               Store
	files               file.Store
	fileService         *file.Service
	profileImageMaxSize int64
}

// NewProfileService wires the profile image flow.
func NewProfileService(users Store, files file.Store, fileService *file.Service, profileImageMaxSize int64) *ProfileService {
	return &ProfileService{
		users:               users,
		files:               files,
		fileService:         fileService,
		profileImageMaxSize: profileImageMaxSize,
	}
}

// RequestImageUpload validates the declared metadata against the stricter
// profile image policy, best-effort removes the user's previous image, issues
// a PROFILE-category upload URL, and records the new stored name on the user.
//
// The previous image cleanup is deliberately non-fatal: a stale object or
// record must not block the user from setting a new image.
func (s *ProfileService) RequestImageUpload(
	ctx context.Context,
	userID string,
	meta file.UploadMetadata,
) (*file.UploadGrant, *errs.CustomError) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, file.ErrNotExist) {
			return nil, errs.NewError(errs.ErrUserNotFound)
		}
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	if customErr := file.ValidateProfileImage(meta, s.profileImageMaxSize); customErr != nil {
		return nil, customErr
	}

	s.removeCurrentImage(ctx, usr)

	grant, customErr := s.fileService.RequestUpload(ctx, meta, usr.ID, file.CategoryProfile)
	if customErr != nil {
		return nil, customErr
	}

	if err := s.users.UpdateProfileImage(ctx, usr.ID, grant.File.StoredName); err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	return grant, nil
}

// ImageAccess resolves the user's current profile image and returns a signed
// view URL for it. Only the owner can reach this point: the evaluator inside
// RequestAccess enforces the owner-only policy for PROFILE records.
func (s *ProfileService) ImageAccess(ctx context.Context, userID string, inline bool) (*file.AccessGrant, *errs.CustomError) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, file.ErrNotExist) {
			return nil, errs.NewError(errs.ErrUserNotFound)
		}
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	if usr.ProfileImage == "" {
		return nil, errs.NewError(errs.ErrFileNotFound)
	}

	return s.fileService.RequestAccess(ctx, usr.ProfileImage, userID, inline)
}

// RemoveImage deletes the user's current profile image and clears it from the
// account. Removing an account without an image is a no-op.
func (s *ProfileService) RemoveImage(ctx context.Context, userID string) *errs.CustomError {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, file.ErrNotExist) {
			return errs.NewError(errs.ErrUserNotFound)
		}
		return errs.NewError(errs.ErrUnknown, err)
	}

	if usr.ProfileImage == "" {
		return nil
	}

	s.removeCurrentImage(ctx, usr)

	if err := s.users.UpdateProfileImage(ctx, usr.ID, ""); err != nil {
		return errs.NewError(errs.ErrUnknown, err)
	}

	return nil
}

// removeCurrentImage best-effort deletes the file behind the user's current
// profile image. Failures are logged and swallowed.
func (s *ProfileService) removeCurrentImage(ctx context.Context, usr *User) {
	if usr.ProfileImage == "" {
		return
	}

	rec, err := s.files.GetByStoredName(ctx, usr.ProfileImage)
	if err != nil {
		if !errors.Is(err, file.ErrNotExist) {
			logx.Warn(fmt.Sprintf("Failed to resolve previous profile image: %v", err), "user_id", usr.ID)
		}
		return
	}

	if _, customErr := s.fileService.DeleteOwned(ctx, rec.ID, usr.ID); customErr != nil {
		logx.Warn("Failed to clean up previous profile image", "user_id", usr.ID, "error", customErr.Message)
	}
}
