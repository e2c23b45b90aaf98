package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ktchat/internal/app/file"
	"ktchat/internal/app/user"
	"ktchat/internal/pkg/errs"
)

type memUsers struct {
	byID map[string]*user.User
}

func (s *memUsers) GetByID(ctx context.Context, id string) (*user.User, error) {
	usr, ok := s.byID[id]
	if !ok {
		return nil, file.ErrNotExist
	}
	cp := *usr
	return &cp, nil
}

func (s *memUsers) UpdateProfileImage(ctx context.Context, id, storedName string) error {
	usr, ok := s.byID[id]
	if !ok {
		return file.ErrNotExist
	}
	usr.ProfileImage = storedName
	return nil
}

type memFiles struct {
	byID map[string]*file.Record
}

func (s *memFiles) Create(ctx context.Context, rec *file.Record) error {
	cp := *rec
	s.byID[rec.ID] = &cp
	return nil
}

func (s *memFiles) GetByID(ctx context.Context, id string) (*file.Record, error) {
	rec, ok := s.byID[id]
	if !ok {
		return nil, file.ErrNotExist
	}
	cp := *rec
	return &cp, nil
}

func (s *memFiles) GetByStoredName(ctx context.Context, storedName string) (*file.Record, error) {
	for _, rec := range s.byID {
		if rec.StoredName == storedName {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, file.ErrNotExist
}

func (s *memFiles) Delete(ctx context.Context, id string) error {
	delete(s.byID, id)
	return nil
}

type noLinks struct{}

func (noLinks) FindByFileID(ctx context.Context, fileID string) (*file.MessageLink, error) {
	return nil, file.ErrNotExist
}

type noRooms struct{}

func (noRooms) GetByID(ctx context.Context, roomID string) (*file.Room, error) {
	return nil, file.ErrNotExist
}

type stubSigner struct {
	deletedKeys []string
}

func (s *stubSigner) PresignUpload(ctx context.Context, key, mimeType string, fileSize int64, duration time.Duration) (string, error) {
	return "https://store.test/" + key + "?X-Amz-Signature=put", nil
}

func (s *stubSigner) PresignDownload(ctx context.Context, key, contentType, contentDisposition string, duration time.Duration) (string, error) {
	return "https://store.test/" + key + "?X-Amz-Signature=get", nil
}

func (s *stubSigner) Delete(ctx context.Context, key string) error {
	s.deletedKeys = append(s.deletedKeys, key)
	return nil
}

type profileFixture struct {
	svc    *user.ProfileService
	users  *memUsers
	files  *memFiles
	signer *stubSigner
}

func newProfileFixture() *profileFixture {
	users := &memUsers{byID: map[string]*user.User{
		"u1": {ID: "u1", Email: "u1@example.com", Nickname: "one"},
	}}
	files := &memFiles{byID: make(map[string]*file.Record)}
	signer := &stubSigner{}
	fileService := file.NewService(files, noLinks{}, noRooms{}, signer, "uploads", 15*time.Minute)
	svc := user.NewProfileService(users, files, fileService, 5*file.MiB)
	return &profileFixture{svc: svc, users: users, files: files, signer: signer}
}

func TestRequestImageUpload(t *testing.T) {
	fx := newProfileFixture()

	grant, customErr := fx.svc.RequestImageUpload(context.Background(), "u1", file.UploadMetadata{
		OriginalName: "me.jpg",
		ContentType:  "image/jpeg",
		Size:         1024,
	})
	require.Nil(t, customErr)

	assert.Equal(t, file.CategoryProfile, grant.File.Category)
	assert.Equal(t, "uploads/profile/u1/"+grant.File.StoredName, grant.File.ObjectKey)

	// The account now points at the new stored name.
	usr, err := fx.users.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, grant.File.StoredName, usr.ProfileImage)
}

func TestRequestImageUpload_ReplacesPreviousImage(t *testing.T) {
	fx := newProfileFixture()

	first, customErr := fx.svc.RequestImageUpload(context.Background(), "u1", file.UploadMetadata{
		OriginalName: "old.png", ContentType: "image/png", Size: 512,
	})
	require.Nil(t, customErr)

	second, customErr := fx.svc.RequestImageUpload(context.Background(), "u1", file.UploadMetadata{
		OriginalName: "new.png", ContentType: "image/png", Size: 512,
	})
	require.Nil(t, customErr)

	// The first image's record and object are gone.
	_, err := fx.files.GetByID(context.Background(), first.File.ID)
	assert.ErrorIs(t, err, file.ErrNotExist)
	assert.Contains(t, fx.signer.deletedKeys, first.File.ObjectKey)

	usr, err := fx.users.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, second.File.StoredName, usr.ProfileImage)
}

func TestRequestImageUpload_Rejections(t *testing.T) {
	fx := newProfileFixture()

	t.Run("unknown user", func(t *testing.T) {
		_, customErr := fx.svc.RequestImageUpload(context.Background(), "ghost", file.UploadMetadata{
			OriginalName: "me.jpg", ContentType: "image/jpeg", Size: 1024,
		})
		require.NotNil(t, customErr)
		assert.Equal(t, errs.ErrUserNotFound, customErr.Code)
	})

	t.Run("non-image type", func(t *testing.T) {
		_, customErr := fx.svc.RequestImageUpload(context.Background(), "u1", file.UploadMetadata{
			OriginalName: "cv.pdf", ContentType: "application/pdf", Size: 1024,
		})
		require.NotNil(t, customErr)
		assert.Equal(t, errs.ErrProfileImageTypeInvalid, customErr.Code)
	})

	t.Run("over configured max", func(t *testing.T) {
		_, customErr := fx.svc.RequestImageUpload(context.Background(), "u1", file.UploadMetadata{
			OriginalName: "me.jpg", ContentType: "image/jpeg", Size: 5*file.MiB + 1,
		})
		require.NotNil(t, customErr)
		assert.Equal(t, errs.ErrProfileImageTooLarge, customErr.Code)
	})
}

func TestImageAccess(t *testing.T) {
	fx := newProfileFixture()

	t.Run("no image set", func(t *testing.T) {
		_, customErr := fx.svc.ImageAccess(context.Background(), "u1", true)
		require.NotNil(t, customErr)
		assert.Equal(t, errs.ErrFileNotFound, customErr.Code)
	})

	grant, customErr := fx.svc.RequestImageUpload(context.Background(), "u1", file.UploadMetadata{
		OriginalName: "me.jpg", ContentType: "image/jpeg", Size: 1024,
	})
	require.Nil(t, customErr)

	t.Run("owner gets a signed view URL", func(t *testing.T) {
		access, customErr := fx.svc.ImageAccess(context.Background(), "u1", true)
		require.Nil(t, customErr)
		assert.Equal(t, grant.File.StoredName, access.Filename)
		assert.Equal(t, "image/jpeg", access.ContentType)
		assert.True(t, access.Inline)
	})
}

func TestRemoveImage(t *testing.T) {
	fx := newProfileFixture()

	t.Run("no image is a no-op", func(t *testing.T) {
		assert.Nil(t, fx.svc.RemoveImage(context.Background(), "u1"))
	})

	grant, customErr := fx.svc.RequestImageUpload(context.Background(), "u1", file.UploadMetadata{
		OriginalName: "me.jpg", ContentType: "image/jpeg", Size: 1024,
	})
	require.Nil(t, customErr)

	t.Run("removes the file and clears the account", func(t *testing.T) {
		require.Nil(t, fx.svc.RemoveImage(context.Background(), "u1"))

		_, err := fx.files.GetByID(context.Background(), grant.File.ID)
		assert.ErrorIs(t, err, file.ErrNotExist)

		usr, err := fx.users.GetByID(context.Background(), "u1")
		require.NoError(t, err)
		assert.Empty(t, usr.ProfileImage)
	})
}
