package file_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ktchat/internal/app/file"
	"ktchat/internal/pkg/errs"
)

type serviceFixture struct {
	svc    *file.Service
	store  *memStore
	links  *memLinks
	rooms  *memRooms
	signer *fakeSigner
}

func newServiceFixture() *serviceFixture {
	store := newMemStore()
	links := newMemLinks()
	rooms := newMemRooms()
	signer := &fakeSigner{}
	svc := file.NewService(store, links, rooms, signer, "uploads", 15*time.Minute)
	return &serviceFixture{svc: svc, store: store, links: links, rooms: rooms, signer: signer}
}

func TestRequestUpload(t *testing.T) {
	fx := newServiceFixture()

	grant, customErr := fx.svc.RequestUpload(context.Background(), file.UploadMetadata{
		OriginalName: "photo.PNG",
		ContentType:  "image/png",
		Size:         1048576,
	}, "u1", file.CategoryChat)
	require.Nil(t, customErr)

	rec := grant.File
	assert.Regexp(t, `^\d+_[0-9a-f]{16}\.PNG$`, rec.StoredName)
	assert.Equal(t, "photo.PNG", rec.OriginalName)
	assert.Equal(t, "image/png", rec.MimeType)
	assert.Equal(t, int64(1048576), rec.Size)
	assert.Equal(t, "uploads/chat/u1/"+rec.StoredName, rec.ObjectKey)
	assert.Equal(t, "u1", rec.UploaderID)
	assert.Equal(t, file.CategoryChat, rec.Category)

	// The record is persisted before the signer is consulted.
	stored, err := fx.store.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.StoredName, stored.StoredName)

	// The PUT signature binds key, content type, and declared size.
	assert.Equal(t, rec.ObjectKey, fx.signer.uploadKey)
	assert.Equal(t, "image/png", fx.signer.uploadMimeType)
	assert.Equal(t, int64(1048576), fx.signer.uploadSize)
	assert.Equal(t, 15*time.Minute, fx.signer.lastPresignExpiry)

	assert.Equal(t, "https://store.test/"+rec.ObjectKey+"?X-Amz-Signature=put", grant.UploadURL)
	assert.Equal(t, map[string]string{"Content-Type": "image/png"}, grant.Headers)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), grant.ExpiresAt, 5*time.Second)
}

func TestRequestUpload_InvalidMetadata(t *testing.T) {
	fx := newServiceFixture()

	grant, customErr := fx.svc.RequestUpload(context.Background(), file.UploadMetadata{
		OriginalName: "x.jpg",
		ContentType:  "image/png",
		Size:         1,
	}, "u1", file.CategoryChat)
	require.NotNil(t, customErr)
	assert.Nil(t, grant)
	assert.Equal(t, errs.ErrFileExtensionMismatch, customErr.Code)
	assert.Empty(t, fx.store.byID, "no record persisted on validation failure")
}

func TestRequestUpload_SignerFailure(t *testing.T) {
	fx := newServiceFixture()
	fx.signer.failPresign = true

	grant, customErr := fx.svc.RequestUpload(context.Background(), file.UploadMetadata{
		OriginalName: "photo.png",
		ContentType:  "image/png",
		Size:         1024,
	}, "u1", file.CategoryChat)
	require.NotNil(t, customErr)
	assert.Nil(t, grant)
	assert.Equal(t, errs.ErrFileStorageFailed, customErr.Code)
}

func TestRequestAccess_Download(t *testing.T) {
	fx := newServiceFixture()
	rec := &file.Record{
		ID:           "f1",
		StoredName:   "123_abcd.pdf",
		OriginalName: "quarterly report.pdf",
		MimeType:     "application/pdf",
		Size:         2048,
		ObjectKey:    "uploads/chat/u1/123_abcd.pdf",
		UploaderID:   "u1",
		Category:     file.CategoryChat,
	}
	require.NoError(t, fx.store.Create(context.Background(), rec))
	fx.links.byFileID["f1"] = &file.MessageLink{MessageID: "m1", RoomID: "r1"}
	fx.rooms.byID["r1"] = &file.Room{ID: "r1", Participants: []string{"u1", "u2"}}

	grant, customErr := fx.svc.RequestAccess(context.Background(), "123_abcd.pdf", "u2", false)
	require.Nil(t, customErr)

	assert.Equal(t, "uploads/chat/u1/123_abcd.pdf", fx.signer.downloadKey)
	assert.Equal(t, "application/pdf", fx.signer.downloadType)
	assert.Equal(t, "attachment; filename*=UTF-8''quarterly%20report.pdf", fx.signer.downloadDispo)

	assert.Equal(t, "123_abcd.pdf", grant.Filename)
	assert.Equal(t, "application/pdf", grant.ContentType)
	assert.False(t, grant.Inline)
}

func TestRequestAccess_Inline(t *testing.T) {
	fx := newServiceFixture()
	rec := &file.Record{
		ID:           "f1",
		StoredName:   "123_abcd.png",
		OriginalName: "사진.png",
		MimeType:     "image/png",
		Size:         512,
		ObjectKey:    "uploads/profile/u1/123_abcd.png",
		UploaderID:   "u1",
		Category:     file.CategoryProfile,
	}
	require.NoError(t, fx.store.Create(context.Background(), rec))

	grant, customErr := fx.svc.RequestAccess(context.Background(), "123_abcd.png", "u1", true)
	require.Nil(t, customErr)
	assert.True(t, grant.Inline)

	assert.Equal(t,
		`inline; filename="사진.png"; filename*=UTF-8''%EC%82%AC%EC%A7%84.png`,
		fx.signer.downloadDispo,
	)
}

func TestRequestAccess_Errors(t *testing.T) {
	fx := newServiceFixture()

	t.Run("unknown stored name", func(t *testing.T) {
		_, customErr := fx.svc.RequestAccess(context.Background(), "missing.png", "u1", false)
		require.NotNil(t, customErr)
		assert.Equal(t, errs.ErrFileNotFound, customErr.Code)
	})

	t.Run("access denied", func(t *testing.T) {
		rec := chatRecord("f1", "u1")
		require.NoError(t, fx.store.Create(context.Background(), rec))
		fx.links.byFileID["f1"] = &file.MessageLink{MessageID: "m1", RoomID: "r1"}
		fx.rooms.byID["r1"] = &file.Room{ID: "r1", Participants: []string{"u1"}}

		_, customErr := fx.svc.RequestAccess(context.Background(), rec.StoredName, "stranger", false)
		require.NotNil(t, customErr)
		assert.Equal(t, errs.ErrFileAccessDenied, customErr.Code)
		assert.Empty(t, fx.signer.downloadKey, "no URL signed for a denied request")
	})
}

func TestDeleteOwned(t *testing.T) {
	fx := newServiceFixture()
	rec := chatRecord("f1", "u1")
	require.NoError(t, fx.store.Create(context.Background(), rec))

	t.Run("non-owner forbidden", func(t *testing.T) {
		deleted, customErr := fx.svc.DeleteOwned(context.Background(), "f1", "u2")
		require.NotNil(t, customErr)
		assert.False(t, deleted)
		assert.Equal(t, errs.ErrFileDeleteForbidden, customErr.Code)
	})

	t.Run("owner deletes record and object", func(t *testing.T) {
		deleted, customErr := fx.svc.DeleteOwned(context.Background(), "f1", "u1")
		require.Nil(t, customErr)
		assert.True(t, deleted)
		assert.Contains(t, fx.signer.deletedKeys, rec.ObjectKey)

		_, err := fx.store.GetByID(context.Background(), "f1")
		assert.ErrorIs(t, err, file.ErrNotExist)
	})

	t.Run("missing file", func(t *testing.T) {
		_, customErr := fx.svc.DeleteOwned(context.Background(), "f1", "u1")
		require.NotNil(t, customErr)
		assert.Equal(t, errs.ErrFileNotFound, customErr.Code)
	})
}

func TestDeleteOwned_ObjectStoreFailureIsSwallowed(t *testing.T) {
	fx := newServiceFixture()
	fx.signer.failDelete = true
	rec := chatRecord("f1", "u1")
	require.NoError(t, fx.store.Create(context.Background(), rec))

	deleted, customErr := fx.svc.DeleteOwned(context.Background(), "f1", "u1")
	require.Nil(t, customErr)
	assert.True(t, deleted)

	// The metadata record is gone even though the object delete failed.
	_, err := fx.store.GetByID(context.Background(), "f1")
	assert.ErrorIs(t, err, file.ErrNotExist)
}

func TestDeleteByKey(t *testing.T) {
	fx := newServiceFixture()

	t.Run("empty key is a no-op", func(t *testing.T) {
		assert.False(t, fx.svc.DeleteByKey(context.Background(), "  "))
		assert.Empty(t, fx.signer.deletedKeys)
	})

	t.Run("removes record and object", func(t *testing.T) {
		rec := chatRecord("f1", "u1")
		require.NoError(t, fx.store.Create(context.Background(), rec))

		assert.True(t, fx.svc.DeleteByKey(context.Background(), rec.ObjectKey))
		assert.Contains(t, fx.signer.deletedKeys, rec.ObjectKey)

		_, err := fx.store.GetByID(context.Background(), "f1")
		assert.ErrorIs(t, err, file.ErrNotExist)
	})

	t.Run("idempotent for an already-removed key", func(t *testing.T) {
		assert.True(t, fx.svc.DeleteByKey(context.Background(), "uploads/chat/u1/f1.png"))
	})
}

func TestBuildContentDisposition(t *testing.T) {
	assert.Equal(t,
		`attachment; filename*=UTF-8''report.pdf`,
		file.BuildContentDisposition("report.pdf", false),
	)
	assert.Equal(t,
		`inline; filename="a b.png"; filename*=UTF-8''a%20b.png`,
		file.BuildContentDisposition("a b.png", true),
	)
}
