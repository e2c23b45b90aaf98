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

type accessFixture struct {
	svc   *file.Service
	store *memStore
	links *memLinks
	rooms *memRooms
}

func newAccessFixture() *accessFixture {
	store := newMemStore()
	links := newMemLinks()
	rooms := newMemRooms()
	signer := &fakeSigner{}
	svc := file.NewService(store, links, rooms, signer, "uploads", 15*time.Minute)
	return &accessFixture{svc: svc, store: store, links: links, rooms: rooms}
}

func chatRecord(id, uploaderID string) *file.Record {
	return &file.Record{
		ID:         id,
		StoredName: id + ".png",
		MimeType:   "image/png",
		Size:       1024,
		ObjectKey:  "uploads/chat/" + uploaderID + "/" + id + ".png",
		UploaderID: uploaderID,
		Category:   file.CategoryChat,
	}
}

func TestVerifyReadAccess_ProfileOwnerOnly(t *testing.T) {
	fx := newAccessFixture()
	rec := &file.Record{ID: "f1", UploaderID: "u1", Category: file.CategoryProfile}

	assert.Nil(t, fx.svc.VerifyReadAccess(context.Background(), rec, "u1"))

	customErr := fx.svc.VerifyReadAccess(context.Background(), rec, "u2")
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrProfileImageAccessDenied, customErr.Code)
}

func TestVerifyReadAccess_ChatParticipant(t *testing.T) {
	fx := newAccessFixture()
	rec := chatRecord("f1", "u1")
	fx.links.byFileID["f1"] = &file.MessageLink{MessageID: "m1", RoomID: "r1"}
	fx.rooms.byID["r1"] = &file.Room{ID: "r1", Participants: []string{"u1", "u2"}}

	assert.Nil(t, fx.svc.VerifyReadAccess(context.Background(), rec, "u2"))

	customErr := fx.svc.VerifyReadAccess(context.Background(), rec, "u3")
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrFileAccessDenied, customErr.Code)
}

func TestVerifyReadAccess_ChatFailsClosed(t *testing.T) {
	fx := newAccessFixture()

	t.Run("no message link", func(t *testing.T) {
		rec := chatRecord("orphan", "u1")

		customErr := fx.svc.VerifyReadAccess(context.Background(), rec, "u1")
		require.NotNil(t, customErr)
		assert.Equal(t, errs.ErrFileMessageNotFound, customErr.Code)
	})

	t.Run("room gone", func(t *testing.T) {
		rec := chatRecord("f2", "u1")
		fx.links.byFileID["f2"] = &file.MessageLink{MessageID: "m2", RoomID: "gone"}

		customErr := fx.svc.VerifyReadAccess(context.Background(), rec, "u1")
		require.NotNil(t, customErr)
		assert.Equal(t, errs.ErrRoomNotFound, customErr.Code)
	})
}

func TestVerifyDeleteAccess_OwnershipOnly(t *testing.T) {
	fx := newAccessFixture()
	rec := chatRecord("f1", "u1")

	assert.Nil(t, fx.svc.VerifyDeleteAccess(rec, "u1"))

	// Room membership grants read but never delete.
	customErr := fx.svc.VerifyDeleteAccess(rec, "u2")
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrFileDeleteForbidden, customErr.Code)
}
