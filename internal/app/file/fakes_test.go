package file_test

import (
	"context"
	"errors"
	"time"

	"ktchat/internal/app/file"
)

// memStore is an in-memory file.Store used by the service tests.
type memStore struct {
	byID   map[string]*file.Record
	failOn string
}

func newMemStore() *memStore {
	return &memStore{byID: make(map[string]*file.Record)}
}

func (s *memStore) Create(ctx context.Context, rec *file.Record) error {
	if s.failOn == "create" {
		return errors.New("store unavailable")
	}
	cp := *rec
	s.byID[rec.ID] = &cp
	return nil
}

func (s *memStore) GetByID(ctx context.Context, id string) (*file.Record, error) {
	rec, ok := s.byID[id]
	if !ok {
		return nil, file.ErrNotExist
	}
	cp := *rec
	return &cp, nil
}

func (s *memStore) GetByStoredName(ctx context.Context, storedName string) (*file.Record, error) {
	for _, rec := range s.byID {
		if rec.StoredName == storedName {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, file.ErrNotExist
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	delete(s.byID, id)
	return nil
}

// memLinks is an in-memory file.MessageLinkStore keyed by file ID.
type memLinks struct {
	byFileID map[string]*file.MessageLink
}

func newMemLinks() *memLinks {
	return &memLinks{byFileID: make(map[string]*file.MessageLink)}
}

func (s *memLinks) FindByFileID(ctx context.Context, fileID string) (*file.MessageLink, error) {
	link, ok := s.byFileID[fileID]
	if !ok {
		return nil, file.ErrNotExist
	}
	return link, nil
}

// memRooms is an in-memory file.RoomReader.
type memRooms struct {
	byID map[string]*file.Room
}

func newMemRooms() *memRooms {
	return &memRooms{byID: make(map[string]*file.Room)}
}

func (s *memRooms) GetByID(ctx context.Context, roomID string) (*file.Room, error) {
	room, ok := s.byID[roomID]
	if !ok {
		return nil, file.ErrNotExist
	}
	return room, nil
}

// fakeSigner records the parameters of the last presign/delete call and
// returns deterministic URLs.
type fakeSigner struct {
	uploadKey         string
	uploadMimeType    string
	uploadSize        int64
	downloadKey       string
	downloadType      string
	downloadDispo     string
	deletedKeys       []string
	failPresign       bool
	failDelete        bool
	lastPresignExpiry time.Duration
}

func (f *fakeSigner) PresignUpload(ctx context.Context, key, mimeType string, fileSize int64, duration time.Duration) (string, error) {
	if f.failPresign {
		return "", errors.New("signer unavailable")
	}
	f.uploadKey = key
	f.uploadMimeType = mimeType
	f.uploadSize = fileSize
	f.lastPresignExpiry = duration
	return "https://store.test/" + key + "?X-Amz-Signature=put", nil
}

func (f *fakeSigner) PresignDownload(ctx context.Context, key, contentType, contentDisposition string, duration time.Duration) (string, error) {
	if f.failPresign {
		return "", errors.New("signer unavailable")
	}
	f.downloadKey = key
	f.downloadType = contentType
	f.downloadDispo = contentDisposition
	f.lastPresignExpiry = duration
	return "https://store.test/" + key + "?X-Amz-Signature=get", nil
}

func (f *fakeSigner) Delete(ctx context.Context, key string) error {
	if f.failDelete {
		return errors.New("store unavailable")
	}
	f.deletedKeys = append(f.deletedKeys, key)
	return nil
}
