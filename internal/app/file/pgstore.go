package file

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ktchat/internal/app/db"
)

// PgStore is the PostgreSQL implementation of Store.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore returns a file record store backed by the given pool.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

const fileColumns = `id::text, filename, original_name, mime_type, size, object_key, uploader_id::text, category, upload_date`

// Create inserts a new file record.
func (s *PgStore) Create(ctx context.Context, rec *Record) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO files (id, filename, original_name, mime_type, size, object_key, uploader_id, category, upload_date)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7::uuid, $8, $9)`,
		rec.ID, rec.StoredName, rec.OriginalName, rec.MimeType, rec.Size,
		rec.ObjectKey, rec.UploaderID, string(rec.Category), rec.UploadDate,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			// Stored names are crypto-random, a collision here means a bug
			// in name generation rather than a retryable race.
			return fmt.Errorf("stored filename collision for %q: %w", rec.StoredName, err)
		}
		return fmt.Errorf("failed to insert file record: %w", err)
	}
	return nil
}

// GetByID returns the record with the given identifier, or ErrNotExist.
func (s *PgStore) GetByID(ctx context.Context, id string) (*Record, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+fileColumns+` FROM files WHERE id = $1::uuid`, id)
	return scanRecord(row)
}

// GetByStoredName returns the record with the given stored filename, or ErrNotExist.
func (s *PgStore) GetByStoredName(ctx context.Context, storedName string) (*Record, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+fileColumns+` FROM files WHERE filename = $1`, storedName)
	return scanRecord(row)
}

// Delete removes the record with the given identifier. Absent records are ignored.
func (s *PgStore) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM files WHERE id = $1::uuid`, id)
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}
	return nil
}

func scanRecord(row pgx.Row) (*Record, error) {
	rec := &Record{}
	var category string

	err := row.Scan(
		&rec.ID, &rec.StoredName, &rec.OriginalName, &rec.MimeType, &rec.Size,
		&rec.ObjectKey, &rec.UploaderID, &category, &rec.UploadDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("failed to scan file record: %w", err)
	}

	rec.Category = Category(category)
	return rec, nil
}

// PgMessageLinks resolves message links from the messages table.
type PgMessageLinks struct {
	pool *pgxpool.Pool
}

// NewPgMessageLinks returns a message link resolver backed by the given pool.
func NewPgMessageLinks(pool *pgxpool.Pool) *PgMessageLinks {
	return &PgMessageLinks{pool: pool}
}

// FindByFileID returns the link for the message referencing the file, or ErrNotExist.
func (s *PgMessageLinks) FindByFileID(ctx context.Context, fileID string) (*MessageLink, error) {
	link := &MessageLink{}

	err := s.pool.QueryRow(ctx,
		`SELECT id::text, room_id::text FROM messages WHERE file_id = $1::uuid`, fileID).
		Scan(&link.MessageID, &link.RoomID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("failed to resolve message link: %w", err)
	}

	return link, nil
}

// PgRoomReader resolves rooms and their participant sets.
type PgRoomReader struct {
	pool *pgxpool.Pool
}

// NewPgRoomReader returns a room reader backed by the given pool.
func NewPgRoomReader(pool *pgxpool.Pool) *PgRoomReader {
	return &PgRoomReader{pool: pool}
}

// GetByID returns the room with the given identifier, or ErrNotExist.
func (s *PgRoomReader) GetByID(ctx context.Context, roomID string) (*Room, error) {
	room := &Room{}

	err := s.pool.QueryRow(ctx,
		`SELECT id::text FROM rooms WHERE id = $1::uuid`, roomID).
		Scan(&room.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("failed to resolve room: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT user_id::text FROM room_participants WHERE room_id = $1::uuid`, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to load room participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan room participant: %w", err)
		}
		room.Participants = append(room.Participants, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate room participants: %w", err)
	}

	return room, nil
}
