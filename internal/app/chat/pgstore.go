package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ktchat/internal/app/db"
	"ktchat/internal/app/file"
)

// PgStore is the PostgreSQL implementation of Store.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore returns a chat store backed by the given pool.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// CreateRoom inserts a new room and its creator's membership in one transaction.
func (s *PgStore) CreateRoom(ctx context.Context, room *Room) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin room transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO rooms (id, name, created_by, created_at)
		VALUES ($1::uuid, $2, $3::uuid, $4)`,
		room.ID, room.Name, room.CreatedBy, room.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO room_participants (room_id, user_id)
		VALUES ($1::uuid, $2::uuid)`,
		room.ID, room.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert room creator membership: %w", err)
	}

	return tx.Commit(ctx)
}

// GetRoom returns the room with its participant set, or file.ErrNotExist.
func (s *PgStore) GetRoom(ctx context.Context, roomID string) (*Room, error) {
	room := &Room{}

	err := s.pool.QueryRow(ctx, `
		SELECT id::text, name, created_by::text, created_at
		FROM rooms WHERE id = $1::uuid`, roomID).
		Scan(&room.ID, &room.Name, &room.CreatedBy, &room.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, file.ErrNotExist
		}
		return nil, fmt.Errorf("failed to load room: %w", err)
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

// AddParticipant inserts a membership. Joining twice is not an error.
func (s *PgStore) AddParticipant(ctx context.Context, roomID, userID string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO room_participants (room_id, user_id)
		VALUES ($1::uuid, $2::uuid)`,
		roomID, userID,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("failed to insert room membership: %w", err)
	}
	return nil
}

// CreateMessage inserts a message; an attached file record becomes the
// message's file link.
func (s *PgStore) CreateMessage(ctx context.Context, msg *Message) error {
	var fileID *string
	if msg.File != nil {
		fileID = &msg.File.ID
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO messages (id, room_id, sender_id, content, file_id, created_at)
		VALUES ($1::uuid, $2::uuid, $3::uuid, $4, $5::uuid, $6)`,
		msg.ID, msg.RoomID, msg.SenderID, msg.Content, fileID, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// GetMessage returns the message with the given identifier, or file.ErrNotExist.
func (s *PgStore) GetMessage(ctx context.Context, messageID string) (*Message, error) {
	row := s.pool.QueryRow(ctx, messageSelect+` WHERE m.id = $1::uuid`, messageID)

	msg, err := scanMessage(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, file.ErrNotExist
		}
		return nil, fmt.Errorf("failed to load message: %w", err)
	}
	return msg, nil
}

// DeleteMessage removes the message with the given identifier.
func (s *PgStore) DeleteMessage(ctx context.Context, messageID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1::uuid`, messageID)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// ListMessages returns up to limit most recent messages of the room, oldest first.
func (s *PgStore) ListMessages(ctx context.Context, roomID string, limit int) ([]*Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT * FROM (`+messageSelect+`
			WHERE m.room_id = $1::uuid
			ORDER BY m.created_at DESC
			LIMIT $2
		) recent ORDER BY created_at ASC`,
		roomID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var msgs []*Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return msgs, nil
}

const messageSelect = `
	SELECT m.id::text, m.room_id::text, m.sender_id::text, m.content, m.created_at,
	       f.id::text, f.filename, f.original_name, f.mime_type, f.size,
	       f.object_key, f.uploader_id::text, f.category, f.upload_date
	FROM messages m
	LEFT JOIN files f ON f.id = m.file_id`

func scanMessage(row pgx.Row) (*Message, error) {
	msg := &Message{}

	var (
		fID, fStoredName, fOriginalName, fMimeType *string
		fSize                                      *int64
		fObjectKey, fUploaderID, fCategory         *string
		fUploadDate                                *time.Time
	)

	err := row.Scan(
		&msg.ID, &msg.RoomID, &msg.SenderID, &msg.Content, &msg.CreatedAt,
		&fID, &fStoredName, &fOriginalName, &fMimeType, &fSize,
		&fObjectKey, &fUploaderID, &fCategory, &fUploadDate,
	)
	if err != nil {
		return nil, err
	}

	if fID != nil {
		msg.File = &file.Record{
			ID:           *fID,
			StoredName:   *fStoredName,
			OriginalName: *fOriginalName,
			MimeType:     *fMimeType,
			Size:         *fSize,
			ObjectKey:    *fObjectKey,
			UploaderID:   *fUploaderID,
			Category:     file.Category(*fCategory),
			UploadDate:   *fUploadDate,
		}
	}

	return msg, nil
}
