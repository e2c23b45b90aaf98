package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ktchat/internal/app/file"
)

// PgStore is the PostgreSQL implementation of Store.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore returns a user store backed by the given pool.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// GetByID returns the user with the given identifier, or file.ErrNotExist.
func (s *PgStore) GetByID(ctx context.Context, id string) (*User, error) {
	usr := &User{}

	err := s.pool.QueryRow(ctx, `
		SELECT id::text, email, nickname, profile_image, created_at, updated_at
		FROM users WHERE id = $1::uuid`, id).
		Scan(&usr.ID, &usr.Email, &usr.Nickname, &usr.ProfileImage, &usr.CreatedAt, &usr.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, file.ErrNotExist
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return usr, nil
}

// UpdateProfileImage records the stored filename of the user's current profile image.
func (s *PgStore) UpdateProfileImage(ctx context.Context, id, storedName string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET profile_image = $2, updated_at = now()
		WHERE id = $1::uuid`, id, storedName)
	if err != nil {
		return fmt.Errorf("failed to update profile image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return file.ErrNotExist
	}
	return nil
}
