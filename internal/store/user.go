package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"appointment-booking-api/internal/model"
)

// CreateUser inserts a new user. Email is expected to be lower-cased by the
// caller; the unique index on LOWER(email) backstops it either way.
func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	const op = "store.CreateUser"

	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES ($1,$2,$3)
		 RETURNING created_at`,
		u.ID, u.Email, u.PasswordHash,
	).Scan(&u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	const op = "store.UserByEmail"

	u := &model.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at
		 FROM users WHERE LOWER(email) = LOWER($1)`, email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UserByID backs token validation: a token whose subject no longer exists
// must not authenticate.
func (s *Store) UserByID(ctx context.Context, id string) (*model.User, error) {
	const op = "store.UserByID"

	u := &model.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
