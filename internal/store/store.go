// Package store persists users, doctors and appointments in Postgres.
// Both uniqueness contracts (one account per email, one active booking per
// doctor slot) are enforced by unique indexes so that concurrent requests
// racing past the application-level checks still cannot violate them.
package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrSlotTaken       = errors.New("time slot already booked")
	ErrSlotUnavailable = errors.New("doctor not found or slot not offered")
	ErrNotFound        = errors.New("appointment not found")
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
