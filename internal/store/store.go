package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates a missing record lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail indicates a unique-email violation caught by the
	// database after validation passed.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrScheduleTaken indicates the transactional overlap re-check found a
	// conflicting appointment committed between validation and commit.
	ErrScheduleTaken = errors.New("participant schedule conflict")
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// HealthCheck verifies the database is reachable.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// uniqueViolation reports whether err is a postgres unique-constraint error.
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
