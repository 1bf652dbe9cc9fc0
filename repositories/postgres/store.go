package postgres

import (
	"context"
	"errors"
	"strconv"

	"clothing-store/models"
	"clothing-store/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// DB is the part of *pgxpool.Pool the store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var _ DB = (*pgxpool.Pool)(nil)

type Store struct {
	db DB
}

var _ repositories.Store = (*Store)(nil)

func New(db DB) *Store {
	return &Store{db: db}
}

// ensureUser reports ErrRecordNotFound for a user row that does not exist,
// so per-user reads match the other backends.
func (s *Store) ensureUser(ctx context.Context, rowID int64) error {
	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, rowID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return models.ErrRecordNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) Close(context.Context) error {
	s.db.Close()
	return nil
}

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrRecordNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return models.ErrDuplicateKey
		case foreignKeyViolation:
			return models.ErrRecordNotFound
		}
	}
	return err
}

// parseID converts an external row id. Malformed ids can never match a row.
func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func offset(page, limit int) int {
	return (page - 1) * limit
}
