package account

import (
	"context"
	"fmt"
	"time"

	"github.com/contentstudio/studio/pkg/auth"
	"github.com/contentstudio/studio/pkg/pg"
)

const (
	selectUserByEmail = `SELECT id, email, name, is_verified, created_at, verified_at FROM users WHERE email = $1`
	insertUser        = `INSERT INTO users (id, email, name, is_verified, created_at, verified_at) VALUES ($1, $2, $3, $4, $5, $6)`
	markUserVerified  = `UPDATE users SET is_verified = TRUE, verified_at = COALESCE(verified_at, $2) WHERE email = $1`
)

// PostgresStorage implements auth.Storage on the users table.
type PostgresStorage struct {
	db  pg.DBTX
	now func() time.Time
}

// NewPostgresStorage creates a store over a pool or transaction.
func NewPostgresStorage(db pg.DBTX) *PostgresStorage {
	return &PostgresStorage{db: db, now: time.Now}
}

func (s *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	var u auth.User
	err := s.db.QueryRow(ctx, selectUserByEmail, email).
		Scan(&u.ID, &u.Email, &u.Name, &u.IsVerified, &u.CreatedAt, &u.VerifiedAt)
	if pg.IsNotFoundError(err) {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("account: get user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStorage) CreateUser(ctx context.Context, u *auth.User) error {
	_, err := s.db.Exec(ctx, insertUser, u.ID, u.Email, u.Name, u.IsVerified, u.CreatedAt, u.VerifiedAt)
	if pg.IsDuplicateKeyError(err) {
		return auth.ErrEmailAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("account: create user: %w", err)
	}
	return nil
}

func (s *PostgresStorage) MarkVerified(ctx context.Context, email string) error {
	tag, err := s.db.Exec(ctx, markUserVerified, email, s.now().UTC())
	if err != nil {
		return fmt.Errorf("account: mark verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}
