package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dfarias/fincontrol/internal/auth"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, u *auth.User) error {
	query := `
		INSERT INTO users (email, password_hash, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, u.Email, u.PasswordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`

	var u auth.User

	err := s.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrUserNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return &u, nil
}
