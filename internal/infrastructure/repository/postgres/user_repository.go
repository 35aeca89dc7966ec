package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/futsalverse/futsal-manager/internal/domain/user"
)

const userSelectColumns = `id, public_id, email, name, password_hash, created_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	query := `SELECT ` + userSelectColumns + ` FROM users WHERE public_id = $1`

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user: %w", err)
	}
	return userFromRow(row), true, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	query := `SELECT ` + userSelectColumns + ` FROM users WHERE email = $1`

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, email); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by email: %w", err)
	}
	return userFromRow(row), true, nil
}

func (r *UserRepository) Create(ctx context.Context, item user.User) error {
	query := `INSERT INTO users (public_id, email, name, password_hash) VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, query, item.ID, item.Email, item.Name, item.PasswordHash); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

type TokenRepository struct {
	db *sqlx.DB
}

func NewTokenRepository(db *sqlx.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Save(ctx context.Context, token, userID string) error {
	query := `INSERT INTO tokens (token, user_public_id) VALUES ($1, $2)
ON CONFLICT (token) DO UPDATE SET user_public_id = EXCLUDED.user_public_id`

	if _, err := r.db.ExecContext(ctx, query, token, userID); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (r *TokenRepository) Resolve(ctx context.Context, token string) (string, bool, error) {
	var userID string
	if err := r.db.GetContext(ctx, &userID, `SELECT user_public_id FROM tokens WHERE token = $1`, token); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("resolve token: %w", err)
	}
	return userID, true, nil
}
