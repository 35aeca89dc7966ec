package user

import "context"

// Repository exposes account persistence operations.
type Repository interface {
	GetByID(ctx context.Context, userID string) (User, bool, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	Create(ctx context.Context, item User) error
}

// TokenRepository stores opaque bearer tokens issued at login.
type TokenRepository interface {
	Save(ctx context.Context, token, userID string) error
	Resolve(ctx context.Context, token string) (string, bool, error)
}
