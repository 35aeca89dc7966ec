package memory

import (
	"context"
	"sync"

	"github.com/futsalverse/futsal-manager/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]user.User)}
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.users[userID]
	return item, ok, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.users {
		if item.Email == email {
			return item, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *UserRepository) Create(_ context.Context, item user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[item.ID] = item
	return nil
}

type TokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{tokens: make(map[string]string)}
}

func (r *TokenRepository) Save(_ context.Context, token, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[token] = userID
	return nil
}

func (r *TokenRepository) Resolve(_ context.Context, token string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.tokens[token]
	return userID, ok, nil
}
