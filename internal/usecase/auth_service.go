package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/futsalverse/futsal-manager/internal/domain/user"
	"github.com/futsalverse/futsal-manager/internal/platform/id"
	"github.com/futsalverse/futsal-manager/internal/platform/logging"
)

const passwordMinLength = 8

type AuthService struct {
	userRepo  user.Repository
	tokenRepo user.TokenRepository
	idGen     id.Generator
	logger    *logging.Logger
}

func NewAuthService(userRepo user.Repository, tokenRepo user.TokenRepository, idGen id.Generator, logger *logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &AuthService{userRepo: userRepo, tokenRepo: tokenRepo, idGen: idGen, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, email, name, password string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Register")
	defer span.End()

	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" {
		return user.User{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(password) < passwordMinLength {
		return user.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, passwordMinLength)
	}

	if _, exists, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		return user.User{}, fmt.Errorf("get user by email: %w", err)
	} else if exists {
		return user.User{}, fmt.Errorf("%w: email already registered", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.idGen.NewID()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	item := user.User{
		ID:           userID,
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := item.Validate(); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.userRepo.Create(ctx, item); err != nil {
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", item.ID)
	return item, nil
}

type LoginOutput struct {
	User  user.User
	Token string
}

func (s *AuthService) Login(ctx context.Context, email, password string) (LoginOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	item, exists, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return LoginOutput{}, fmt.Errorf("get user by email: %w", err)
	}
	if !exists {
		return LoginOutput{}, fmt.Errorf("%w: unknown email or wrong password", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(item.PasswordHash), []byte(password)); err != nil {
		return LoginOutput{}, fmt.Errorf("%w: unknown email or wrong password", ErrUnauthorized)
	}

	token, err := s.mintToken()
	if err != nil {
		return LoginOutput{}, err
	}
	if err := s.tokenRepo.Save(ctx, token, item.ID); err != nil {
		return LoginOutput{}, fmt.Errorf("save token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", item.ID)
	return LoginOutput{User: item, Token: token}, nil
}

// VerifyToken resolves a bearer token to the user it was issued to.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.VerifyToken")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return user.User{}, fmt.Errorf("%w: missing token", ErrUnauthorized)
	}

	userID, exists, err := s.tokenRepo.Resolve(ctx, token)
	if err != nil {
		return user.User{}, fmt.Errorf("resolve token: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}

	item, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: token user no longer exists", ErrUnauthorized)
	}
	return item, nil
}

// VerifyAccessToken adapts VerifyToken to the principal shape the HTTP
// middleware carries through request contexts.
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	item, err := s.VerifyToken(ctx, token)
	if err != nil {
		return user.Principal{}, err
	}
	return user.Principal{UserID: item.ID, Email: item.Email, Name: item.Name}, nil
}

// mintToken concatenates two random IDs so tokens are twice as long as
// regular entity IDs.
func (s *AuthService) mintToken() (string, error) {
	a, err := s.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	b, err := s.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return a + b, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
