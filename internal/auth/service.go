package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/paddlebook/paddlebook/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
)

type UserProvider interface {
	GetByUsername(ctx context.Context, username string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(ctx context.Context, username, passwordHash string) (*UserInfo, error)
}

type Service struct {
	jwt   *JWTManager
	users UserProvider
}

func NewService(jwt *JWTManager, users UserProvider) *Service {
	return &Service{jwt: jwt, users: users}
}

func (s *Service) Signup(
	ctx context.Context,
	req SignupRequest,
) (*SignupResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req.Username, passwordHash)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &SignupResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// Always burn a hash verification so missing accounts are
			// indistinguishable from wrong passwords.
			//nolint:errcheck // timing attack prevention
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.CreateToken(TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, req.RememberMe)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	return &LoginResponse{
		Token:    token,
		Username: user.Username,
	}, nil
}
