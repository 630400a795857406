package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/observability"
)

// TokenIssuer is the part of TokenService the login flow needs.
type TokenIssuer interface {
	GenerateToken(subject string) (string, error)
}

// AuthService logs in the single admin against a bcrypt hash from config.
type AuthService struct {
	passwordHash string
	tokens       TokenIssuer
}

func NewAuthService(passwordHash string, tokens TokenIssuer) *AuthService {
	return &AuthService{
		passwordHash: passwordHash,
		tokens:       tokens,
	}
}

func (s *AuthService) Login(ctx context.Context, password string) (string, error) {
	logger := observability.LoggerFromContext(ctx)

	if s.passwordHash == "" {
		return "", domain.ErrInvalidCredentials
	}

	if err := domain.CheckPassword(s.passwordHash, password); err != nil {
		logger.Warn("admin login rejected")
		return "", err
	}

	token, err := s.tokens.GenerateToken(domain.AdminSubject)
	if err != nil {
		return "", fmt.Errorf("auth service: login failed: %w", err)
	}

	logger.Info("admin logged in")
	return token, nil
}
