package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(subject string) (string, error) {
	args := m.Called(subject)
	return args.String(0), args.Error(1)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := domain.HashPassword("StrongPassword123!")
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("Success: Correct password yields a token", func(t *testing.T) {
		tokens := NewTokenService("secret", "kanso-weekly-test", time.Hour)
		service := NewAuthService(hash, tokens)

		token, err := service.Login(ctx, "StrongPassword123!")

		require.NoError(t, err)
		subject, err := tokens.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, domain.AdminSubject, subject)
	})

	t.Run("Error: Wrong password never reaches the issuer", func(t *testing.T) {
		issuer := new(MockTokenIssuer)
		service := NewAuthService(hash, issuer)

		_, err := service.Login(ctx, "nope-nope-nope")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		issuer.AssertNotCalled(t, "GenerateToken", mock.Anything)
	})

	t.Run("Error: No hash configured", func(t *testing.T) {
		service := NewAuthService("", new(MockTokenIssuer))
		_, err := service.Login(ctx, "StrongPassword123!")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Error: Signing failure", func(t *testing.T) {
		issuer := new(MockTokenIssuer)
		issuer.On("GenerateToken", domain.AdminSubject).Return("", errors.New("hsm offline"))
		service := NewAuthService(hash, issuer)

		_, err := service.Login(ctx, "StrongPassword123!")

		assert.Error(t, err)
		issuer.AssertExpectations(t)
	})
}
