package mocks

import (
	"context"
	"time"

	"github.com/aimock/aimock-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	ValidateTokenFn func(ctx context.Context, token string) (*auth.Claims, error)
	GenerateTokenFn func(ctx context.Context, subject string, lifetime time.Duration) (string, error)

	// Default response values
	Claims      *auth.Claims
	ValidateErr error
	Token       string
	GenerateErr error
}

var _ auth.JWTService = (*MockJWTService)(nil)

// ValidateToken implements auth.JWTService
func (m *MockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	return m.Claims, m.ValidateErr
}

// GenerateToken implements auth.JWTService
func (m *MockJWTService) GenerateToken(ctx context.Context, subject string, lifetime time.Duration) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, subject, lifetime)
	}
	return m.Token, m.GenerateErr
}
