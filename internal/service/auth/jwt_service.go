// Package auth validates bearer tokens issued by the external identity
// provider. The token subject is the user id that owns interviews and answers.
package auth

import (
	"context"
	"time"
)

// JWTService defines operations on JWT bearer tokens.
type JWTService interface {
	// ValidateToken validates the token string and extracts the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid, ErrMissingSubject or
	// ErrInvalidToken when validation fails.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateToken signs a token for subject that expires after lifetime.
	// It is used by local tooling and tests; production tokens come from the
	// identity provider.
	GenerateToken(ctx context.Context, subject string, lifetime time.Duration) (string, error)
}

// Claims are the validated token claims the API relies on.
type Claims struct {
	// Subject is the external user id.
	Subject   string    `json:"sub"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
