package auth

import (
	"context"
	"errors"
	"time"
)

// Identity — verified user identity attached to a session.
type Identity struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
	Subject string `json:"sub"`
}

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IdentityVerifier validates an externally issued ID token and returns
// the identity it asserts.
type IdentityVerifier interface {
	Verify(ctx context.Context, rawToken string) (Identity, error)
}

var (
	ErrInvalidToken = errors.New("invalid_token")
	ErrExpired      = errors.New("token_expired")
)
