package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCodec mints and verifies the signed session credential kept
// in the auth cookie. Tokens are HS256 over a server-held secret with
// a fixed TTL. There is no server-side revocation: logout only clears
// the cookie, so a leaked token stays valid until it expires.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
	clock  Clock
}

func NewSessionCodec(secret string, ttl time.Duration, clock Clock) *SessionCodec {
	return &SessionCodec{secret: []byte(secret), ttl: ttl, clock: clock}
}

// TTL is the session lifetime, also used for the cookie max-age.
func (c *SessionCodec) TTL() time.Duration { return c.ttl }

type sessionClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Issue embeds the identity plus issued-at/expiry into a signed token.
func (c *SessionCodec) Issue(id Identity) (string, error) {
	now := c.clock.Now().UTC()
	claims := sessionClaims{
		Email:   id.Email,
		Name:    id.Name,
		Picture: id.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks signature and expiry. Both failures are reported to
// the client identically (as not authenticated); the distinct
// sentinels exist for server-side logging only.
func (c *SessionCodec) Verify(token string) (Identity, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpired
		}
		return Identity{}, ErrInvalidToken
	}
	if !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}
	return Identity{
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
		Subject: claims.Subject,
	}, nil
}
