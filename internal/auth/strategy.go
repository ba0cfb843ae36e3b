package auth

import (
	"errors"
	"fmt"
	"time"

	dom "github.com/JulianPasquale/fudo-rack/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single failure returned by Verify. Callers cannot
// tell a bad signature from an expired or malformed token, so the response
// never leaks why verification failed.
var ErrInvalidToken = errors.New("invalid token")

// Claims carried inside issued tokens.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	UserID   string `json:"user_id"`
}

// TokenStrategy issues and verifies signed, time-bound tokens. Implementations
// are stateless and safe for concurrent use; swapping the scheme must not
// require changes in Service or the middleware.
type TokenStrategy interface {
	Issue(user dom.User) (string, error)
	Verify(token string) (Claims, error)
	TTL() time.Duration
}

// JWTStrategy signs HS256 tokens with a symmetric secret.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTStrategy returns a JWTStrategy with the given secret and token TTL.
func NewJWTStrategy(secret []byte, ttl time.Duration) *JWTStrategy {
	return &JWTStrategy{secret: secret, ttl: ttl}
}

// Issue creates a signed token for the user, valid for TTL from now.
func (s *JWTStrategy) Issue(user dom.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Username: user.Username,
		UserID:   user.ID,
	})

	return token.SignedString(s.secret)
}

// Verify parses the token and returns its claims. Signature mismatch, expiry
// and malformed input all come back as ErrInvalidToken.
func (s *JWTStrategy) Verify(tokenString string) (Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	return *claims, nil
}

// TTL returns the validity duration of issued tokens.
func (s *JWTStrategy) TTL() time.Duration {
	return s.ttl
}
