package auth

import (
	"context"
	"errors"

	dom "github.com/JulianPasquale/fudo-rack/internal/domain"
	"github.com/JulianPasquale/fudo-rack/internal/repo"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown username and wrong password, so
// the login response never reveals which accounts exist.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Session is the result of a successful login.
type Session struct {
	User      dom.User
	Token     string
	ExpiresIn int
}

// Service turns credentials into tokens and tokens back into accounts.
type Service struct {
	users    repo.UserRepo
	strategy TokenStrategy
}

// NewService returns a new auth Service.
func NewService(users repo.UserRepo, strategy TokenStrategy) *Service {
	return &Service{users: users, strategy: strategy}
}

// Authenticate checks username and password and issues a token if they
// match. The username must match exactly; no trimming or case folding.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Session, error) {
	if username == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	token, err := s.strategy.Issue(u)
	if err != nil {
		return Session{}, err
	}

	return Session{
		User:      u,
		Token:     token,
		ExpiresIn: int(s.strategy.TTL().Seconds()),
	}, nil
}

// Resolve maps a token back to its account. The account is re-looked-up, so
// a token for a since-removed user resolves to nothing.
func (s *Service) Resolve(ctx context.Context, token string) (dom.User, error) {
	claims, err := s.strategy.Verify(token)
	if err != nil {
		return dom.User{}, ErrInvalidToken
	}
	u, err := s.users.GetByUsername(ctx, claims.Username)
	if err != nil {
		return dom.User{}, ErrInvalidToken
	}
	return u, nil
}
