package repo

import (
	"context"
	"errors"

	dom "github.com/JulianPasquale/fudo-rack/internal/domain"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// UserRepo provides user persistence. Lookups are case-sensitive exact match.
type UserRepo interface {
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	Create(ctx context.Context, username, passwordHash string) (dom.User, error)
}
