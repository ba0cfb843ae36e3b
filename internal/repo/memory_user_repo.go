package repo

import (
	"context"
	"sync"
	"time"

	dom "github.com/JulianPasquale/fudo-rack/internal/domain"

	"github.com/google/uuid"
)

// MemoryUserRepo implements UserRepo with an in-process map. Accounts live
// until process teardown; there is no update or delete path.
type MemoryUserRepo struct {
	mu         sync.RWMutex
	byUsername map[string]dom.User
}

// NewMemoryUserRepo returns an empty MemoryUserRepo.
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{byUsername: make(map[string]dom.User)}
}

// GetByUsername returns the user by username.
func (r *MemoryUserRepo) GetByUsername(_ context.Context, username string) (dom.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byUsername[username]
	if !ok {
		return dom.User{}, ErrUserNotFound
	}
	return u, nil
}

// Create adds a new user with a generated UUID. Username uniqueness is
// enforced here.
func (r *MemoryUserRepo) Create(_ context.Context, username, passwordHash string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[username]; ok {
		return dom.User{}, ErrUsernameTaken
	}

	u := dom.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.byUsername[username] = u
	return u, nil
}
