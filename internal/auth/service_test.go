package auth

import (
	"context"
	"testing"
	"time"

	"github.com/JulianPasquale/fudo-rack/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, ttl time.Duration) (*Service, *repo.MemoryUserRepo) {
	t.Helper()

	users := repo.NewMemoryUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = users.Create(context.Background(), "admin", string(hash))
	require.NoError(t, err)

	return NewService(users, NewJWTStrategy([]byte("test-secret"), ttl)), users
}

func TestService_AuthenticateAndResolve(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	session, err := svc.Authenticate(ctx, "admin", "password")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, 3600, session.ExpiresIn)
	assert.Equal(t, "admin", session.User.Username)

	resolved, err := svc.Resolve(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, resolved.ID)
	assert.Equal(t, "admin", resolved.Username)
}

func TestService_Authenticate_Invalid(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"unknown user", "nobody", "password"},
		{"empty username", "", "password"},
		{"empty password", "admin", ""},
		{"case-sensitive username", "Admin", "password"},
		{"padded username", "  admin ", "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(ctx, tt.username, tt.password)
			// A single sentinel for every failure mode, so the handler
			// cannot leak which accounts exist.
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestService_Resolve_ExpiredToken(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, -time.Second)
	ctx := context.Background()

	session, err := svc.Authenticate(ctx, "admin", "password")
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, session.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_Resolve_UserGone(t *testing.T) {
	t.Parallel()

	// Token is valid but the account it names does not exist in the repo.
	strategy := NewJWTStrategy([]byte("test-secret"), time.Hour)
	svc := NewService(repo.NewMemoryUserRepo(), strategy)

	tok, err := strategy.Issue(testUser())
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_Resolve_Garbage(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, time.Hour)

	_, err := svc.Resolve(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
