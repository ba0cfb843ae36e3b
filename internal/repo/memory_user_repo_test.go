package repo

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepo_CreateAndGet(t *testing.T) {
	t.Parallel()

	r := NewMemoryUserRepo()
	ctx := context.Background()

	u, err := r.Create(ctx, "admin", "hash")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "admin", u.Username)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := r.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, u, got)

	// Case-sensitive exact match.
	_, err = r.GetByUsername(ctx, "Admin")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryUserRepo_DuplicateUsername(t *testing.T) {
	t.Parallel()

	r := NewMemoryUserRepo()
	ctx := context.Background()

	_, err := r.Create(ctx, "admin", "hash")
	require.NoError(t, err)

	_, err = r.Create(ctx, "admin", "other-hash")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestMemoryUserRepo_ConcurrentCreates(t *testing.T) {
	t.Parallel()

	r := NewMemoryUserRepo()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := r.Create(ctx, fmt.Sprintf("user-%d", i), "hash")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		_, err := r.GetByUsername(ctx, fmt.Sprintf("user-%d", i))
		assert.NoError(t, err)
	}
}
