package service

import (
	"context"
	"sync"
	"testing"
	"time"

	dom "github.com/JulianPasquale/fudo-rack/internal/domain"
	"github.com/JulianPasquale/fudo-rack/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, delay time.Duration) *ProductService {
	t.Helper()

	s := store.NewProductStore()
	f := store.NewFinalizer(s, delay)
	t.Cleanup(f.Close)

	return NewProductService(s, f, nil)
}

func TestProductService_Create(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 30*time.Millisecond)
	ctx := context.Background()

	p, err := svc.Create(ctx, "  Widget  ")
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)
	assert.NoError(t, uuid.Validate(p.ID))
	assert.False(t, p.CreatedAt.IsZero())

	res, err := svc.Status(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, dom.StatusPending, res.Status)

	assert.Eventually(t, func() bool {
		res, err := svc.Status(ctx, p.ID)
		return err == nil && res.Status == dom.StatusCompleted
	}, time.Second, 5*time.Millisecond)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Widget", list[0].Name)
}

func TestProductService_Create_MissingName(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, time.Hour)
	ctx := context.Background()

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(ctx, name)
		assert.ErrorIs(t, err, ErrMissingName, "name %q", name)
	}
}

func TestProductService_Create_DistinctIDs(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, time.Hour)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		p, err := svc.Create(ctx, "Widget")
		require.NoError(t, err)
		assert.False(t, seen[p.ID])
		seen[p.ID] = true
	}
}

func TestProductService_Status_Unknown(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, time.Hour)

	_, err := svc.Status(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductService_List_PendingExcluded(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Pending widget")
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

type fakeListingCache struct {
	mu     sync.Mutex
	stored []dom.Product
	onSet  func()
}

func (c *fakeListingCache) GetCompleted(context.Context) ([]dom.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stored, nil
}

func (c *fakeListingCache) SetCompleted(_ context.Context, list []dom.Product) error {
	if c.onSet != nil {
		c.onSet() // a finalize lands while the write is in flight
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stored = list
	return nil
}

func (c *fakeListingCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stored = nil
	return nil
}

// A cache fill that straddles a finalize must not pin the pre-finalize
// listing for a full TTL; the next read has to see the completed product.
func TestProductService_List_FinalizeDuringCacheFill(t *testing.T) {
	t.Parallel()

	st := store.NewProductStore()
	fin := store.NewFinalizer(st, time.Hour)
	t.Cleanup(fin.Close)

	fake := &fakeListingCache{}
	svc := NewProductService(st, fin, fake)
	ctx := context.Background()

	p, err := svc.Create(ctx, "Widget")
	require.NoError(t, err)

	fired := false
	fake.onSet = func() {
		if !fired {
			fired = true
			st.Finalize(p.ID)
		}
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)
}

func TestProductService_FinalizeInvalidatesCache(t *testing.T) {
	t.Parallel()

	st := store.NewProductStore()
	fin := store.NewFinalizer(st, 30*time.Millisecond)
	t.Cleanup(fin.Close)

	fake := &fakeListingCache{}
	svc := NewProductService(st, fin, fake)
	ctx := context.Background()

	// Warm the cache with the empty listing, then let a finalize land.
	_, err := svc.List(ctx)
	require.NoError(t, err)

	p, err := svc.Create(ctx, "Widget")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		list, err := svc.List(ctx)
		return err == nil && len(list) == 1 && list[0].ID == p.ID
	}, time.Second, 5*time.Millisecond)
}
