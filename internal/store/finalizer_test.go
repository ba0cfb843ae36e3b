package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	dom "github.com/JulianPasquale/fudo-rack/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalizer_CompletesAfterDelay(t *testing.T) {
	t.Parallel()

	s := NewProductStore()
	f := NewFinalizer(s, 30*time.Millisecond)
	defer f.Close()

	p := newProduct("Widget")
	s.Create(p)
	f.Schedule(p.ID)

	// Immediately after create the product is still pending.
	res, err := s.Status(p.ID)
	require.NoError(t, err)
	assert.Equal(t, dom.StatusPending, res.Status)

	assert.Eventually(t, func() bool {
		res, err := s.Status(p.ID)
		return err == nil && res.Status == dom.StatusCompleted
	}, time.Second, 5*time.Millisecond)

	// Completed is terminal.
	time.Sleep(50 * time.Millisecond)
	res, err = s.Status(p.ID)
	require.NoError(t, err)
	assert.Equal(t, dom.StatusCompleted, res.Status)
}

func TestFinalizer_ManyScheduled(t *testing.T) {
	t.Parallel()

	const n = 50
	s := NewProductStore()
	f := NewFinalizer(s, 10*time.Millisecond)
	defer f.Close()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := newProduct(fmt.Sprintf("product-%d", i))
			s.Create(p)
			f.Schedule(p.ID)
		}(i)
	}
	wg.Wait()

	assert.Eventually(t, func() bool {
		return len(s.ListCompleted()) == n
	}, 5*time.Second, 10*time.Millisecond)
}

// A burst far larger than one delay window must not stall the scheduling
// side: every Schedule returns immediately, then the worker drains all of it.
func TestFinalizer_BurstDoesNotBlockSchedule(t *testing.T) {
	t.Parallel()

	const n = 1000
	s := NewProductStore()
	f := NewFinalizer(s, 20*time.Millisecond)
	defer f.Close()

	scheduled := make(chan struct{})
	go func() {
		defer close(scheduled)
		for i := 0; i < n; i++ {
			p := newProduct(fmt.Sprintf("product-%d", i))
			s.Create(p)
			f.Schedule(p.ID)
		}
	}()

	select {
	case <-scheduled:
	case <-time.After(2 * time.Second):
		t.Fatal("Schedule blocked during burst")
	}

	assert.Eventually(t, func() bool {
		return len(s.ListCompleted()) == n
	}, 10*time.Second, 10*time.Millisecond)
}

func TestFinalizer_CloseAbandonsPending(t *testing.T) {
	t.Parallel()

	s := NewProductStore()
	f := NewFinalizer(s, time.Hour)

	p := newProduct("Widget")
	s.Create(p)
	f.Schedule(p.ID)

	f.Close()
	f.Close() // safe to call twice

	res, err := s.Status(p.ID)
	require.NoError(t, err)
	assert.Equal(t, dom.StatusPending, res.Status)

	// Schedule after Close must not block.
	done := make(chan struct{})
	go func() {
		f.Schedule(p.ID)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Schedule blocked after Close")
	}
}
