package store

import (
	"sync"
	"time"
)

// Finalizer arms the delayed pending→completed transition. All entries share
// one fixed delay, so a single goroutine draining a FIFO queue fires them in
// due order; no per-product timer goroutines. The queue is unbounded and
// Schedule never blocks, so a create burst larger than one delay window does
// not stall callers.
type Finalizer struct {
	store *ProductStore
	delay time.Duration

	mu    sync.Mutex
	queue []finalizeEntry

	wake chan struct{}
	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

type finalizeEntry struct {
	id  string
	due time.Time
}

// NewFinalizer starts the finalize worker. Close releases it.
func NewFinalizer(s *ProductStore, delay time.Duration) *Finalizer {
	f := &Finalizer{
		store: s,
		delay: delay,
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	f.wg.Add(1)
	go f.run()
	return f
}

// Schedule arms the one-shot finalize for id, due delay from now. Called
// only after the store already holds the pending product, so create always
// precedes its own finalize. Never blocks.
func (f *Finalizer) Schedule(id string) {
	select {
	case <-f.done:
		return
	default:
	}

	f.mu.Lock()
	f.queue = append(f.queue, finalizeEntry{id: id, due: time.Now().Add(f.delay)})
	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// Close stops the worker. Entries still queued are abandoned; pending
// products are not durable across shutdown anyway.
func (f *Finalizer) Close() {
	f.once.Do(func() { close(f.done) })
	f.wg.Wait()
}

func (f *Finalizer) pop() (finalizeEntry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queue) == 0 {
		return finalizeEntry{}, false
	}
	e := f.queue[0]
	f.queue = f.queue[1:]
	return e, true
}

func (f *Finalizer) run() {
	defer f.wg.Done()
	for {
		e, ok := f.pop()
		if !ok {
			select {
			case <-f.done:
				return
			case <-f.wake:
				continue
			}
		}
		if d := time.Until(e.due); d > 0 {
			t := time.NewTimer(d)
			select {
			case <-t.C:
			case <-f.done:
				t.Stop()
				return
			}
		}
		f.store.Finalize(e.id)
	}
}
