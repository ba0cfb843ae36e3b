package store

import (
	"errors"
	"sync"

	dom "github.com/JulianPasquale/fudo-rack/internal/domain"
)

// ErrNotFound means the id is in neither partition.
var ErrNotFound = errors.New("product not found")

// StatusResult is a point-in-time view of one product. Product is zero
// unless Status is StatusCompleted.
type StatusResult struct {
	Status  dom.ProductStatus
	Product dom.Product
}

// ProductStore keeps products in two partitions, pending and completed. One
// mutex guards both, so the finalize move is a single atomic step: a reader
// sees a product in exactly one partition, never both and never neither.
type ProductStore struct {
	mu        sync.Mutex
	pending   map[string]dom.Product
	completed map[string]dom.Product
	order     []string // completed ids, in finalize order

	hooks []func(dom.Product)
}

// NewProductStore returns an empty ProductStore.
func NewProductStore() *ProductStore {
	return &ProductStore{
		pending:   make(map[string]dom.Product),
		completed: make(map[string]dom.Product),
	}
}

// OnFinalize registers fn to run after a product moves to completed. Hooks
// run outside the store lock. Register before the first Create.
func (s *ProductStore) OnFinalize(fn func(dom.Product)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Create adds a product to the pending partition and returns immediately.
// IDs are generated by the caller, so collisions are not expected.
func (s *ProductStore) Create(p dom.Product) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[p.ID] = p
	return p.ID
}

// Finalize moves a product from pending to completed. Calling it again for
// the same id, or for an unknown id, is a no-op.
func (s *ProductStore) Finalize(id string) {
	s.mu.Lock()
	p, ok := s.pending[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.pending, id)
	s.completed[id] = p
	s.order = append(s.order, id)
	hooks := s.hooks
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(p)
	}
}

// Status reports which partition holds the id.
func (s *ProductStore) Status(id string) (StatusResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.completed[id]; ok {
		return StatusResult{Status: dom.StatusCompleted, Product: p}, nil
	}
	if _, ok := s.pending[id]; ok {
		return StatusResult{Status: dom.StatusPending}, nil
	}
	return StatusResult{}, ErrNotFound
}

// ListCompleted returns completed products in finalize order.
func (s *ProductStore) ListCompleted() []dom.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]dom.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.completed[id])
	}
	return out
}

// Reset drops both partitions. Test/ops utility, not routed.
func (s *ProductStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = make(map[string]dom.Product)
	s.completed = make(map[string]dom.Product)
	s.order = nil
}
