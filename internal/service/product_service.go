package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	dom "github.com/JulianPasquale/fudo-rack/internal/domain"
	"github.com/JulianPasquale/fudo-rack/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

var (
	ErrMissingName = errors.New("missing product name")
	ErrNotFound    = errors.New("not found")
)

// ListingCache holds the completed-product listing between reads.
// GetCompleted returns (nil, nil) on a miss.
type ListingCache interface {
	GetCompleted(ctx context.Context) ([]dom.Product, error)
	SetCompleted(ctx context.Context, list []dom.Product) error
	Invalidate(ctx context.Context) error
}

// ProductService creates products and reads them back. Creation is
// accepted synchronously; the product only becomes listable after the
// finalize delay.
type ProductService struct {
	store *store.ProductStore
	fin   *store.Finalizer
	cache ListingCache
	sf    singleflight.Group

	// listEpoch counts finalizes. A cache fill that straddles one is stale
	// and gets thrown away.
	listEpoch atomic.Uint64
}

// NewProductService creates a ProductService. If c is nil, caching is
// disabled; otherwise the cache is invalidated whenever a finalize lands.
func NewProductService(s *store.ProductStore, f *store.Finalizer, c ListingCache) *ProductService {
	svc := &ProductService{store: s, fin: f, cache: c}
	if c != nil {
		s.OnFinalize(func(_ dom.Product) {
			svc.listEpoch.Add(1)
			if err := c.Invalidate(context.Background()); err != nil {
				log.Warn().Err(err).Msg("product cache invalidate failed")
			}
		})
	}
	return svc
}

// Create validates the name, submits the product as pending and arms its
// finalize. It returns before the product is listable.
func (s *ProductService) Create(_ context.Context, name string) (dom.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return dom.Product{}, ErrMissingName
	}

	p := dom.Product{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	s.store.Create(p)
	s.fin.Schedule(p.ID)
	return p, nil
}

// Status reports the product's lifecycle state.
func (s *ProductService) Status(_ context.Context, id string) (store.StatusResult, error) {
	res, err := s.store.Status(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.StatusResult{}, ErrNotFound
		}
		return store.StatusResult{}, err
	}
	return res, nil
}

// List returns completed products in finalize order.
func (s *ProductService) List(ctx context.Context) ([]dom.Product, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("completed", func() (interface{}, error) {
			if list, err := s.cache.GetCompleted(ctx); err == nil && list != nil {
				return list, nil
			}
			epoch := s.listEpoch.Load()
			list := s.store.ListCompleted()
			if err := s.cache.SetCompleted(ctx, list); err == nil && s.listEpoch.Load() != epoch {
				// A finalize landed mid-fill; the written listing may predate
				// it, so drop it rather than serve it for a full TTL.
				_ = s.cache.Invalidate(ctx)
			}
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Product), nil
	}
	return s.store.ListCompleted(), nil
}
