package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "github.com/JulianPasquale/fudo-rack/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyCompleted = "product:completed"

// ProductCache caches the completed-product listing in Redis.
type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewProductCache returns a new ProductCache.
func NewProductCache(rdb *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{rdb: rdb, ttl: ttl}
}

// GetCompleted returns the cached listing or nil if miss.
func (c *ProductCache) GetCompleted(ctx context.Context) ([]dom.Product, error) {
	b, err := c.rdb.Get(ctx, keyCompleted).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Product
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetCompleted stores the listing in cache.
func (c *ProductCache) SetCompleted(ctx context.Context, list []dom.Product) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyCompleted, b, c.ttl).Err()
}

// Invalidate removes the cached listing (called when a finalize lands).
func (c *ProductCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, keyCompleted).Err()
}
