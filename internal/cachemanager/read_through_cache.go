package cachemanager

import (
	"context"
	"time"

	"github.com/zjrosen/ebi/internal/log"
)

// LoadFunc computes the value for input on a cache miss.
type LoadFunc[V any, I any] func(ctx context.Context, input I) (V, error)

// ReadThroughCache computes values with a LoadFunc on a miss and stores
// them. Errors are never cached. When disabled every call goes to the
// LoadFunc.
type ReadThroughCache[K comparable, V any, I any] struct {
	cache    CacheManager[K, V]
	load     LoadFunc[V, I]
	disabled bool
}

// NewReadThroughCache wraps cache with load.
func NewReadThroughCache[K comparable, V any, I any](cache CacheManager[K, V], load LoadFunc[V, I], disabled bool) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{
		cache:    cache,
		load:     load,
		disabled: disabled,
	}
}

// Get returns the cached value for key, loading it from input on a miss.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	return r.get(ctx, key, input, ttl)
}

func (r *ReadThroughCache[K, V, I]) get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if r.disabled {
		return r.load(ctx, input)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}

	value, err := r.load(ctx, input)
	if err != nil {
		log.Debug(log.CatCache, "load failed, not caching", "key", key, "error", err)
		return value, err
	}

	r.cache.Set(ctx, key, value, ttl)
	return value, nil
}
