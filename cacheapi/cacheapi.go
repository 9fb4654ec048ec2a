package cacheapi

import (
	"context"
	"errors"
)

var (
	ErrCacheKeyNotExist = errors.New("cache key not exist")
)

type ICacheGetter[K comparable, V any] interface {
	Get(ctx context.Context, k K) (V, error)
}

type ICacheSetter[K comparable, V any] interface {
	Set(ctx context.Context, k K, v V) error
}

type ICacheDeleter[K comparable] interface {
	Del(ctx context.Context, k K) error
}

type ICacheLoader[K comparable, V any] interface {
	ICacheGetter[K, V]
	ICacheSetter[K, V]
}

type ICache[K comparable, V any] interface {
	ICacheLoader[K, V]
	ICacheDeleter[K]
}

type LoadCacheCallbackFunc[K comparable, V any] func(ctx context.Context, k K) (V, bool, error)

// Load 读缓存, miss 时回源, 回源结果仅在 cacheable=true 时回写
func Load[K comparable, V any](ctx context.Context, c ICacheLoader[K, V], k K, cb LoadCacheCallbackFunc[K, V]) (V, bool, error) {
	v, err := c.Get(ctx, k)
	if err == nil {
		return v, true, nil
	}
	if !errors.Is(err, ErrCacheKeyNotExist) {
		return v, false, err
	}
	v, cacheable, err := cb(ctx, k)
	if err != nil {
		return v, false, err
	}
	if cacheable {
		_ = c.Set(ctx, k, v)
	}
	return v, false, nil
}
