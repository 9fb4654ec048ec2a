package cachewrap

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	explru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/objdav/cacheapi"
)

// lruBackend lru.Cache 与 expirable.LRU 共有的方法集
type lruBackend[K comparable, V any] interface {
	Get(k K) (V, bool)
	Add(k K, v V) bool
	Remove(k K) bool
}

type lruCacheAdaptor[K comparable, V any] struct {
	c lruBackend[K, V]
}

func (l *lruCacheAdaptor[K, V]) Get(ctx context.Context, k K) (V, error) {
	v, ok := l.c.Get(k)
	if !ok {
		return v, cacheapi.ErrCacheKeyNotExist
	}
	return v, nil
}

func (l *lruCacheAdaptor[K, V]) Set(ctx context.Context, k K, v V) error {
	_ = l.c.Add(k, v)
	return nil
}

func (l *lruCacheAdaptor[K, V]) Del(ctx context.Context, k K) error {
	_ = l.c.Remove(k)
	return nil
}

// NewLruCache size 为最大条目数, ttl>0 时条目到期自动淘汰
func NewLruCache[K comparable, V any](size int, ttl time.Duration) (cacheapi.ICache[K, V], error) {
	if ttl > 0 {
		return &lruCacheAdaptor[K, V]{c: explru.NewLRU[K, V](size, nil, ttl)}, nil
	}
	c, err := lru.New[K, V](size)
	if err != nil {
		return nil, err
	}
	return &lruCacheAdaptor[K, V]{c: c}, nil
}
