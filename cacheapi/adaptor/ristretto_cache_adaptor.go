package cachewrap

import (
	"context"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/xxxsen/objdav/cacheapi"
)

type ristrettoBytesCache struct {
	c *ristretto.Cache[string, []byte]
}

func (r *ristrettoBytesCache) Get(ctx context.Context, k string) ([]byte, error) {
	v, ok := r.c.Get(k)
	if !ok {
		return nil, cacheapi.ErrCacheKeyNotExist
	}
	return v, nil
}

func (r *ristrettoBytesCache) Set(ctx context.Context, k string, v []byte) error {
	_ = r.c.Set(k, v, int64(len(v)))
	// ristretto 的写入是异步的, 等待写入生效, 避免紧接着的读取 miss
	r.c.Wait()
	return nil
}

func (r *ristrettoBytesCache) Del(ctx context.Context, k string) error {
	r.c.Del(k)
	return nil
}

// NewRistrettoBytesCache 以字节数为 cost 的缓存, maxCost 为总字节上限, keySizeLimit 用于估算计数器数量
func NewRistrettoBytesCache(maxCost int64, keySizeLimit int64) (cacheapi.ICache[string, []byte], error) {
	if keySizeLimit <= 0 {
		keySizeLimit = 4 * 1024
	}
	counters := maxCost / keySizeLimit * 10
	if counters < 100 {
		counters = 100
	}
	cc, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: counters,
		MaxCost:     maxCost,
		BufferItems: 64,
		// cost 已经是 value 的字节数
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &ristrettoBytesCache{c: cc}, nil
}
