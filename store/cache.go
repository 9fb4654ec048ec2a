package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/objdav/cacheapi"
	cachewrap "github.com/xxxsen/objdav/cacheapi/adaptor"
	"go.uber.org/zap"
)

const (
	CacheKindRistretto = "ristretto"
	CacheKindLru       = "lru"
)

type CacheConfig struct {
	Enable       bool   `json:"enable"`
	Kind         string `json:"kind"`           // ristretto / lru
	MaxCost      int64  `json:"max_cost"`       // ristretto: 总字节数
	MaxEntries   int    `json:"max_entries"`    // lru: 最大条目数
	KeySizeLimit int64  `json:"key_size_limit"` // 超过该大小的对象不缓存
	TTL          int64  `json:"ttl"`            // lru: 秒, 0 表示不过期
}

func NewDefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Enable:       false,
		Kind:         CacheKindRistretto,
		MaxCost:      64 * 1024 * 1024,
		MaxEntries:   4096,
		KeySizeLimit: 256 * 1024,
	}
}

// cachedStore caches small object bodies under key+etag. A Get first asks
// the underlying store for the current etag, so a rewritten object is never
// served from the cache.
type cachedStore struct {
	IObjectStore
	c     *CacheConfig
	bytes cacheapi.ICache[string, []byte]
}

func (s *cachedStore) cacheKey(key, etag string) string {
	return key + "#" + etag
}

func (s *cachedStore) isCacheable(info *ObjectInfo) bool {
	return info != nil && len(info.ETag) > 0 && info.Size >= 0 && info.Size <= s.c.KeySizeLimit
}

func (s *cachedStore) Get(ctx context.Context, key string) (*ObjectInfo, io.ReadCloser, error) {
	info, err := s.IObjectStore.Head(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	if !s.isCacheable(info) {
		return s.IObjectStore.Get(ctx, key)
	}
	var fresh *ObjectInfo
	data, hit, err := cacheapi.Load(ctx, s.bytes, s.cacheKey(key, info.ETag), func(ctx context.Context, _ string) ([]byte, bool, error) {
		ginfo, rc, err := s.IObjectStore.Get(ctx, key)
		if err != nil {
			return nil, false, err
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		if err != nil {
			return nil, false, fmt.Errorf("read object for cache failed, key:%s, err:%w", key, err)
		}
		fresh = ginfo
		// head 与 get 之间对象可能被覆盖, 此时不缓存
		return raw, ginfo.ETag == info.ETag, nil
	})
	if err != nil {
		return nil, nil, err
	}
	if hit {
		logutil.GetLogger(ctx).Debug("read object from cache", zap.String("key", key), zap.Int("size", len(data)))
	}
	if fresh != nil {
		info = fresh
	}
	return info, io.NopCloser(bytes.NewReader(data)), nil
}

func NewCachedStore(impl IObjectStore, c *CacheConfig) (IObjectStore, error) {
	if c == nil || !c.Enable {
		return impl, nil
	}
	var bc cacheapi.ICache[string, []byte]
	var err error
	switch c.Kind {
	case CacheKindLru:
		bc, err = cachewrap.NewLruCache[string, []byte](c.MaxEntries, time.Duration(c.TTL)*time.Second)
	case CacheKindRistretto, "":
		bc, err = cachewrap.NewRistrettoBytesCache(c.MaxCost, c.KeySizeLimit)
	default:
		return nil, fmt.Errorf("unknown cache kind:%s", c.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("create object cache failed, kind:%s, err:%w", c.Kind, err)
	}
	return &cachedStore{IObjectStore: impl, c: c, bytes: bc}, nil
}
