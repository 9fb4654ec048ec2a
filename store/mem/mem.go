package mem

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/xxxsen/objdav/store"
	"github.com/xxxsen/objdav/utils"
)

type memObject struct {
	info *store.ObjectInfo
	data []byte
}

type memStore struct {
	mu      sync.RWMutex
	m       map[string]*memObject
	maxSize int64
}

func (m *memStore) Name() string {
	return "mem"
}

func (m *memStore) cloneInfo(info *store.ObjectInfo) *store.ObjectInfo {
	cp := *info
	cp.Metadata = maps.Clone(info.Metadata)
	return &cp
}

func (m *memStore) Head(ctx context.Context, key string) (*store.ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.m[key]
	if !ok {
		return nil, fmt.Errorf("key:%s, err:%w", key, store.ErrNotFound)
	}
	return m.cloneInfo(obj.info), nil
}

func (m *memStore) Get(ctx context.Context, key string) (*store.ObjectInfo, io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.m[key]
	if !ok {
		return nil, nil, fmt.Errorf("key:%s, err:%w", key, store.ErrNotFound)
	}
	// data 在覆盖写时会整体替换, 这里无需拷贝
	return m.cloneInfo(obj.info), io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (m *memStore) Put(ctx context.Context, key string, r io.Reader, size int64, opts *store.PutOptions) (*store.ObjectInfo, error) {
	if opts == nil {
		opts = &store.PutOptions{}
	}
	raw, err := io.ReadAll(io.LimitReader(r, m.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read object body failed, key:%s, err:%w", key, err)
	}
	if int64(len(raw)) > m.maxSize {
		return nil, fmt.Errorf("object too large, key:%s, limit:%d", key, m.maxSize)
	}
	if size >= 0 && int64(len(raw)) != size {
		return nil, fmt.Errorf("short body, key:%s, want:%d, got:%d", key, size, len(raw))
	}
	info := &store.ObjectInfo{
		Key:             key,
		Size:            int64(len(raw)),
		ContentType:     opts.ContentType,
		ContentLanguage: opts.ContentLanguage,
		ETag:            utils.ContentETag(raw),
		Uploaded:        time.Now().UTC(),
		Metadata:        maps.Clone(opts.Metadata),
	}
	m.mu.Lock()
	m.m[key] = &memObject{info: info, data: raw}
	m.mu.Unlock()
	return m.cloneInfo(info), nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.m, key)
	return nil
}

func (m *memStore) List(ctx context.Context, req *store.ListRequest) (*store.ListResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pager := store.NewPager(req)
	start := pager.StartKey()
	keys := make([]string, 0, len(m.m))
	for k := range m.m {
		if k >= start {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	skipUntil := ""
	for _, k := range keys {
		if len(skipUntil) > 0 && k < skipUntil {
			continue
		}
		action, group := pager.Offer(k)
		if action == store.PageDone {
			break
		}
		switch action {
		case store.PageObject:
			pager.Result.Objects = append(pager.Result.Objects, m.cloneInfo(m.m[k].info))
		case store.PagePrefix, store.PageSkip:
			skipUntil = store.SkipPast(group)
		}
	}
	return pager.Result, nil
}

type config struct {
	MaxObjectSize int64 `json:"max_object_size"`
}

func New(maxObjectSize int64) (store.IObjectStore, error) {
	if maxObjectSize <= 0 {
		maxObjectSize = 64 * 1024 * 1024
	}
	return &memStore{m: make(map[string]*memObject), maxSize: maxObjectSize}, nil
}

func create(args interface{}) (store.IObjectStore, error) {
	c := &config{}
	if err := store.DecodeArgs(args, c); err != nil {
		return nil, err
	}
	return New(c.MaxObjectSize)
}

func init() {
	store.Register("mem", create)
}
