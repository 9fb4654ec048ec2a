package webdav

import (
	"context"
	"fmt"
	"strings"

	"github.com/xxxsen/objdav/store"
)

// resource is what a key currently is in the store. Info is nil for the
// root and for implicit collections.
type resource struct {
	Key        string
	Info       *store.ObjectInfo
	Collection bool
}

func (r *resource) record() *PropertyRecord {
	return project(r.Key, r.Info, r.Collection)
}

// objectKey 文件在存储中的 key
func (h *WebdavHandler) objectKey(key string) string {
	return h.c.root + key
}

// collectionPrefix 目录在存储中的前缀, 同时也是目录标记对象的 key
func (h *WebdavHandler) collectionPrefix(key string) string {
	if len(key) == 0 {
		return h.c.root
	}
	return h.c.root + key + "/"
}

// resourceKey maps a store key back to a resource key.
func (h *WebdavHandler) resourceKey(storeKey string) string {
	return strings.TrimSuffix(strings.TrimPrefix(storeKey, h.c.root), "/")
}

func parentKey(key string) string {
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		return key[:idx]
	}
	return ""
}

func markerOptions() *store.PutOptions {
	return &store.PutOptions{
		Metadata: map[string]string{store.MetaResourceType: store.ResourceCollection},
	}
}

func (h *WebdavHandler) lookupFile(ctx context.Context, key string) (*resource, error) {
	info, err := h.st.Head(ctx, h.objectKey(key))
	if err != nil {
		return nil, err
	}
	return &resource{Key: key, Info: info, Collection: info.IsCollectionMarker()}, nil
}

// lookupCollection finds an explicit marker first, then falls back to any key
// below the prefix.
func (h *WebdavHandler) lookupCollection(ctx context.Context, key string) (*resource, error) {
	prefix := h.collectionPrefix(key)
	if len(key) == 0 {
		return &resource{Key: key, Collection: true}, nil
	}
	info, err := h.st.Head(ctx, prefix)
	if err == nil {
		return &resource{Key: key, Info: info, Collection: true}, nil
	}
	if !store.IsNotFound(err) {
		return nil, err
	}
	rs, err := h.st.List(ctx, &store.ListRequest{Prefix: prefix, Delimiter: "/", Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("probe implicit collection failed, prefix:%s, err:%w", prefix, err)
	}
	if len(rs.Objects) == 0 && len(rs.Prefixes) == 0 {
		return nil, fmt.Errorf("collection:%s, err:%w", key, store.ErrNotFound)
	}
	return &resource{Key: key, Collection: true}, nil
}

// lookup resolves a key to a file or collection. A trailing slash in the
// request makes the collection form win when both exist.
func (h *WebdavHandler) lookup(ctx context.Context, rp *ResourcePath) (*resource, error) {
	first, second := h.lookupFile, h.lookupCollection
	if rp.Collection {
		first, second = second, first
	}
	res, err := first(ctx, rp.Key)
	if err == nil || !store.IsNotFound(err) {
		return res, err
	}
	return second(ctx, rp.Key)
}

func (h *WebdavHandler) exists(ctx context.Context, rp *ResourcePath) (*resource, bool, error) {
	res, err := h.lookup(ctx, rp)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return res, true, nil
}
