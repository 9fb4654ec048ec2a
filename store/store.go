package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"
)

const (
	MetaResourceType   = "resourcetype"
	MetaDisplayName    = "displayname"
	ResourceCollection = "collection"
)

var (
	ErrNotFound        = errors.New("object not found")
	ErrStuckPagination = errors.New("store returned the same cursor twice")
)

type ObjectInfo struct {
	Key             string
	Size            int64
	ContentType     string
	ContentLanguage string
	ETag            string
	Uploaded        time.Time
	Metadata        map[string]string
}

// IsCollectionMarker 目录在存储中仅是一个带 resourcetype=collection 的空对象
func (o *ObjectInfo) IsCollectionMarker() bool {
	if o == nil || o.Metadata == nil {
		return false
	}
	return o.Metadata[MetaResourceType] == ResourceCollection
}

type PutOptions struct {
	ContentType     string
	ContentLanguage string
	Metadata        map[string]string
}

type ListRequest struct {
	Prefix    string
	Delimiter string
	Cursor    string
	Limit     int
}

type ListResult struct {
	Objects   []*ObjectInfo
	Prefixes  []string
	Truncated bool
	Cursor    string
}

// IObjectStore 平坦的 key-value 对象存储, 不存在目录的概念.
// 实现只需要保证单 key 的读写一致性, 以及按前缀分页列举的能力.
type IObjectStore interface {
	Name() string
	Head(ctx context.Context, key string) (*ObjectInfo, error)
	Get(ctx context.Context, key string) (*ObjectInfo, io.ReadCloser, error)
	Put(ctx context.Context, key string, r io.Reader, size int64, opts *PutOptions) (*ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, req *ListRequest) (*ListResult, error)
}

type CreateFunc func(args interface{}) (IObjectStore, error)

var mp = make(map[string]CreateFunc)

func Register(name string, fn CreateFunc) {
	mp[name] = fn
}

func Create(name string, args interface{}) (IObjectStore, error) {
	fn, ok := mp[name]
	if !ok {
		return nil, fmt.Errorf("object store type not found, name:%s", name)
	}
	return fn(args)
}

func List() []string {
	rs := make([]string, 0, len(mp))
	for name := range mp {
		rs = append(rs, name)
	}
	sort.Strings(rs)
	return rs
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
