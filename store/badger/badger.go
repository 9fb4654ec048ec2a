package badger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/xxxsen/objdav/store"
	"github.com/xxxsen/objdav/utils"
)

// key 布局:
//
//	m:<object key> => json(objectMeta)
//	d:<object key> => raw bytes
const (
	prefixMeta = "m:"
	prefixData = "d:"
)

type objectMeta struct {
	Size            int64             `json:"size"`
	ContentType     string            `json:"content_type,omitempty"`
	ContentLanguage string            `json:"content_language,omitempty"`
	ETag            string            `json:"etag"`
	Uploaded        int64             `json:"uploaded"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

type badgerStore struct {
	db      *badger.DB
	maxSize int64
}

func metaKey(key string) []byte {
	return []byte(prefixMeta + key)
}

func dataKey(key string) []byte {
	return []byte(prefixData + key)
}

func (b *badgerStore) Name() string {
	return "badger"
}

func (b *badgerStore) toInfo(key string, m *objectMeta) *store.ObjectInfo {
	return &store.ObjectInfo{
		Key:             key,
		Size:            m.Size,
		ContentType:     m.ContentType,
		ContentLanguage: m.ContentLanguage,
		ETag:            m.ETag,
		Uploaded:        time.UnixMilli(m.Uploaded).UTC(),
		Metadata:        m.Metadata,
	}
}

func (b *badgerStore) readMeta(txn *badger.Txn, key string) (*objectMeta, error) {
	item, err := txn.Get(metaKey(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("key:%s, err:%w", key, store.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	m := &objectMeta{}
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, m)
	}); err != nil {
		return nil, fmt.Errorf("decode meta failed, key:%s, err:%w", key, err)
	}
	return m, nil
}

func (b *badgerStore) Head(ctx context.Context, key string) (*store.ObjectInfo, error) {
	var info *store.ObjectInfo
	if err := b.db.View(func(txn *badger.Txn) error {
		m, err := b.readMeta(txn, key)
		if err != nil {
			return err
		}
		info = b.toInfo(key, m)
		return nil
	}); err != nil {
		return nil, err
	}
	return info, nil
}

func (b *badgerStore) Get(ctx context.Context, key string) (*store.ObjectInfo, io.ReadCloser, error) {
	var info *store.ObjectInfo
	var data []byte
	if err := b.db.View(func(txn *badger.Txn) error {
		m, err := b.readMeta(txn, key)
		if err != nil {
			return err
		}
		info = b.toInfo(key, m)
		item, err := txn.Get(dataKey(key))
		if err != nil {
			return fmt.Errorf("read data failed, key:%s, err:%w", key, err)
		}
		data, err = item.ValueCopy(nil)
		return err
	}); err != nil {
		return nil, nil, err
	}
	return info, io.NopCloser(bytes.NewReader(data)), nil
}

func (b *badgerStore) Put(ctx context.Context, key string, r io.Reader, size int64, opts *store.PutOptions) (*store.ObjectInfo, error) {
	if opts == nil {
		opts = &store.PutOptions{}
	}
	raw, err := io.ReadAll(io.LimitReader(r, b.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read object body failed, key:%s, err:%w", key, err)
	}
	if int64(len(raw)) > b.maxSize {
		return nil, fmt.Errorf("object too large, key:%s, limit:%d", key, b.maxSize)
	}
	m := &objectMeta{
		Size:            int64(len(raw)),
		ContentType:     opts.ContentType,
		ContentLanguage: opts.ContentLanguage,
		ETag:            utils.ContentETag(raw),
		Uploaded:        time.Now().UnixMilli(),
		Metadata:        opts.Metadata,
	}
	meta, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	if err := b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(dataKey(key), raw); err != nil {
			return err
		}
		return txn.Set(metaKey(key), meta)
	}); err != nil {
		return nil, fmt.Errorf("write object failed, key:%s, err:%w", key, err)
	}
	return b.toInfo(key, m), nil
}

func (b *badgerStore) Delete(ctx context.Context, key string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(metaKey(key)); err != nil {
			return err
		}
		return txn.Delete(dataKey(key))
	})
}

func (b *badgerStore) List(ctx context.Context, req *store.ListRequest) (*store.ListResult, error) {
	pager := store.NewPager(req)
	if err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = metaKey(req.Prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		scanned := 0
		for it.Seek(metaKey(pager.StartKey())); it.ValidForPrefix(opts.Prefix); {
			scanned++
			if scanned%100 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			item := it.Item()
			key := string(item.Key()[len(prefixMeta):])
			action, group := pager.Offer(key)
			switch action {
			case store.PageDone:
				return nil
			case store.PageObject:
				m := &objectMeta{}
				if err := item.Value(func(val []byte) error {
					return json.Unmarshal(val, m)
				}); err != nil {
					return fmt.Errorf("decode meta failed, key:%s, err:%w", key, err)
				}
				pager.Result.Objects = append(pager.Result.Objects, b.toInfo(key, m))
				it.Next()
			case store.PagePrefix, store.PageSkip:
				// 整个子前缀已经被归并, 直接跳过
				next := store.SkipPast(group)
				if len(next) == 0 {
					return nil
				}
				it.Seek(metaKey(next))
			default:
				it.Next()
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return pager.Result, nil
}

func (b *badgerStore) Close() error {
	return b.db.Close()
}

type config struct {
	Dir           string `json:"dir"`
	InMemory      bool   `json:"in_memory"`
	MaxObjectSize int64  `json:"max_object_size"`
}

func New(c *config) (store.IObjectStore, error) {
	if !c.InMemory && len(c.Dir) == 0 {
		return nil, fmt.Errorf("badger store requires dir or in_memory")
	}
	opts := badger.DefaultOptions(c.Dir)
	if c.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithLoggingLevel(badger.WARNING).WithCompression(options.None)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger failed, dir:%s, err:%w", c.Dir, err)
	}
	maxSize := c.MaxObjectSize
	if maxSize <= 0 {
		maxSize = 64 * 1024 * 1024
	}
	return &badgerStore{db: db, maxSize: maxSize}, nil
}

func create(args interface{}) (store.IObjectStore, error) {
	c := &config{}
	if err := store.DecodeArgs(args, c); err != nil {
		return nil, err
	}
	return New(c)
}

func init() {
	store.Register("badger", create)
}
