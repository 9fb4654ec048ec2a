package metrics

import (
	"context"
	"io"
	"time"

	"github.com/xxxsen/objdav/store"
)

type instrumentedStore struct {
	impl store.IObjectStore
	m    *Metrics
}

// WrapStore counts and times every call made to impl. A not-found result
// is a normal answer and is reported as ok.
func (m *Metrics) WrapStore(impl store.IObjectStore) store.IObjectStore {
	return &instrumentedStore{impl: impl, m: m}
}

func (s *instrumentedStore) observe(op string, start time.Time, err error) {
	if store.IsNotFound(err) {
		err = nil
	}
	s.m.observeStore(s.impl.Name(), op, err, time.Since(start))
}

func (s *instrumentedStore) Name() string {
	return s.impl.Name()
}

func (s *instrumentedStore) Head(ctx context.Context, key string) (*store.ObjectInfo, error) {
	start := time.Now()
	info, err := s.impl.Head(ctx, key)
	s.observe("head", start, err)
	return info, err
}

func (s *instrumentedStore) Get(ctx context.Context, key string) (*store.ObjectInfo, io.ReadCloser, error) {
	start := time.Now()
	info, rc, err := s.impl.Get(ctx, key)
	s.observe("get", start, err)
	return info, rc, err
}

func (s *instrumentedStore) Put(ctx context.Context, key string, r io.Reader, size int64, opts *store.PutOptions) (*store.ObjectInfo, error) {
	start := time.Now()
	info, err := s.impl.Put(ctx, key, r, size, opts)
	s.observe("put", start, err)
	if err == nil && info.Size > 0 {
		s.m.bytes.WithLabelValues(s.impl.Name(), "put").Add(float64(info.Size))
	}
	return info, err
}

func (s *instrumentedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.impl.Delete(ctx, key)
	s.observe("delete", start, err)
	return err
}

func (s *instrumentedStore) List(ctx context.Context, req *store.ListRequest) (*store.ListResult, error) {
	start := time.Now()
	rs, err := s.impl.List(ctx, req)
	s.observe("list", start, err)
	return rs, err
}
