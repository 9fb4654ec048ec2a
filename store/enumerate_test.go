package store

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedStore 按预设的页返回 List 结果, 用于覆盖分页的边界场景
type pagedStore struct {
	pages []*ListResult
	calls []string
}

func (p *pagedStore) Name() string { return "paged" }

func (p *pagedStore) Head(ctx context.Context, key string) (*ObjectInfo, error) {
	return nil, ErrNotFound
}

func (p *pagedStore) Get(ctx context.Context, key string) (*ObjectInfo, io.ReadCloser, error) {
	return nil, nil, ErrNotFound
}

func (p *pagedStore) Put(ctx context.Context, key string, r io.Reader, size int64, opts *PutOptions) (*ObjectInfo, error) {
	return nil, fmt.Errorf("not supported")
}

func (p *pagedStore) Delete(ctx context.Context, key string) error {
	return nil
}

func (p *pagedStore) List(ctx context.Context, req *ListRequest) (*ListResult, error) {
	p.calls = append(p.calls, req.Cursor)
	idx := 0
	if len(req.Cursor) > 0 {
		if _, err := fmt.Sscanf(req.Cursor, "c%d", &idx); err != nil {
			return nil, err
		}
	}
	if idx >= len(p.pages) {
		return &ListResult{}, nil
	}
	return p.pages[idx], nil
}

func objs(keys ...string) []*ObjectInfo {
	rs := make([]*ObjectInfo, 0, len(keys))
	for _, k := range keys {
		rs = append(rs, &ObjectInfo{Key: k})
	}
	return rs
}

func collect(t *testing.T, seq func(func(*Entry, error) bool)) ([]string, error) {
	t.Helper()
	var keys []string
	for ent, err := range seq {
		if err != nil {
			return keys, err
		}
		keys = append(keys, ent.Key)
	}
	return keys, nil
}

func TestEnumerateMultiplePages(t *testing.T) {
	st := &pagedStore{pages: []*ListResult{
		{Objects: objs("a/1", "a/2"), Prefixes: []string{"a/b/"}, Truncated: true, Cursor: "c1"},
		{Truncated: true, Cursor: "c2"},
		{Objects: objs("a/3"), Truncated: true, Cursor: "c3"},
		{Objects: objs("a/4"), Prefixes: []string{"a/c/"}},
	}}
	e := NewEnumerator(st, 2)
	keys, err := collect(t, e.Enumerate(context.Background(), "a/", false))
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1", "a/2", "a/b/", "a/3", "a/4", "a/c/"}, keys)
	assert.Equal(t, []string{"", "c1", "c2", "c3"}, st.calls)
}

func TestEnumerateRestartable(t *testing.T) {
	st := &pagedStore{pages: []*ListResult{
		{Objects: objs("x"), Truncated: true, Cursor: "c1"},
		{Objects: objs("y")},
	}}
	seq := NewEnumerator(st, 0).Enumerate(context.Background(), "", true)
	first, err := collect(t, seq)
	require.NoError(t, err)
	second, err := collect(t, seq)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"x", "y"}, first)
}

func TestEnumerateStuckCursor(t *testing.T) {
	st := &pagedStore{pages: []*ListResult{
		{Objects: objs("x"), Truncated: true, Cursor: "c1"},
		{Objects: objs("y"), Truncated: true, Cursor: "c1"},
	}}
	keys, err := collect(t, NewEnumerator(st, 0).Enumerate(context.Background(), "", true))
	require.ErrorIs(t, err, ErrStuckPagination)
	assert.Equal(t, []string{"x", "y"}, keys)
}

func TestEnumerateTruncatedWithoutCursor(t *testing.T) {
	st := &pagedStore{pages: []*ListResult{
		{Objects: objs("x"), Truncated: true},
	}}
	keys, err := collect(t, NewEnumerator(st, 0).Enumerate(context.Background(), "", true))
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, keys)
	assert.Len(t, st.calls, 1)
}

func TestEnumerateEarlyStop(t *testing.T) {
	st := &pagedStore{pages: []*ListResult{
		{Objects: objs("x", "y"), Truncated: true, Cursor: "c1"},
		{Objects: objs("z")},
	}}
	cnt := 0
	err := NewEnumerator(st, 0).Walk(context.Background(), "", true, func(ctx context.Context, ent *Entry) (bool, error) {
		cnt++
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cnt)
	assert.Len(t, st.calls, 1)
}

func TestEntryIsPrefix(t *testing.T) {
	assert.True(t, (&Entry{Key: "a/"}).IsPrefix())
	assert.False(t, (&Entry{Key: "a", Info: &ObjectInfo{Key: "a"}}).IsPrefix())
}
