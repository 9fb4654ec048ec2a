package badger

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/objdav/store"
)

func newTestStore(t *testing.T) store.IObjectStore {
	st, err := New(&config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.(*badgerStore).Close()
	})
	return st
}

func TestBadgerObject(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	_, err := st.Put(ctx, "dir/file.bin", bytes.NewReader([]byte("content")), 7, &store.PutOptions{
		ContentType:     "application/x-test",
		ContentLanguage: "en",
	})
	require.NoError(t, err)
	info, rc, err := st.Get(ctx, "dir/file.bin")
	require.NoError(t, err)
	raw, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "content", string(raw))
	assert.Equal(t, "application/x-test", info.ContentType)
	assert.Equal(t, "en", info.ContentLanguage)

	require.NoError(t, st.Delete(ctx, "dir/file.bin"))
	_, err = st.Head(ctx, "dir/file.bin")
	assert.True(t, store.IsNotFound(err))
}

func TestBadgerList(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	for _, k := range []string{"a/1", "a/b/1", "a/b/2", "a/c", "b"} {
		_, err := st.Put(ctx, k, bytes.NewReader([]byte(k)), int64(len(k)), nil)
		require.NoError(t, err)
	}
	rs, err := st.List(ctx, &store.ListRequest{Prefix: "a/", Delimiter: "/", Limit: 2})
	require.NoError(t, err)
	assert.True(t, rs.Truncated)
	require.Len(t, rs.Objects, 1)
	assert.Equal(t, "a/1", rs.Objects[0].Key)
	assert.Equal(t, []string{"a/b/"}, rs.Prefixes)

	rs, err = st.List(ctx, &store.ListRequest{Prefix: "a/", Delimiter: "/", Limit: 2, Cursor: rs.Cursor})
	require.NoError(t, err)
	assert.False(t, rs.Truncated)
	require.Len(t, rs.Objects, 1)
	assert.Equal(t, "a/c", rs.Objects[0].Key)
}

func TestBadgerListHighByteKey(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	st := newTestStore(t)
	for _, k := range []string{"d/sub/a", "d/sub/\xffx", "d/sub/\xff\xff", "d/z"} {
		_, err := st.Put(ctx, k, bytes.NewReader([]byte("v")), 1, nil)
		require.NoError(t, err)
	}
	rs, err := st.List(ctx, &store.ListRequest{Prefix: "d/", Delimiter: "/"})
	require.NoError(t, err)
	assert.Equal(t, []string{"d/sub/"}, rs.Prefixes)
	require.Len(t, rs.Objects, 1)
	assert.Equal(t, "d/z", rs.Objects[0].Key)

	rs, err = st.List(ctx, &store.ListRequest{Prefix: "d/sub/", Delimiter: "/"})
	require.NoError(t, err)
	assert.Len(t, rs.Objects, 3)
}
