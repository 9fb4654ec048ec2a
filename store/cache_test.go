package store_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/objdav/store"
	"github.com/xxxsen/objdav/store/mem"
)

type countingStore struct {
	store.IObjectStore
	gets int
}

func (c *countingStore) Get(ctx context.Context, key string) (*store.ObjectInfo, io.ReadCloser, error) {
	c.gets++
	return c.IObjectStore.Get(ctx, key)
}

func readAll(t *testing.T, st store.IObjectStore, key string) string {
	_, rc, err := st.Get(context.Background(), key)
	require.NoError(t, err)
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(raw)
}

func TestCachedStore(t *testing.T) {
	for _, kind := range []string{store.CacheKindLru, store.CacheKindRistretto} {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			impl, err := mem.New(0)
			require.NoError(t, err)
			cnt := &countingStore{IObjectStore: impl}
			cc := store.NewDefaultCacheConfig()
			cc.Enable = true
			cc.Kind = kind
			st, err := store.NewCachedStore(cnt, cc)
			require.NoError(t, err)

			_, err = st.Put(ctx, "k", bytes.NewReader([]byte("v1")), 2, nil)
			require.NoError(t, err)
			assert.Equal(t, "v1", readAll(t, st, "k"))
			assert.Equal(t, "v1", readAll(t, st, "k"))
			assert.Equal(t, 1, cnt.gets)

			// 覆盖写之后 etag 变化, 不会命中旧的缓存
			_, err = st.Put(ctx, "k", bytes.NewReader([]byte("v2")), 2, nil)
			require.NoError(t, err)
			assert.Equal(t, "v2", readAll(t, st, "k"))
			assert.Equal(t, 2, cnt.gets)
		})
	}
}

func TestCachedStoreDisabled(t *testing.T) {
	impl, err := mem.New(0)
	require.NoError(t, err)
	st, err := store.NewCachedStore(impl, store.NewDefaultCacheConfig())
	require.NoError(t, err)
	assert.Equal(t, impl, st)
}

func TestCachedStoreUnknownKind(t *testing.T) {
	impl, err := mem.New(0)
	require.NoError(t, err)
	_, err = store.NewCachedStore(impl, &store.CacheConfig{Enable: true, Kind: "bogus"})
	assert.Error(t, err)
}
