package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/objdav/store"
	"github.com/xxxsen/objdav/store/mem"
)

func newTestContext(t *testing.T) *Context {
	st, err := mem.New(0)
	require.NoError(t, err)
	ctx := context.Background()
	for _, k := range []string{"dav/a.txt", "dav/dir/b.txt", "dav/dir/c/d.txt", "other/x"} {
		_, err := st.Put(ctx, k, strings.NewReader(k), int64(len(k)), nil)
		require.NoError(t, err)
	}
	_, err = st.Put(ctx, "dav/empty/", strings.NewReader(""), 0, &store.PutOptions{
		Metadata: map[string]string{store.MetaResourceType: store.ResourceCollection},
	})
	require.NoError(t, err)
	return &Context{Store: st, root: "dav/"}
}

func TestStoreKey(t *testing.T) {
	c := &Context{root: "dav/"}
	assert.Equal(t, "dav/a/b", c.StoreKey("/a/b/"))
	assert.Equal(t, "dav/b", c.StoreKey("a/../b"))
	assert.Equal(t, "dav/", c.StoreKey(""))
	assert.Equal(t, "a/b", c.DisplayKey("dav/a/b"))
}

func TestLs(t *testing.T) {
	c := newTestContext(t)
	buf := &bytes.Buffer{}
	require.NoError(t, onRunLs(context.Background(), c, buf, "/", &lsArgs{}))
	out := buf.String()
	assert.Contains(t, out, "a.txt")
	assert.Contains(t, out, "dir/")
	assert.Contains(t, out, "empty/")
	assert.NotContains(t, out, "other")
	assert.Contains(t, out, "total 3")

	buf.Reset()
	require.NoError(t, onRunLs(context.Background(), c, buf, "dir", &lsArgs{recursive: true}))
	assert.Contains(t, buf.String(), "dir/c/d.txt")
	assert.Contains(t, buf.String(), "total 2")
}

func TestStat(t *testing.T) {
	c := newTestContext(t)
	buf := &bytes.Buffer{}
	require.NoError(t, onRunStat(context.Background(), c, buf, "empty/"))
	assert.Contains(t, buf.String(), "meta.resourcetype: collection")
	assert.Error(t, onRunStat(context.Background(), c, buf, "missing"))
}

func TestRmRecursive(t *testing.T) {
	c := newTestContext(t)
	buf := &bytes.Buffer{}
	require.NoError(t, onRunRm(context.Background(), c, buf, "dir", &rmArgs{recursive: true}))
	assert.Contains(t, buf.String(), "removed 2 objects")
	_, err := c.Store.Head(context.Background(), "dav/dir/b.txt")
	assert.True(t, store.IsNotFound(err))
	_, err = c.Store.Head(context.Background(), "dav/a.txt")
	assert.NoError(t, err)

	assert.Error(t, onRunRm(context.Background(), &Context{Store: c.Store}, buf, "/", &rmArgs{recursive: true}))
}

func TestPutGet(t *testing.T) {
	c := newTestContext(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "up.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0644))
	require.NoError(t, onRunPut(context.Background(), c, src, "dir/"))
	info, err := c.Store.Head(context.Background(), "dav/dir/up.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size)
	assert.Equal(t, "text/plain; charset=utf-8", info.ContentType)

	dst := filepath.Join(dir, "down", "x.txt")
	require.NoError(t, onRunGet(context.Background(), c, "dir/up.txt", &getArgs{output: dst}))
	raw, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(raw))
}
