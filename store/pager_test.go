package store

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pageThrough 模拟一个按字典序遍历 key 的适配器
func pageThrough(keys []string, req *ListRequest) *ListResult {
	sort.Strings(keys)
	pager := NewPager(req)
	start := pager.StartKey()
	skip := ""
	for _, k := range keys {
		if k < start || (len(skip) > 0 && k < skip) {
			continue
		}
		action, group := pager.Offer(k)
		if action == PageDone {
			break
		}
		switch action {
		case PageObject:
			pager.Result.Objects = append(pager.Result.Objects, &ObjectInfo{Key: k})
		case PagePrefix, PageSkip:
			skip = SkipPast(group)
		}
	}
	return pager.Result
}

func TestPagerDelimiter(t *testing.T) {
	keys := []string{"a/1", "a/b/1", "a/b/2", "a/c/", "a/d", "b/1"}
	rs := pageThrough(keys, &ListRequest{Prefix: "a/", Delimiter: "/"})
	assert.False(t, rs.Truncated)
	assert.Equal(t, []string{"a/b/", "a/c/"}, rs.Prefixes)
	got := make([]string, 0, len(rs.Objects))
	for _, o := range rs.Objects {
		got = append(got, o.Key)
	}
	assert.Equal(t, []string{"a/1", "a/d"}, got)
}

func TestPagerCursor(t *testing.T) {
	keys := []string{"p/1", "p/2", "p/3", "p/x/1", "p/x/2", "p/y"}
	req := &ListRequest{Prefix: "p/", Delimiter: "/", Limit: 2}
	var seen []string
	for i := 0; i < 10; i++ {
		rs := pageThrough(keys, req)
		for _, o := range rs.Objects {
			seen = append(seen, o.Key)
		}
		seen = append(seen, rs.Prefixes...)
		if !rs.Truncated {
			break
		}
		req.Cursor = rs.Cursor
	}
	assert.Equal(t, []string{"p/1", "p/2", "p/3", "p/x/", "p/y"}, seen)
}

func TestPagerRecursive(t *testing.T) {
	keys := []string{"r/a", "r/b/c", "r/b/d/e"}
	rs := pageThrough(keys, &ListRequest{Prefix: "r/"})
	assert.Len(t, rs.Objects, 3)
	assert.Empty(t, rs.Prefixes)
}

func TestSkipPast(t *testing.T) {
	assert.Equal(t, "a0", SkipPast("a/"))
	assert.True(t, SkipPast("a/") > "a/zzz")
	assert.True(t, SkipPast("a/") > "a/\xff\xffx")
	assert.True(t, SkipPast("a/") < "b")
	assert.Equal(t, "b", SkipPast("a\xff"))
	assert.Empty(t, SkipPast("\xff\xff"))
	assert.Empty(t, SkipPast(""))
}

func TestPagerHighByteKey(t *testing.T) {
	keys := []string{"d/sub/\xffx", "d/sub/a", "d/z"}
	rs := pageThrough(keys, &ListRequest{Prefix: "d/", Delimiter: "/"})
	assert.Equal(t, []string{"d/sub/"}, rs.Prefixes)
	require.Len(t, rs.Objects, 1)
	assert.Equal(t, "d/z", rs.Objects[0].Key)
}
