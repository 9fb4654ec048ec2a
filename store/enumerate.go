package store

import (
	"context"
	"fmt"
	"iter"
)

const (
	defaultListDelimiter = "/"
	defaultListPageSize  = 1000
)

// Entry 列举结果中的一项, Info 为空时表示一个被分隔符归并的子前缀(隐式目录)
type Entry struct {
	Key  string
	Info *ObjectInfo
}

func (e *Entry) IsPrefix() bool {
	return e.Info == nil
}

type Enumerator struct {
	st       IObjectStore
	pageSize int
}

func NewEnumerator(st IObjectStore, pageSize int) *Enumerator {
	if pageSize <= 0 {
		pageSize = defaultListPageSize
	}
	return &Enumerator{st: st, pageSize: pageSize}
}

// Enumerate hides the cursor loop of List. Every range over the returned
// sequence starts a new listing. Entries come out in store order, objects of
// a page before its prefixes.
func (e *Enumerator) Enumerate(ctx context.Context, prefix string, recursive bool) iter.Seq2[*Entry, error] {
	delimiter := defaultListDelimiter
	if recursive {
		delimiter = ""
	}
	return func(yield func(*Entry, error) bool) {
		var cursor string
		seen := make(map[string]struct{})
		for page := 0; ; page++ {
			rs, err := e.st.List(ctx, &ListRequest{
				Prefix:    prefix,
				Delimiter: delimiter,
				Cursor:    cursor,
				Limit:     e.pageSize,
			})
			if err != nil {
				yield(nil, fmt.Errorf("list page failed, prefix:%s, page:%d, err:%w", prefix, page, err))
				return
			}
			for _, obj := range rs.Objects {
				if !yield(&Entry{Key: obj.Key, Info: obj}, nil) {
					return
				}
			}
			for _, p := range rs.Prefixes {
				if !yield(&Entry{Key: p}, nil) {
					return
				}
			}
			// 空页但 truncated 的情况是合法的, 只要还有 cursor 就继续
			if !rs.Truncated || len(rs.Cursor) == 0 {
				return
			}
			if _, ok := seen[rs.Cursor]; ok {
				yield(nil, fmt.Errorf("list prefix:%s, cursor:%s, err:%w", prefix, rs.Cursor, ErrStuckPagination))
				return
			}
			seen[rs.Cursor] = struct{}{}
			cursor = rs.Cursor
		}
	}
}

// Walk is the callback form of Enumerate, returning false from cb stops the walk.
func (e *Enumerator) Walk(ctx context.Context, prefix string, recursive bool, cb func(ctx context.Context, ent *Entry) (bool, error)) error {
	for ent, err := range e.Enumerate(ctx, prefix, recursive) {
		if err != nil {
			return err
		}
		next, err := cb(ctx, ent)
		if err != nil {
			return err
		}
		if !next {
			return nil
		}
	}
	return nil
}
