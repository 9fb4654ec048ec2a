package store

import "strings"

type PageAction int

const (
	PageSkip PageAction = iota
	PageObject
	PagePrefix
	PageDone
)

// Pager turns an ordered key stream into one ListResult page. Adapters that
// iterate keys in lexicographic order feed every key to Offer, starting at
// StartKey, until PageDone.
type Pager struct {
	req        *ListRequest
	limit      int
	count      int
	lastPrefix string
	Result     *ListResult
}

func NewPager(req *ListRequest) *Pager {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListPageSize
	}
	return &Pager{req: req, limit: limit, Result: &ListResult{}}
}

// StartKey 下一页从 cursor 开始(包含), cursor 为空时从 prefix 开始
func (p *Pager) StartKey() string {
	if len(p.req.Cursor) > 0 && p.req.Cursor > p.req.Prefix {
		return p.req.Cursor
	}
	return p.req.Prefix
}

func (p *Pager) Offer(key string) (PageAction, string) {
	if !strings.HasPrefix(key, p.req.Prefix) {
		return PageDone, ""
	}
	rest := key[len(p.req.Prefix):]
	group := ""
	if len(p.req.Delimiter) > 0 {
		if idx := strings.Index(rest, p.req.Delimiter); idx >= 0 {
			group = p.req.Prefix + rest[:idx+len(p.req.Delimiter)]
		}
	}
	if len(group) > 0 && group == p.lastPrefix {
		return PageSkip, group
	}
	if p.count >= p.limit {
		p.Result.Truncated = true
		p.Result.Cursor = key
		return PageDone, ""
	}
	p.count++
	if len(group) > 0 {
		p.lastPrefix = group
		p.Result.Prefixes = append(p.Result.Prefixes, group)
		return PagePrefix, group
	}
	return PageObject, ""
}

// SkipPast returns the smallest key sorting after every key that starts with
// prefix, or "" when no such key exists (prefix is all 0xff).
func SkipPast(prefix string) string {
	b := []byte(prefix)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 0xff {
			b[i]++
			return string(b[:i+1])
		}
	}
	return ""
}
