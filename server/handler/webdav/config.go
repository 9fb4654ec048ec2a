package webdav

import "strings"

const (
	defaultConcurrency = 8
)

type config struct {
	mount           string
	root            string
	strictDelete    bool
	reportOverwrite bool
	concurrency     int
	pageSize        int
}

type Option func(c *config)

// WithMountPath 客户端可见的挂载路径, 例如 /webdav
func WithMountPath(p string) Option {
	return func(c *config) {
		c.mount = p
	}
}

// WithStoreRoot 所有 key 在存储中的公共前缀
func WithStoreRoot(root string) Option {
	return func(c *config) {
		root = strings.Trim(root, "/")
		if len(root) > 0 {
			root += "/"
		}
		c.root = root
	}
}

// WithStrictDelete makes DELETE on a missing resource answer 404.
func WithStrictDelete(v bool) Option {
	return func(c *config) {
		c.strictDelete = v
	}
}

// WithReportOverwrite makes PUT on an existing object answer 200.
func WithReportOverwrite(v bool) Option {
	return func(c *config) {
		c.reportOverwrite = v
	}
}

// WithConcurrency limits store calls in flight for recursive DELETE/COPY/MOVE.
func WithConcurrency(n int) Option {
	return func(c *config) {
		c.concurrency = n
	}
}

func WithPageSize(n int) Option {
	return func(c *config) {
		c.pageSize = n
	}
}

func applyOpts(opts ...Option) *config {
	c := &config{concurrency: defaultConcurrency}
	for _, opt := range opts {
		opt(c)
	}
	if c.concurrency <= 0 {
		c.concurrency = defaultConcurrency
	}
	return c
}
