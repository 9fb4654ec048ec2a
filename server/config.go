package server

import (
	"github.com/xxxsen/objdav/server/handler/webdav"
	"github.com/xxxsen/objdav/server/metrics"
	"github.com/xxxsen/objdav/store"
)

type config struct {
	st             store.IObjectStore
	userMap        map[string]string
	webdavEnable   bool
	webdavOpts     []webdav.Option
	webdavMount    string
	webdavRoot     string
	s3Enable       bool
	s3Mount        string
	corsEnable     bool
	metrics        *metrics.Metrics
	metricsPath    string
	maxChunkedBody int64
}

type Option func(c *config)

func WithStore(st store.IObjectStore) Option {
	return func(c *config) {
		c.st = st
	}
}

// WithUser 为空时不做鉴权
func WithUser(m map[string]string) Option {
	return func(c *config) {
		c.userMap = m
	}
}

func WithEnableWebdav(v bool, mount string, root string, opts ...webdav.Option) Option {
	return func(c *config) {
		c.webdavEnable = v
		c.webdavMount = mount
		c.webdavRoot = root
		c.webdavOpts = opts
	}
}

func WithEnableS3(enable bool, mount string) Option {
	return func(c *config) {
		c.s3Enable = enable
		c.s3Mount = mount
	}
}

func WithEnableCors(v bool) Option {
	return func(c *config) {
		c.corsEnable = v
	}
}

func WithMetrics(m *metrics.Metrics, path string) Option {
	return func(c *config) {
		c.metrics = m
		c.metricsPath = path
	}
}

func WithMaxChunkedBody(n int64) Option {
	return func(c *config) {
		c.maxChunkedBody = n
	}
}

func applyOpts(opts ...Option) *config {
	c := &config{
		webdavMount: "/webdav",
		s3Mount:     "/s3",
		metricsPath: "/metrics",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
