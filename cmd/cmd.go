package main

import (
	"flag"
	"fmt"

	"github.com/xxxsen/objdav/config"
	"github.com/xxxsen/objdav/server"
	"github.com/xxxsen/objdav/server/handler/webdav"
	"github.com/xxxsen/objdav/server/metrics"
	"github.com/xxxsen/objdav/store"
	_ "github.com/xxxsen/objdav/store/register"

	"github.com/dustin/go-humanize"
	"github.com/xxxsen/common/logger"
	"go.uber.org/zap"
)

var file = flag.String("config", "./config.json", "config file path")

func main() {
	flag.Parse()

	c, err := config.Parse(*file)
	if err != nil {
		panic(err)
	}
	logitem := c.LogInfo
	logger := logger.Init(logitem.File, logitem.Level, int(logitem.FileCount), int(logitem.FileSize), int(logitem.KeepDays), logitem.Console)
	logger.Info("recv config", zap.Any("config", c))
	logger.Info("current available object store", zap.Strings("list", store.List()))
	logger.Info("current use object store impl", zap.String("name", c.Store.Kind))
	var m *metrics.Metrics
	if c.Metrics.Enable {
		m = metrics.New()
	}
	st, err := buildStore(c, m)
	if err != nil {
		logger.Fatal("init object store fail", zap.Error(err))
	}
	logger.Info("current file protocol feature")
	logger.Info("-- webdav feature", zap.Bool("enable", c.Webdav.Enable), zap.String("mount", c.Webdav.Mount), zap.String("root", c.Webdav.Root))
	logger.Info("-- s3 feature", zap.Bool("enable", c.S3.Enable), zap.String("mount", c.S3.Mount))
	logger.Info("-- metrics feature", zap.Bool("enable", c.Metrics.Enable), zap.String("path", c.Metrics.Path))
	logger.Info("current cache config")
	logger.Info("-- enable object cache", zap.Bool("enable", c.Cache.Enable), zap.String("kind", c.Cache.Kind),
		zap.String("max_cache_mem_usage", humanize.IBytes(uint64(c.Cache.MaxCost))),
		zap.String("key_size_limit", humanize.IBytes(uint64(c.Cache.KeySizeLimit))))
	opts := []server.Option{
		server.WithStore(st),
		server.WithUser(c.UserInfo),
		server.WithEnableWebdav(c.Webdav.Enable, c.Webdav.Mount, c.Webdav.Root,
			webdav.WithStrictDelete(c.Webdav.StrictDelete),
			webdav.WithReportOverwrite(c.Webdav.ReportOverwrite),
			webdav.WithConcurrency(c.Webdav.Concurrency),
			webdav.WithPageSize(c.Webdav.PageSize),
		),
		server.WithEnableS3(c.S3.Enable, c.S3.Mount),
		server.WithEnableCors(c.Cors.Enable),
		server.WithMaxChunkedBody(c.MaxChunkedBody),
	}
	if m != nil {
		opts = append(opts, server.WithMetrics(m, c.Metrics.Path))
	}
	svr, err := server.New(c.Bind, opts...)
	if err != nil {
		logger.Fatal("init server fail", zap.Error(err))
	}
	logger.Info("init server succ, start it...", zap.String("bind", c.Bind))
	if err := svr.Run(); err != nil {
		logger.Fatal("run server fail", zap.Error(err))
	}
}

func buildStore(c *config.Config, m *metrics.Metrics) (store.IObjectStore, error) {
	st, err := store.Create(c.Store.Kind, c.Store.Args)
	if err != nil {
		return nil, fmt.Errorf("create object store failed, kind:%s, err:%w", c.Store.Kind, err)
	}
	if m != nil {
		st = m.WrapStore(st)
	}
	st, err = store.NewCachedStore(st, &c.Cache)
	if err != nil {
		return nil, fmt.Errorf("create cached store failed, err:%w", err)
	}
	return st, nil
}
