package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/xxxsen/objdav/server/handler/s3"
	"github.com/xxxsen/objdav/server/handler/webdav"
	"github.com/xxxsen/objdav/server/middleware"

	"github.com/gin-gonic/gin"
)

const authRealm = "WebDAV"

func init() {
	gin.SetMode(gin.ReleaseMode)
}

type Server struct {
	c      *config
	bind   string
	engine *gin.Engine
}

func New(bind string, opts ...Option) (*Server, error) {
	c := applyOpts(opts...)
	if c.st == nil {
		return nil, fmt.Errorf("no object store configured")
	}
	svr := &Server{c: c, bind: bind, engine: gin.New()}
	svr.initAPI()
	return svr, nil
}

func isRootMount(mount string) bool {
	return len(strings.Trim(mount, "/")) == 0
}

func (s *Server) authMiddleware(skip ...string) gin.HandlerFunc {
	if len(s.c.userMap) == 0 {
		return func(c *gin.Context) {}
	}
	return middleware.MustAuthMiddleware(authRealm, skip...)
}

func (s *Server) initAPI() {
	router := s.engine
	router.Use(gin.Recovery(), middleware.AccessLogMiddleware())
	if s.c.metrics != nil {
		router.Use(s.c.metrics.Middleware())
		router.GET(s.c.metricsPath, s.c.metrics.Handler())
	}
	if s.c.corsEnable {
		router.Use(middleware.CorsMiddleware(webdav.AllowMethods))
	}
	router.Use(middleware.TryAuthMiddleware(s.c.userMap))

	if s.c.s3Enable {
		s3Handler := s3.NewS3Handler(s.c.st, s.c.s3Mount, s.c.webdavRoot)
		s3Router := router.Group(s.c.s3Mount, s.authMiddleware())
		{
			s3Router.GET("/*object", s3Handler.Get)
			s3Router.PUT("/*object", middleware.NonLengthIOLimitMiddleware(s.c.maxChunkedBody), s3Handler.UploadObject)
			s3Router.DELETE("/*object", s3Handler.DeleteObject)
		}
	}
	if !s.c.webdavEnable {
		return
	}
	opts := append([]webdav.Option{
		webdav.WithMountPath(s.c.webdavMount),
		webdav.WithStoreRoot(s.c.webdavRoot),
	}, s.c.webdavOpts...)
	webdavHandler := webdav.NewWebdavHandler(s.c.st, opts...)
	chain := []gin.HandlerFunc{
		s.authMiddleware(http.MethodOptions),
		middleware.NonLengthIOLimitMiddleware(s.c.maxChunkedBody),
		webdavHandler.Handler,
	}
	if isRootMount(s.c.webdavMount) {
		// 挂载在根路径时不能再注册 catch-all 路由, 交给 NoRoute 处理
		router.NoRoute(chain...)
		return
	}
	webdavRouter := router.Group(s.c.webdavMount)
	for _, method := range webdav.RoutedMethods {
		webdavRouter.Handle(method, "/*all", chain...)
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run() error {
	return s.engine.Run(s.bind)
}
