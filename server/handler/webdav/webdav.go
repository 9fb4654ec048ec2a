package webdav

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/objdav/store"
	"go.uber.org/zap"
)

const (
	MethodPropfind = "PROPFIND"
	MethodMkcol    = "MKCOL"
	MethodCopy     = "COPY"
	MethodMove     = "MOVE"

	davCompliance = "1"
)

type methodFunc func(h *WebdavHandler, c *gin.Context, rp *ResourcePath)

type capability struct {
	method string
	fn     methodFunc
}

var (
	capabilities []capability
	dispatch     map[string]methodFunc
	// AllowMethods 对外公布的方法列表, OPTIONS/405/CORS 共用
	AllowMethods []string
	allowHeader  string
)

func init() {
	capabilities = []capability{
		{http.MethodOptions, (*WebdavHandler).handleOptions},
		{http.MethodHead, (*WebdavHandler).handleHead},
		{http.MethodGet, (*WebdavHandler).handleGet},
		{http.MethodPut, (*WebdavHandler).handlePut},
		{http.MethodDelete, (*WebdavHandler).handleDelete},
		{MethodMkcol, (*WebdavHandler).handleMkcol},
		{MethodPropfind, (*WebdavHandler).handlePropfind},
		{MethodCopy, (*WebdavHandler).handleCopy},
		{MethodMove, (*WebdavHandler).handleMove},
	}
	dispatch = make(map[string]methodFunc, len(capabilities))
	for _, cp := range capabilities {
		dispatch[cp.method] = cp.fn
		AllowMethods = append(AllowMethods, cp.method)
	}
	allowHeader = strings.Join(AllowMethods, ", ")
}

// RoutedMethods are registered on the router. The ones without a handler
// reach Handler and are answered with 405.
var RoutedMethods = []string{
	http.MethodOptions, http.MethodHead, http.MethodGet, http.MethodPut, http.MethodDelete,
	http.MethodPost, http.MethodPatch, MethodMkcol, MethodPropfind, "PROPPATCH",
	MethodCopy, MethodMove, "LOCK", "UNLOCK",
}

type WebdavHandler struct {
	c        *config
	st       store.IObjectStore
	enum     *store.Enumerator
	resolver *PathResolver
}

func NewWebdavHandler(st store.IObjectStore, opts ...Option) *WebdavHandler {
	c := applyOpts(opts...)
	return &WebdavHandler{
		c:        c,
		st:       st,
		enum:     store.NewEnumerator(st, c.pageSize),
		resolver: NewPathResolver(c.mount),
	}
}

func (h *WebdavHandler) Resolver() *PathResolver {
	return h.resolver
}

func (h *WebdavHandler) Handler(c *gin.Context) {
	fn, ok := dispatch[c.Request.Method]
	if !ok {
		h.NotAllowed(c)
		return
	}
	rp, err := h.resolver.Resolve(c.Request.URL.EscapedPath())
	if err != nil {
		failStatus(c, http.StatusBadRequest, err)
		return
	}
	logutil.GetLogger(c.Request.Context()).Debug("webdav request", zap.String("method", c.Request.Method),
		zap.String("key", rp.Key), zap.Bool("collection", rp.Collection))
	fn(h, c, rp)
}

// NotAllowed answers 405 with the capability headers.
func (h *WebdavHandler) NotAllowed(c *gin.Context) {
	setCapabilityHeaders(c)
	failStatus(c, http.StatusMethodNotAllowed, fmt.Errorf("method:%s not allowed", c.Request.Method))
}

func setCapabilityHeaders(c *gin.Context) {
	c.Writer.Header().Set("Allow", allowHeader)
	c.Writer.Header().Set("DAV", davCompliance)
}
