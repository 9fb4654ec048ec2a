package webdav

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/objdav/store"
	"go.uber.org/zap"
)

func failStatus(c *gin.Context, code int, err error) {
	logger := logutil.GetLogger(c.Request.Context()).With(zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path), zap.Int("code", code))
	if code >= http.StatusInternalServerError {
		logger.Error("webdav request failed", zap.Error(err))
	} else {
		logger.Info("webdav request rejected", zap.Error(err))
	}
	c.Data(code, "text/plain; charset=utf-8", []byte(http.StatusText(code)+": "+err.Error()+"\n"))
	c.Abort()
}

// failStore 存储层的错误统一在这里转换成状态码
func failStore(c *gin.Context, err error) {
	if store.IsNotFound(err) {
		failStatus(c, http.StatusNotFound, err)
		return
	}
	failStatus(c, http.StatusInternalServerError, err)
}
