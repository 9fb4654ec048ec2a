package middleware

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

const (
	DefaultMaxAllowChunkStreamLength = 5 * 1024 * 1024 //5MB
)

// NonLengthIOLimitMiddleware buffers chunked bodies up to limit bytes, so
// the store always sees a known content length.
func NonLengthIOLimitMiddleware(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = DefaultMaxAllowChunkStreamLength
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength >= 0 {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		logutil.GetLogger(ctx).Debug("recv non-content-length io request")
		if len(c.Request.TransferEncoding) == 0 || c.Request.TransferEncoding[0] != "chunked" {
			failText(c, http.StatusBadRequest, fmt.Errorf("only chunked encoding can use content-length = -1"))
			return
		}
		data, err := io.ReadAll(io.LimitReader(c.Request.Body, limit+1))
		if err != nil {
			failText(c, http.StatusBadRequest, fmt.Errorf("read client data failed, err:%w", err))
			return
		}
		logutil.GetLogger(ctx).Debug("read chunk stream from client", zap.Int("length", len(data)))
		if int64(len(data)) > limit {
			failText(c, http.StatusRequestEntityTooLarge, fmt.Errorf("chunk stream exceed length limit:%d", limit))
			return
		}
		c.Request.Body = &readCloserWrap{
			r: bytes.NewReader(data),
			c: c.Request.Body,
		}
		c.Request.ContentLength = int64(len(data))
	}
}

func failText(c *gin.Context, code int, err error) {
	logutil.GetLogger(c.Request.Context()).Error("reject request", zap.Int("code", code), zap.Error(err))
	c.Data(code, "text/plain; charset=utf-8", []byte(err.Error()+"\n"))
	c.Abort()
}

type readCloserWrap struct {
	r io.Reader
	c io.Closer
}

func (c *readCloserWrap) Read(p []byte) (n int, err error) {
	return c.r.Read(p)
}

func (c *readCloserWrap) Close() error {
	return c.c.Close()
}
