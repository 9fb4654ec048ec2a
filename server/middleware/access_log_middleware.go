package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/objdav/auth"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-Id"

// AccessLogMiddleware tags every request with an id and logs it once done.
func AccessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rid := c.GetHeader(RequestIDHeader)
		if len(rid) == 0 {
			rid = uuid.NewString()
		}
		c.Writer.Header().Set(RequestIDHeader, rid)
		c.Next()
		ctx := c.Request.Context()
		user := ""
		if u, ok := auth.GetUserInfo(ctx); ok {
			user = u.Username
		}
		logutil.GetLogger(ctx).Info("request finish",
			zap.String("request_id", rid),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Int("size", c.Writer.Size()),
			zap.String("ip", c.ClientIP()),
			zap.String("user", user),
			zap.Duration("cost", time.Since(start)),
		)
	}
}
