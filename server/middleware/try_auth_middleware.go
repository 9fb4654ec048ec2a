package middleware

import (
	"errors"

	"github.com/xxxsen/objdav/auth"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// TryAuthMiddleware 只负责识别用户, 是否拒绝请求由 MustAuthMiddleware 决定
func TryAuthMiddleware(users map[string]string) gin.HandlerFunc {
	lookup := auth.StaticUsers(users)
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		u, err := auth.Authenticate(c, lookup)
		if err != nil {
			if !errors.Is(err, auth.ErrNoCredential) {
				logutil.GetLogger(ctx).Info("user auth failed", zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path), zap.String("ip", c.ClientIP()), zap.Error(err))
			}
			return
		}
		c.Request = c.Request.WithContext(auth.SetUserInfo(ctx, u))
	}
}
