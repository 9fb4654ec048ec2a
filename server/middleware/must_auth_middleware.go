package middleware

import (
	"net/http"

	"github.com/xxxsen/objdav/auth"

	"github.com/gin-gonic/gin"
)

// MustAuthMiddleware rejects requests that TryAuthMiddleware could not
// identify. Methods listed in skip, OPTIONS for webdav clients, pass through.
func MustAuthMiddleware(realm string, skip ...string) gin.HandlerFunc {
	skipSet := make(map[string]struct{}, len(skip))
	for _, m := range skip {
		skipSet[m] = struct{}{}
	}
	return func(ctx *gin.Context) {
		if _, ok := skipSet[ctx.Request.Method]; ok {
			return
		}
		_, ok := auth.GetUserInfo(ctx.Request.Context())
		if !ok {
			ctx.Header("WWW-Authenticate", `Basic realm="`+realm+`"`)
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
	}
}
