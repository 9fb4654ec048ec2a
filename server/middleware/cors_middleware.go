package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowHeaders  = "Authorization, Content-Type, Depth, Overwrite, Destination, Range"
	corsExposeHeaders = "Content-Type, Content-Length, DAV, ETag, Last-Modified, Location, Date, Content-Range"
	corsMaxAge        = "86400"
)

// CorsMiddleware echoes the request origin so credentialed browser clients
// work. Preflight requests without a route are answered here.
func CorsMiddleware(methods []string) gin.HandlerFunc {
	allowMethods := strings.Join(methods, ", ")
	return func(c *gin.Context) {
		h := c.Writer.Header()
		origin := c.GetHeader("Origin")
		if len(origin) == 0 {
			origin = "*"
		} else {
			h.Add("Vary", "Origin")
		}
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", allowMethods)
		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		h.Set("Access-Control-Expose-Headers", corsExposeHeaders)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Max-Age", corsMaxAge)
		if c.Request.Method == http.MethodOptions && len(c.GetHeader("Access-Control-Request-Method")) > 0 {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
	}
}
