package webdav

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *WebdavHandler) handleOptions(c *gin.Context, _ *ResourcePath) {
	setCapabilityHeaders(c)
	c.Writer.Header().Set("MS-Author-Via", "DAV")
	c.Status(http.StatusOK)
}
