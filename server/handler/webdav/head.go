package webdav

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/objdav/server/httpkit"
)

func (h *WebdavHandler) handleHead(c *gin.Context, rp *ResourcePath) {
	res, err := h.lookup(c.Request.Context(), rp)
	if err != nil {
		failStore(c, err)
		return
	}
	if res.Collection {
		c.Writer.Header().Set("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		return
	}
	httpkit.SetObjectHeaders(c, res.Info)
	c.Status(http.StatusOK)
}
