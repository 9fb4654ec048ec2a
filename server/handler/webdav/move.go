package webdav

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleMove is copy then delete. The store has no rename, so a failed
// delete leaves the resource at both keys and the client is told so.
func (h *WebdavHandler) handleMove(c *gin.Context, rp *ResourcePath) {
	ctx := c.Request.Context()
	tr := h.prepareTransfer(c, rp)
	if tr == nil {
		return
	}
	if err := h.copyResource(ctx, tr.src, tr.dst.Key); err != nil {
		failStore(c, fmt.Errorf("move copy phase failed, src:%s, dst:%s, err:%w", tr.src.Key, tr.dst.Key, err))
		return
	}
	if err := h.removeResource(ctx, tr.src); err != nil {
		failStatus(c, http.StatusInternalServerError, fmt.Errorf("move is incomplete, resource now exists at both src:%s and dst:%s, err:%w",
			tr.src.Key, tr.dst.Key, err))
		return
	}
	c.Status(http.StatusNoContent)
}
