package webdav

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *WebdavHandler) handleDelete(c *gin.Context, rp *ResourcePath) {
	ctx := c.Request.Context()
	if rp.IsRoot() {
		failStatus(c, http.StatusForbidden, errors.New("delete on root collection"))
		return
	}
	res, ok, err := h.exists(ctx, rp)
	if err != nil {
		failStatus(c, http.StatusInternalServerError, fmt.Errorf("stat resource failed, key:%s, err:%w", rp.Key, err))
		return
	}
	if !ok {
		if h.c.strictDelete {
			failStatus(c, http.StatusNotFound, fmt.Errorf("resource:%s not found", rp.Key))
			return
		}
		c.Status(http.StatusNoContent)
		return
	}
	if err := h.removeResource(ctx, res); err != nil {
		failStatus(c, http.StatusInternalServerError, fmt.Errorf("remove resource failed, key:%s, err:%w", rp.Key, err))
		return
	}
	c.Status(http.StatusNoContent)
}
