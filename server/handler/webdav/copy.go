package webdav

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type transfer struct {
	src *resource
	dst *ResourcePath
}

// prepareTransfer validates the shared preconditions of COPY and MOVE. It
// writes the error response itself and returns nil when the request must stop.
func (h *WebdavHandler) prepareTransfer(c *gin.Context, rp *ResourcePath) *transfer {
	ctx := c.Request.Context()
	dstHeader := c.GetHeader("Destination")
	if len(dstHeader) == 0 {
		failStatus(c, http.StatusBadRequest, errors.New("missing destination header"))
		return nil
	}
	dst, err := h.resolver.ResolveDestination(dstHeader)
	if err != nil {
		failStatus(c, http.StatusBadRequest, fmt.Errorf("invalid destination, err:%w", err))
		return nil
	}
	if rp.IsRoot() || dst.IsRoot() {
		failStatus(c, http.StatusForbidden, errors.New("root collection can not be copied or replaced"))
		return nil
	}
	if dst.Key == rp.Key {
		failStatus(c, http.StatusForbidden, fmt.Errorf("source and destination are the same, key:%s", rp.Key))
		return nil
	}
	src, err := h.lookup(ctx, rp)
	if err != nil {
		failStore(c, err)
		return nil
	}
	if src.Collection && strings.HasPrefix(dst.Key, src.Key+"/") {
		failStatus(c, http.StatusForbidden, fmt.Errorf("destination:%s is inside source:%s", dst.Key, src.Key))
		return nil
	}
	// 覆盖一个包含源的目录会先把源删掉
	if strings.HasPrefix(src.Key, dst.Key+"/") {
		failStatus(c, http.StatusForbidden, fmt.Errorf("destination:%s is an ancestor of source:%s", dst.Key, src.Key))
		return nil
	}
	if !h.prepareDestination(ctx, c, dst) {
		return nil
	}
	return &transfer{src: src, dst: dst}
}

// prepareDestination applies the Overwrite header. An existing destination
// is removed first so a collection never merges into an old one.
func (h *WebdavHandler) prepareDestination(ctx context.Context, c *gin.Context, dst *ResourcePath) bool {
	old, ok, err := h.exists(ctx, dst)
	if err != nil {
		failStatus(c, http.StatusInternalServerError, fmt.Errorf("stat destination failed, key:%s, err:%w", dst.Key, err))
		return false
	}
	if !ok {
		return true
	}
	if strings.EqualFold(c.GetHeader("Overwrite"), "F") {
		failStatus(c, http.StatusPreconditionFailed, fmt.Errorf("destination:%s exists and overwrite is disabled", dst.Key))
		return false
	}
	if err := h.removeResource(ctx, old); err != nil {
		failStatus(c, http.StatusInternalServerError, fmt.Errorf("remove old destination failed, key:%s, err:%w", dst.Key, err))
		return false
	}
	return true
}

func (h *WebdavHandler) handleCopy(c *gin.Context, rp *ResourcePath) {
	tr := h.prepareTransfer(c, rp)
	if tr == nil {
		return
	}
	if err := h.copyResource(c.Request.Context(), tr.src, tr.dst.Key); err != nil {
		failStore(c, fmt.Errorf("copy failed, src:%s, dst:%s, err:%w", tr.src.Key, tr.dst.Key, err))
		return
	}
	c.Status(http.StatusCreated)
}
