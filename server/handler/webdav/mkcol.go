package webdav

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/objdav/store"
)

func (h *WebdavHandler) handleMkcol(c *gin.Context, rp *ResourcePath) {
	ctx := c.Request.Context()
	if rp.IsRoot() {
		setCapabilityHeaders(c)
		failStatus(c, http.StatusMethodNotAllowed, errors.New("mkcol on root collection"))
		return
	}
	if c.Request.ContentLength > 0 {
		failStatus(c, http.StatusUnsupportedMediaType, errors.New("mkcol with request body is not supported"))
		return
	}
	_, ok, err := h.exists(ctx, &ResourcePath{Key: rp.Key})
	if err != nil {
		failStatus(c, http.StatusInternalServerError, fmt.Errorf("stat resource failed, key:%s, err:%w", rp.Key, err))
		return
	}
	if ok {
		failStatus(c, http.StatusConflict, fmt.Errorf("resource:%s already exists", rp.Key))
		return
	}
	if parent := parentKey(rp.Key); len(parent) > 0 {
		if _, err := h.lookupCollection(ctx, parent); err != nil {
			if store.IsNotFound(err) {
				failStatus(c, http.StatusConflict, fmt.Errorf("parent collection:%s not found", parent))
				return
			}
			failStatus(c, http.StatusInternalServerError, fmt.Errorf("stat parent failed, key:%s, err:%w", parent, err))
			return
		}
	}
	prefix := h.collectionPrefix(rp.Key)
	if _, err := h.st.Put(ctx, prefix, bytes.NewReader(nil), 0, markerOptions()); err != nil {
		failStatus(c, http.StatusInternalServerError, fmt.Errorf("write collection marker failed, key:%s, err:%w", prefix, err))
		return
	}
	c.Status(http.StatusCreated)
}
