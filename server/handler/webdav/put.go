package webdav

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/objdav/server/httpkit"
	"github.com/xxxsen/objdav/store"
	"github.com/xxxsen/objdav/utils"
)

func (h *WebdavHandler) handlePut(c *gin.Context, rp *ResourcePath) {
	ctx := c.Request.Context()
	if rp.IsRoot() || rp.Collection {
		setCapabilityHeaders(c)
		failStatus(c, http.StatusMethodNotAllowed, fmt.Errorf("put on collection path:%s", rp.Key))
		return
	}
	if _, err := h.lookupCollection(ctx, rp.Key); err == nil {
		failStatus(c, http.StatusConflict, fmt.Errorf("collection:%s already exists", rp.Key))
		return
	} else if !store.IsNotFound(err) {
		failStatus(c, http.StatusInternalServerError, fmt.Errorf("check existing collection failed, key:%s, err:%w", rp.Key, err))
		return
	}
	key := h.objectKey(rp.Key)
	status := http.StatusCreated
	if h.c.reportOverwrite {
		if _, err := h.st.Head(ctx, key); err == nil {
			status = http.StatusOK
		} else if !store.IsNotFound(err) {
			failStatus(c, http.StatusInternalServerError, fmt.Errorf("check existing object failed, key:%s, err:%w", rp.Key, err))
			return
		}
	}
	contentType := c.GetHeader("Content-Type")
	if len(contentType) == 0 {
		contentType = httpkit.DetermineMimeType(rp.Key)
	}
	info, err := h.st.Put(ctx, key, c.Request.Body, c.Request.ContentLength, &store.PutOptions{
		ContentType:     contentType,
		ContentLanguage: c.GetHeader("Content-Language"),
	})
	if err != nil {
		failStatus(c, http.StatusInternalServerError, fmt.Errorf("put object failed, key:%s, err:%w", rp.Key, err))
		return
	}
	if etag := utils.QuoteETag(info.ETag); len(etag) > 0 {
		c.Writer.Header().Set("ETag", etag)
	}
	c.Status(status)
}
