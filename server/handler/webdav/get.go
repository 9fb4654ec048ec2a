package webdav

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/objdav/server/httpkit"
)

func (h *WebdavHandler) handleGet(c *gin.Context, rp *ResourcePath) {
	ctx := c.Request.Context()
	res, err := h.lookup(ctx, rp)
	if err != nil {
		failStore(c, err)
		return
	}
	if res.Collection {
		if !rp.Collection {
			// 目录统一使用带 / 的地址, 保证页面里的相对链接正确
			c.Redirect(http.StatusMovedPermanently, h.resolver.Href(rp.Key, true))
			return
		}
		h.renderCollection(c, rp)
		return
	}
	info, rc, err := h.st.Get(ctx, h.objectKey(rp.Key))
	if err != nil {
		failStore(c, err)
		return
	}
	defer rc.Close()
	httpkit.SetObjectHeaders(c, info)
	c.DataFromReader(http.StatusOK, info.Size, httpkit.ContentType(info), rc, nil)
}

func (h *WebdavHandler) renderCollection(c *gin.Context, rp *ResourcePath) {
	ctx := c.Request.Context()
	prefix := h.collectionPrefix(rp.Key)
	entries := make([]*httpkit.ListingEntry, 0, 32)
	for ent, err := range h.enum.Enumerate(ctx, prefix, false) {
		if err != nil {
			failStatus(c, http.StatusInternalServerError, fmt.Errorf("enumerate collection failed, key:%s, err:%w", rp.Key, err))
			return
		}
		if ent.Key == prefix {
			continue
		}
		key := h.resourceKey(ent.Key)
		item := &httpkit.ListingEntry{
			Name:  displayName(key),
			IsDir: ent.IsPrefix() || ent.Info.IsCollectionMarker(),
		}
		if !ent.IsPrefix() {
			item.Size = ent.Info.Size
			item.Modified = ent.Info.Uploaded
		}
		item.Href = h.resolver.Href(key, item.IsDir)
		entries = append(entries, item)
	}
	parent := ""
	if !rp.IsRoot() {
		parent = h.resolver.Href(parentKey(rp.Key), true)
	}
	buf := &bytes.Buffer{}
	if err := httpkit.RenderListing(buf, h.resolver.Href(rp.Key, true), parent, entries); err != nil {
		failStatus(c, http.StatusInternalServerError, fmt.Errorf("render listing failed, err:%w", err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
