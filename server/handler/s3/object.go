package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/objdav/server/httpkit"
	"github.com/xxxsen/objdav/store"
	"go.uber.org/zap"
)

func writeError(c *gin.Context, code int, err error) {
	logutil.GetLogger(c.Request.Context()).Error("s3 request failed", zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path), zap.Int("code", code), zap.Error(err))
	c.Data(code, "text/plain; charset=utf-8", []byte(http.StatusText(code)))
}

func objectKey(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("object"), "/")
}

// Get 以 / 结尾(或为空)时列举, 否则下载对象
func (h *S3Handler) Get(c *gin.Context) {
	key := objectKey(c)
	if len(key) == 0 || strings.HasSuffix(key, "/") {
		h.listObjects(c, key)
		return
	}
	h.DownloadObject(c)
}

func (h *S3Handler) listObjects(c *gin.Context, prefix string) {
	ctx := c.Request.Context()
	entries := make([]*httpkit.ListingEntry, 0, 32)
	if err := h.enum.Walk(ctx, h.storeKey(prefix), false, func(_ context.Context, ent *store.Entry) (bool, error) {
		key := strings.TrimPrefix(ent.Key, h.root)
		if key == prefix {
			return true, nil
		}
		name := strings.TrimSuffix(key[len(prefix):], "/")
		item := &httpkit.ListingEntry{Name: name, Href: h.mount + "/" + httpkit.EscapeKey(key), IsDir: ent.IsPrefix()}
		if !ent.IsPrefix() {
			item.Size = ent.Info.Size
			item.Modified = ent.Info.Uploaded
		}
		entries = append(entries, item)
		return true, nil
	}); err != nil {
		writeError(c, http.StatusInternalServerError, fmt.Errorf("list objects failed, prefix:%s, err:%w", prefix, err))
		return
	}
	buf := &bytes.Buffer{}
	if err := httpkit.RenderListing(buf, "S3 File Browser", "", entries); err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *S3Handler) DownloadObject(c *gin.Context) {
	ctx := c.Request.Context()
	key := objectKey(c)
	info, rc, err := h.st.Get(ctx, h.storeKey(key))
	if errors.Is(err, store.ErrNotFound) {
		writeError(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, fmt.Errorf("open object failed, key:%s, err:%w", key, err))
		return
	}
	defer rc.Close()
	httpkit.SetObjectHeaders(c, info)
	c.DataFromReader(http.StatusOK, info.Size, httpkit.ContentType(info), rc, nil)
}

func (h *S3Handler) UploadObject(c *gin.Context) {
	ctx := c.Request.Context()
	key := objectKey(c)
	if len(key) == 0 || strings.HasSuffix(key, "/") {
		writeError(c, http.StatusBadRequest, fmt.Errorf("invalid object key:%s", key))
		return
	}
	contentType := c.GetHeader("Content-Type")
	if len(contentType) == 0 {
		contentType = httpkit.DetermineMimeType(key)
	}
	if _, err := h.st.Put(ctx, h.storeKey(key), c.Request.Body, c.Request.ContentLength, &store.PutOptions{
		ContentType: contentType,
	}); err != nil {
		writeError(c, http.StatusInternalServerError, fmt.Errorf("put object failed, key:%s, err:%w", key, err))
		return
	}
	c.String(http.StatusOK, "OK")
}

func (h *S3Handler) DeleteObject(c *gin.Context) {
	ctx := c.Request.Context()
	key := objectKey(c)
	if err := h.st.Delete(ctx, h.storeKey(key)); err != nil {
		writeError(c, http.StatusInternalServerError, fmt.Errorf("delete object failed, key:%s, err:%w", key, err))
		return
	}
	c.String(http.StatusOK, "OK")
}
