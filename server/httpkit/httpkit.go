package httpkit

import (
	"mime"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/objdav/store"
	"github.com/xxxsen/objdav/utils"
)

// EscapeKey path-escapes every segment of key, keeping the separators.
func EscapeKey(key string) string {
	segs := strings.Split(key, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return strings.Join(segs, "/")
}

func DetermineMimeType(filename string) string {
	ext := path.Ext(filename)
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return "application/octet-stream"
	}
	return mimeType
}

// ContentType 对象自带类型优先, 否则按扩展名推断
func ContentType(info *store.ObjectInfo) string {
	if len(info.ContentType) > 0 {
		return info.ContentType
	}
	return DetermineMimeType(info.Key)
}

// SetObjectHeaders writes the metadata headers shared by GET and HEAD.
func SetObjectHeaders(c *gin.Context, info *store.ObjectInfo) {
	h := c.Writer.Header()
	h.Set("Content-Type", ContentType(info))
	h.Set("Content-Length", strconv.FormatInt(info.Size, 10))
	if len(info.ContentLanguage) > 0 {
		h.Set("Content-Language", info.ContentLanguage)
	}
	if etag := utils.QuoteETag(info.ETag); len(etag) > 0 {
		h.Set("ETag", etag)
	}
	if !info.Uploaded.IsZero() {
		h.Set("Last-Modified", info.Uploaded.UTC().Format(http.TimeFormat))
	}
}
