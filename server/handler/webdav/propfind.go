package webdav

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// parseDepth 只支持 0 与 1, 缺省和 infinity 都按 1 处理
func parseDepth(v string) int {
	if v == "0" {
		return 0
	}
	return 1
}

func (h *WebdavHandler) handlePropfind(c *gin.Context, rp *ResourcePath) {
	ctx := c.Request.Context()
	depth := parseDepth(c.GetHeader("Depth"))
	res, err := h.lookup(ctx, rp)
	if err != nil {
		failStore(c, err)
		return
	}
	records := []*PropertyRecord{res.record()}
	if res.Collection && depth > 0 {
		children, err := h.childRecords(ctx, res.Key)
		if err != nil {
			failStatus(c, http.StatusInternalServerError, fmt.Errorf("enumerate children failed, key:%s, err:%w", res.Key, err))
			return
		}
		records = append(records, children...)
	}
	raw, err := serialize(h.resolver, records)
	if err != nil {
		failStatus(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusMultiStatus, "application/xml; charset=utf-8", raw)
}

// childRecords lists the direct children of a collection, once per key.
// The collection's own marker is skipped.
func (h *WebdavHandler) childRecords(ctx context.Context, key string) ([]*PropertyRecord, error) {
	prefix := h.collectionPrefix(key)
	seen := make(map[string]struct{})
	rs := make([]*PropertyRecord, 0, 32)
	for ent, err := range h.enum.Enumerate(ctx, prefix, false) {
		if err != nil {
			return nil, err
		}
		if ent.Key == prefix {
			continue
		}
		child := h.resourceKey(ent.Key)
		if _, ok := seen[child]; ok {
			logutil.GetLogger(ctx).Warn("file and collection share one key, only the first is listed", zap.String("key", child))
			continue
		}
		seen[child] = struct{}{}
		if ent.IsPrefix() {
			rs = append(rs, project(child, nil, true))
			continue
		}
		rs = append(rs, project(child, ent.Info, false))
	}
	return rs, nil
}
