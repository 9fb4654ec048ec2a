package utils

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ContentETag 基于内容的 xxhash 生成强 etag, 已经带上引号
func ContentETag(data []byte) string {
	return strconv.Quote(strconv.FormatUint(xxhash.Sum64(data), 16))
}

// QuoteETag normalizes an etag coming from a store: the weak prefix is kept
// and the opaque part is quoted exactly once.
func QuoteETag(etag string) string {
	if len(etag) == 0 {
		return ""
	}
	weak := ""
	if strings.HasPrefix(etag, "W/") {
		weak = "W/"
		etag = etag[2:]
	}
	if len(etag) >= 2 && strings.HasPrefix(etag, `"`) && strings.HasSuffix(etag, `"`) {
		return weak + etag
	}
	return weak + `"` + strings.Trim(etag, `"`) + `"`
}
