package s3

import (
	"strings"

	"github.com/xxxsen/objdav/store"
)

// S3Handler 提供一个简化的 S3 风格接口, 直接按 key 读写平坦存储
type S3Handler struct {
	st    store.IObjectStore
	enum  *store.Enumerator
	mount string
	root  string
}

func NewS3Handler(st store.IObjectStore, mount string, root string) *S3Handler {
	root = strings.Trim(root, "/")
	if len(root) > 0 {
		root += "/"
	}
	return &S3Handler{
		st:    st,
		enum:  store.NewEnumerator(st, 0),
		mount: strings.TrimRight(mount, "/"),
		root:  root,
	}
}

func (h *S3Handler) storeKey(key string) string {
	return h.root + key
}
