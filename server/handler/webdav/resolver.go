package webdav

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/xxxsen/objdav/server/httpkit"
)

var ErrInvalidPath = errors.New("invalid resource path")

// ResourcePath is a request path reduced to a store independent key.
// Collection records whether the request carried a trailing slash.
type ResourcePath struct {
	Key        string
	Collection bool
}

func (p *ResourcePath) IsRoot() bool {
	return len(p.Key) == 0
}

// PathResolver maps escaped request paths below a mount point to resource keys.
type PathResolver struct {
	mount string
}

func NewPathResolver(mount string) *PathResolver {
	return &PathResolver{mount: normalizeMount(mount)}
}

func normalizeMount(mount string) string {
	mount = strings.TrimRight(mount, "/")
	if len(mount) > 0 && !strings.HasPrefix(mount, "/") {
		mount = "/" + mount
	}
	return mount
}

func (r *PathResolver) Mount() string {
	return r.mount
}

// Resolve works on the escaped form of the path so that it is decoded exactly
// once. Repeated inner slashes are kept, they are legal key bytes.
func (r *PathResolver) Resolve(escapedPath string) (*ResourcePath, error) {
	rest, ok := r.trimMount(escapedPath)
	if !ok {
		return nil, fmt.Errorf("path:%s not under mount:%s, err:%w", escapedPath, r.mount, ErrInvalidPath)
	}
	rest = strings.TrimPrefix(rest, "/")
	key, err := url.PathUnescape(rest)
	if err != nil {
		return nil, fmt.Errorf("unescape path:%s failed, err:%w", escapedPath, errors.Join(ErrInvalidPath, err))
	}
	if !utf8.ValidString(key) {
		return nil, fmt.Errorf("path:%q is not valid utf-8, err:%w", key, ErrInvalidPath)
	}
	if hasControlChar(key) {
		return nil, fmt.Errorf("path:%q contains control character, err:%w", key, ErrInvalidPath)
	}
	rp := &ResourcePath{Key: key}
	if strings.HasSuffix(key, "/") {
		rp.Key = key[:len(key)-1]
		rp.Collection = true
	}
	if rp.IsRoot() {
		rp.Collection = true
	}
	return rp, nil
}

// ResolveDestination parses a Destination header, absolute or relative.
func (r *PathResolver) ResolveDestination(dst string) (*ResourcePath, error) {
	if len(dst) == 0 {
		return nil, fmt.Errorf("empty destination, err:%w", ErrInvalidPath)
	}
	u, err := url.Parse(dst)
	if err != nil {
		return nil, fmt.Errorf("parse destination:%s failed, err:%w", dst, errors.Join(ErrInvalidPath, err))
	}
	return r.Resolve(u.EscapedPath())
}

func (r *PathResolver) trimMount(p string) (string, bool) {
	if len(r.mount) == 0 {
		return p, true
	}
	if p == r.mount {
		return "", true
	}
	if strings.HasPrefix(p, r.mount+"/") {
		return p[len(r.mount):], true
	}
	return "", false
}

func hasControlChar(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] == 0x7f {
			return true
		}
	}
	return false
}

// Href builds the client visible path of a key below the mount.
func (r *PathResolver) Href(key string, collection bool) string {
	href := r.mount + "/" + httpkit.EscapeKey(key)
	if collection && len(key) > 0 {
		href += "/"
	}
	return href
}
