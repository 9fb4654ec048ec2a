package webdav

import (
	"context"
	"fmt"
	"maps"

	"github.com/xxxsen/objdav/store"
	"golang.org/x/sync/errgroup"
)

// forEachObject runs fn for every object below prefix, at most
// concurrency calls at a time. The first error cancels the rest.
func (h *WebdavHandler) forEachObject(ctx context.Context, prefix string, fn func(ctx context.Context, info *store.ObjectInfo) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.c.concurrency)
	for ent, err := range h.enum.Enumerate(gctx, prefix, true) {
		if err != nil {
			g.Go(func() error { return err })
			break
		}
		if ent.IsPrefix() {
			continue
		}
		info := ent.Info
		g.Go(func() error {
			return fn(gctx, info)
		})
		if gctx.Err() != nil {
			break
		}
	}
	return g.Wait()
}

func (h *WebdavHandler) copyObject(ctx context.Context, src, dst string) error {
	info, rc, err := h.st.Get(ctx, src)
	if err != nil {
		return fmt.Errorf("read source failed, key:%s, err:%w", src, err)
	}
	defer rc.Close()
	if _, err := h.st.Put(ctx, dst, rc, info.Size, &store.PutOptions{
		ContentType:     info.ContentType,
		ContentLanguage: info.ContentLanguage,
		Metadata:        maps.Clone(info.Metadata),
	}); err != nil {
		return fmt.Errorf("write destination failed, key:%s, err:%w", dst, err)
	}
	return nil
}

// removeResource deletes a file, or a collection with everything below it.
func (h *WebdavHandler) removeResource(ctx context.Context, res *resource) error {
	if !res.Collection {
		return h.st.Delete(ctx, h.objectKey(res.Key))
	}
	// 标记对象的 key 就是前缀本身, 会出现在递归列举中
	return h.forEachObject(ctx, h.collectionPrefix(res.Key), func(ctx context.Context, info *store.ObjectInfo) error {
		if err := h.st.Delete(ctx, info.Key); err != nil {
			return fmt.Errorf("delete key:%s failed, err:%w", info.Key, err)
		}
		return nil
	})
}

// copyResource copies a file, or every key below a collection, to dst.
func (h *WebdavHandler) copyResource(ctx context.Context, res *resource, dst string) error {
	if !res.Collection {
		return h.copyObject(ctx, h.objectKey(res.Key), h.objectKey(dst))
	}
	srcPrefix := h.collectionPrefix(res.Key)
	dstPrefix := h.collectionPrefix(dst)
	return h.forEachObject(ctx, srcPrefix, func(ctx context.Context, info *store.ObjectInfo) error {
		return h.copyObject(ctx, info.Key, dstPrefix+info.Key[len(srcPrefix):])
	})
}
