package cmd

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/objdav/server/httpkit"
	"github.com/xxxsen/objdav/store"
	"go.uber.org/zap"
)

func NewPutCmd(c *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "put <local file> <path>",
		Short: "Upload a local file as an object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, params []string) error {
			return onRunPut(cmd.Context(), c, params[0], params[1])
		},
	}
}

func onRunPut(ctx context.Context, c *Context, src string, p string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	key := c.StoreKey(p)
	if strings.HasSuffix(p, "/") || key == c.StoreKey("") {
		key = c.StoreKey(path.Join(p, path.Base(src)))
	}
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open local file failed, err:%w", err)
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat local file failed, err:%w", err)
	}
	start := time.Now()
	info, err := c.Store.Put(ctx, key, f, st.Size(), &store.PutOptions{
		ContentType: httpkit.DetermineMimeType(key),
	})
	if err != nil {
		return fmt.Errorf("upload object failed, key:%s, err:%w", key, err)
	}
	logutil.GetLogger(ctx).Info("upload object succ", zap.String("key", info.Key), zap.String("etag", info.ETag),
		zap.Duration("cost", time.Since(start)))
	return nil
}

func init() {
	register(NewPutCmd)
}
