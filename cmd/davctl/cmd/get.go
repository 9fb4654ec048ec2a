package cmd

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/objdav/utils"
	"go.uber.org/zap"
)

type getArgs struct {
	output string
}

func NewGetCmd(c *Context) *cobra.Command {
	args := &getArgs{}
	subc := &cobra.Command{
		Use:   "get <path>",
		Short: "Download an object to a local file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, params []string) error {
			return onRunGet(cmd.Context(), c, params[0], args)
		},
	}
	subc.Flags().StringVarP(&args.output, "output", "o", "", "local file, default to the object name")
	return subc
}

func onRunGet(ctx context.Context, c *Context, p string, args *getArgs) error {
	if ctx == nil {
		ctx = context.Background()
	}
	key := c.StoreKey(p)
	dst := args.output
	if len(dst) == 0 {
		dst = path.Base(key)
	}
	start := time.Now()
	_, rc, err := c.Store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("read object failed, key:%s, err:%w", key, err)
	}
	defer rc.Close()
	n, err := utils.SafeSaveIOToFile(dst, rc)
	if err != nil {
		return fmt.Errorf("save object failed, key:%s, dst:%s, err:%w", key, dst, err)
	}
	logutil.GetLogger(ctx).Info("download object succ", zap.String("key", key), zap.String("dst", dst),
		zap.String("size", humanize.IBytes(uint64(n))), zap.Duration("cost", time.Since(start)))
	return nil
}

func init() {
	register(NewGetCmd)
}
