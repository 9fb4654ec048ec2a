package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/objdav/store"
	"go.uber.org/zap"
)

type rmArgs struct {
	recursive bool
}

func NewRmCmd(c *Context) *cobra.Command {
	args := &rmArgs{}
	subc := &cobra.Command{
		Use:   "rm <path>",
		Short: "Remove an object, or a whole collection with -r",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, params []string) error {
			return onRunRm(cmd.Context(), c, os.Stdout, params[0], args)
		},
	}
	subc.Flags().BoolVarP(&args.recursive, "recursive", "r", false, "remove every object under the path")
	return subc
}

func onRunRm(ctx context.Context, c *Context, w io.Writer, p string, args *rmArgs) error {
	if ctx == nil {
		ctx = context.Background()
	}
	key := c.StoreKey(p)
	if !args.recursive {
		if err := c.Store.Delete(ctx, key); err != nil {
			return fmt.Errorf("remove object failed, key:%s, err:%w", key, err)
		}
		fmt.Fprintf(w, "removed %s\n", c.DisplayKey(key))
		return nil
	}
	prefix := key
	if len(prefix) > 0 && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if len(prefix) == 0 {
		return fmt.Errorf("refuse to remove the whole store")
	}
	enum := store.NewEnumerator(c.Store, 0)
	var count int
	err := enum.Walk(ctx, prefix, true, func(ctx context.Context, ent *store.Entry) (bool, error) {
		if err := c.Store.Delete(ctx, ent.Key); err != nil && !store.IsNotFound(err) {
			return false, fmt.Errorf("remove object failed, key:%s, err:%w", ent.Key, err)
		}
		count++
		logutil.GetLogger(ctx).Debug("object removed", zap.String("key", ent.Key))
		return true, nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "removed %d objects under %s\n", count, c.DisplayKey(prefix))
	return nil
}

func init() {
	register(NewRmCmd)
}
