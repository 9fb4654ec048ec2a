package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func NewStatCmd(c *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "stat <path>",
		Short: "Show object metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, params []string) error {
			return onRunStat(cmd.Context(), c, os.Stdout, params[0])
		},
	}
}

func onRunStat(ctx context.Context, c *Context, w io.Writer, p string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	key := c.StoreKey(p)
	if strings.HasSuffix(p, "/") {
		key += "/"
	}
	info, err := c.Store.Head(ctx, key)
	if err != nil {
		return fmt.Errorf("stat object failed, key:%s, err:%w", key, err)
	}
	fmt.Fprintf(w, "key: %s\n", info.Key)
	fmt.Fprintf(w, "size: %d (%s)\n", info.Size, humanize.IBytes(uint64(info.Size)))
	fmt.Fprintf(w, "content_type: %s\n", info.ContentType)
	fmt.Fprintf(w, "etag: %s\n", info.ETag)
	fmt.Fprintf(w, "uploaded: %s\n", info.Uploaded.UTC().Format(time.RFC3339))
	keys := make([]string, 0, len(info.Metadata))
	for k := range info.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "meta.%s: %s\n", k, info.Metadata[k])
	}
	return nil
}

func init() {
	register(NewStatCmd)
}
