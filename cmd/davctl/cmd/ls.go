package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/xxxsen/objdav/store"
)

type lsArgs struct {
	recursive bool
	human     bool
}

func NewLsCmd(c *Context) *cobra.Command {
	args := &lsArgs{}
	subc := &cobra.Command{
		Use:   "ls [path]",
		Short: "List objects under a collection",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, params []string) error {
			p := ""
			if len(params) > 0 {
				p = params[0]
			}
			return onRunLs(cmd.Context(), c, os.Stdout, p, args)
		},
	}
	subc.Flags().BoolVarP(&args.recursive, "recursive", "r", false, "list recursively")
	subc.Flags().BoolVarP(&args.human, "human", "H", true, "print human readable size and time")
	return subc
}

func onRunLs(ctx context.Context, c *Context, w io.Writer, p string, args *lsArgs) error {
	if ctx == nil {
		ctx = context.Background()
	}
	prefix := c.StoreKey(p)
	if len(prefix) > 0 && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	enum := store.NewEnumerator(c.Store, 0)
	count := 0
	for ent, err := range enum.Enumerate(ctx, prefix, args.recursive) {
		if err != nil {
			return fmt.Errorf("list objects failed, prefix:%s, err:%w", prefix, err)
		}
		name := c.DisplayKey(ent.Key)
		if ent.IsPrefix() {
			fmt.Fprintf(tw, "DIR\t-\t-\t%s\n", name)
			count++
			continue
		}
		if ent.Info.IsCollectionMarker() {
			if ent.Key == prefix {
				continue
			}
			fmt.Fprintf(tw, "DIR\t-\t%s\t%s\n", formatTime(ent.Info.Uploaded, args.human), name)
			count++
			continue
		}
		fmt.Fprintf(tw, "FILE\t%s\t%s\t%s\n", formatSize(ent.Info.Size, args.human), formatTime(ent.Info.Uploaded, args.human), name)
		count++
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "total %d\n", count)
	return nil
}

func formatSize(sz int64, human bool) string {
	if !human {
		return fmt.Sprintf("%d", sz)
	}
	return humanize.IBytes(uint64(sz))
}

func formatTime(t time.Time, human bool) string {
	if !human {
		return t.UTC().Format(time.RFC3339)
	}
	return humanize.Time(t)
}

func init() {
	register(NewLsCmd)
}
