package cmd

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/objdav/config"
	"github.com/xxxsen/objdav/store"
	_ "github.com/xxxsen/objdav/store/register"
)

const (
	defaultConfigFileEnv = "DAVCTL_CONFIG"
)

var cmds []CreateFunc

// Context 子命令共享的存储与配置, 在 PersistentPreRunE 中初始化
type Context struct {
	Store  store.IObjectStore
	Config *config.Config
	root   string
}

// StoreKey 把命令行中的路径转换成存储 key, 与 webdav 使用同一个 root
func (c *Context) StoreKey(p string) string {
	p = strings.Trim(path.Clean("/"+p), "/")
	return c.root + p
}

// DisplayKey 去掉 root 前缀
func (c *Context) DisplayKey(key string) string {
	return strings.TrimPrefix(key, c.root)
}

type CreateFunc func(ctx *Context) *cobra.Command

func register(cr CreateFunc) {
	cmds = append(cmds, cr)
}

func initContext(ctx *Context, cfgs []string) error {
	var c *config.Config
	var err error
	for _, cfg := range cfgs {
		if len(cfg) == 0 {
			continue
		}
		c, err = config.Parse(cfg)
		if err == nil {
			break
		}
	}
	if c == nil {
		return fmt.Errorf("no valid config file found, last err:%w", err)
	}
	ctx.Config = c
	logger.Init("", c.LogInfo.Level, 0, 0, 0, true)
	st, err := store.Create(c.Store.Kind, c.Store.Args)
	if err != nil {
		return fmt.Errorf("create object store failed, kind:%s, err:%w", c.Store.Kind, err)
	}
	ctx.Store = st
	ctx.root = strings.Trim(c.Webdav.Root, "/")
	if len(ctx.root) > 0 {
		ctx.root += "/"
	}
	return nil
}

func NewRoot() *cobra.Command {
	var configFile string
	ctx := &Context{}
	var rootCmd = &cobra.Command{
		Use:          "davctl",
		Short:        "objdav store maintenance tool",
		SilenceUsage: true,
	}
	for _, cr := range cmds {
		rootCmd.AddCommand(cr(ctx))
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		envConfigFile, _ := os.LookupEnv(defaultConfigFileEnv)
		return initContext(ctx, []string{configFile, envConfigFile, "./config.json", "/etc/objdav/config.json"})
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file")
	return rootCmd
}
