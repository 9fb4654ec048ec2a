package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/objdav/store"
	"gopkg.in/yaml.v3"
)

type StoreConfig struct {
	Kind string      `json:"kind"`
	Args interface{} `json:"args"`
}

type WebdavConfig struct {
	Enable          bool   `json:"enable"`
	Mount           string `json:"mount"`
	Root            string `json:"root"`
	StrictDelete    bool   `json:"strict_delete"`
	ReportOverwrite bool   `json:"report_overwrite"`
	Concurrency     int    `json:"concurrency"`
	PageSize        int    `json:"page_size"`
}

type S3Config struct {
	Enable bool   `json:"enable"`
	Mount  string `json:"mount"`
}

type CorsConfig struct {
	Enable bool `json:"enable"`
}

type MetricsConfig struct {
	Enable bool   `json:"enable"`
	Path   string `json:"path"`
}

type Config struct {
	Bind           string            `json:"bind"`
	LogInfo        logger.LogConfig  `json:"log_info"`
	UserInfo       map[string]string `json:"user_info"`
	Store          StoreConfig       `json:"store"`
	Cache          store.CacheConfig `json:"cache"`
	Webdav         WebdavConfig      `json:"webdav"`
	S3             S3Config          `json:"s3"`
	Cors           CorsConfig        `json:"cors"`
	Metrics        MetricsConfig     `json:"metrics"`
	MaxChunkedBody int64             `json:"max_chunked_body"`
}

func defaultConfig() *Config {
	return &Config{
		Bind:  ":8080",
		Store: StoreConfig{Kind: "mem"},
		Cache: *store.NewDefaultCacheConfig(),
		Webdav: WebdavConfig{
			Enable:      true,
			Mount:       "/webdav",
			Concurrency: 8,
			PageSize:    1000,
		},
		S3:             S3Config{Mount: "/s3"},
		Cors:           CorsConfig{Enable: true},
		Metrics:        MetricsConfig{Path: "/metrics"},
		MaxChunkedBody: 5 * 1024 * 1024,
	}
}

// Parse 读取配置文件, .yaml/.yml 按 yaml 解析, 其余按 json 解析
func Parse(f string) (*Config, error) {
	raw, err := os.ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("read file:%w", err)
	}
	switch strings.ToLower(filepath.Ext(f)) {
	case ".yaml", ".yml":
		return decodeYAML(raw)
	default:
		return decodeJSON(raw)
	}
}

func decodeJSON(raw []byte) (*Config, error) {
	c := defaultConfig()
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("decode json failed, err:%w", err)
	}
	return c, nil
}

// decodeYAML 先解成通用结构再转 json, 这样两种格式共用同一套 json tag
func decodeYAML(raw []byte) (*Config, error) {
	var m map[string]interface{}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode yaml failed, err:%w", err)
	}
	js, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("convert yaml to json failed, err:%w", err)
	}
	return decodeJSON(js)
}
