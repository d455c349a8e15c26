package metrics

import (
	"fmt"
	"strings"
)

// Config 指标监控配置.
type Config struct {
	// Enabled 是否暴露指标端点
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	// Addr 指标端点监听地址
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
	// Path 指标暴露路径，默认 /metrics
	Path string `json:"path" yaml:"path" mapstructure:"path"`
	// Namespace 指标命名空间
	Namespace string `json:"namespace" yaml:"namespace" mapstructure:"namespace"`
}

// DefaultConfig 返回默认配置.
func DefaultConfig() *Config {
	return &Config{
		Addr:      ":9090",
		Path:      "/metrics",
		Namespace: "rbtree",
	}
}

// Validate 验证配置.
// 启用指标端点时必须指定监听地址.
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	if c.Enabled && c.Addr == "" {
		return ErrEmptyAddr
	}
	if c.Path != "" && !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("%w: %s", ErrInvalidPath, c.Path)
	}
	return nil
}
