// Package metrics 提供有序容器操作的 Prometheus 指标收集功能.
package metrics

import (
	"errors"
	"net/http"
	"time"
)

// 预定义错误.
var (
	// ErrNilConfig 配置为空.
	ErrNilConfig = errors.New("metrics: 配置为空")

	// ErrEmptyAddr 启用指标端点但未指定监听地址.
	ErrEmptyAddr = errors.New("metrics: 监听地址为空")

	// ErrInvalidPath 指标路径必须以 / 开头.
	ErrInvalidPath = errors.New("metrics: 无效的指标路径")
)

// Collector 指标收集器接口.
// container 为容器名称标签，op 为操作名称标签.
type Collector interface {
	// 操作指标
	RecordOperation(container, op string, duration time.Duration)
	RecordViolation(container, op string)

	// 结构指标
	SetSize(container string, size int)
	SetHeight(container string, height int)

	// Handler
	GetHandler() http.Handler
	GetPath() string
}

// NewMetrics 创建指标收集器.
func NewMetrics(cfg *Config) (*PrometheusCollector, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	return NewPrometheus(cfg)
}

// MustNewMetrics 创建指标收集器，失败时 panic.
func MustNewMetrics(cfg *Config) *PrometheusCollector {
	c, err := NewMetrics(cfg)
	if err != nil {
		panic(err)
	}
	return c
}
