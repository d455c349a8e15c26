package treemap

import (
	"github.com/Tsukikage7/rbtree-kit/logger"
	"github.com/Tsukikage7/rbtree-kit/metrics"
)

// Option Map 选项函数.
type Option func(*options)

type options struct {
	name      string
	log       logger.Logger
	collector metrics.Collector
	height    bool
}

func defaultOptions() *options {
	return &options{
		name: "treemap",
		log:  logger.NewNop(),
	}
}

// WithName 设置容器名称，用于日志和指标标签.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger 设置 logger，契约违反会在 panic 前以 Error 级别记录.
func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithCollector 设置指标收集器.
func WithCollector(c metrics.Collector) Option {
	return func(o *options) {
		o.collector = c
	}
}

// WithHeightTracking 在插入、删除、清空后把树高写入指标收集器.
// 计算树高需要遍历整棵树，仅在设置了 WithCollector 时生效.
func WithHeightTracking() Option {
	return func(o *options) {
		o.height = true
	}
}
