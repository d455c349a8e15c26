package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// PrometheusCollector Prometheus 指标收集器实现.
type PrometheusCollector struct {
	config *Config

	opsTotal      *prometheus.CounterVec
	opDuration    *prometheus.HistogramVec
	violations    *prometheus.CounterVec
	containerSize *prometheus.GaugeVec
	treeHeight    *prometheus.GaugeVec

	registry *prometheus.Registry
}

// NewPrometheus 创建 Prometheus 指标收集器.
func NewPrometheus(cfg *Config) (*PrometheusCollector, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "rbtree"
	}

	// 创建新的注册表，避免与默认注册表冲突
	registry := prometheus.NewRegistry()

	c := &PrometheusCollector{
		config:   cfg,
		registry: registry,
	}

	c.opsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "container",
			Name:      "operations_total",
			Help:      "Total number of container operations",
		},
		[]string{"container", "op"},
	)

	c.opDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "container",
			Name:      "operation_duration_seconds",
			Help:      "Container operation duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		},
		[]string{"container", "op"},
	)

	c.violations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "container",
			Name:      "contract_violations_total",
			Help:      "Total number of contract violations such as removing an absent key",
		},
		[]string{"container", "op"},
	)

	c.containerSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "container",
			Name:      "size",
			Help:      "Number of entries in the container",
		},
		[]string{"container"},
	)

	c.treeHeight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "tree",
			Name:      "height",
			Help:      "Height of the underlying red-black tree",
		},
		[]string{"container"},
	)

	registry.MustRegister(
		c.opsTotal,
		c.opDuration,
		c.violations,
		c.containerSize,
		c.treeHeight,
	)

	return c, nil
}

// RecordOperation 记录一次容器操作.
func (c *PrometheusCollector) RecordOperation(container, op string, duration time.Duration) {
	c.opsTotal.WithLabelValues(container, op).Inc()
	c.opDuration.WithLabelValues(container, op).Observe(duration.Seconds())
}

// RecordViolation 记录一次契约违反.
func (c *PrometheusCollector) RecordViolation(container, op string) {
	c.violations.WithLabelValues(container, op).Inc()
}

// SetSize 更新容器元素数量.
func (c *PrometheusCollector) SetSize(container string, size int) {
	c.containerSize.WithLabelValues(container).Set(float64(size))
}

// SetHeight 更新树高.
func (c *PrometheusCollector) SetHeight(container string, height int) {
	c.treeHeight.WithLabelValues(container).Set(float64(height))
}

// Gather 返回当前注册表中的全部指标.
func (c *PrometheusCollector) Gather() ([]*dto.MetricFamily, error) {
	return c.registry.Gather()
}

// GetHandler 返回 metrics 的 HTTP 处理器.
func (c *PrometheusCollector) GetHandler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// GetPath 返回 metrics 路径.
func (c *PrometheusCollector) GetPath() string {
	if c.config.Path == "" {
		return "/metrics"
	}
	return c.config.Path
}
