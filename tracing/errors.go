package tracing

import "errors"

// 预定义错误.
var (
	// ErrNilConfig 链路追踪配置为空.
	ErrNilConfig = errors.New("tracing: 配置为空")

	// ErrEmptyServiceName 服务名称为空.
	ErrEmptyServiceName = errors.New("tracing: 服务名称为空")

	// ErrEmptyEndpoint OTLP 端点为空.
	ErrEmptyEndpoint = errors.New("tracing: OTLP端点为空")

	// ErrInvalidSamplingRate 采样率不在 [0, 1] 之间.
	ErrInvalidSamplingRate = errors.New("tracing: 采样率必须在 [0, 1] 之间")

	// ErrCreateExporter 创建 OTLP 导出器失败.
	ErrCreateExporter = errors.New("tracing: 创建OTLP导出器失败")

	// ErrCreateResource 创建资源失败.
	ErrCreateResource = errors.New("tracing: 创建资源失败")
)
