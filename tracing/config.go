package tracing

// Config 链路追踪配置.
type Config struct {
	// Enabled 是否启用链路追踪，关闭时使用不导出的 TracerProvider
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	// OTLP OTLP 导出配置
	OTLP *OTLPConfig `json:"otlp" yaml:"otlp" mapstructure:"otlp"`
	// SamplingRate 采样率 (0.0-1.0)，0 表示全部采样
	SamplingRate float64 `json:"sampling_rate" yaml:"sampling_rate" mapstructure:"sampling_rate"`
}

// OTLPConfig OTLP 配置.
type OTLPConfig struct {
	// Endpoint OTLP Collector 端点
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`
	// Headers 请求头[可选]
	Headers map[string]string `json:"headers" yaml:"headers" mapstructure:"headers"`
}

// Validate 验证配置.
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	if c.SamplingRate < 0 || c.SamplingRate > 1 {
		return ErrInvalidSamplingRate
	}
	if c.Enabled && (c.OTLP == nil || c.OTLP.Endpoint == "") {
		return ErrEmptyEndpoint
	}
	return nil
}
