package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load 从文件加载配置.
// 配置类型根据文件扩展名识别，也可通过 WithConfigType 指定.
func Load[T any](configPath string, opts ...Option) (*T, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, configPath)
	}

	v := newViper(opts)
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	return decode[T](v)
}

// MustLoad 加载配置，失败时 panic.
func MustLoad[T any](configPath string, opts ...Option) *T {
	config, err := Load[T](configPath, opts...)
	if err != nil {
		panic(err)
	}
	return config
}

// LoadFromBytes 从字节数组加载配置.
func LoadFromBytes[T any](data []byte, configType string, opts ...Option) (*T, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	v := newViper(append(opts, WithConfigType(configType)))
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("读取配置失败: %w", err)
	}
	return decode[T](v)
}

// newViper 按选项创建 viper 实例.
func newViper(opts []Option) *viper.Viper {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	v := viper.New()
	if options.ConfigType != "" {
		v.SetConfigType(options.ConfigType)
	}
	for key, value := range options.Defaults {
		v.SetDefault(key, value)
	}
	if options.AutomaticEnv {
		if options.EnvPrefix != "" {
			v.SetEnvPrefix(options.EnvPrefix)
		}
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}
	return v
}

// decode 解析配置并验证.
func decode[T any](v *viper.Viper) (*T, error) {
	config := new(T)
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if validator, ok := any(config).(Validatable); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("配置验证失败: %w", err)
		}
	}
	return config, nil
}
