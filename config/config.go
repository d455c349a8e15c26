// Package config 提供基于 viper 的配置加载功能.
package config

import "errors"

// 常见错误.
var (
	ErrFileNotFound = errors.New("配置文件不存在")
	ErrEmptyData    = errors.New("配置内容为空")
)

// Validatable 可验证的配置接口.
// Load 系列函数在解析完成后会自动调用 Validate.
type Validatable interface {
	Validate() error
}
