// Package workload 提供针对 treemap.Map 的确定性压测负载.
//
// 负载按配置生成键，依次执行插入、查询、删除，并周期性校验红黑树性质.
package workload

import (
	"errors"
	"fmt"
	"strings"
)

// 键类型.
const (
	KeyInt  = "int"
	KeyUUID = "uuid"
)

// 插入顺序.
const (
	OrderRandom     = "random"
	OrderAscending  = "ascending"
	OrderDescending = "descending"
)

// 配置错误.
var (
	ErrInvalidKeys   = errors.New("workload: keys 必须大于 0")
	ErrInvalidKind   = errors.New("workload: 不支持的键类型")
	ErrInvalidOrder  = errors.New("workload: 不支持的插入顺序")
	ErrInvalidRatio  = errors.New("workload: 比例必须在 [0, 1] 之间")
	ErrInvalidVerify = errors.New("workload: verify_every 不能为负数")
)

// Config 负载配置.
type Config struct {
	Name        string  `json:"name" yaml:"name" mapstructure:"name"`
	Keys        int     `json:"keys" yaml:"keys" mapstructure:"keys"`
	KeyKind     string  `json:"key_kind" yaml:"key_kind" mapstructure:"key_kind"`
	Order       string  `json:"order" yaml:"order" mapstructure:"order"`
	Seed        uint64  `json:"seed" yaml:"seed" mapstructure:"seed"`
	RemoveRatio float64 `json:"remove_ratio" yaml:"remove_ratio" mapstructure:"remove_ratio"`
	MissRatio   float64 `json:"miss_ratio" yaml:"miss_ratio" mapstructure:"miss_ratio"`

	// VerifyEvery 每执行多少次修改校验一次树结构，0 表示只在阶段结束时校验
	VerifyEvery int `json:"verify_every" yaml:"verify_every" mapstructure:"verify_every"`
}

// DefaultConfig 返回默认配置.
func DefaultConfig() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults 应用默认值.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "default"
	}
	if c.Keys == 0 {
		c.Keys = 10000
	}
	if c.KeyKind == "" {
		c.KeyKind = KeyInt
	}
	if c.Order == "" {
		c.Order = OrderRandom
	}
}

// Validate 验证配置.
func (c *Config) Validate() error {
	if c.Keys < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidKeys, c.Keys)
	}
	switch strings.ToLower(c.KeyKind) {
	case "", KeyInt, KeyUUID:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidKind, c.KeyKind)
	}
	switch strings.ToLower(c.Order) {
	case "", OrderRandom, OrderAscending, OrderDescending:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidOrder, c.Order)
	}
	if c.RemoveRatio < 0 || c.RemoveRatio > 1 {
		return fmt.Errorf("%w: remove_ratio=%v", ErrInvalidRatio, c.RemoveRatio)
	}
	if c.MissRatio < 0 || c.MissRatio > 1 {
		return fmt.Errorf("%w: miss_ratio=%v", ErrInvalidRatio, c.MissRatio)
	}
	if c.VerifyEvery < 0 {
		return ErrInvalidVerify
	}
	return nil
}
