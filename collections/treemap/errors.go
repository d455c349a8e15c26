package treemap

import (
	"errors"
	"fmt"
)

// 预定义错误.
var (
	// ErrKeyNotFound 键不存在.
	ErrKeyNotFound = errors.New("treemap: 键不存在")

	// ErrNilComparator 比较器为空.
	ErrNilComparator = errors.New("treemap: 比较器为空")
)

// ContractError 调用方违反前置条件.
//
// RemoveElementWithKey、GetValueWithKey 等操作要求键必须存在，
// 不满足时以 *ContractError 为值 panic，可通过 errors.Is 匹配 Err.
type ContractError struct {
	Op  string
	Key any
	Err error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("treemap: %s(%v): %v", e.Op, e.Key, e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}
