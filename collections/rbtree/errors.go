package rbtree

import (
	"errors"
	"fmt"
)

// 预定义错误.
// 以下错误均表示调用方违反了前置条件，引擎以 panic 的形式抛出.
var (
	ErrNilComparator  = errors.New("rbtree: 比较器为空")
	ErrInvalidHandle  = errors.New("rbtree: 无效的节点句柄")
	ErrNodeLinked     = errors.New("rbtree: 节点已在树中")
	ErrNodeNotLinked  = errors.New("rbtree: 节点不在树中")
	ErrEndDereference = errors.New("rbtree: 不能解引用结束迭代器")
	ErrCapacity       = errors.New("rbtree: 节点数量已达上限")
)

// Property 红黑树性质编号.
type Property int

// 红黑树性质.
const (
	PropColor       Property = iota + 1 // 每个节点非红即黑，由 Color 类型保证
	PropSentinel                        // 哨兵为黑色
	PropRedChild                        // 红节点没有红色子节点
	PropBlackHeight                     // 各路径黑高相等
	PropRoot                            // 根节点为黑色
	PropStructure                       // 父子链接、顺序与计数
)

// String 返回性质描述.
func (p Property) String() string {
	switch p {
	case PropColor:
		return "color"
	case PropSentinel:
		return "sentinel"
	case PropRedChild:
		return "red-child"
	case PropBlackHeight:
		return "black-height"
	case PropRoot:
		return "root"
	case PropStructure:
		return "structure"
	default:
		return fmt.Sprintf("property(%d)", int(p))
	}
}

// ViolationError 树结构校验失败.
type ViolationError struct {
	Property Property
	Node     Handle
	Detail   string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("rbtree: %s violated at node %d: %s", e.Property, e.Node, e.Detail)
}
