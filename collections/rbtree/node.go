// Package rbtree 提供基于节点数组的红黑树引擎.
//
// 节点保存在 Tree 内部的切片中，通过 Handle 下标互相引用.
// 下标 0 保留为哨兵节点 Nil：它始终为黑色，充当所有叶子以及根节点的父节点，
// 引擎从不修改它.
//
// 引擎只负责链接与再平衡，不比较负载本身，比较通过构造时注入的 Comparator 完成.
// 负载的所有权属于调用方（例如 treemap.Map）.
package rbtree

import "math"

// Color 节点颜色.
type Color bool

// 红黑树节点颜色.
// Black 为零值，因此哨兵节点无需显式初始化.
const (
	Red   Color = true
	Black Color = false
)

// String 返回颜色名称.
func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Handle 节点句柄，即节点在数组中的下标.
type Handle uint32

// Nil 哨兵节点句柄.
const Nil Handle = 0

// maxHandle 最大可分配句柄.
const maxHandle uint64 = math.MaxUint32

// Comparator 三路比较函数.
// 返回值: 负数(a<b), 0(a==b), 正数(a>b).
// 必须满足严格弱序，树无法自行校验.
type Comparator[T any] func(a, b T) int

// node 红黑树节点.
type node[T any] struct {
	payload T
	left    Handle
	right   Handle
	parent  Handle
	color   Color
	live    bool
}

// NewNode 分配一个尚未链接的节点并设置负载.
// 优先复用已释放的槽位.
func (t *Tree[T]) NewNode(payload T) Handle {
	t.init()

	n := node[T]{payload: payload, color: Red, live: true}
	if k := len(t.free); k > 0 {
		h := t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[h] = n
		return h
	}

	if uint64(len(t.nodes)) > maxHandle {
		panic(ErrCapacity)
	}
	t.nodes = append(t.nodes, n)
	return Handle(len(t.nodes) - 1)
}

// Payload 返回节点负载.
func (t *Tree[T]) Payload(h Handle) T {
	t.mustLive(h)
	return t.nodes[h].payload
}

// ColorOf 返回节点颜色，Nil 为黑色.
func (t *Tree[T]) ColorOf(h Handle) Color {
	if h == Nil || int(h) >= len(t.nodes) {
		return Black
	}
	return t.nodes[h].color
}

// release 释放节点槽位，清空负载以便回收.
func (t *Tree[T]) release(h Handle) {
	t.nodes[h] = node[T]{}
	t.free = append(t.free, h)
}

// mustLive 校验句柄指向已分配的节点.
func (t *Tree[T]) mustLive(h Handle) {
	if h == Nil || int(h) >= len(t.nodes) || !t.nodes[h].live {
		panic(ErrInvalidHandle)
	}
}

// linked 判断节点是否已链接到树中.
func (t *Tree[T]) linked(h Handle) bool {
	return h == t.root || t.nodes[h].parent != Nil
}

func (t *Tree[T]) minimum(h Handle) Handle {
	for t.nodes[h].left != Nil {
		h = t.nodes[h].left
	}
	return h
}

func (t *Tree[T]) maximum(h Handle) Handle {
	for t.nodes[h].right != Nil {
		h = t.nodes[h].right
	}
	return h
}
