package treemap

import "github.com/Tsukikage7/rbtree-kit/collections/rbtree"

// Iterator Map 的正向迭代器.
// 任何插入或删除之后都不应继续使用之前获得的迭代器.
type Iterator[K any, V any] struct {
	it rbtree.Iterator[*Entry[K, V]]
}

// Begin 返回指向最小键的迭代器，空 Map 时等于 End.
func (m *Map[K, V]) Begin() Iterator[K, V] {
	return Iterator[K, V]{it: m.tree.Begin()}
}

// End 返回结束迭代器.
func (m *Map[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{it: m.tree.End()}
}

// Next 返回指向下一个键的迭代器.
func (i Iterator[K, V]) Next() Iterator[K, V] {
	return Iterator[K, V]{it: i.it.Next()}
}

// Prev 返回指向上一个键的迭代器.
func (i Iterator[K, V]) Prev() Iterator[K, V] {
	return Iterator[K, V]{it: i.it.Prev()}
}

// IsEnd 判断是否为结束迭代器.
func (i Iterator[K, V]) IsEnd() bool {
	return i.it.IsEnd()
}

// Equal 判断两个迭代器是否指向同一 Map 的同一位置.
func (i Iterator[K, V]) Equal(other Iterator[K, V]) bool {
	return i.it.Equal(other.it)
}

// Key 返回当前键，在 End 上调用会 panic.
func (i Iterator[K, V]) Key() K {
	return i.it.Value().Key
}

// Value 返回当前值，在 End 上调用会 panic.
func (i Iterator[K, V]) Value() V {
	return i.it.Value().Value
}

// SetValue 原地修改当前值.
func (i Iterator[K, V]) SetValue(v V) {
	i.it.Value().Value = v
}

// Entry 返回当前键值对的副本.
func (i Iterator[K, V]) Entry() Entry[K, V] {
	return *i.it.Value()
}

// ReverseIterator Map 的反向迭代器，Next 按键降序移动.
type ReverseIterator[K any, V any] struct {
	it rbtree.ReverseIterator[*Entry[K, V]]
}

// ReverseBegin 返回指向最大键的反向迭代器.
func (m *Map[K, V]) ReverseBegin() ReverseIterator[K, V] {
	return ReverseIterator[K, V]{it: m.tree.ReverseBegin()}
}

// ReverseEnd 返回反向结束迭代器.
func (m *Map[K, V]) ReverseEnd() ReverseIterator[K, V] {
	return ReverseIterator[K, V]{it: m.tree.ReverseEnd()}
}

// Next 返回指向上一个键的反向迭代器.
func (r ReverseIterator[K, V]) Next() ReverseIterator[K, V] {
	return ReverseIterator[K, V]{it: r.it.Next()}
}

// Prev 返回指向下一个键的反向迭代器.
func (r ReverseIterator[K, V]) Prev() ReverseIterator[K, V] {
	return ReverseIterator[K, V]{it: r.it.Prev()}
}

// IsEnd 判断是否为反向结束迭代器.
func (r ReverseIterator[K, V]) IsEnd() bool {
	return r.it.IsEnd()
}

// Equal 判断两个反向迭代器是否相等.
func (r ReverseIterator[K, V]) Equal(other ReverseIterator[K, V]) bool {
	return r.it.Equal(other.it)
}

// Key 返回当前键.
func (r ReverseIterator[K, V]) Key() K {
	return r.it.Value().Key
}

// Value 返回当前值.
func (r ReverseIterator[K, V]) Value() V {
	return r.it.Value().Value
}
