// Package treeset 提供基于红黑树实现的有序集合.
package treeset

import (
	"cmp"
	"iter"

	"github.com/Tsukikage7/rbtree-kit/collections/rbtree"
)

// TreeSet 有序集合.
//
// 元素按比较器排序且不重复，非并发安全.
//
// 示例:
//
//	ts := treeset.FromSlice([]int{3, 1, 2, 1})
//	ts.ToSlice() // [1, 2, 3]
type TreeSet[T any] struct {
	tree *rbtree.Tree[T]
}

// New 创建 TreeSet，需要提供比较器.
func New[T any](cmp rbtree.Comparator[T]) *TreeSet[T] {
	return &TreeSet[T]{tree: rbtree.New(cmp)}
}

// NewOrdered 创建 TreeSet，使用内置类型的默认比较.
func NewOrdered[T cmp.Ordered]() *TreeSet[T] {
	return New[T](cmp.Compare[T])
}

// FromSlice 从切片创建 TreeSet，重复元素只保留一个.
func FromSlice[T cmp.Ordered](items []T) *TreeSet[T] {
	ts := NewOrdered[T]()
	ts.Add(items...)
	return ts
}

// Add 添加元素，已存在的元素会被忽略.
func (s *TreeSet[T]) Add(items ...T) {
	for _, item := range items {
		if s.tree.Query(item) == rbtree.Nil {
			s.tree.Insert(s.tree.NewNode(item))
		}
	}
}

// Remove 删除元素，不存在的元素会被忽略.
func (s *TreeSet[T]) Remove(items ...T) {
	for _, item := range items {
		if h := s.tree.Query(item); h != rbtree.Nil {
			s.tree.Delete(h)
		}
	}
}

// Contains 判断元素是否存在.
func (s *TreeSet[T]) Contains(item T) bool {
	return s.tree.Query(item) != rbtree.Nil
}

// Len 返回元素数量.
func (s *TreeSet[T]) Len() int {
	return s.tree.Len()
}

// IsEmpty 判断是否为空.
func (s *TreeSet[T]) IsEmpty() bool {
	return s.tree.IsEmpty()
}

// Clear 清空集合.
func (s *TreeSet[T]) Clear() {
	s.tree.Clear()
}

// First 返回最小元素.
func (s *TreeSet[T]) First() (T, bool) {
	return s.at(s.tree.Min())
}

// Last 返回最大元素.
func (s *TreeSet[T]) Last() (T, bool) {
	return s.at(s.tree.Max())
}

func (s *TreeSet[T]) at(h rbtree.Handle) (T, bool) {
	if h == rbtree.Nil {
		var zero T
		return zero, false
	}
	return s.tree.Payload(h), true
}

// Range 按顺序遍历，fn 返回 false 时停止.
func (s *TreeSet[T]) Range(fn func(item T) bool) {
	for item := range s.tree.All() {
		if !fn(item) {
			return
		}
	}
}

// All 按升序遍历.
func (s *TreeSet[T]) All() iter.Seq[T] {
	return s.tree.All()
}

// ToSlice 返回有序切片.
func (s *TreeSet[T]) ToSlice() []T {
	items := make([]T, 0, s.Len())
	for item := range s.tree.All() {
		items = append(items, item)
	}
	return items
}

// Clone 复制集合.
func (s *TreeSet[T]) Clone() *TreeSet[T] {
	return &TreeSet[T]{tree: s.tree.Clone()}
}

// Union 返回并集.
func (s *TreeSet[T]) Union(other *TreeSet[T]) *TreeSet[T] {
	result := s.Clone()
	for item := range other.tree.All() {
		result.Add(item)
	}
	return result
}

// Intersection 返回交集.
func (s *TreeSet[T]) Intersection(other *TreeSet[T]) *TreeSet[T] {
	result := New(s.tree.Comparator())
	for item := range s.tree.All() {
		if other.Contains(item) {
			result.tree.Insert(result.tree.NewNode(item))
		}
	}
	return result
}

// Difference 返回差集（在 s 中但不在 other 中）.
func (s *TreeSet[T]) Difference(other *TreeSet[T]) *TreeSet[T] {
	result := New(s.tree.Comparator())
	for item := range s.tree.All() {
		if !other.Contains(item) {
			result.tree.Insert(result.tree.NewNode(item))
		}
	}
	return result
}

// IsSubset 判断 s 是否为 other 的子集.
func (s *TreeSet[T]) IsSubset(other *TreeSet[T]) bool {
	if s.Len() > other.Len() {
		return false
	}
	for item := range s.tree.All() {
		if !other.Contains(item) {
			return false
		}
	}
	return true
}

// IsSuperset 判断 s 是否为 other 的超集.
func (s *TreeSet[T]) IsSuperset(other *TreeSet[T]) bool {
	return other.IsSubset(s)
}

// Equal 判断两个集合元素是否相同.
func (s *TreeSet[T]) Equal(other *TreeSet[T]) bool {
	return s.Len() == other.Len() && s.IsSubset(other)
}
