package rbtree

import "iter"

// Next 返回 h 的中序后继，h 为最大节点时返回 Nil.
func (t *Tree[T]) Next(h Handle) Handle {
	if h == Nil {
		return Nil
	}
	ns := t.nodes
	if ns[h].right != Nil {
		return t.minimum(ns[h].right)
	}
	p := ns[h].parent
	for p != Nil && h == ns[p].right {
		h = p
		p = ns[p].parent
	}
	return p
}

// Prev 返回 h 的中序前驱，h 为最小节点时返回 Nil.
func (t *Tree[T]) Prev(h Handle) Handle {
	if h == Nil {
		return Nil
	}
	ns := t.nodes
	if ns[h].left != Nil {
		return t.maximum(ns[h].left)
	}
	p := ns[h].parent
	for p != Nil && h == ns[p].left {
		h = p
		p = ns[p].parent
	}
	return p
}

// Min 返回最小节点，空树返回 Nil.
func (t *Tree[T]) Min() Handle {
	if t.root == Nil {
		return Nil
	}
	return t.minimum(t.root)
}

// Max 返回最大节点，空树返回 Nil.
func (t *Tree[T]) Max() Handle {
	if t.root == Nil {
		return Nil
	}
	return t.maximum(t.root)
}

// Iterator 正向中序迭代器.
//
// 迭代器不持有树的所有权，任何 Insert/Delete 之后都不应继续使用.
// 引擎不跟踪失效，继续使用的结果未定义.
type Iterator[T any] struct {
	tree *Tree[T]
	node Handle
}

// Begin 返回指向最小节点的迭代器，空树时等于 End.
func (t *Tree[T]) Begin() Iterator[T] {
	return Iterator[T]{tree: t, node: t.Min()}
}

// End 返回结束迭代器.
func (t *Tree[T]) End() Iterator[T] {
	return Iterator[T]{tree: t, node: Nil}
}

// IteratorAt 返回指向 h 的迭代器.
func (t *Tree[T]) IteratorAt(h Handle) Iterator[T] {
	return Iterator[T]{tree: t, node: h}
}

// Next 返回指向后继的迭代器，在 End 上调用仍返回 End.
func (it Iterator[T]) Next() Iterator[T] {
	return Iterator[T]{tree: it.tree, node: it.tree.Next(it.node)}
}

// Prev 返回指向前驱的迭代器，在 End 上调用仍返回 End.
func (it Iterator[T]) Prev() Iterator[T] {
	return Iterator[T]{tree: it.tree, node: it.tree.Prev(it.node)}
}

// IsEnd 判断是否为结束迭代器.
func (it Iterator[T]) IsEnd() bool {
	return it.node == Nil
}

// Equal 同一棵树且指向同一节点时相等.
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.tree == other.tree && it.node == other.node
}

// Handle 返回当前节点句柄.
func (it Iterator[T]) Handle() Handle {
	return it.node
}

// Value 返回当前节点负载，在 End 上调用会 panic.
func (it Iterator[T]) Value() T {
	if it.node == Nil {
		panic(ErrEndDereference)
	}
	return it.tree.Payload(it.node)
}

// ReverseIterator 反向迭代器，Next 沿前驱方向移动.
type ReverseIterator[T any] struct {
	it Iterator[T]
}

// ReverseBegin 返回指向最大节点的反向迭代器.
func (t *Tree[T]) ReverseBegin() ReverseIterator[T] {
	return ReverseIterator[T]{it: Iterator[T]{tree: t, node: t.Max()}}
}

// ReverseEnd 返回反向结束迭代器.
func (t *Tree[T]) ReverseEnd() ReverseIterator[T] {
	return ReverseIterator[T]{it: t.End()}
}

// Next 返回指向前驱的反向迭代器.
func (r ReverseIterator[T]) Next() ReverseIterator[T] {
	return ReverseIterator[T]{it: r.it.Prev()}
}

// Prev 返回指向后继的反向迭代器.
func (r ReverseIterator[T]) Prev() ReverseIterator[T] {
	return ReverseIterator[T]{it: r.it.Next()}
}

// IsEnd 判断是否为反向结束迭代器.
func (r ReverseIterator[T]) IsEnd() bool {
	return r.it.IsEnd()
}

// Equal 同一棵树且指向同一节点时相等.
func (r ReverseIterator[T]) Equal(other ReverseIterator[T]) bool {
	return r.it.Equal(other.it)
}

// Base 返回底层正向迭代器.
func (r ReverseIterator[T]) Base() Iterator[T] {
	return r.it
}

// Value 返回当前节点负载.
func (r ReverseIterator[T]) Value() T {
	return r.it.Value()
}

// All 按升序遍历所有负载.
func (t *Tree[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for h := t.Min(); h != Nil; h = t.Next(h) {
			if !yield(t.nodes[h].payload) {
				return
			}
		}
	}
}

// Backward 按降序遍历所有负载.
func (t *Tree[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for h := t.Max(); h != Nil; h = t.Prev(h) {
			if !yield(t.nodes[h].payload) {
				return
			}
		}
	}
}
