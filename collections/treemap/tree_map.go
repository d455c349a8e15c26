// Package treemap 提供基于红黑树实现的有序 Map.
package treemap

import (
	"cmp"
	"iter"
	"time"

	"github.com/Tsukikage7/rbtree-kit/collections/rbtree"
	"github.com/Tsukikage7/rbtree-kit/logger"
)

// 操作名称，用于日志和指标标签.
const (
	opInsert = "insert"
	opRemove = "remove"
	opQuery  = "query"
	opGet    = "get"
	opClear  = "clear"
)

// Entry 键值对.
// Key 在插入后不可修改.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// Map 基于红黑树的有序 Map.
//
// 特性:
//   - 按键排序存储
//   - 插入、删除、查找时间复杂度 O(log n)
//   - 支持自定义比较器
//   - 非并发安全
//
// Map 持有键值对，树只负责节点的链接与再平衡.
//
// 示例:
//
//	m := treemap.NewOrdered[int, string]()
//	m.InsertKeyValue(3, "three")
//	m.InsertKeyValue(1, "one")
//	m.InsertKeyValue(2, "two")
//	m.Keys() // [1, 2, 3]
type Map[K any, V any] struct {
	tree *rbtree.Tree[*Entry[K, V]]
	cmp  Comparator[K]
	opts *options
}

// New 创建 Map，需要提供比较器.
func New[K any, V any](cmp Comparator[K], opts ...Option) *Map[K, V] {
	if cmp == nil {
		panic(ErrNilComparator)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Map[K, V]{
		tree: newTree[K, V](cmp),
		cmp:  cmp,
		opts: o,
	}
}

// NewOrdered 创建 Map，使用内置类型的默认比较.
func NewOrdered[K cmp.Ordered, V any](opts ...Option) *Map[K, V] {
	return New[K, V](OrderedCompare[K], opts...)
}

func newTree[K any, V any](cmp Comparator[K]) *rbtree.Tree[*Entry[K, V]] {
	return rbtree.New(func(a, b *Entry[K, V]) int {
		return cmp(a.Key, b.Key)
	})
}

// InsertKeyValue 插入键值对.
// 键已存在时覆盖其值并返回 true，否则新建条目并返回 false.
func (m *Map[K, V]) InsertKeyValue(key K, value V) bool {
	defer m.track(opInsert)()

	if h := m.find(key); h != rbtree.Nil {
		m.tree.Payload(h).Value = value
		return true
	}
	m.tree.Insert(m.tree.NewNode(&Entry[K, V]{Key: key, Value: value}))
	return false
}

// RemoveElementWithKey 删除键并返回其值.
// 键不存在属于调用方错误，会以 *ContractError panic.
func (m *Map[K, V]) RemoveElementWithKey(key K) V {
	defer m.track(opRemove)()

	h := m.find(key)
	if h == rbtree.Nil {
		m.violate(opRemove, key)
	}
	return m.tree.Delete(h).Value
}

// Remove 删除键值对，返回被删除的值，键不存在时返回 false.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	defer m.track(opRemove)()

	h := m.find(key)
	if h == rbtree.Nil {
		var zero V
		return zero, false
	}
	return m.tree.Delete(h).Value, true
}

// Contains 判断键是否存在.
func (m *Map[K, V]) Contains(key K) bool {
	defer m.track(opQuery)()
	return m.find(key) != rbtree.Nil
}

// QueryIterator 返回指向键的迭代器，键不存在时返回 End.
func (m *Map[K, V]) QueryIterator(key K) Iterator[K, V] {
	defer m.track(opQuery)()
	return Iterator[K, V]{it: m.tree.IteratorAt(m.find(key))}
}

// GetValueWithKey 返回键对应的值.
// 键不存在属于调用方错误，会以 *ContractError panic.
func (m *Map[K, V]) GetValueWithKey(key K) V {
	return *m.At(key)
}

// At 返回指向键对应值的指针，可用于原地修改.
// 键不存在属于调用方错误，会以 *ContractError panic.
func (m *Map[K, V]) At(key K) *V {
	defer m.track(opGet)()

	h := m.find(key)
	if h == rbtree.Nil {
		m.violate(opGet, key)
	}
	return &m.tree.Payload(h).Value
}

// Get 获取键对应的值.
func (m *Map[K, V]) Get(key K) (V, bool) {
	defer m.track(opGet)()

	h := m.find(key)
	if h == rbtree.Nil {
		var zero V
		return zero, false
	}
	return m.tree.Payload(h).Value, true
}

// GetOrDefault 获取键对应的值，不存在则返回默认值.
func (m *Map[K, V]) GetOrDefault(key K, defaultVal V) V {
	if v, ok := m.Get(key); ok {
		return v
	}
	return defaultVal
}

// Len 返回元素数量.
func (m *Map[K, V]) Len() int {
	return m.tree.Len()
}

// GetLength 返回元素数量，等同于 Len.
func (m *Map[K, V]) GetLength() int {
	return m.tree.Len()
}

// IsEmpty 判断是否为空.
func (m *Map[K, V]) IsEmpty() bool {
	return m.tree.IsEmpty()
}

// Clear 清空所有元素.
func (m *Map[K, V]) Clear() {
	defer m.track(opClear)()
	m.tree.Clear()
}

// Height 返回底层红黑树高度.
func (m *Map[K, V]) Height() int {
	return m.tree.Height()
}

// Verify 校验底层红黑树的结构性质.
func (m *Map[K, V]) Verify() error {
	return m.tree.Verify()
}

// Keys 返回所有键（按排序顺序）.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Len())
	for e := range m.tree.All() {
		keys = append(keys, e.Key)
	}
	return keys
}

// Values 返回所有值（按键排序顺序）.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, m.Len())
	for e := range m.tree.All() {
		values = append(values, e.Value)
	}
	return values
}

// Entries 返回所有键值对的副本（按键排序顺序）.
func (m *Map[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, m.Len())
	for e := range m.tree.All() {
		entries = append(entries, *e)
	}
	return entries
}

// Range 按顺序遍历所有键值对.
// fn 返回 false 时停止遍历.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for e := range m.tree.All() {
		if !fn(e.Key, e.Value) {
			return
		}
	}
}

// All 按键升序遍历.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := range m.tree.All() {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Backward 按键降序遍历.
func (m *Map[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := range m.tree.Backward() {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// FirstKey 返回最小的键.
func (m *Map[K, V]) FirstKey() (K, bool) {
	e, ok := m.First()
	return e.Key, ok
}

// LastKey 返回最大的键.
func (m *Map[K, V]) LastKey() (K, bool) {
	e, ok := m.Last()
	return e.Key, ok
}

// First 返回最小键的键值对.
func (m *Map[K, V]) First() (Entry[K, V], bool) {
	h := m.tree.Min()
	if h == rbtree.Nil {
		return Entry[K, V]{}, false
	}
	return *m.tree.Payload(h), true
}

// Last 返回最大键的键值对.
func (m *Map[K, V]) Last() (Entry[K, V], bool) {
	h := m.tree.Max()
	if h == rbtree.Nil {
		return Entry[K, V]{}, false
	}
	return *m.tree.Payload(h), true
}

// ToMap 转换为原生 map（无序）.
// 原生 map 要求键可比较，因此只接受 K 满足 comparable 的 Map，
// 使用自定义比较器的不可比较键（如 []byte）在编译期即被拒绝.
func ToMap[K comparable, V any](m *Map[K, V]) map[K]V {
	result := make(map[K]V, m.Len())
	for e := range m.tree.All() {
		result[e.Key] = e.Value
	}
	return result
}

// Clone 复制 Map，每个键值对都会重新分配并插入.
func (m *Map[K, V]) Clone() *Map[K, V] {
	clone := &Map[K, V]{
		tree: newTree[K, V](m.cmp),
		cmp:  m.cmp,
		opts: m.opts,
	}
	for e := range m.tree.All() {
		clone.tree.Insert(clone.tree.NewNode(&Entry[K, V]{Key: e.Key, Value: e.Value}))
	}
	return clone
}

// MoveFrom 接管 other 的全部内容和比较器，other 变为空 Map.
func (m *Map[K, V]) MoveFrom(other *Map[K, V]) {
	if other == nil || other == m {
		return
	}
	m.tree = other.tree
	m.cmp = other.cmp
	other.tree = newTree[K, V](other.cmp)
}

// Comparator 返回比较器.
func (m *Map[K, V]) Comparator() Comparator[K] {
	return m.cmp
}

// find 查找键对应的节点.
func (m *Map[K, V]) find(key K) rbtree.Handle {
	return m.tree.QueryFunc(func(e *Entry[K, V]) int {
		return m.cmp(key, e.Key)
	})
}

// violate 记录契约违反并 panic.
func (m *Map[K, V]) violate(op string, key K) {
	err := &ContractError{Op: op, Key: key, Err: ErrKeyNotFound}
	m.opts.log.With(
		logger.String("container", m.opts.name),
		logger.String("op", op),
		logger.Any("key", key),
	).Error(err.Error())
	if m.opts.collector != nil {
		m.opts.collector.RecordViolation(m.opts.name, op)
	}
	panic(err)
}

// track 在设置了指标收集器时记录操作耗时和容器大小.
func (m *Map[K, V]) track(op string) func() {
	c := m.opts.collector
	if c == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		c.RecordOperation(m.opts.name, op, time.Since(start))
		c.SetSize(m.opts.name, m.tree.Len())
		if m.opts.height && mutates(op) {
			c.SetHeight(m.opts.name, m.tree.Height())
		}
	}
}

func mutates(op string) bool {
	switch op {
	case opInsert, opRemove, opClear:
		return true
	}
	return false
}
