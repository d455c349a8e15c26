package rbtree

// Tree 红黑树引擎.
//
// 特性:
//   - Query/Insert/Delete 时间复杂度 O(log n)
//   - 节点集中存放，释放的槽位会被复用
//   - 非并发安全，修改操作需由调用方串行化
//
// 示例:
//
//	t := rbtree.New(cmp.Compare[int])
//	t.Insert(t.NewNode(3))
//	t.Insert(t.NewNode(1))
//	h := t.Query(1) // h != rbtree.Nil
type Tree[T any] struct {
	nodes  []node[T]
	free   []Handle
	root   Handle
	length int
	cmp    Comparator[T]
}

// New 创建红黑树，比较器不能为空.
func New[T any](cmp Comparator[T]) *Tree[T] {
	if cmp == nil {
		panic(ErrNilComparator)
	}
	t := &Tree[T]{cmp: cmp}
	t.init()
	return t
}

// init 分配哨兵节点.
func (t *Tree[T]) init() {
	if len(t.nodes) == 0 {
		t.nodes = append(t.nodes, node[T]{})
	}
}

// Len 返回树中节点数量.
func (t *Tree[T]) Len() int {
	return t.length
}

// IsEmpty 判断树是否为空.
func (t *Tree[T]) IsEmpty() bool {
	return t.length == 0
}

// Root 返回根节点，空树返回 Nil.
func (t *Tree[T]) Root() Handle {
	return t.root
}

// Comparator 返回比较器.
func (t *Tree[T]) Comparator() Comparator[T] {
	return t.cmp
}

// Clear 清空所有节点.
func (t *Tree[T]) Clear() {
	t.init()
	clear(t.nodes)
	t.nodes = t.nodes[:1]
	t.free = nil
	t.root = Nil
	t.length = 0
}

// Clone 复制整棵树，负载按值浅拷贝.
func (t *Tree[T]) Clone() *Tree[T] {
	c := &Tree[T]{
		nodes:  make([]node[T], len(t.nodes)),
		root:   t.root,
		length: t.length,
		cmp:    t.cmp,
	}
	copy(c.nodes, t.nodes)
	if len(t.free) > 0 {
		c.free = make([]Handle, len(t.free))
		copy(c.free, t.free)
	}
	c.init()
	return c
}

// Query 查找与 comparand 相等的节点，未找到返回 Nil.
func (t *Tree[T]) Query(comparand T) Handle {
	cur := t.root
	for cur != Nil {
		n := &t.nodes[cur]
		c := t.cmp(comparand, n.payload)
		switch {
		case c < 0:
			cur = n.left
		case c > 0:
			cur = n.right
		default:
			return cur
		}
	}
	return Nil
}

// QueryFunc 使用单侧探针查找节点.
// probe 返回探针相对负载的比较结果，语义与 Comparator(probe, payload) 一致.
func (t *Tree[T]) QueryFunc(probe func(payload T) int) Handle {
	cur := t.root
	for cur != Nil {
		n := &t.nodes[cur]
		c := probe(n.payload)
		switch {
		case c < 0:
			cur = n.left
		case c > 0:
			cur = n.right
		default:
			return cur
		}
	}
	return Nil
}

// Insert 将 NewNode 分配的节点链接到树中并恢复红黑性质.
//
// 与已有负载相等的节点会被放在其右侧，Query 无法再访问到它，
// 是否允许重复由上层容器决定.
func (t *Tree[T]) Insert(h Handle) {
	t.mustLive(h)
	if t.linked(h) {
		panic(ErrNodeLinked)
	}

	ns := t.nodes
	z := &ns[h]

	// 查找插入位置
	parent := Nil
	cur := t.root
	less := false
	for cur != Nil {
		parent = cur
		less = t.cmp(z.payload, ns[cur].payload) < 0
		if less {
			cur = ns[cur].left
		} else {
			cur = ns[cur].right
		}
	}

	z.parent = parent
	z.left = Nil
	z.right = Nil
	z.color = Red

	switch {
	case parent == Nil:
		t.root = h
	case less:
		ns[parent].left = h
	default:
		ns[parent].right = h
	}
	t.length++

	t.repair(h)
}

// Delete 从树中移除节点并返回其负载.
//
// 节点有两个子节点时，后继节点的负载会被复制到 h，实际摘除的是后继节点，
// 因此之前指向后继节点的句柄和迭代器随之失效.
func (t *Tree[T]) Delete(h Handle) T {
	t.mustLive(h)
	if !t.linked(h) {
		panic(ErrNodeNotLinked)
	}

	ns := t.nodes
	removed := ns[h].payload

	y := h
	if ns[h].left != Nil && ns[h].right != Nil {
		y = t.minimum(ns[h].right)
		ns[h].payload = ns[y].payload
	}

	child := ns[y].left
	if child == Nil {
		child = ns[y].right
	}
	parent := ns[y].parent

	if child != Nil {
		ns[child].parent = parent
	}
	switch {
	case parent == Nil:
		t.root = child
	case y == ns[parent].left:
		ns[parent].left = child
	default:
		ns[parent].right = child
	}

	if ns[y].color == Black {
		t.deleteFixup(child, parent)
	}

	t.release(y)
	t.length--
	return removed
}

// Height 返回最长根叶路径上的节点数，空树为 0.
func (t *Tree[T]) Height() int {
	return t.height(t.root)
}

func (t *Tree[T]) height(h Handle) int {
	if h == Nil {
		return 0
	}
	return 1 + max(t.height(t.nodes[h].left), t.height(t.nodes[h].right))
}

// 红黑树操作

func (t *Tree[T]) rotateLeft(x Handle) {
	ns := t.nodes
	r := ns[x].right
	ns[x].right = ns[r].left
	if ns[r].left != Nil {
		ns[ns[r].left].parent = x
	}
	ns[r].parent = ns[x].parent
	switch p := ns[x].parent; {
	case p == Nil:
		t.root = r
	case x == ns[p].left:
		ns[p].left = r
	default:
		ns[p].right = r
	}
	ns[r].left = x
	ns[x].parent = r
}

func (t *Tree[T]) rotateRight(x Handle) {
	ns := t.nodes
	l := ns[x].left
	ns[x].left = ns[l].right
	if ns[l].right != Nil {
		ns[ns[l].right].parent = x
	}
	ns[l].parent = ns[x].parent
	switch p := ns[x].parent; {
	case p == Nil:
		t.root = l
	case x == ns[p].right:
		ns[p].right = l
	default:
		ns[p].left = l
	}
	ns[l].right = x
	ns[x].parent = l
}

// repair 插入后修复，循环条件依赖哨兵为黑色.
func (t *Tree[T]) repair(z Handle) {
	ns := t.nodes
	for ns[ns[z].parent].color == Red {
		p := ns[z].parent
		g := ns[p].parent
		if p == ns[g].left {
			uncle := ns[g].right
			if ns[uncle].color == Red {
				ns[p].color = Black
				ns[uncle].color = Black
				ns[g].color = Red
				z = g
				continue
			}
			if z == ns[p].right {
				z = p
				t.rotateLeft(z)
				p = ns[z].parent
			}
			ns[p].color = Black
			ns[g].color = Red
			t.rotateRight(g)
		} else {
			uncle := ns[g].left
			if ns[uncle].color == Red {
				ns[p].color = Black
				ns[uncle].color = Black
				ns[g].color = Red
				z = g
				continue
			}
			if z == ns[p].left {
				z = p
				t.rotateRight(z)
				p = ns[z].parent
			}
			ns[p].color = Black
			ns[g].color = Red
			t.rotateLeft(g)
		}
	}
	ns[t.root].color = Black
}

// deleteFixup 删除后修复.
// x 可能是 Nil，其父节点通过 parent 显式传递，哨兵的字段保持不变.
func (t *Tree[T]) deleteFixup(x, parent Handle) {
	ns := t.nodes
	for x != t.root && ns[x].color == Black {
		if x == ns[parent].left {
			sibling := ns[parent].right
			if ns[sibling].color == Red {
				ns[sibling].color = Black
				ns[parent].color = Red
				t.rotateLeft(parent)
				sibling = ns[parent].right
			}
			if ns[ns[sibling].left].color == Black && ns[ns[sibling].right].color == Black {
				ns[sibling].color = Red
				x = parent
				parent = ns[x].parent
				continue
			}
			if ns[ns[sibling].right].color == Black {
				ns[ns[sibling].left].color = Black
				ns[sibling].color = Red
				t.rotateRight(sibling)
				sibling = ns[parent].right
			}
			ns[sibling].color = ns[parent].color
			ns[parent].color = Black
			ns[ns[sibling].right].color = Black
			t.rotateLeft(parent)
			x = t.root
		} else {
			sibling := ns[parent].left
			if ns[sibling].color == Red {
				ns[sibling].color = Black
				ns[parent].color = Red
				t.rotateRight(parent)
				sibling = ns[parent].left
			}
			if ns[ns[sibling].right].color == Black && ns[ns[sibling].left].color == Black {
				ns[sibling].color = Red
				x = parent
				parent = ns[x].parent
				continue
			}
			if ns[ns[sibling].left].color == Black {
				ns[ns[sibling].right].color = Black
				ns[sibling].color = Red
				t.rotateLeft(sibling)
				sibling = ns[parent].left
			}
			ns[sibling].color = ns[parent].color
			ns[parent].color = Black
			ns[ns[sibling].left].color = Black
			t.rotateRight(parent)
			x = t.root
		}
	}
	if x != Nil {
		ns[x].color = Black
	}
}
