package rbtree

import "fmt"

// Verify 校验红黑树的五条性质以及父子链接、节点顺序和计数.
// 校验失败时返回 *ViolationError.
func (t *Tree[T]) Verify() error {
	t.init()

	s := t.nodes[Nil]
	if s.color != Black {
		return &ViolationError{Property: PropSentinel, Node: Nil, Detail: "sentinel is red"}
	}
	if s.left != Nil || s.right != Nil || s.parent != Nil || s.live {
		return &ViolationError{Property: PropSentinel, Node: Nil, Detail: "sentinel links were written"}
	}

	if (t.root == Nil) != (t.length == 0) {
		return &ViolationError{
			Property: PropStructure,
			Node:     t.root,
			Detail:   fmt.Sprintf("root %d with length %d", t.root, t.length),
		}
	}
	if t.root == Nil {
		return nil
	}
	if t.nodes[t.root].color != Black {
		return &ViolationError{Property: PropRoot, Node: t.root, Detail: "root is red"}
	}
	if t.nodes[t.root].parent != Nil {
		return &ViolationError{Property: PropStructure, Node: t.root, Detail: "root has a parent"}
	}

	count := 0
	if _, err := t.verifyNode(t.root, &count); err != nil {
		return err
	}
	if count != t.length {
		return &ViolationError{
			Property: PropStructure,
			Node:     t.root,
			Detail:   fmt.Sprintf("reachable %d nodes, length %d", count, t.length),
		}
	}

	// 中序遍历必须非递减
	prev := Nil
	for h := t.Min(); h != Nil; h = t.Next(h) {
		if prev != Nil && t.cmp(t.nodes[prev].payload, t.nodes[h].payload) > 0 {
			return &ViolationError{Property: PropStructure, Node: h, Detail: "in-order sequence decreases"}
		}
		prev = h
	}
	return nil
}

// verifyNode 返回子树黑高.
func (t *Tree[T]) verifyNode(h Handle, count *int) (int, error) {
	if h == Nil {
		return 1, nil
	}
	if int(h) >= len(t.nodes) || !t.nodes[h].live {
		return 0, &ViolationError{Property: PropStructure, Node: h, Detail: "reachable node is not allocated"}
	}
	*count++
	if *count > t.length {
		return 0, &ViolationError{Property: PropStructure, Node: h, Detail: "more reachable nodes than length"}
	}

	n := t.nodes[h]
	for _, c := range [2]Handle{n.left, n.right} {
		if c == Nil {
			continue
		}
		if int(c) >= len(t.nodes) {
			return 0, &ViolationError{Property: PropStructure, Node: h, Detail: "child handle out of range"}
		}
		if t.nodes[c].parent != h {
			return 0, &ViolationError{Property: PropStructure, Node: c, Detail: "parent link mismatch"}
		}
		if n.color == Red && t.nodes[c].color == Red {
			return 0, &ViolationError{Property: PropRedChild, Node: c, Detail: "red node has red child"}
		}
	}

	lh, err := t.verifyNode(n.left, count)
	if err != nil {
		return 0, err
	}
	rh, err := t.verifyNode(n.right, count)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, &ViolationError{
			Property: PropBlackHeight,
			Node:     h,
			Detail:   fmt.Sprintf("left black-height %d, right %d", lh, rh),
		}
	}
	if n.color == Black {
		lh++
	}
	return lh, nil
}
