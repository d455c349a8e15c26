package rbtree

import (
	"cmp"
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/suite"
)

type TreeTestSuite struct {
	suite.Suite
}

func TestTreeSuite(t *testing.T) {
	suite.Run(t, new(TreeTestSuite))
}

func newIntTree(keys ...int) *Tree[int] {
	t := New(cmp.Compare[int])
	for _, k := range keys {
		t.Insert(t.NewNode(k))
	}
	return t
}

func (s *TreeTestSuite) TestNew() {
	t := New(cmp.Compare[int])
	s.NotNil(t)
	s.Equal(0, t.Len())
	s.True(t.IsEmpty())
	s.Equal(Nil, t.Root())
	s.NoError(t.Verify())
}

func (s *TreeTestSuite) TestNewNilComparator() {
	s.PanicsWithValue(ErrNilComparator, func() {
		New[int](nil)
	})
}

func (s *TreeTestSuite) TestInsertAndDeleteScenario() {
	t := newIntTree(50, 30, 70, 20, 40, 60, 80)
	s.Require().NoError(t.Verify())
	s.Equal(7, t.Len())
	s.Equal([]int{20, 30, 40, 50, 60, 70, 80}, slices.Collect(t.All()))

	h := t.Query(30)
	s.Require().NotEqual(Nil, h)
	s.Equal(30, t.Delete(h))

	s.NoError(t.Verify())
	s.Equal(6, t.Len())
	s.Equal([]int{20, 40, 50, 60, 70, 80}, slices.Collect(t.All()))
	s.Equal(Nil, t.Query(30))
}

func (s *TreeTestSuite) TestQueryMissing() {
	t := newIntTree(5, 3, 8)
	s.Equal(Nil, t.Query(4))
	s.Equal(Nil, t.Query(100))
	s.Equal(8, t.Payload(t.Query(8)))
}

func (s *TreeTestSuite) TestQueryFunc() {
	t := newIntTree(10, 20, 30)
	h := t.QueryFunc(func(p int) int { return cmp.Compare(20, p) })
	s.Equal(20, t.Payload(h))

	h = t.QueryFunc(func(p int) int { return cmp.Compare(25, p) })
	s.Equal(Nil, h)
}

func (s *TreeTestSuite) TestAscendingInsertIsBalanced() {
	for _, n := range []int{10, 100, 4096} {
		t := New(cmp.Compare[int])
		for i := range n {
			t.Insert(t.NewNode(i))
		}
		s.Require().NoError(t.Verify())
		bound := 2 * math.Log2(float64(n+1))
		s.LessOrEqual(float64(t.Height()), bound, "n=%d", n)
	}
}

func (s *TreeTestSuite) TestDescendingInsertIsBalanced() {
	t := New(cmp.Compare[int])
	n := 1000
	for i := n; i > 0; i-- {
		t.Insert(t.NewNode(i))
	}
	s.Require().NoError(t.Verify())
	s.LessOrEqual(float64(t.Height()), 2*math.Log2(float64(n+1)))
}

func (s *TreeTestSuite) TestRandomOperationsKeepInvariants() {
	rng := rand.New(rand.NewPCG(42, 7))
	t := New(cmp.Compare[int])
	live := map[int]bool{}

	for step := range 3000 {
		k := rng.IntN(500)
		if live[k] {
			t.Delete(t.Query(k))
			delete(live, k)
		} else {
			t.Insert(t.NewNode(k))
			live[k] = true
		}
		s.Require().NoError(t.Verify(), "step %d", step)
		s.Require().Equal(len(live), t.Len())
	}

	want := make([]int, 0, len(live))
	for k := range live {
		want = append(want, k)
	}
	slices.Sort(want)
	s.Equal(want, slices.Collect(t.All()))
}

func (s *TreeTestSuite) TestDeleteAll() {
	keys := rand.New(rand.NewPCG(1, 2)).Perm(256)
	t := newIntTree(keys...)

	for _, k := range keys {
		h := t.Query(k)
		s.Require().NotEqual(Nil, h)
		s.Equal(k, t.Delete(h))
		s.Require().NoError(t.Verify())
	}
	s.True(t.IsEmpty())
	s.Equal(Nil, t.Root())
	s.True(t.Begin().Equal(t.End()))
}

func (s *TreeTestSuite) TestRoundTrip() {
	t := newIntTree(8, 4, 12, 2, 6, 10, 14)
	before := slices.Collect(t.All())

	t.Insert(t.NewNode(7))
	s.Require().NoError(t.Verify())
	t.Delete(t.Query(7))

	s.NoError(t.Verify())
	s.Equal(before, slices.Collect(t.All()))
}

func (s *TreeTestSuite) TestDeleteTwoChildrenCopiesSuccessor() {
	t := newIntTree(50, 30, 70, 20, 40)
	h := t.Query(30)
	s.Require().NotEqual(Nil, t.nodes[h].left)
	s.Require().NotEqual(Nil, t.nodes[h].right)

	s.Equal(30, t.Delete(h))
	s.Equal(40, t.Payload(h))
	s.Equal(h, t.Query(40))
	s.NoError(t.Verify())
}

func (s *TreeTestSuite) TestSlotReuse() {
	t := newIntTree(1, 2, 3)
	h := t.Query(1)
	t.Delete(h)

	reused := t.NewNode(9)
	s.Equal(h, reused)
	t.Insert(reused)
	s.Equal([]int{2, 3, 9}, slices.Collect(t.All()))
	s.NoError(t.Verify())
}

func (s *TreeTestSuite) TestDuplicateInsert() {
	t := newIntTree(5, 5)
	s.Equal(2, t.Len())
	s.NoError(t.Verify())
	s.Equal([]int{5, 5}, slices.Collect(t.All()))
}

func (s *TreeTestSuite) TestInsertLinkedNodePanics() {
	t := newIntTree(1, 2)
	s.PanicsWithValue(ErrNodeLinked, func() {
		t.Insert(t.Query(1))
	})
	s.NoError(t.Verify())
}

func (s *TreeTestSuite) TestDeleteUnlinkedNodePanics() {
	t := newIntTree(1, 2)
	h := t.NewNode(3)
	s.PanicsWithValue(ErrNodeNotLinked, func() {
		t.Delete(h)
	})
	s.Equal(2, t.Len())
}

func (s *TreeTestSuite) TestInvalidHandlePanics() {
	t := newIntTree(1)
	s.PanicsWithValue(ErrInvalidHandle, func() { t.Delete(Nil) })
	s.PanicsWithValue(ErrInvalidHandle, func() { t.Payload(Handle(99)) })

	h := t.Query(1)
	t.Delete(h)
	s.PanicsWithValue(ErrInvalidHandle, func() { t.Delete(h) })
}

func (s *TreeTestSuite) TestClear() {
	t := newIntTree(3, 1, 2)
	t.Clear()
	s.Equal(0, t.Len())
	s.Equal(Nil, t.Root())
	s.NoError(t.Verify())

	t.Insert(t.NewNode(4))
	s.Equal([]int{4}, slices.Collect(t.All()))
}

func (s *TreeTestSuite) TestClone() {
	t := newIntTree(1, 2, 3)
	c := t.Clone()
	c.Insert(c.NewNode(4))
	c.Delete(c.Query(1))

	s.Equal([]int{1, 2, 3}, slices.Collect(t.All()))
	s.Equal([]int{2, 3, 4}, slices.Collect(c.All()))
	s.NoError(t.Verify())
	s.NoError(c.Verify())
}

func (s *TreeTestSuite) TestSentinelUntouched() {
	t := newIntTree(rand.New(rand.NewPCG(3, 3)).Perm(128)...)
	for k := range 128 {
		if k%3 == 0 {
			t.Delete(t.Query(k))
		}
	}
	s.Equal(node[int]{}, t.nodes[Nil])
	s.Equal(Black, t.ColorOf(Nil))
}

// === Verify 测试 ===

func (s *TreeTestSuite) TestVerifyRedRoot() {
	t := newIntTree(1)
	t.nodes[t.root].color = Red

	var v *ViolationError
	s.Require().True(errors.As(t.Verify(), &v))
	s.Equal(PropRoot, v.Property)
}

func (s *TreeTestSuite) TestVerifyRedChild() {
	t := newIntTree(2, 1, 3, 4)
	h := t.Query(3)
	t.nodes[h].color = Red

	var v *ViolationError
	s.Require().True(errors.As(t.Verify(), &v))
	s.Equal(PropRedChild, v.Property)
}

func (s *TreeTestSuite) TestVerifyBlackHeight() {
	t := newIntTree(2, 1, 3)
	s.Require().Equal(Red, t.ColorOf(t.Query(1)))
	t.nodes[t.Query(1)].color = Black

	var v *ViolationError
	s.Require().True(errors.As(t.Verify(), &v))
	s.Equal(PropBlackHeight, v.Property)
	s.Contains(v.Error(), "black-height")
}

func (s *TreeTestSuite) TestVerifyOrder() {
	t := newIntTree(2, 1, 3)
	t.nodes[t.Query(1)].payload = 10

	var v *ViolationError
	s.Require().True(errors.As(t.Verify(), &v))
	s.Equal(PropStructure, v.Property)
}

func (s *TreeTestSuite) TestVerifyLength() {
	t := newIntTree(2, 1, 3)
	t.length = 2

	var v *ViolationError
	s.Require().True(errors.As(t.Verify(), &v))
	s.Equal(PropStructure, v.Property)
}

func (s *TreeTestSuite) TestPropertyString() {
	s.Equal("red-child", PropRedChild.String())
	s.Equal("property(42)", Property(42).String())
	s.Equal("red", Red.String())
	s.Equal("black", Black.String())
}
