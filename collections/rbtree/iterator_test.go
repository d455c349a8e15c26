package rbtree

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterator_EmptyTree(t *testing.T) {
	tree := New(cmp.Compare[int])

	assert.True(t, tree.Begin().Equal(tree.End()))
	assert.True(t, tree.ReverseBegin().Equal(tree.ReverseEnd()))
	assert.True(t, tree.Begin().IsEnd())
	assert.Equal(t, Nil, tree.Min())
	assert.Equal(t, Nil, tree.Max())
}

func TestIterator_Forward(t *testing.T) {
	keys := rand.New(rand.NewPCG(9, 9)).Perm(200)
	tree := newIntTree(keys...)

	var got []int
	for it := tree.Begin(); !it.Equal(tree.End()); it = it.Next() {
		got = append(got, it.Value())
	}

	want := slices.Clone(keys)
	slices.Sort(want)
	assert.Equal(t, want, got)
}

func TestIterator_Reverse(t *testing.T) {
	tree := newIntTree(50, 30, 70, 20, 40, 60, 80)

	var got []int
	for it := tree.ReverseBegin(); !it.Equal(tree.ReverseEnd()); it = it.Next() {
		got = append(got, it.Value())
	}
	assert.Equal(t, []int{80, 70, 60, 50, 40, 30, 20}, got)
	assert.Equal(t, got, slices.Collect(tree.Backward()))
}

func TestIterator_Boundaries(t *testing.T) {
	tree := newIntTree(5, 1, 9, 3)

	assert.Equal(t, Nil, tree.Next(tree.Max()))
	assert.Equal(t, Nil, tree.Prev(tree.Min()))
	assert.True(t, tree.ReverseBegin().Base().Next().Equal(tree.End()))
	assert.True(t, tree.Begin().Prev().Equal(tree.End()))

	// End 上移动保持在 End
	assert.True(t, tree.End().Next().IsEnd())
	assert.True(t, tree.End().Prev().IsEnd())
}

func TestIterator_PrevMirrorsNext(t *testing.T) {
	tree := newIntTree(rand.New(rand.NewPCG(5, 1)).Perm(64)...)

	for h := tree.Min(); h != Nil; h = tree.Next(h) {
		if next := tree.Next(h); next != Nil {
			assert.Equal(t, h, tree.Prev(next))
		}
	}
}

func TestIterator_ReversePrev(t *testing.T) {
	tree := newIntTree(1, 2, 3)
	r := tree.ReverseBegin().Next()
	require.Equal(t, 2, r.Value())
	assert.Equal(t, 3, r.Prev().Value())
	assert.False(t, r.IsEnd())
}

func TestIterator_EqualRequiresSameTree(t *testing.T) {
	a := newIntTree(1)
	b := newIntTree(1)

	assert.False(t, a.End().Equal(b.End()))
	assert.False(t, a.Begin().Equal(b.Begin()))
	assert.True(t, a.Begin().Equal(a.IteratorAt(a.Query(1))))
}

func TestIterator_ValueAtEndPanics(t *testing.T) {
	tree := newIntTree(1)

	assert.PanicsWithValue(t, ErrEndDereference, func() {
		tree.End().Value()
	})
	assert.PanicsWithValue(t, ErrEndDereference, func() {
		tree.ReverseEnd().Value()
	})
}

func TestIterator_Handle(t *testing.T) {
	tree := newIntTree(4, 2)
	it := tree.Begin()
	assert.Equal(t, tree.Query(2), it.Handle())
}

func TestSeq_EarlyStop(t *testing.T) {
	tree := newIntTree(1, 2, 3, 4, 5)

	var got []int
	for v := range tree.All() {
		if v > 3 {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2, 3}, got)

	got = got[:0]
	for v := range tree.Backward() {
		if v < 4 {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{5, 4}, got)
}
