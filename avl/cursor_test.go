package avl

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestCursorForwardAndBackward(t *testing.T) {
	tree := intTree(5, 3, 8, 1, 4, 7, 9)

	var forward []int
	c := tree.Begin()
	for !c.IsEnd() {
		forward = append(forward, c.Key())
		require.NoError(t, c.Next())
	}
	require.Equal(t, []int{1, 3, 4, 5, 7, 8, 9}, forward)
	require.Equal(t, tree.End(), c)

	var backward []int
	for {
		if err := c.Prev(); err != nil {
			require.True(t, errors.Is(err, ErrOutOfRange))
			break
		}
		backward = append(backward, c.Key())
	}
	require.Equal(t, []int{9, 8, 7, 5, 4, 3, 1}, backward)
	require.Equal(t, tree.Begin(), c)
}

func TestCursorEndDoesNotWrap(t *testing.T) {
	tree := intTree(2, 1, 3)
	end := tree.End()
	err := end.Next()
	require.True(t, errors.Is(err, ErrOutOfRange))
	require.True(t, end.IsEnd())

	last := tree.End()
	require.NoError(t, last.Prev())
	require.Equal(t, 3, last.Key())

	first := tree.Begin()
	err = first.Prev()
	require.True(t, errors.Is(err, ErrOutOfRange))
	require.Equal(t, 1, first.Key())

	empty := New[int, int]()
	e := empty.End()
	require.True(t, errors.Is(e.Prev(), ErrOutOfRange))
	require.True(t, errors.Is(e.Next(), ErrOutOfRange))
	require.Equal(t, empty.End(), empty.Begin())
}

func TestCursorSuccPredLeaveReceiver(t *testing.T) {
	tree := intTree(10, 20, 30)
	c := tree.Find(20)
	n, err := c.Succ()
	require.NoError(t, err)
	p, err := c.Pred()
	require.NoError(t, err)
	require.Equal(t, 20, c.Key())
	require.Equal(t, 30, n.Key())
	require.Equal(t, 10, p.Key())

	n, err = n.Succ()
	require.NoError(t, err)
	require.True(t, n.IsEnd())
}

func TestCursorDereferenceEndPanics(t *testing.T) {
	tree := intTree(1)
	end := tree.End()
	require.PanicsWithError(t, "dereference of end: avl: cursor out of range", func() { end.Key() })
	require.Panics(t, func() { end.Value() })
	require.Panics(t, func() { end.SetValue("x") })

	var zero Cursor[int, string]
	require.False(t, zero.Valid())
	require.False(t, zero.IsEnd())
	require.Panics(t, func() { zero.Key() })
	require.True(t, errors.Is(zero.Next(), ErrInvalidCursor))
	require.True(t, errors.Is(zero.Prev(), ErrInvalidCursor))
}

func TestCursorSetValue(t *testing.T) {
	tree := intTree(5, 3, 7)
	c := tree.Find(7)
	c.SetValue("z")
	v, err := tree.Get(7)
	require.NoError(t, err)
	require.Equal(t, "z", v)
	require.Equal(t, 3, tree.Len())
}

func TestCursorIdentity(t *testing.T) {
	a := intTree(1, 2)
	b := intTree(1, 2)
	require.True(t, a.Find(1) == a.Begin())
	require.False(t, a.Find(1) == a.Find(2))
	// Same key, different trees: different nodes.
	require.False(t, a.Find(1) == b.Find(1))
	require.False(t, a.End() == b.End())
}

func TestCursorSurvivesInsertions(t *testing.T) {
	tree := intTree(50)
	c := tree.Find(50)
	for i := 0; i < 200; i++ {
		tree.Insert(i, "")
	}
	require.True(t, c.Valid())
	require.Equal(t, 50, c.Key())
	n, err := c.Succ()
	require.NoError(t, err)
	require.Equal(t, 51, n.Key())
	p, err := c.Pred()
	require.NoError(t, err)
	require.Equal(t, 49, p.Key())
}

func TestCursorString(t *testing.T) {
	tree := intTree(4)
	require.Equal(t, "Cursor{key: 4, value: 4}", tree.Begin().String())
	require.Equal(t, "end()", tree.End().String())
	c := tree.Begin()
	require.NoError(t, tree.Delete(4))
	require.Equal(t, "invalid()", c.String())
}
