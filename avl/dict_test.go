package avl

import (
	"maps"
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestGetSetDelete(t *testing.T) {
	tree := New[string, int]()
	tree.Set("b", 2)
	tree.Set("a", 1)
	require.True(t, tree.Contains("a"))
	require.False(t, tree.Contains("z"))

	v, err := tree.Get("b")
	require.NoError(t, err)
	require.Equal(t, 2, v)

	_, err = tree.Get("z")
	require.True(t, errors.Is(err, ErrKeyNotFound))
	require.Contains(t, err.Error(), "key z")

	tree.Set("a", 10)
	require.Equal(t, 2, tree.Len())

	require.NoError(t, tree.Delete("a"))
	err = tree.Delete("a")
	require.True(t, errors.Is(err, ErrKeyNotFound))
	require.Equal(t, 1, tree.Len())
	require.NoError(t, tree.Verify())
}

func TestEqualIgnoresShape(t *testing.T) {
	a := New(Pair[string, int]{"a", 1}, Pair[string, int]{"b", 2})
	b := New(Pair[string, int]{"b", 2}, Pair[string, int]{"a", 1})
	require.True(t, Equal(a, b))
	require.True(t, Equal(b, a))

	asc := intTree(1, 2, 3, 4, 5, 6, 7)
	mixed := intTree(4, 6, 2, 7, 5, 3, 1)
	require.True(t, Equal(asc, mixed))

	b.Set("b", 3)
	require.False(t, Equal(a, b))
	b.Set("b", 2)
	b.Set("c", 3)
	require.False(t, Equal(a, b))
	require.False(t, Equal(b, a))

	require.True(t, Equal(New[int, int](), New[int, int]()))
}

func TestEqualFunc(t *testing.T) {
	a := New(Pair[int, []byte]{1, []byte("x")})
	b := New(Pair[int, []byte]{1, []byte("x")})
	require.True(t, EqualFunc(a, b, slices.Equal[[]byte]))
	b.Set(1, []byte("y"))
	require.False(t, EqualFunc(a, b, slices.Equal[[]byte]))
}

func TestCloneIsDeep(t *testing.T) {
	orig := intTree(5, 3, 7, 1, 4, 2, 6, 0, 8)
	clone := orig.Clone()
	require.NoError(t, clone.Verify())
	require.True(t, Equal(orig, clone))
	require.Equal(t, orig.Height(), clone.Height())
	require.Equal(t, orig.Shape(), clone.Shape())
	require.NotSame(t, &orig.arena.nodes[0], &clone.arena.nodes[0])

	clone.Set(5, "a")
	clone.Set(9, "b")
	clone.Find(7).SetValue("z")
	_, ok := clone.Erase(3)
	require.True(t, ok)
	require.NoError(t, clone.Verify())
	require.NoError(t, orig.Verify())

	require.Equal(t, 9, orig.Len())
	v, err := orig.Get(5)
	require.NoError(t, err)
	require.Equal(t, "5", v)
	v, err = orig.Get(7)
	require.NoError(t, err)
	require.Equal(t, "7", v)
	require.True(t, orig.Contains(3))
	require.False(t, orig.Contains(9))
	require.False(t, Equal(orig, clone))

	empty := New[int, int]().Clone()
	require.True(t, empty.IsEmpty())
	require.NoError(t, empty.Verify())
	empty.Set(1, 1)
	require.NoError(t, empty.Verify())
}

func TestIterators(t *testing.T) {
	tree := intTree(3, 1, 2, 5, 4)
	require.Equal(t, []int{1, 2, 3, 4, 5}, slices.Collect(tree.Keys()))
	require.Equal(t, []string{"1", "2", "3", "4", "5"}, slices.Collect(tree.Values()))
	require.Equal(t, map[int]string{1: "1", 2: "2", 3: "3", 4: "4", 5: "5"}, maps.Collect(tree.All()))

	var back []int
	for k := range tree.Backward() {
		back = append(back, k)
	}
	require.Equal(t, []int{5, 4, 3, 2, 1}, back)

	var firstTwo []int
	for k := range tree.Keys() {
		if len(firstTwo) == 2 {
			break
		}
		firstTwo = append(firstTwo, k)
	}
	require.Equal(t, []int{1, 2}, firstTwo)

	for range New[int, int]().All() {
		t.Fatal("empty tree yielded a pair")
	}
}

func TestCollect(t *testing.T) {
	src := map[string]int{"x": 1, "y": 2, "w": 3}
	tree := Collect(maps.All(src))
	require.Equal(t, []string{"w", "x", "y"}, slices.Collect(tree.Keys()))
	require.NoError(t, tree.Verify())
}

func TestString(t *testing.T) {
	require.Equal(t, "tree[]", New[int, int]().String())
	require.Equal(t, "tree[1:1 2:2 3:3]", intTree(2, 3, 1).String())
}
