package avl

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestVerifyDetectsCorruption(t *testing.T) {
	for _, tc := range []struct {
		name    string
		corrupt func(tree *Tree[int, string])
		msg     string
	}{
		{
			name: "stale height",
			corrupt: func(tree *Tree[int, string]) {
				tree.arena.nodes[tree.Find(1).h].height = 2
			},
			msg: "stores height",
		},
		{
			name: "broken parent link",
			corrupt: func(tree *Tree[int, string]) {
				tree.arena.nodes[tree.Find(9).h].parent = tree.Find(3).h
			},
			msg: "has parent",
		},
		{
			name: "order violated below grandparent",
			corrupt: func(tree *Tree[int, string]) {
				// 4 sits in 5's left subtree; 6 is locally greater than its
				// parent 3 but not less than 5.
				tree.arena.nodes[tree.Find(4).h].key = 6
			},
			msg: "is not less than ancestor 5",
		},
		{
			name: "size counter",
			corrupt: func(tree *Tree[int, string]) {
				tree.size++
			},
			msg: "size counter",
		},
		{
			name: "anchor right relation",
			corrupt: func(tree *Tree[int, string]) {
				tree.arena.nodes[anchor].right = tree.Find(9).h
			},
			msg: "anchor",
		},
		{
			name: "unbalanced",
			corrupt: func(tree *Tree[int, string]) {
				// Hang a chain off 9 and fix up heights so only balance is off.
				a := &tree.arena
				nine := tree.Find(9).h
				x := a.alloc(10, "10", nine)
				y := a.alloc(11, "11", x)
				a.nodes[nine].right = x
				a.nodes[x].right = y
				tree.size += 2
				a.updateHeight(x)
				a.updateHeight(nine)
				a.updateHeight(tree.Find(8).h)
				a.updateHeight(tree.root())
			},
			msg: "balance factor -2",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tree := intTree(5, 3, 8, 1, 4, 7, 9)
			require.NoError(t, tree.Verify())
			tc.corrupt(tree)
			err := tree.Verify()
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrCorrupt), "%v", err)
			require.Contains(t, err.Error(), tc.msg)
		})
	}
}
