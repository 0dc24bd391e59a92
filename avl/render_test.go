package avl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	for _, tc := range []struct {
		name string
		keys []int
		want string
	}{
		{
			name: "empty",
			want: "",
		},
		{
			name: "single",
			keys: []int{7},
			want: "[7]",
		},
		{
			name: "perfect",
			keys: []int{5, 3, 8, 1, 4, 7, 9},
			want: `         [5]
        /   \
   [3]         [8]
  /   \       /   \
[1]   [4]   [7]   [9]`,
		},
		{
			name: "ascending",
			keys: []int{1, 2, 3, 4, 5},
			want: `   [2]
  /   \
[1]      [4]
        /   \
      [3]   [5]`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, intTree(tc.keys...).Shape())
		})
	}
}

func TestShapeCentersWideKeys(t *testing.T) {
	tree := intTree(10, 5)
	// Cell width is the widest key plus brackets; 5 is centred with the odd
	// space on the right.
	require.Equal(t, "    [10]\n    /\n[5 ]", tree.Shape())
}

func TestDOT(t *testing.T) {
	out := intTree(2, 1, 3).DOT()
	require.True(t, strings.HasPrefix(out, "digraph"), out)
	for _, want := range []string{`"2 (h=2)"`, `"1 (h=1)"`, `"3 (h=1)"`, `"L"`, `"R"`, `"end"`} {
		require.Contains(t, out, want)
	}

	var b strings.Builder
	require.NoError(t, New[int, int]().WriteDOT(&b))
	require.NotContains(t, b.String(), "h=")
}
