// Package indextest holds the behaviour every index.Index implementation is
// expected to share.
package indextest

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/gosella/DS/index"
)

// Run exercises an index produced by open. Each subtest gets a fresh index,
// closed when the subtest ends.
func Run(t *testing.T, open func(t *testing.T) index.Index) {
	fresh := func(t *testing.T) index.Index {
		idx := open(t)
		t.Cleanup(func() { require.NoError(t, idx.Close()) })
		return idx
	}

	t.Run("insert get", func(t *testing.T) {
		idx := fresh(t)
		require.NoError(t, idx.Insert(3, []byte("three")))
		require.NoError(t, idx.Insert(-7, []byte("minus seven")))
		v, err := idx.Get(3)
		require.NoError(t, err)
		require.Equal(t, []byte("three"), v)
		v, err = idx.Get(-7)
		require.NoError(t, err)
		require.Equal(t, []byte("minus seven"), v)
	})

	t.Run("overwrite", func(t *testing.T) {
		idx := fresh(t)
		require.NoError(t, idx.Insert(1, []byte("a")))
		require.NoError(t, idx.Insert(1, []byte("b")))
		v, err := idx.Get(1)
		require.NoError(t, err)
		require.Equal(t, []byte("b"), v)
		require.Equal(t, []int64{1}, scanKeys(t, idx))
	})

	t.Run("missing keys", func(t *testing.T) {
		idx := fresh(t)
		_, err := idx.Get(42)
		require.True(t, errors.Is(err, index.ErrNotFound), "%v", err)
		require.True(t, errors.Is(idx.Delete(42), index.ErrNotFound))

		require.NoError(t, idx.Insert(42, []byte("x")))
		require.NoError(t, idx.Delete(42))
		_, err = idx.Get(42)
		require.True(t, errors.Is(err, index.ErrNotFound), "%v", err)
	})

	t.Run("empty scan", func(t *testing.T) {
		require.Empty(t, scanKeys(t, fresh(t)))
	})

	t.Run("random against map", func(t *testing.T) {
		idx := fresh(t)
		rng := rand.New(rand.NewPCG(7, 11))
		ref := map[int64][]byte{}
		for i := range 2000 {
			k := rng.Int64N(300) - 150
			if rng.IntN(3) == 0 {
				_, had := ref[k]
				err := idx.Delete(k)
				if had {
					require.NoError(t, err)
					delete(ref, k)
				} else {
					require.True(t, errors.Is(err, index.ErrNotFound), "%v", err)
				}
				continue
			}
			v := []byte{byte(i), byte(i >> 8)}
			require.NoError(t, idx.Insert(k, v))
			ref[k] = v
		}

		want := make([]int64, 0, len(ref))
		for k := range ref {
			want = append(want, k)
		}
		slices.Sort(want)
		if diff := cmp.Diff(want, scanKeys(t, idx)); diff != "" {
			t.Fatalf("scan mismatch (-want +got):\n%s", diff)
		}
		for k, v := range ref {
			got, err := idx.Get(k)
			require.NoError(t, err)
			require.Equal(t, v, got, "key %d", k)
		}
	})
}

func scanKeys(t *testing.T, idx index.Index) []int64 {
	t.Helper()
	it, err := idx.Scan()
	require.NoError(t, err)
	keys := []int64{}
	for it.Next() {
		keys = append(keys, it.Key())
	}
	require.NoError(t, it.Error())
	require.NoError(t, it.Close())
	return keys
}
