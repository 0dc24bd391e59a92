package avlindex

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/gosella/DS/avl"
	"github.com/gosella/DS/index"
	"github.com/gosella/DS/index/indextest"
)

func TestAVLIndex(t *testing.T) {
	indextest.Run(t, func(*testing.T) index.Index { return NewAVLIndex() })
}

func TestAVLIndexKeepsInvariants(t *testing.T) {
	x := NewAVLIndex()
	for k := int64(0); k < 1000; k++ {
		require.NoError(t, x.Insert(k, nil))
	}
	require.NoError(t, x.Verify())
	require.Equal(t, 1000, x.Len())
	require.GreaterOrEqual(t, x.Height(), 10)
	require.LessOrEqual(t, x.Height(), 14)
}

func TestAVLIndexErrNotFoundKeepsTreeCause(t *testing.T) {
	_, err := NewAVLIndex().Get(1)
	require.True(t, errors.Is(err, index.ErrNotFound))
	require.True(t, errors.Is(err, avl.ErrKeyNotFound))
}

func TestAVLIndexScanToleratesOtherErasures(t *testing.T) {
	x := NewAVLIndex()
	for k := int64(1); k <= 5; k++ {
		require.NoError(t, x.Insert(k, nil))
	}
	it, err := x.Scan()
	require.NoError(t, err)
	require.True(t, it.Next())
	require.Equal(t, int64(1), it.Key())
	require.NoError(t, x.Delete(3))

	var rest []int64
	for it.Next() {
		rest = append(rest, it.Key())
	}
	require.NoError(t, it.Error())
	require.Equal(t, []int64{2, 4, 5}, rest)
}

func TestAVLIndexScanStopsOnErasedPosition(t *testing.T) {
	x := NewAVLIndex()
	for k := int64(1); k <= 3; k++ {
		require.NoError(t, x.Insert(k, nil))
	}
	it, err := x.Scan()
	require.NoError(t, err)
	require.True(t, it.Next())
	require.NoError(t, x.Delete(1))
	require.False(t, it.Next())
	require.True(t, errors.Is(it.Error(), avl.ErrInvalidCursor))
}
