// Package btree adapts github.com/google/btree to the index.Index interface
// as the B-tree baseline.
package btree

import (
	"github.com/cockroachdb/errors"
	gbtree "github.com/google/btree"
	"github.com/gosella/DS/index"
)

var _ index.Index = (*BTree)(nil)

type entry struct {
	key int64
	val []byte
}

func less(a, b entry) bool { return a.key < b.key }

type BTree struct {
	Degree int
	tree   *gbtree.BTreeG[entry]
}

func NewBTree(degree int) *BTree {
	if degree < 2 {
		degree = 2
	}
	return &BTree{Degree: degree, tree: gbtree.NewG(degree, less)}
}

func (bt *BTree) Insert(key int64, value []byte) error {
	bt.tree.ReplaceOrInsert(entry{key: key, val: value})
	return nil
}

func (bt *BTree) Get(key int64) ([]byte, error) {
	e, ok := bt.tree.Get(entry{key: key})
	if !ok {
		return nil, errors.Wrapf(index.ErrNotFound, "btree: key %d", key)
	}
	return e.val, nil
}

func (bt *BTree) Delete(key int64) error {
	if _, ok := bt.tree.Delete(entry{key: key}); !ok {
		return errors.Wrapf(index.ErrNotFound, "btree: key %d", key)
	}
	return nil
}

// Scan snapshots the entries in order, so later mutations do not disturb it.
func (bt *BTree) Scan() (index.Iterator, error) {
	it := &Iterator{idx: -1, data: make([]entry, 0, bt.tree.Len())}
	bt.tree.Ascend(func(e entry) bool {
		it.data = append(it.data, e)
		return true
	})
	return it, nil
}

func (bt *BTree) Len() int { return bt.tree.Len() }

func (bt *BTree) Close() error { return nil }

type Iterator struct {
	data []entry
	idx  int
}

func (it *Iterator) Next() bool    { it.idx++; return it.idx < len(it.data) }
func (it *Iterator) Key() int64    { return it.data[it.idx].key }
func (it *Iterator) Value() []byte { return it.data[it.idx].val }
func (it *Iterator) Error() error  { return nil }
func (it *Iterator) Close() error  { return nil }
