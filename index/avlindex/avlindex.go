// Package avlindex serves the index.Index interface from an AVL tree
// dictionary.
package avlindex

import (
	"github.com/cockroachdb/errors"
	"github.com/gosella/DS/avl"
	"github.com/gosella/DS/index"
)

var _ index.Index = (*AVLIndex)(nil)

type AVLIndex struct {
	tree *avl.Tree[int64, []byte]
}

func NewAVLIndex() *AVLIndex {
	return &AVLIndex{tree: avl.New[int64, []byte]()}
}

func (x *AVLIndex) Insert(key int64, value []byte) error {
	x.tree.Insert(key, value)
	return nil
}

func (x *AVLIndex) Get(key int64) ([]byte, error) {
	v, err := x.tree.Get(key)
	if err != nil {
		return nil, errors.Mark(err, index.ErrNotFound)
	}
	return v, nil
}

func (x *AVLIndex) Delete(key int64) error {
	if err := x.tree.Delete(key); err != nil {
		return errors.Mark(err, index.ErrNotFound)
	}
	return nil
}

// Scan returns an iterator over a cursor walk of the tree. Entries inserted
// or erased elsewhere during the scan are tolerated; erasing the entry the
// iterator stands on ends the scan with an error.
func (x *AVLIndex) Scan() (index.Iterator, error) {
	return &Iterator{c: x.tree.Begin()}, nil
}

// Len returns the number of entries.
func (x *AVLIndex) Len() int { return x.tree.Len() }

// Verify checks the tree's structural invariants.
func (x *AVLIndex) Verify() error { return x.tree.Verify() }

// Height returns the tree height.
func (x *AVLIndex) Height() int { return x.tree.Height() }

func (x *AVLIndex) Close() error { return nil }

type Iterator struct {
	c       avl.Cursor[int64, []byte]
	started bool
	err     error
}

func (it *Iterator) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.started {
		it.started = true
	} else if !it.c.IsEnd() {
		if err := it.c.Next(); err != nil {
			it.err = errors.Wrap(err, "avlindex: scan")
			return false
		}
	}
	if !it.c.IsEnd() && !it.c.Valid() {
		it.err = errors.Wrap(avl.ErrInvalidCursor, "avlindex: scan")
		return false
	}
	return !it.c.IsEnd()
}

func (it *Iterator) Key() int64    { return it.c.Key() }
func (it *Iterator) Value() []byte { return it.c.Value() }
func (it *Iterator) Error() error  { return it.err }
func (it *Iterator) Close() error  { return nil }
