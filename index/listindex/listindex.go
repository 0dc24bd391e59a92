// Package listindex is the flat baseline: entries kept in a slice sorted by
// key, found by binary search and shifted on every insert or delete.
package listindex

import (
	"cmp"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/gosella/DS/index"
)

var _ index.Index = (*ListIndex)(nil)

type Data struct {
	Key int64
	Val []byte
}

type ListIndex struct {
	Data []Data
}

func NewListIndex() *ListIndex {
	return &ListIndex{
		Data: make([]Data, 0),
	}
}

func (l *ListIndex) search(key int64) (int, bool) {
	return slices.BinarySearchFunc(l.Data, key, func(d Data, k int64) int {
		return cmp.Compare(d.Key, k)
	})
}

func (l *ListIndex) Insert(key int64, value []byte) error {
	i, found := l.search(key)
	if found {
		l.Data[i].Val = value
		return nil
	}
	l.Data = slices.Insert(l.Data, i, Data{Key: key, Val: value})
	return nil
}

func (l *ListIndex) Get(key int64) ([]byte, error) {
	if i, found := l.search(key); found {
		return l.Data[i].Val, nil
	}
	return nil, errors.Wrapf(index.ErrNotFound, "listindex: key %d", key)
}

func (l *ListIndex) Delete(key int64) error {
	i, found := l.search(key)
	if !found {
		return errors.Wrapf(index.ErrNotFound, "listindex: key %d", key)
	}
	l.Data = slices.Delete(l.Data, i, i+1)
	return nil
}

// Scan iterates over a snapshot copy of the entries, so inserts and deletes
// made during the scan are not seen by it.
func (l *ListIndex) Scan() (index.Iterator, error) {
	return &ListIterator{
		data: slices.Clone(l.Data),
		cur:  -1,
	}, nil
}

func (l *ListIndex) Close() error { return nil }

type ListIterator struct {
	data []Data
	cur  int
}

func (it *ListIterator) Next() bool {
	it.cur++
	return it.cur < len(it.data)
}

func (it *ListIterator) Key() int64    { return it.data[it.cur].Key }
func (it *ListIterator) Value() []byte { return it.data[it.cur].Val }
func (it *ListIterator) Error() error  { return nil }
func (it *ListIterator) Close() error  { return nil }
