package avl

import (
	"cmp"
	"fmt"
	"iter"
	"strings"

	"github.com/cockroachdb/errors"
)

// Collect builds a tree from seq by repeated insertion.
func Collect[K cmp.Ordered, V any](seq iter.Seq2[K, V]) *Tree[K, V] {
	t := New[K, V]()
	for k, v := range seq {
		t.Insert(k, v)
	}
	return t
}

// Contains reports whether key is present.
func (t *Tree[K, V]) Contains(key K) bool {
	return !t.Find(key).IsEnd()
}

// Get returns the value stored under key, or an error wrapping
// ErrKeyNotFound.
func (t *Tree[K, V]) Get(key K) (V, error) {
	c := t.Find(key)
	if c.IsEnd() {
		var zero V
		return zero, errors.Wrapf(ErrKeyNotFound, "key %v", key)
	}
	return c.Value(), nil
}

// Set inserts key or overwrites its value.
func (t *Tree[K, V]) Set(key K, value V) {
	t.Insert(key, value)
}

// Delete removes key, returning an error wrapping ErrKeyNotFound if it was
// absent.
func (t *Tree[K, V]) Delete(key K) error {
	if _, ok := t.Erase(key); !ok {
		return errors.Wrapf(ErrKeyNotFound, "key %v", key)
	}
	return nil
}

// All yields every key/value pair in ascending key order.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		a := &t.arena
		for h := a.minimum(anchor); h != anchor; h = a.successor(h) {
			n := &a.nodes[h]
			if !yield(n.key, n.value) {
				return
			}
		}
	}
}

// Backward yields every key/value pair in descending key order.
func (t *Tree[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		a := &t.arena
		for h := a.predecessor(anchor); h != anchor; h = a.predecessor(h) {
			n := &a.nodes[h]
			if !yield(n.key, n.value) {
				return
			}
		}
	}
}

// Keys yields the keys in ascending order.
func (t *Tree[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range t.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values yields the values in ascending key order.
func (t *Tree[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range t.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Equal reports whether a and b hold the same keys mapped to equal values.
// Shape is irrelevant; trees built from the same pairs in different orders
// are equal.
func Equal[K any, V comparable](a, b *Tree[K, V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

// EqualFunc is like Equal but compares values with eq. Keys are compared with
// a's ordering.
func EqualFunc[K, V any](a, b *Tree[K, V], eq func(V, V) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	p, q := a.Begin(), b.Begin()
	for !p.IsEnd() && !q.IsEnd() {
		pn, qn := &a.arena.nodes[p.h], &b.arena.nodes[q.h]
		if a.compare(pn.key, qn.key) != 0 || !eq(pn.value, qn.value) {
			return false
		}
		p.h = a.arena.successor(p.h)
		q.h = b.arena.successor(q.h)
	}
	return p.IsEnd() && q.IsEnd()
}

// Clone returns a structural copy of t in a fresh arena. Heights are carried
// over and parent relations rebuilt; the copy shares no nodes with t, so
// mutating either never affects the other. Values are copied by assignment.
func (t *Tree[K, V]) Clone() *Tree[K, V] {
	c := &Tree[K, V]{compare: t.compare, size: t.size}
	c.arena.nodes = make([]node[K, V], 1, t.size+1)
	c.arena.nodes[anchor] = node[K, V]{parent: nilHandle, left: nilHandle, right: nilHandle}
	c.arena.nodes[anchor].left = c.cloneFrom(t, t.root(), anchor)
	return c
}

// cloneFrom copies src's subtree at h under parent. Recursion depth is the
// tree height.
func (t *Tree[K, V]) cloneFrom(src *Tree[K, V], h, parent handle) handle {
	if h == nilHandle {
		return nilHandle
	}
	s := &src.arena.nodes[h]
	n := handle(len(t.arena.nodes))
	t.arena.nodes = append(t.arena.nodes, node[K, V]{
		key:    s.key,
		value:  s.value,
		height: s.height,
		parent: parent,
	})
	left := t.cloneFrom(src, s.left, n)
	right := t.cloneFrom(src, s.right, n)
	t.arena.nodes[n].left = left
	t.arena.nodes[n].right = right
	return n
}

// String renders the tree as tree[k1:v1 k2:v2 ...].
func (t *Tree[K, V]) String() string {
	var b strings.Builder
	b.WriteString("tree[")
	first := true
	for k, v := range t.All() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&b, "%v:%v", k, v)
	}
	b.WriteByte(']')
	return b.String()
}
