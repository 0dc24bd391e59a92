package avl

import (
	"cmp"

	"github.com/cockroachdb/errors"
)

// Pair is a key/value pair used for bulk construction.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// Tree is an ordered dictionary kept height-balanced as an AVL tree. Keys are
// unique under the tree's comparison function.
//
// A Tree is not safe for concurrent mutation. Concurrent readers of a tree
// that nobody mutates are fine.
type Tree[K, V any] struct {
	arena   arena[K, V]
	compare func(a, b K) int
	size    int
	// path is the ancestor record of the last insert or erase, kept to avoid
	// reallocating it on every call.
	path []handle
}

// New returns a tree ordered by the natural ordering of K, populated from
// pairs by repeated insertion. A later duplicate key overwrites the value of
// an earlier one.
func New[K cmp.Ordered, V any](pairs ...Pair[K, V]) *Tree[K, V] {
	return NewFunc[K, V](cmp.Compare[K], pairs...)
}

// NewFunc is like New but orders keys with compare, which must return a
// negative number, zero or a positive number as a < b, a == b or a > b.
func NewFunc[K, V any](compare func(a, b K) int, pairs ...Pair[K, V]) *Tree[K, V] {
	t := &Tree[K, V]{compare: compare}
	t.arena.init()
	for _, p := range pairs {
		t.Insert(p.Key, p.Value)
	}
	return t
}

func (t *Tree[K, V]) root() handle {
	return t.arena.nodes[anchor].left
}

// Len returns the number of elements.
func (t *Tree[K, V]) Len() int {
	return t.size
}

// IsEmpty reports whether the tree has no elements.
func (t *Tree[K, V]) IsEmpty() bool {
	return t.root() == nilHandle
}

// Height returns the height of the tree, 0 when empty.
func (t *Tree[K, V]) Height() int {
	return int(t.arena.height(t.root()))
}

// Begin returns a cursor at the smallest element, or End when empty.
func (t *Tree[K, V]) Begin() Cursor[K, V] {
	return t.cursor(t.arena.minimum(anchor))
}

// End returns the position one past the largest element.
func (t *Tree[K, V]) End() Cursor[K, V] {
	return t.cursor(anchor)
}

// Minimum is Begin under the dictionary's name for it.
func (t *Tree[K, V]) Minimum() Cursor[K, V] {
	return t.Begin()
}

// Maximum returns a cursor at the largest element, or End when empty.
func (t *Tree[K, V]) Maximum() Cursor[K, V] {
	r := t.root()
	if r == nilHandle {
		return t.End()
	}
	return t.cursor(t.arena.maximum(r))
}

// Find returns a cursor at key, or End if key is absent.
func (t *Tree[K, V]) Find(key K) Cursor[K, V] {
	h := t.root()
	for h != nilHandle {
		n := &t.arena.nodes[h]
		switch c := t.compare(key, n.key); {
		case c < 0:
			h = n.left
		case c > 0:
			h = n.right
		default:
			return t.cursor(h)
		}
	}
	return t.End()
}

// Insert stores value under key and returns a cursor at it. An existing key
// has its value overwritten in place without any structural change.
func (t *Tree[K, V]) Insert(key K, value V) Cursor[K, V] {
	path := t.path[:0]
	defer func() { t.path = path[:0] }()

	parent, h := anchor, t.root()
	c := -1
	for h != nilHandle {
		n := &t.arena.nodes[h]
		c = t.compare(key, n.key)
		if c == 0 {
			n.value = value
			return t.cursor(h)
		}
		path = append(path, h)
		parent = h
		if c < 0 {
			h = n.left
		} else {
			h = n.right
		}
	}

	h = t.arena.alloc(key, value, parent)
	if c < 0 {
		t.arena.nodes[parent].left = h
	} else {
		t.arena.nodes[parent].right = h
	}
	t.size++
	t.rebalancePath(path)
	return t.cursor(h)
}

// eraseCase classifies a node about to be erased by its children.
type eraseCase int

const (
	eraseLeaf eraseCase = iota
	eraseOneChild
	eraseTwoChildren
)

func (t *Tree[K, V]) classify(h handle) eraseCase {
	n := &t.arena.nodes[h]
	switch {
	case n.left != nilHandle && n.right != nilHandle:
		return eraseTwoChildren
	case n.left != nilHandle || n.right != nilHandle:
		return eraseOneChild
	default:
		return eraseLeaf
	}
}

// Erase removes key. It reports whether the key was present and returns a
// cursor at the element that followed it, or End when key was absent or the
// largest element.
func (t *Tree[K, V]) Erase(key K) (Cursor[K, V], bool) {
	path := t.path[:0]
	defer func() { t.path = path[:0] }()

	h := t.root()
	for h != nilHandle {
		n := &t.arena.nodes[h]
		c := t.compare(key, n.key)
		if c == 0 {
			break
		}
		path = append(path, h)
		if c < 0 {
			h = n.left
		} else {
			h = n.right
		}
	}
	if h == nilHandle {
		return t.End(), false
	}
	next := t.arena.successor(h)
	path = t.unlink(h, path)
	return t.cursor(next), true
}

// EraseAt removes the element at c and returns a cursor at its successor.
func (t *Tree[K, V]) EraseAt(c Cursor[K, V]) (Cursor[K, V], error) {
	if c.t != t {
		return Cursor[K, V]{}, errors.Wrap(ErrInvalidCursor, "cursor belongs to another tree")
	}
	if err := c.check(); err != nil {
		return Cursor[K, V]{}, err
	}
	if c.h == anchor {
		return c, errors.Wrap(ErrOutOfRange, "erase at end")
	}
	path := t.path[:0]
	defer func() { t.path = path[:0] }()
	for p := t.arena.nodes[c.h].parent; p != anchor; p = t.arena.nodes[p].parent {
		path = append(path, p)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	next := t.arena.successor(c.h)
	path = t.unlink(c.h, path)
	return t.cursor(next), nil
}

// unlink detaches h, frees its slot and rebalances. path holds h's ancestors
// from the root down. The grown path is returned so callers can keep its
// backing array.
func (t *Tree[K, V]) unlink(h handle, path []handle) []handle {
	a := &t.arena
	n := a.nodes[h]

	switch t.classify(h) {
	case eraseLeaf:
		a.replaceChild(n.parent, h, nilHandle)
	case eraseOneChild:
		child := n.left
		if child == nilHandle {
			child = n.right
		}
		a.replaceChild(n.parent, h, child)
	case eraseTwoChildren:
		// Extract the maximum m of the left subtree and move m itself into h's
		// place. Nodes are relocated, never rekeyed, so cursors to m and to
		// every other survivor keep naming the same element.
		mark := len(path)
		path = append(path, nilHandle)
		m := n.left
		for a.nodes[m].right != nilHandle {
			path = append(path, m)
			m = a.nodes[m].right
		}
		path[mark] = m
		if len(path) > mark+1 {
			mp := path[len(path)-1]
			orphan := a.nodes[m].left
			a.nodes[mp].right = orphan
			a.setParent(orphan, mp)
			a.nodes[m].left = n.left
			a.setParent(n.left, m)
		}
		a.nodes[m].right = n.right
		a.setParent(n.right, m)
		a.nodes[m].height = n.height
		a.replaceChild(n.parent, h, m)
	}

	a.release(h)
	t.size--
	t.rebalancePath(path)
	return path
}

// rebalancePath walks path bottom-up restoring heights and balance. path[i]'s
// parent is path[i-1], and path[0]'s parent is the anchor. It stops once a
// subtree comes out with the height it had before, since nothing above it can
// have changed.
func (t *Tree[K, V]) rebalancePath(path []handle) {
	a := &t.arena
	for i := len(path) - 1; i >= 0; i-- {
		h := path[i]
		parent := a.nodes[h].parent
		before := a.nodes[h].height
		sub := t.balance(h)
		if sub != h {
			a.replaceChild(parent, h, sub)
		}
		if a.nodes[sub].height == before {
			return
		}
	}
}

// balance restores the AVL condition at h and returns the root of the
// rebalanced subtree. The returned root's parent is h's former parent; the
// caller links it in.
func (t *Tree[K, V]) balance(h handle) handle {
	a := &t.arena
	switch bf := a.balanceFactor(h); {
	case bf > 1:
		if l := a.nodes[h].left; a.balanceFactor(l) < 0 {
			a.nodes[h].left = t.rotateLeft(l)
		}
		return t.rotateRight(h)
	case bf < -1:
		if r := a.nodes[h].right; a.balanceFactor(r) > 0 {
			a.nodes[h].right = t.rotateRight(r)
		}
		return t.rotateLeft(h)
	default:
		a.updateHeight(h)
		return h
	}
}

// rotateLeft turns (h a (r b c)) into (r (h a b) c).
func (t *Tree[K, V]) rotateLeft(h handle) handle {
	a := &t.arena
	r := a.nodes[h].right
	b := a.nodes[r].left
	a.nodes[h].right = b
	a.setParent(b, h)
	a.nodes[r].left = h
	a.nodes[r].parent = a.nodes[h].parent
	a.nodes[h].parent = r
	a.updateHeight(h)
	a.updateHeight(r)
	return r
}

// rotateRight turns (h (l a b) c) into (l a (h b c)).
func (t *Tree[K, V]) rotateRight(h handle) handle {
	a := &t.arena
	l := a.nodes[h].left
	b := a.nodes[l].right
	a.nodes[h].left = b
	a.setParent(b, h)
	a.nodes[l].right = h
	a.nodes[l].parent = a.nodes[h].parent
	a.nodes[h].parent = l
	a.updateHeight(h)
	a.updateHeight(l)
	return l
}

// Clear removes every element. All outstanding cursors except End become
// invalid.
func (t *Tree[K, V]) Clear() {
	t.arena.releaseAll()
	t.size = 0
}
