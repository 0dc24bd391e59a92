package avl

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// A Cursor names one position in a Tree: either an element or End. It is a
// small value; copying a cursor yields an independent cursor at the same
// position. Two cursors compare equal with == iff they name the same node.
//
// A cursor survives insertions and erasures of other elements. Erasing the
// element it names invalidates it, and so does Clear.
type Cursor[K, V any] struct {
	t   *Tree[K, V]
	h   handle
	gen uint32
}

func (t *Tree[K, V]) cursor(h handle) Cursor[K, V] {
	return Cursor[K, V]{t: t, h: h, gen: t.arena.nodes[h].gen}
}

// Valid reports whether the cursor still names a live position of its tree.
func (c Cursor[K, V]) Valid() bool {
	return c.check() == nil
}

func (c Cursor[K, V]) check() error {
	if c.t == nil {
		return errors.Wrap(ErrInvalidCursor, "zero cursor")
	}
	if int(c.h) >= len(c.t.arena.nodes) || c.h < 0 {
		return errors.Wrapf(ErrInvalidCursor, "handle %d out of arena", c.h)
	}
	if c.t.arena.nodes[c.h].gen != c.gen {
		return errors.Wrapf(ErrInvalidCursor, "node %d was erased", c.h)
	}
	return nil
}

// IsEnd reports whether the cursor is positioned one past the last element.
func (c Cursor[K, V]) IsEnd() bool {
	return c.t != nil && c.h == anchor
}

func (c Cursor[K, V]) mustDeref() *node[K, V] {
	if err := c.check(); err != nil {
		panic(err)
	}
	if c.h == anchor {
		panic(errors.Wrap(ErrOutOfRange, "dereference of end"))
	}
	return &c.t.arena.nodes[c.h]
}

// Key returns the key at the cursor. It panics at End or on an invalid cursor.
func (c Cursor[K, V]) Key() K {
	return c.mustDeref().key
}

// Value returns the value at the cursor. It panics at End or on an invalid
// cursor.
func (c Cursor[K, V]) Value() V {
	return c.mustDeref().value
}

// SetValue replaces the value at the cursor in place.
func (c Cursor[K, V]) SetValue(v V) {
	c.mustDeref().value = v
}

// Next advances the cursor to the in-order successor. Advancing past the last
// element lands on End; advancing from End fails with ErrOutOfRange and
// leaves the cursor where it is.
func (c *Cursor[K, V]) Next() error {
	if err := c.check(); err != nil {
		return err
	}
	if c.h == anchor {
		return errors.Wrap(ErrOutOfRange, "advance past end")
	}
	*c = c.t.cursor(c.t.arena.successor(c.h))
	return nil
}

// Prev moves the cursor to the in-order predecessor. From End it moves to the
// last element. Retreating from the first element, or from End of an empty
// tree, fails with ErrOutOfRange and leaves the cursor where it is.
func (c *Cursor[K, V]) Prev() error {
	if err := c.check(); err != nil {
		return err
	}
	p := c.t.arena.predecessor(c.h)
	if p == anchor {
		return errors.Wrap(ErrOutOfRange, "retreat before first element")
	}
	*c = c.t.cursor(p)
	return nil
}

// Succ returns a new cursor at the successor, leaving c untouched.
func (c Cursor[K, V]) Succ() (Cursor[K, V], error) {
	err := c.Next()
	return c, err
}

// Pred returns a new cursor at the predecessor, leaving c untouched.
func (c Cursor[K, V]) Pred() (Cursor[K, V], error) {
	err := c.Prev()
	return c, err
}

func (c Cursor[K, V]) String() string {
	if c.check() != nil {
		return "invalid()"
	}
	if c.h == anchor {
		return "end()"
	}
	n := &c.t.arena.nodes[c.h]
	return fmt.Sprintf("Cursor{key: %v, value: %v}", n.key, n.value)
}
