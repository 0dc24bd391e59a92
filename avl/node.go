package avl

// handle addresses a slot in the node arena.
type handle int32

const (
	// nilHandle marks an absent relation.
	nilHandle handle = -1
	// anchor is the sentinel slot. Its left relation is the root and it doubles
	// as the End position.
	anchor handle = 0
)

type node[K, V any] struct {
	key    K
	value  V
	height int32
	parent handle
	left   handle
	right  handle
	// gen is bumped every time the slot is freed so cursors to an erased node
	// can be told apart from cursors to whatever reuses the slot.
	gen uint32
}

// arena owns every node of a tree. Slot 0 is always the anchor.
type arena[K, V any] struct {
	nodes []node[K, V]
	free  []handle
}

func (a *arena[K, V]) init() {
	a.nodes = append(a.nodes[:0], node[K, V]{parent: nilHandle, left: nilHandle, right: nilHandle})
	a.free = a.free[:0]
}

// alloc returns a detached height-1 node. It may grow the backing slice, so
// callers must not hold *node pointers across it.
func (a *arena[K, V]) alloc(key K, value V, parent handle) handle {
	var h handle
	if n := len(a.free); n > 0 {
		h = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.nodes = append(a.nodes, node[K, V]{})
		h = handle(len(a.nodes) - 1)
	}
	n := &a.nodes[h]
	n.key, n.value = key, value
	n.height = 1
	n.parent, n.left, n.right = parent, nilHandle, nilHandle
	return h
}

// release returns a slot to the free list and invalidates cursors to it.
func (a *arena[K, V]) release(h handle) {
	n := &a.nodes[h]
	var zk K
	var zv V
	n.key, n.value = zk, zv
	n.height = 0
	n.parent, n.left, n.right = nilHandle, nilHandle, nilHandle
	n.gen++
	a.free = append(a.free, h)
}

// releaseAll frees every slot but the anchor, keeping generations monotonic so
// that cursors taken before the reset stay detectably stale.
func (a *arena[K, V]) releaseAll() {
	a.free = a.free[:0]
	for h := handle(len(a.nodes) - 1); h > anchor; h-- {
		n := &a.nodes[h]
		if n.height != 0 {
			var zk K
			var zv V
			n.key, n.value = zk, zv
			n.height = 0
			n.parent, n.left, n.right = nilHandle, nilHandle, nilHandle
			n.gen++
		}
		a.free = append(a.free, h)
	}
	a.nodes[anchor].left = nilHandle
}

func (a *arena[K, V]) height(h handle) int32 {
	if h == nilHandle {
		return 0
	}
	return a.nodes[h].height
}

func (a *arena[K, V]) updateHeight(h handle) {
	n := &a.nodes[h]
	n.height = 1 + max(a.height(n.left), a.height(n.right))
}

func (a *arena[K, V]) balanceFactor(h handle) int32 {
	if h == nilHandle {
		return 0
	}
	n := &a.nodes[h]
	return a.height(n.left) - a.height(n.right)
}

// setParent re-points h's parent when h is present.
func (a *arena[K, V]) setParent(h, parent handle) {
	if h != nilHandle {
		a.nodes[h].parent = parent
	}
}

// replaceChild swaps old for repl under parent. The anchor only has a left
// relation, so both of its cases land there.
func (a *arena[K, V]) replaceChild(parent, old, repl handle) {
	p := &a.nodes[parent]
	if parent == anchor || p.left == old {
		p.left = repl
	} else {
		p.right = repl
	}
	a.setParent(repl, parent)
}

func (a *arena[K, V]) minimum(h handle) handle {
	for a.nodes[h].left != nilHandle {
		h = a.nodes[h].left
	}
	return h
}

func (a *arena[K, V]) maximum(h handle) handle {
	for a.nodes[h].right != nilHandle {
		h = a.nodes[h].right
	}
	return h
}

// successor returns the in-order successor of h, or the anchor past the last
// node. The anchor's own successor is the anchor.
func (a *arena[K, V]) successor(h handle) handle {
	if r := a.nodes[h].right; r != nilHandle {
		return a.minimum(r)
	}
	for {
		p := a.nodes[h].parent
		if p == nilHandle {
			return h
		}
		if a.nodes[p].right != h {
			return p
		}
		h = p
	}
}

// predecessor mirrors successor. Stepping back from the minimum climbs to the
// anchor; callers treat that as running off the front.
func (a *arena[K, V]) predecessor(h handle) handle {
	if l := a.nodes[h].left; l != nilHandle {
		return a.maximum(l)
	}
	for {
		p := a.nodes[h].parent
		if p == nilHandle {
			return h
		}
		if a.nodes[p].left != h {
			return p
		}
		h = p
	}
}
