package avl

import "github.com/cockroachdb/errors"

// Verify checks every structural invariant of the tree: the anchor's shape,
// parent back-links, key order against the full bounds inherited from
// ancestors, stored heights against heights recomputed bottom-up, the AVL
// balance condition and the element count. It returns nil or an error
// wrapping ErrCorrupt that names the first violation found.
//
// Verify is a diagnostic for tests and tooling; no other operation calls it.
func (t *Tree[K, V]) Verify() error {
	a := &t.arena
	if len(a.nodes) == 0 {
		return errors.Mark(errors.New("tree has no anchor"), ErrCorrupt)
	}
	an := &a.nodes[anchor]
	if an.parent != nilHandle || an.right != nilHandle {
		return t.corruptf("anchor has parent %d and right %d", an.parent, an.right)
	}
	v := verifier[K, V]{t: t}
	if _, err := v.subtree(an.left, anchor, nil, nil); err != nil {
		return err
	}
	if v.count != t.size {
		return t.corruptf("size counter %d but %d reachable nodes", t.size, v.count)
	}
	if live := len(a.nodes) - 1 - len(a.free); live != t.size {
		return t.corruptf("arena holds %d live slots for %d elements", live, t.size)
	}
	return nil
}

func (t *Tree[K, V]) corruptf(format string, args ...interface{}) error {
	return errors.Mark(errors.AssertionFailedf(format, args...), ErrCorrupt)
}

type verifier[K, V any] struct {
	t     *Tree[K, V]
	count int
}

// subtree verifies the subtree at h whose parent must be parent and whose keys
// must lie strictly between lo and hi (nil means unbounded). It returns the
// recomputed height.
func (v *verifier[K, V]) subtree(h, parent handle, lo, hi *K) (int32, error) {
	if h == nilHandle {
		return 0, nil
	}
	t := v.t
	if h <= anchor || int(h) >= len(t.arena.nodes) {
		return 0, t.corruptf("relation to slot %d outside the arena", h)
	}
	n := &t.arena.nodes[h]
	if n.height == 0 {
		return 0, t.corruptf("node %d is linked but free", h)
	}
	if n.parent != parent {
		return 0, t.corruptf("node %v has parent %d, want %d", n.key, n.parent, parent)
	}
	if lo != nil && t.compare(n.key, *lo) <= 0 {
		return 0, t.corruptf("node %v is not greater than ancestor %v", n.key, *lo)
	}
	if hi != nil && t.compare(n.key, *hi) >= 0 {
		return 0, t.corruptf("node %v is not less than ancestor %v", n.key, *hi)
	}
	v.count++
	if v.count > t.size {
		return 0, t.corruptf("more reachable nodes than the size counter %d", t.size)
	}
	lh, err := v.subtree(n.left, h, lo, &n.key)
	if err != nil {
		return 0, err
	}
	rh, err := v.subtree(n.right, h, &n.key, hi)
	if err != nil {
		return 0, err
	}
	height := 1 + max(lh, rh)
	if n.height != height {
		return 0, t.corruptf("node %v stores height %d, actual %d", n.key, n.height, height)
	}
	if bf := lh - rh; bf < -1 || bf > 1 {
		return 0, t.corruptf("node %v has balance factor %d", n.key, bf)
	}
	return height, nil
}
