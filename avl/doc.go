// Package avl implements an ordered dictionary on a height-balanced (AVL)
// binary search tree with bidirectional cursors.
//
// Nodes live in an arena owned by the tree and refer to each other by slot
// handle. Slot 0 is an anchor whose left relation is the root; the anchor is
// also the End position, so a cursor always names a real slot and never needs
// a separate null state. Cursors step with parent/child relations alone and
// stay valid while other elements are inserted or erased. Erasing a node with
// two children moves its in-order predecessor node into its place instead of
// copying keys, which keeps cursors to the moved element valid as well.
//
//	t := avl.New[int, string]()
//	t.Set(3, "c")
//	t.Set(1, "a")
//	for c := t.Begin(); !c.IsEnd(); _ = c.Next() {
//		fmt.Println(c.Key(), c.Value())
//	}
package avl
