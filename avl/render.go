package avl

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/emicklei/dot"
)

type placement struct {
	level, column int
	label         string
}

// Shape draws the tree as text, one element per column in key order and two
// rows per level:
//
//	         [5]
//	        /   \
//	   [3]         [8]
//	  /   \       /   \
//	[1]   [4]   [7]   [9]
//
// An empty tree renders as the empty string.
func (t *Tree[K, V]) Shape() string {
	var places []placement
	var place func(h handle, level int) int
	place = func(h handle, level int) int {
		if h == nilHandle {
			return 0
		}
		n := &t.arena.nodes[h]
		w := place(n.left, level+1)
		label := fmt.Sprint(n.key)
		places = append(places, placement{level: level, column: len(places), label: label})
		w = max(w, utf8.RuneCountInString(label))
		return max(w, place(n.right, level+1))
	}
	cell := place(t.root(), 0) + 2

	var lines []string
	pad := func(i, upto int) {
		lines[i] += strings.Repeat(" ", max(0, upto-utf8.RuneCountInString(lines[i])))
	}
	prev := -1
	for _, p := range places {
		row := 2 * p.level
		for len(lines) <= row {
			lines = append(lines, "")
		}
		pad(row, p.column*cell)
		lines[row] += "[" + center(p.label, cell-2) + "]"

		if prev != -1 {
			var link string
			if prev < p.level {
				row = 2*prev + 1
				pad(row, p.column*cell)
				link = `\`
			} else {
				row = 2*p.level + 1
				pad(row, p.column*cell-1)
				link = "/"
			}
			lines[row] += strings.Repeat(" ", max(0, cell/2-1)) + link
		}
		prev = p.level
	}
	return strings.Join(lines, "\n")
}

// center pads s to width, putting the odd space on the right.
func center(s string, width int) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap/2) + s + strings.Repeat(" ", gap-gap/2)
}

// DOT renders the tree as a Graphviz digraph. Nodes are labelled with their
// key and stored height; the end anchor points at the root.
func (t *Tree[K, V]) DOT() string {
	g := dot.NewGraph(dot.Directed)
	end := g.Node("end").Attr("shape", "plaintext").Label("end")
	var walk func(h handle) dot.Node
	walk = func(h handle) dot.Node {
		n := &t.arena.nodes[h]
		gn := g.Node(fmt.Sprintf("n%d", h)).Label(fmt.Sprintf("%v (h=%d)", n.key, n.height))
		if n.left != nilHandle {
			g.Edge(gn, walk(n.left), "L")
		}
		if n.right != nilHandle {
			g.Edge(gn, walk(n.right), "R")
		}
		return gn
	}
	if r := t.root(); r != nilHandle {
		g.Edge(end, walk(r), "root")
	}
	return g.String()
}

// WriteDOT writes DOT() to w.
func (t *Tree[K, V]) WriteDOT(w io.Writer) error {
	_, err := io.WriteString(w, t.DOT())
	return err
}
