package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gosella/DS/avl"
)

func (a *app) demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through the dictionary API on a small tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return demo(cmd.OutOrStdout())
		},
	}
}

func demo(w io.Writer) error {
	t1 := avl.New[int, string]()
	for _, k := range []int{5, 3, 7, 1, 4, 2, 6, 0, 8} {
		t1.Insert(k, fmt.Sprintf("[%d]", k))
	}
	fmt.Fprintf(w, "t1 = %v\n%s\n", t1, t1.Shape())

	fmt.Fprint(w, "\nt1 via cursor: ")
	for c := t1.Begin(); !c.IsEnd(); _ = c.Next() {
		fmt.Fprintf(w, "%v:%v ", c.Key(), c.Value())
	}
	fmt.Fprintln(w)

	t2 := t1.Clone()
	fmt.Fprintf(w, "\nt2 = clone of t1 = %v\nt1 == t2? %t\n", t2, avl.Equal(t1, t2))

	fmt.Fprintln(w, "\nmore inserts into t1: 5:a 9:b 5:c")
	t1.Insert(5, "a")
	t1.Insert(9, "b")
	t1.Insert(5, "c")
	fmt.Fprintf(w, "t1 = %v\n%s\n", t1, t1.Shape())
	fmt.Fprintf(w, "t1 == t2? %t\n", avl.Equal(t1, t2))

	fmt.Fprintf(w, "t1 contains 5? %t\n", t1.Contains(5))
	fmt.Fprintf(w, "t1 contains 42? %t\n", t1.Contains(42))

	if c := t1.Find(7); !c.IsEnd() {
		fmt.Fprintf(w, "value for %v is %v, setting it to z\n", c.Key(), c.Value())
		c.SetValue("z")
	}

	for _, k := range []int{5, 42} {
		_, ok := t1.Erase(k)
		fmt.Fprintf(w, "erase %d => %t\n", k, ok)
	}
	fmt.Fprintf(w, "t1 = %v\n%s\n", t1, t1.Shape())
	fmt.Fprintf(w, "min of t1 => %v\nmax of t1 => %v\n", t1.Minimum().Key(), t1.Maximum().Key())

	fmt.Fprintln(w, "\nclearing t1")
	t1.Clear()
	fmt.Fprintf(w, "t1 = %v, empty? %t\n", t1, t1.IsEmpty())

	fmt.Fprintln(w, "t1 = clone of t2")
	t1 = t2.Clone()
	fmt.Fprintf(w, "t1 = %v, empty? %t\n", t1, t1.IsEmpty())
	fmt.Fprintf(w, "t2 = %v, empty? %t\n", t2, t2.IsEmpty())

	fmt.Fprint(w, "t2 via All: ")
	for k, v := range t2.All() {
		fmt.Fprintf(w, "%v:%v ", k, v)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "\nt3 = 1..16 plus an extra 9")
	t3 := avl.New[int, string]()
	for k := 1; k < 17; k++ {
		t3.Insert(k, fmt.Sprintf("(n.%d)", k))
	}
	t3.Insert(9, "y")
	fmt.Fprintf(w, "t3 = %v\n%s\n", t3, t3.Shape())
	fmt.Fprintf(w, "min of t3 = %v\nmax of t3 = %v\n", t3.Minimum().Key(), t3.Maximum().Key())

	for _, k := range []int{8, 8} {
		_, ok := t3.Erase(k)
		fmt.Fprintf(w, "erase %d => %t\n", k, ok)
	}
	fmt.Fprintf(w, "t3 = %v\n%s\n", t3, t3.Shape())

	fmt.Fprintln(w, "\nerasing t3 while walking it")
	for c := t3.Begin(); !c.IsEnd(); {
		k := c.Key()
		next, err := t3.EraseAt(c)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "erase %d => t3 = %v\n", k, t3)
		c = next
	}
	return t3.Verify()
}
