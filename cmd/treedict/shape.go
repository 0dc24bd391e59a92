package main

import (
	"cmp"
	"fmt"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/gosella/DS/avl"
)

func (a *app) shapeCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "shape KEY...",
		Short: "Insert keys into a tree and draw it",
		Long: `Insert the keys, in order, into an empty tree and draw the result.
Keys are compared as integers when every key parses as one, otherwise as
strings.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ints := make([]int, 0, len(args))
			for _, arg := range args {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return drawShape(cmd.OutOrStdout(), args, format)
				}
				ints = append(ints, n)
			}
			return drawShape(cmd.OutOrStdout(), ints, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "ascii", "output format (ascii or dot)")
	return cmd
}

func drawShape[K cmp.Ordered](w io.Writer, keys []K, format string) error {
	t := avl.New[K, struct{}]()
	for _, k := range keys {
		t.Insert(k, struct{}{})
	}
	switch format {
	case "ascii":
		_, err := fmt.Fprintln(w, t.Shape())
		return err
	case "dot":
		return t.WriteDOT(w)
	default:
		return errors.Newf("unknown --format %q (want ascii or dot)", format)
	}
}
