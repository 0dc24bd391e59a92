package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gosella/DS/avl"
)

func (a *app) verifyCmd() *cobra.Command {
	var count, rounds int
	var seed uint64
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Stress the tree with random inserts and erasures, checking invariants after each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 || rounds <= 0 {
				return errors.New("--count and --rounds must be positive")
			}
			if err := stress(a.log, count, rounds, seed); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d rounds of %d keys\n", rounds, count)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&count, "count", 1000, "keys inserted per round")
	fl.IntVar(&rounds, "rounds", 10, "rounds to run")
	fl.Uint64Var(&seed, "seed", 1, "random seed")
	return cmd
}

// stress fills a tree with random keys each round, then erases random keys
// until it is empty, checking the tree against a reference map and running
// Verify after every mutation.
func stress(log *zap.SugaredLogger, count, rounds int, seed uint64) error {
	rng := rand.New(rand.NewPCG(seed, seed>>32|1))
	t := avl.New[int, int]()
	for round := range rounds {
		ref := map[int]int{}
		for i := range count {
			k := rng.IntN(2 * count)
			t.Insert(k, i)
			ref[k] = i
			if err := check(t, ref); err != nil {
				return errors.Wrapf(err, "round %d: after inserting %d", round, k)
			}
		}
		height := t.Height()
		for t.Len() > 0 {
			k := rng.IntN(2 * count)
			_, ok := t.Erase(k)
			if _, had := ref[k]; had != ok {
				return errors.Newf("round %d: erase %d reported %t, reference has it: %t", round, k, ok, had)
			}
			delete(ref, k)
			if err := check(t, ref); err != nil {
				return errors.Wrapf(err, "round %d: after erasing %d", round, k)
			}
		}
		log.Debugw("round done", "round", round, "peak_height", height)
	}
	log.Infow("verify passed", "rounds", rounds, "count", count, "seed", seed)
	return nil
}

func check(t *avl.Tree[int, int], ref map[int]int) error {
	if err := t.Verify(); err != nil {
		return err
	}
	if t.Len() != len(ref) {
		return errors.Newf("len %d, reference has %d", t.Len(), len(ref))
	}
	return nil
}
