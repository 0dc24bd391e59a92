package bench

import (
	"math/rand/v2"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/gosella/DS/index"
)

type Workload string

const (
	// OLTP is read heavy: 90% point lookups, 10% upserts.
	OLTP Workload = "oltp"
	// OLAP is write heavy: 10% point lookups, 90% upserts.
	OLAP Workload = "olap"
	// Churn alternates upserts and deletes at random, 50/50.
	Churn Workload = "churn"
	// Scan runs full ordered scans.
	Scan Workload = "scan"
)

var allWorkloads = []Workload{OLTP, OLAP, Churn, Scan}

// op names used in metrics.
const (
	opLoad   = "load"
	opGet    = "get"
	opUpsert = "upsert"
	opDelete = "delete"
	opScan   = "scan"
)

// recorder receives the latency of every operation a workload performs.
type recorder func(op string, elapsed time.Duration)

// executeWorkload runs n operations of w against idx. Keys are drawn
// uniformly from [0, keySpace). Lookups and deletes of absent keys are
// expected and not errors.
func executeWorkload(
	idx index.Index, w Workload, n int, keySpace int64, value []byte, rng *rand.Rand, rec recorder,
) error {
	getPercent := 0
	switch w {
	case OLTP:
		getPercent = 90
	case OLAP:
		getPercent = 10
	case Churn:
	case Scan:
		for range n {
			start := time.Now()
			if _, err := drain(idx); err != nil {
				return err
			}
			rec(opScan, time.Since(start))
		}
		return nil
	default:
		return errors.AssertionFailedf("unknown workload %q", w)
	}

	for range n {
		choice := rng.IntN(100)
		key := rng.Int64N(keySpace)

		var op string
		var err error
		start := time.Now()
		switch {
		case choice < getPercent:
			op = opGet
			_, err = idx.Get(key)
		case w == Churn && choice < 50:
			op = opDelete
			err = idx.Delete(key)
		default:
			op = opUpsert
			err = idx.Insert(key, value)
		}
		elapsed := time.Since(start)
		if err != nil && !errors.Is(err, index.ErrNotFound) {
			return errors.Wrapf(err, "%s %d", op, key)
		}
		rec(op, elapsed)
	}
	return nil
}

// drain walks a full scan and returns the number of entries seen.
func drain(idx index.Index) (n int, err error) {
	it, err := idx.Scan()
	if err != nil {
		return 0, errors.Wrap(err, "scan")
	}
	defer func() {
		err = errors.CombineErrors(err, it.Close())
	}()
	for it.Next() {
		n++
	}
	return n, errors.Wrap(it.Error(), "scan")
}
