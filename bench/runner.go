package bench

import (
	"context"
	"math/rand/v2"
	"slices"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/gosella/DS/index"
	"github.com/gosella/DS/index/avlindex"
	"github.com/gosella/DS/index/btree"
	"github.com/gosella/DS/index/listindex"
	"github.com/gosella/DS/index/lsm"
)

const (
	StructureAVL   = "avl"
	StructureBTree = "btree"
	StructureList  = "list"
	StructureLSM   = "lsm"
)

type opener func(cfg Config, log *zap.SugaredLogger) (index.Index, string, error)

// structures maps a structure name to a constructor returning the index and
// a short description of its configuration.
var structures = map[string]opener{
	StructureAVL: func(Config, *zap.SugaredLogger) (index.Index, string, error) {
		return avlindex.NewAVLIndex(), "-", nil
	},
	StructureBTree: func(cfg Config, _ *zap.SugaredLogger) (index.Index, string, error) {
		return btree.NewBTree(cfg.BTreeDegree), "degree=" + strconv.Itoa(cfg.BTreeDegree), nil
	},
	StructureList: func(Config, *zap.SugaredLogger) (index.Index, string, error) {
		return listindex.NewListIndex(), "-", nil
	},
	StructureLSM: func(_ Config, log *zap.SugaredLogger) (index.Index, string, error) {
		l, err := lsm.Open(log.Named("pebble"))
		return l, "memfs", err
	},
}

// StructureNames returns the known structure names, sorted.
func StructureNames() []string {
	names := make([]string, 0, len(structures))
	for name := range structures {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// verifier is implemented by indexes that can check their own invariants.
type verifier interface {
	Verify() error
}

type Runner struct {
	cfg     Config
	log     *zap.SugaredLogger
	metrics *Metrics
}

// NewRunner returns a runner for cfg. metrics may be nil.
func NewRunner(cfg Config, log *zap.SugaredLogger, metrics *Metrics) *Runner {
	return &Runner{cfg: cfg, log: log, metrics: metrics}
}

// Run benchmarks every configured structure in turn and returns one result
// for the initial load and one per workload. Cancellation is checked between
// phases.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}
	var results []Result
	for _, name := range r.cfg.Structures {
		res, err := r.runSuite(ctx, name)
		results = append(results, res...)
		if err != nil {
			return results, errors.Wrapf(err, "bench: %s", name)
		}
	}
	return results, nil
}

func (r *Runner) runSuite(ctx context.Context, name string) (results []Result, err error) {
	idx, conf, err := structures[name](r.cfg, r.log)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.CombineErrors(err, idx.Close())
	}()
	log := r.log.With("structure", name, "config", conf)
	log.Infow("loading", "keys", r.cfg.Scale)

	rng := rand.New(rand.NewPCG(r.cfg.Seed, uint64(len(name))))
	value := make([]byte, r.cfg.ValueSize)
	for i := range value {
		value[i] = 'x'
	}

	// Initial load in random order, then a steady-state footprint sample.
	lat := newLatencies()
	for _, k := range rng.Perm(r.cfg.Scale) {
		start := time.Now()
		if err := idx.Insert(int64(k), value); err != nil {
			return results, errors.Wrapf(err, "load %d", k)
		}
		elapsed := time.Since(start)
		lat.record(elapsed)
		r.metrics.observe(name, opLoad, opLoad, elapsed)
	}
	mem := ReadMemory()
	load := Result{
		Structure: name,
		Config:    conf,
		Workload:  opLoad,
		MemBytes:  mem.AllocBytes,
		Objects:   mem.HeapObjects,
	}
	lat.fill(&load)
	results = append(results, load)

	for _, w := range r.cfg.Workloads {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		n := r.cfg.Ops
		if Workload(w) == Scan {
			n = r.cfg.Scans
		}
		lat := newLatencies()
		rec := func(op string, elapsed time.Duration) {
			lat.record(elapsed)
			r.metrics.observe(name, w, op, elapsed)
		}
		if err := executeWorkload(idx, Workload(w), n, int64(r.cfg.Scale), value, rng, rec); err != nil {
			return results, errors.Wrapf(err, "workload %s", w)
		}
		mem := ReadMemory()
		res := Result{
			Structure: name,
			Config:    conf,
			Workload:  w,
			MemBytes:  mem.AllocBytes,
			Objects:   mem.HeapObjects,
		}
		lat.fill(&res)
		results = append(results, res)
		log.Infow("workload done", "summary", res.Summary())
	}

	if v, ok := idx.(verifier); ok {
		if err := v.Verify(); err != nil {
			return results, errors.Wrap(err, "verify after workloads")
		}
		log.Debugw("invariants hold")
	}
	return results, nil
}
