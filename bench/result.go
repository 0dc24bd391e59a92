package bench

import (
	"encoding/csv"
	"io"
	"runtime"
	"strconv"
	"time"

	"github.com/codahale/hdrhistogram"
	"github.com/cockroachdb/errors"
)

// Result is one row of benchmark output: a structure under one workload.
type Result struct {
	Structure string
	Config    string
	Workload  string
	Ops       int64
	MeanNs    int64
	P50Ns     int64
	P99Ns     int64
	MemBytes  uint64
	Objects   uint64
}

type MemoryStats struct {
	AllocBytes  uint64
	HeapObjects uint64
}

// ReadMemory samples the heap after a forced GC, so the numbers reflect
// live data rather than garbage.
func ReadMemory() MemoryStats {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return MemoryStats{
		AllocBytes:  m.Alloc,
		HeapObjects: m.HeapObjects,
	}
}

const (
	minLatency = time.Nanosecond
	maxLatency = 10 * time.Second
	sigFigs    = 3
)

// latencies accumulates per-operation timings for one phase.
type latencies struct {
	h *hdrhistogram.Histogram
}

func newLatencies() latencies {
	return latencies{h: hdrhistogram.New(minLatency.Nanoseconds(), maxLatency.Nanoseconds(), sigFigs)}
}

func (l latencies) record(elapsed time.Duration) {
	// Clamp to the trackable range; RecordValue only fails outside it.
	elapsed = min(max(elapsed, minLatency), maxLatency)
	if err := l.h.RecordValue(elapsed.Nanoseconds()); err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "recording latency %s", elapsed))
	}
}

func (l latencies) fill(r *Result) {
	r.Ops = l.h.TotalCount()
	r.MeanNs = int64(l.h.Mean())
	r.P50Ns = l.h.ValueAtQuantile(50)
	r.P99Ns = l.h.ValueAtQuantile(99)
}

var csvHeader = []string{"Structure", "Config", "Workload", "Ops", "MeanNs", "P50Ns", "P99Ns", "MemBytes", "HeapObjects"}

// WriteCSV writes results with a header row.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, "bench: csv header")
	}
	for _, res := range results {
		err := cw.Write([]string{
			res.Structure,
			res.Config,
			res.Workload,
			strconv.FormatInt(res.Ops, 10),
			strconv.FormatInt(res.MeanNs, 10),
			strconv.FormatInt(res.P50Ns, 10),
			strconv.FormatInt(res.P99Ns, 10),
			strconv.FormatUint(res.MemBytes, 10),
			strconv.FormatUint(res.Objects, 10),
		})
		if err != nil {
			return errors.Wrap(err, "bench: csv row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "bench: csv flush")
}
