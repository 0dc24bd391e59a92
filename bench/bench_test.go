package bench

import (
	"bytes"
	"context"
	"encoding/csv"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gosella/DS/index/listindex"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Scale = 200
	cfg.Ops = 300
	cfg.Scans = 2
	return cfg
}

func TestExecuteWorkloadMix(t *testing.T) {
	for _, tc := range []struct {
		w    Workload
		ops  []string
		none string
	}{
		{OLTP, []string{opGet, opUpsert}, opDelete},
		{OLAP, []string{opGet, opUpsert}, opDelete},
		{Churn, []string{opUpsert, opDelete}, opGet},
	} {
		t.Run(string(tc.w), func(t *testing.T) {
			idx := listindex.NewListIndex()
			counts := map[string]int{}
			rec := func(op string, _ time.Duration) { counts[op]++ }
			rng := rand.New(rand.NewPCG(1, 2))
			require.NoError(t, executeWorkload(idx, tc.w, 1000, 50, []byte("v"), rng, rec))

			total := 0
			for _, op := range tc.ops {
				require.Positive(t, counts[op], op)
				total += counts[op]
			}
			require.Zero(t, counts[tc.none])
			require.Equal(t, 1000, total)
		})
	}
}

func TestExecuteWorkloadScan(t *testing.T) {
	idx := listindex.NewListIndex()
	for k := int64(0); k < 10; k++ {
		require.NoError(t, idx.Insert(k, nil))
	}
	n, err := drain(idx)
	require.NoError(t, err)
	require.Equal(t, 10, n)

	scans := 0
	rec := func(op string, _ time.Duration) {
		require.Equal(t, opScan, op)
		scans++
	}
	require.NoError(t, executeWorkload(idx, Scan, 3, 10, nil, nil, rec))
	require.Equal(t, 3, scans)
}

func TestRunnerAllStructures(t *testing.T) {
	cfg := smallConfig()
	metrics := NewMetrics()
	results, err := NewRunner(cfg, zaptest.NewLogger(t).Sugar(), metrics).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, len(cfg.Structures)*(1+len(cfg.Workloads)))

	for _, res := range results {
		switch res.Workload {
		case opLoad:
			require.EqualValues(t, cfg.Scale, res.Ops, res.Structure)
		case string(Scan):
			require.EqualValues(t, cfg.Scans, res.Ops, res.Structure)
		default:
			require.EqualValues(t, cfg.Ops, res.Ops, res.Summary())
		}
		require.LessOrEqual(t, res.P50Ns, res.P99Ns)
	}

	loads := testutil.ToFloat64(metrics.ops.WithLabelValues(StructureAVL, opLoad, opLoad))
	require.EqualValues(t, cfg.Scale, loads)
}

func TestRunnerStopsOnCancel(t *testing.T) {
	cfg := smallConfig()
	cfg.Structures = []string{StructureAVL}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := NewRunner(cfg, zaptest.NewLogger(t).Sugar(), nil).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	// The load phase completes before the first check.
	require.Len(t, results, 1)
}

func TestRunnerRejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Scale = 0
	_, err := NewRunner(cfg, zaptest.NewLogger(t).Sugar(), nil).Run(context.Background())
	require.ErrorContains(t, err, "scale")
}

var sample = []Result{
	{Structure: "avl", Config: "-", Workload: "oltp", Ops: 1500, MeanNs: 120, P50Ns: 100, P99Ns: 900, MemBytes: 3 << 20, Objects: 42},
	{Structure: "btree", Config: "degree=32", Workload: "oltp", Ops: 1500, MeanNs: 90, P50Ns: 80, P99Ns: 400, MemBytes: 2 << 20, Objects: 7},
}

func TestWriteCSV(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteCSV(&b, sample))
	rows, err := csv.NewReader(&b).ReadAll()
	require.NoError(t, err)
	require.Equal(t, csvHeader, rows[0])
	require.Equal(t, []string{"btree", "degree=32", "oltp", "1500", "90", "80", "400", "2097152", "7"}, rows[2])
}

func TestRenderTable(t *testing.T) {
	var b strings.Builder
	RenderTable(&b, sample)
	out := b.String()
	for _, want := range []string{"structure", "degree=32", "1,500", "3.0 MiB", "900ns"} {
		require.Contains(t, out, want)
	}
}

func TestWritePlot(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WritePlot(&b, sample))
	require.True(t, bytes.HasPrefix(b.Bytes(), []byte("\x89PNG")))

	require.Error(t, WritePlot(&b, nil))
}

func TestResultSummary(t *testing.T) {
	require.Equal(t, "avl/oltp: 1500 ops, p50 100ns, p99 900ns", sample[0].Summary())
}

func TestReadMemory(t *testing.T) {
	mem := ReadMemory()
	require.Positive(t, mem.AllocBytes)
	require.Positive(t, mem.HeapObjects)
}
