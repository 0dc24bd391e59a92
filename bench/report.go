package bench

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// RenderTable prints results as an aligned terminal table.
func RenderTable(w io.Writer, results []Result) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"structure", "config", "workload", "ops", "mean", "p50", "p99", "heap", "objects"})
	for _, res := range results {
		table.Append([]string{
			res.Structure,
			res.Config,
			res.Workload,
			humanize.Comma(res.Ops),
			time.Duration(res.MeanNs).String(),
			time.Duration(res.P50Ns).String(),
			time.Duration(res.P99Ns).String(),
			humanize.IBytes(res.MemBytes),
			humanize.Comma(int64(res.Objects)),
		})
	}
	table.Render()
}

// WritePlot renders a grouped bar chart of mean latency per workload, one
// bar group per structure, as a PNG.
func WritePlot(w io.Writer, results []Result) error {
	var workloads, structs []string
	mean := map[[2]string]float64{}
	for _, res := range results {
		if !slices.Contains(workloads, res.Workload) {
			workloads = append(workloads, res.Workload)
		}
		if !slices.Contains(structs, res.Structure) {
			structs = append(structs, res.Structure)
		}
		mean[[2]string{res.Structure, res.Workload}] = float64(res.MeanNs)
	}
	if len(structs) == 0 {
		return errors.New("bench: nothing to plot")
	}

	p := plot.New()
	p.Title.Text = "Mean latency per operation"
	p.Y.Label.Text = "ns/op"
	p.Legend.Top = true

	width := vg.Points(60 / float64(len(structs)))
	for i, s := range structs {
		vals := make(plotter.Values, len(workloads))
		for j, wl := range workloads {
			vals[j] = mean[[2]string{s, wl}]
		}
		bars, err := plotter.NewBarChart(vals, width)
		if err != nil {
			return errors.Wrapf(err, "bench: bars for %s", s)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = width * vg.Length(float64(i)-float64(len(structs)-1)/2)
		p.Add(bars)
		p.Legend.Add(s, bars)
	}
	p.NominalX(workloads...)

	wt, err := p.WriterTo(8*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return errors.Wrap(err, "bench: plot")
	}
	_, err = wt.WriteTo(w)
	return errors.Wrap(err, "bench: plot")
}

// Summary is a one-line description of a result, used in log output.
func (r Result) Summary() string {
	return fmt.Sprintf("%s/%s: %s ops, p50 %s, p99 %s",
		r.Structure, r.Workload, strconv.FormatInt(r.Ops, 10),
		time.Duration(r.P50Ns), time.Duration(r.P99Ns))
}
