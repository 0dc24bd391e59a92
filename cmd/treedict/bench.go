package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/gosella/DS/bench"
)

type benchFlags struct {
	config      string
	scale       int
	ops         int
	seed        uint64
	structures  []string
	csv         string
	plot        string
	metricsAddr string
}

func (a *app) benchCmd() *cobra.Command {
	var f benchFlags
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the AVL tree against other ordered indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.runBench(ctx, cmd, cfg, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "TOML configuration file")
	fl.IntVar(&f.scale, "scale", 0, "keys loaded before the workloads")
	fl.IntVar(&f.ops, "ops", 0, "operations per mixed workload")
	fl.Uint64Var(&f.seed, "seed", 0, "random seed")
	fl.StringSliceVar(&f.structures, "structures", nil,
		"structures to run ("+strings.Join(bench.StructureNames(), ", ")+")")
	fl.StringVar(&f.csv, "csv", "", "write results as CSV to this file")
	fl.StringVar(&f.plot, "plot", "", "write a latency bar chart PNG to this file")
	fl.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")
	return cmd
}

// resolve builds the configuration: defaults, then the config file, then any
// flag the user set explicitly.
func (f benchFlags) resolve(cmd *cobra.Command) (bench.Config, error) {
	cfg := bench.DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = bench.LoadConfig(f.config); err != nil {
			return bench.Config{}, err
		}
	}
	fl := cmd.Flags()
	if fl.Changed("scale") {
		cfg.Scale = f.scale
	}
	if fl.Changed("ops") {
		cfg.Ops = f.ops
	}
	if fl.Changed("seed") {
		cfg.Seed = f.seed
	}
	if fl.Changed("structures") {
		cfg.Structures = f.structures
	}
	return cfg, cfg.Validate()
}

func (a *app) runBench(ctx context.Context, cmd *cobra.Command, cfg bench.Config, f benchFlags) error {
	metrics := bench.NewMetrics()
	if f.metricsAddr != "" {
		srv := &http.Server{
			Addr:              f.metricsAddr,
			Handler:           promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.Errorw("metrics server", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		a.log.Infow("serving metrics", "addr", f.metricsAddr)
	}

	a.log.Infow("starting benchmark", "scale", cfg.Scale, "ops", cfg.Ops, "structures", cfg.Structures)
	results, err := bench.NewRunner(cfg, a.log, metrics).Run(ctx)
	if len(results) > 0 {
		bench.RenderTable(cmd.OutOrStdout(), results)
	}
	if err != nil {
		return err
	}

	if f.csv != "" {
		if err := writeFile(f.csv, func(file *os.File) error { return bench.WriteCSV(file, results) }); err != nil {
			return err
		}
		a.log.Infow("wrote csv", "path", f.csv)
	}
	if f.plot != "" {
		if err := writeFile(f.plot, func(file *os.File) error { return bench.WritePlot(file, results) }); err != nil {
			return err
		}
		a.log.Infow("wrote plot", "path", f.plot)
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	return errors.Wrapf(file.Close(), "closing %s", path)
}
