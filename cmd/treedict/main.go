// Command treedict exercises the AVL tree dictionary: it benchmarks it
// against other ordered indexes, walks through its API, draws trees and
// stress-tests the balancing invariants.
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type app struct {
	logLevel string
	json     bool
	log      *zap.SugaredLogger
}

func main() {
	a := &app{}
	if err := a.rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "treedict:", err)
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "treedict",
		Short:         "AVL tree dictionary tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(a.logLevel, a.json)
			if err != nil {
				return err
			}
			a.log = logger.Sugar()
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolVar(&a.json, "json", false, "emit JSON logs")

	root.AddCommand(a.benchCmd(), a.demoCmd(), a.shapeCmd(), a.verifyCmd())
	return root
}

func newLogger(level string, json bool) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "invalid --log-level %q", level)
	}
	cfg := zap.NewDevelopmentConfig()
	if json {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
