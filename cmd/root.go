package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/allocsim/alloc"
	"github.com/inference-sim/allocsim/alloc/history"
)

var (
	logLevel     string // Log verbosity level
	policyConfig string // Path to YAML policy bundle
	historyDB    string // Path to SQLite history database; empty keeps history in memory
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "allocsim",
	Short: "Human/machine decision allocation engine",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// loadConfig resolves the engine configuration from --policy-config, or defaults.
func loadConfig() (alloc.Config, error) {
	if policyConfig == "" {
		return alloc.DefaultConfig(alloc.CostConfiguration{}), nil
	}
	bundle, err := alloc.LoadPolicyBundle(policyConfig)
	if err != nil {
		return alloc.Config{}, err
	}
	logrus.Infof("Loaded policy config from %s", policyConfig)
	return bundle.Config()
}

// newAllocator builds an Allocator over the history selected by --history-db.
// The returned Closer releases the store.
func newAllocator() (*alloc.Allocator, io.Closer, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, closer, err := history.Open(historyDB)
	if err != nil {
		return nil, nil, fmt.Errorf("opening history: %w", err)
	}
	a, err := alloc.NewAllocator(cfg, store)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return a, closer, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&policyConfig, "policy-config", "", "Path to YAML policy bundle (costs, cost model, rule thresholds, estimator)")
	rootCmd.PersistentFlags().StringVar(&historyDB, "history-db", "", "Path to SQLite performance history; empty keeps history in memory")

	rootCmd.AddCommand(allocateCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(simulateCmd)
}
