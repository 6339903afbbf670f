package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/allocsim/alloc"
	"github.com/inference-sim/allocsim/alloc/simulation"
	"github.com/inference-sim/allocsim/alloc/trace"
	"github.com/inference-sim/allocsim/alloc/workload"
)

var (
	workloadSpecPath string // Path to YAML workload spec
	seed             int64  // Seed for workload generation
	numTasks         int    // Number of tasks to generate
	workers          int    // Concurrent allocations per batch
	batchSize        int    // Tasks allocated before outcomes are reported
	traceLevel       string // Decision trace verbosity
)

// simulateOptions carries resolved simulate inputs.
type simulateOptions struct {
	Spec      *workload.WorkloadSpec
	Workers   int
	BatchSize int
	Trace     trace.TraceConfig
}

// simulateOutput is the JSON document printed by simulate.
type simulateOutput struct {
	Seed     int64                                                     `json:"seed"`
	NumTasks int                                                       `json:"num_tasks"`
	Summary  *trace.TraceSummary                                       `json:"summary"`
	History  map[alloc.TaskType]map[alloc.Actor]alloc.PerformanceStats `json:"history"`
	Trace    *trace.DecisionTrace                                      `json:"trace,omitempty"`
}

// runSimulate generates the workload, runs the closed loop and prints the output.
func runSimulate(ctx context.Context, a *alloc.Allocator, opts simulateOptions, w io.Writer) error {
	tasks, err := workload.GenerateTasks(opts.Spec)
	if err != nil {
		return err
	}
	logrus.Infof("Generated %d tasks (seed=%d)", len(tasks), opts.Spec.Seed)

	runner := simulation.NewRunner(a, simulation.Config{
		Workers:   opts.Workers,
		BatchSize: opts.BatchSize,
		Trace:     opts.Trace,
	})
	res, err := runner.Run(ctx, tasks)
	if err != nil {
		return err
	}
	stats, err := a.PerformanceStats()
	if err != nil {
		return err
	}
	return printJSON(w, simulateOutput{
		Seed:     opts.Spec.Seed,
		NumTasks: len(tasks),
		Summary:  res.Summary,
		History:  stats,
		Trace:    res.Trace,
	})
}

// simulateCmd runs the closed allocation loop over a synthetic workload
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run allocation over a synthetic workload and report the outcome summary",
	Run: func(cmd *cobra.Command, args []string) {
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q. Valid: none, decisions", traceLevel)
		}

		spec := workload.DefaultWorkloadSpec()
		if workloadSpecPath != "" {
			var err error
			spec, err = workload.LoadWorkloadSpec(workloadSpecPath)
			if err != nil {
				logrus.Fatalf("Failed to load workload spec: %v", err)
			}
		}
		// Flags override the workload file only when set explicitly.
		if cmd.Flags().Changed("seed") {
			spec.Seed = seed
		}
		if cmd.Flags().Changed("num-tasks") {
			spec.NumTasks = numTasks
		}

		a, closer, err := newAllocator()
		if err != nil {
			logrus.Fatalf("Failed to build allocator: %v", err)
		}
		defer closer.Close()

		opts := simulateOptions{
			Spec:      spec,
			Workers:   workers,
			BatchSize: batchSize,
			Trace:     trace.TraceConfig{Level: trace.TraceLevel(traceLevel)},
		}
		if err := runSimulate(cmd.Context(), a, opts, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
	},
}

func init() {
	simulateCmd.Flags().StringVar(&workloadSpecPath, "workload", "", "Path to YAML workload spec (default: built-in mixed workload)")
	simulateCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for workload generation (overrides the workload spec)")
	simulateCmd.Flags().IntVar(&numTasks, "num-tasks", 200, "Number of tasks (overrides the workload spec)")
	simulateCmd.Flags().IntVar(&workers, "workers", 4, "Concurrent allocations per batch")
	simulateCmd.Flags().IntVar(&batchSize, "batch-size", 16, "Tasks allocated before their outcomes are reported")
	simulateCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), fmt.Sprintf("Decision trace level (%s, %s)", trace.TraceLevelNone, trace.TraceLevelDecisions))
}
