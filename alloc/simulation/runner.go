// Package simulation runs a closed allocation loop over a generated workload:
// allocate, execute with the selected actor, observe ground truth, report the
// outcome back into the history store.
package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/inference-sim/allocsim/alloc"
	"github.com/inference-sim/allocsim/alloc/trace"
	"github.com/inference-sim/allocsim/alloc/workload"
)

// Config controls a simulation run.
type Config struct {
	// Workers bounds concurrent Allocate calls within a batch. Values < 1 mean 1.
	Workers int
	// BatchSize is the number of tasks allocated before their outcomes are reported.
	// Decisions inside a batch see the same history snapshot. Values < 1 mean 1.
	BatchSize int
	Trace     trace.TraceConfig
}

// Result is the output of a run.
type Result struct {
	Decisions []alloc.AllocationDecision
	Results   []alloc.DecisionResult
	Trace     *trace.DecisionTrace // nil unless tracing is enabled
	Summary   *trace.TraceSummary
}

// Runner drives an Allocator over a task stream.
type Runner struct {
	allocator *alloc.Allocator
	cfg       Config
}

// NewRunner creates a Runner.
func NewRunner(allocator *alloc.Allocator, cfg Config) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	return &Runner{allocator: allocator, cfg: cfg}
}

// Run allocates every task and feeds outcomes back in task order. For a fixed
// BatchSize the decisions do not depend on Workers. Outcomes are reported under
// the actor that actually executed; pending outcomes are not reported.
func (r *Runner) Run(ctx context.Context, tasks []workload.Task) (*Result, error) {
	dt := trace.NewDecisionTrace(r.cfg.Trace)
	res := &Result{
		Decisions: make([]alloc.AllocationDecision, 0, len(tasks)),
		Results:   make([]alloc.DecisionResult, 0, len(tasks)),
	}
	costs := r.allocator.CostModel()
	overrides, pending := 0, 0

	for start := 0; start < len(tasks); start += r.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+r.cfg.BatchSize, len(tasks))
		batch := tasks[start:end]

		decisions, elapsed, err := r.allocateBatch(ctx, batch)
		if err != nil {
			return nil, err
		}

		for i, task := range batch {
			d := decisions[i]
			dt.RecordAllocation(allocationRecord(task, d))

			result := execute(task, d)
			result.ProcessingTime = elapsed[i]
			if result.HumanOverride {
				overrides++
			}
			if result.Outcome == alloc.OutcomePending {
				pending++
			} else {
				correct := result.Outcome == alloc.OutcomeCorrect
				if err := r.allocator.UpdatePerformanceHistory(task.Context, result.ActualActor, correct); err != nil {
					return nil, err
				}
				outcome := trace.OutcomeRecord{
					TaskID:   task.Context.TaskID,
					TaskType: string(task.Context.TaskType),
					Actor:    string(result.ActualActor),
					Correct:  correct,
				}
				if !correct {
					outcome.ErrorCost = costs.ErrorCost(task.Truth.Positive)
				}
				dt.RecordOutcome(outcome)
			}

			res.Decisions = append(res.Decisions, d)
			res.Results = append(res.Results, result)
		}
	}

	res.Summary = trace.Summarize(dt)
	if r.cfg.Trace.Enabled() {
		res.Trace = dt
	}
	logrus.Infof("simulation complete: %d tasks, %d overridden, %d pending, accuracy=%.3f, error cost=%.3f",
		res.Summary.TotalDecisions, overrides, pending, res.Summary.Accuracy, res.Summary.TotalErrorCost)
	return res, nil
}

func (r *Runner) allocateBatch(ctx context.Context, batch []workload.Task) ([]alloc.AllocationDecision, []time.Duration, error) {
	decisions := make([]alloc.AllocationDecision, len(batch))
	elapsed := make([]time.Duration, len(batch))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for i := range batch {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			task := batch[i]
			start := time.Now()
			d, err := r.allocator.AllocateWithExpertise(task.Context, task.Confidence, task.HumanExpertise)
			if err != nil {
				return fmt.Errorf("allocating task %s: %w", task.Context.TaskID, err)
			}
			decisions[i] = d
			elapsed[i] = time.Since(start)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return decisions, elapsed, nil
}

// execute runs the task with the allocated actor, or with the fallback when
// the task is overridden, and reads the ground truth.
func execute(task workload.Task, d alloc.AllocationDecision) alloc.DecisionResult {
	actor := d.Actor
	if task.Execution.Override {
		actor = d.FallbackActor
	}
	result := alloc.DecisionResult{
		TaskID:        task.Context.TaskID,
		FinalDecision: task.Truth.Answer(actor),
		ActualActor:   actor,
		HumanOverride: actor != d.Actor,
		Outcome:       alloc.OutcomeIncorrect,
	}
	if actor == alloc.ActorMachine {
		result.FinalDecision = task.Confidence.Prediction
	}
	switch {
	case task.Execution.Pending:
		result.Outcome = alloc.OutcomePending
	case task.Truth.Correct(actor):
		result.Outcome = alloc.OutcomeCorrect
	}
	return result
}

func allocationRecord(task workload.Task, d alloc.AllocationDecision) trace.AllocationRecord {
	best := max(d.MachineUtility.U, d.HumanUtility.U)
	chosen := d.HumanUtility.U
	if d.Actor == alloc.ActorMachine {
		chosen = d.MachineUtility.U
	}
	return trace.AllocationRecord{
		TaskID:         task.Context.TaskID,
		TaskType:       string(task.Context.TaskType),
		Actor:          string(d.Actor),
		FallbackActor:  string(d.FallbackActor),
		Confidence:     d.Confidence,
		MachineUtility: d.MachineUtility.U,
		HumanUtility:   d.HumanUtility.U,
		RulesFired:     d.RulesFired,
		Regret:         best - chosen,
	}
}
