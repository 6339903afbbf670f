package workload

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/inference-sim/allocsim/alloc"
)

// epoch anchors generated timestamps so runs are reproducible.
var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// GroundTruth is what actually happens if each actor executes the task.
// Both outcomes are drawn up front so the draw does not depend on the allocation.
type GroundTruth struct {
	MachineCorrect bool
	HumanCorrect   bool
	Positive       bool // ground-truth label; decides whether an error is a false negative or a false positive
}

// Correct returns the outcome for actor.
func (g GroundTruth) Correct(actor alloc.Actor) bool {
	if actor == alloc.ActorMachine {
		return g.MachineCorrect
	}
	return g.HumanCorrect
}

// Answer returns the label actor produces: the true label when it is correct,
// the opposite one otherwise.
func (g GroundTruth) Answer(actor alloc.Actor) bool {
	return g.Correct(actor) == g.Positive
}

// Execution describes what happens after the allocation is made.
type Execution struct {
	Override bool // the fallback actor executes instead of the allocated one
	Pending  bool // ground truth is never observed
}

// Task is one generated allocation request plus its hidden ground truth.
type Task struct {
	Context        alloc.DecisionContext
	Confidence     alloc.MachineConfidence
	HumanExpertise float64
	Truth          GroundTruth
	Execution      Execution
}

// GenerateTasks produces spec.NumTasks tasks deterministically from spec.Seed.
func GenerateTasks(spec *WorkloadSpec) ([]Task, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	rng := NewPartitionedRNG(spec.Seed)
	taskRNG := rng.ForSubsystem(SubsystemTasks)
	truthRNG := rng.ForSubsystem(SubsystemGroundTruth)
	idRNG := rng.ForSubsystem(SubsystemIDs)
	execRNG := rng.ForSubsystem(SubsystemExecution)

	cumulative := make([]float64, len(spec.Classes))
	total := 0.0
	for i, c := range spec.Classes {
		total += c.Weight
		cumulative[i] = total
	}

	tasks := make([]Task, 0, spec.NumTasks)
	for i := 0; i < spec.NumTasks; i++ {
		class := &spec.Classes[pickClass(taskRNG.Float64()*total, cumulative)]
		id, err := uuid.NewRandomFromReader(idRNG)
		if err != nil {
			return nil, fmt.Errorf("generating task id: %w", err)
		}

		conf := sample(taskRNG, class.Confidence)
		unc := sample(taskRNG, class.Uncertainty)

		humanAcc := class.HumanExpertise
		if class.HumanAccuracy != nil {
			humanAcc = *class.HumanAccuracy
		}
		calibration := 1.0
		if class.MachineCalibration != nil {
			calibration = *class.MachineCalibration
		}
		machineAcc := clampUnit(conf * (1 - unc) * calibration)
		truth := GroundTruth{
			MachineCorrect: truthRNG.Float64() < machineAcc,
			HumanCorrect:   truthRNG.Float64() < humanAcc,
			Positive:       truthRNG.Float64() < class.PositiveRate,
		}
		// Both draws happen for every task so the stream does not depend on the rates.
		exec := Execution{
			Override: execRNG.Float64() < class.OverrideRate,
			Pending:  execRNG.Float64() < class.PendingRate,
		}

		tasks = append(tasks, Task{
			Context: alloc.DecisionContext{
				TaskID:    id.String(),
				TaskType:  alloc.TaskType(class.TaskType),
				Timestamp: epoch.Add(time.Duration(i) * time.Second),
				Metadata:  map[string]any{"index": i},
			},
			Confidence: alloc.MachineConfidence{
				Prediction:       truth.Answer(alloc.ActorMachine),
				ConfidenceScore:  conf,
				UncertaintyScore: unc,
				ModelVersion:     "synthetic-v" + spec.Version,
			},
			HumanExpertise: class.HumanExpertise,
			Truth:          truth,
			Execution:      exec,
		})
	}
	return tasks, nil
}

// pickClass returns the first index whose cumulative weight exceeds r.
// Zero-weight classes are never picked.
func pickClass(r float64, cumulative []float64) int {
	for i, c := range cumulative {
		if r < c {
			return i
		}
	}
	return len(cumulative) - 1
}

// sample draws one score and clamps it into [0,1].
func sample(rng *rand.Rand, d DistSpec) float64 {
	var v float64
	switch d.Type {
	case "constant":
		v = d.Params["value"]
	case "uniform":
		lo, hi := d.Params["min"], d.Params["max"]
		v = lo + rng.Float64()*(hi-lo)
	case "gaussian":
		v = d.Params["mean"] + rng.NormFloat64()*d.Params["stdev"]
	default:
		panic(fmt.Sprintf("unhandled distribution type %q", d.Type))
	}
	return clampUnit(v)
}

func clampUnit(v float64) float64 {
	return min(1, max(0, v))
}
