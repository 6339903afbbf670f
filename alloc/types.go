package alloc

import (
	"time"
)

// Actor is the entity that may execute a task.
type Actor string

const (
	ActorMachine Actor = "machine"
	ActorHuman   Actor = "human"
)

// validActors maps accepted actor names.
var validActors = map[Actor]bool{
	ActorMachine: true,
	ActorHuman:   true,
}

// IsValidActor returns true if the given name is a recognized actor.
func IsValidActor(name string) bool {
	return validActors[Actor(name)]
}

// Complement returns the other actor of the binary domain.
// Used to derive the fallback actor of a decision.
func (a Actor) Complement() Actor {
	if a == ActorHuman {
		return ActorMachine
	}
	return ActorHuman
}

// Label returns the capitalized name used in reasoning lines.
func (a Actor) Label() string {
	switch a {
	case ActorMachine:
		return "Machine"
	case ActorHuman:
		return "Human"
	default:
		return string(a)
	}
}

// TaskType classifies a task for cost and history purposes.
type TaskType string

const (
	TaskClassification TaskType = "classification"
	TaskPlanning       TaskType = "planning"
	TaskEmergency      TaskType = "emergency"
	TaskRoutine        TaskType = "routine"
)

// AllTaskTypes lists the task types in a stable order.
var AllTaskTypes = []TaskType{TaskClassification, TaskPlanning, TaskEmergency, TaskRoutine}

var validTaskTypes = map[TaskType]bool{
	TaskClassification: true,
	TaskPlanning:       true,
	TaskEmergency:      true,
	TaskRoutine:        true,
}

// IsValidTaskType returns true if the given name is a recognized task type.
// Case-sensitive.
func IsValidTaskType(name string) bool {
	return validTaskTypes[TaskType(name)]
}

// DecisionContext identifies and classifies one task.
// InputData and Metadata are opaque to the engine.
type DecisionContext struct {
	TaskID    string
	TaskType  TaskType
	InputData any
	Timestamp time.Time
	Metadata  map[string]any
}

// MachineConfidence is the automated predictor's self-report for one task.
// ConfidenceScore and UncertaintyScore are independent axes in [0,1];
// they are not required to sum to 1.
type MachineConfidence struct {
	Prediction       any
	ConfidenceScore  float64
	UncertaintyScore float64
	ModelVersion     string
}

// CostConfiguration holds process-wide cost parameters. All fields must be non-negative.
type CostConfiguration struct {
	FalsePositiveCost float64 `yaml:"false_positive_cost"`
	FalseNegativeCost float64 `yaml:"false_negative_cost"`
	TimeDelayCost     float64 `yaml:"time_delay_cost"`
}

// AllocationDecision is the result of one Allocate call.
type AllocationDecision struct {
	Actor         Actor    `json:"actor"`
	Confidence    float64  `json:"confidence"` // P_correct of the selected actor
	Reasoning     []string `json:"reasoning"`
	FallbackActor Actor    `json:"fallback_actor"`
	RulesFired    []string `json:"rules_fired"` // rule tags in cascade order

	MachineUtility Utility `json:"machine_utility"`
	HumanUtility   Utility `json:"human_utility"`
}

// PerformanceStats aggregates the recorded outcomes of one (task type, actor) pair.
type PerformanceStats struct {
	Count   int     `json:"count"`
	Correct int     `json:"correct"`
	Rate    float64 `json:"rate"` // Correct/Count; 0 when Count is 0
}

// NewPerformanceStats computes stats from an outcome sequence.
func NewPerformanceStats(outcomes []bool) PerformanceStats {
	stats := PerformanceStats{Count: len(outcomes)}
	for _, ok := range outcomes {
		if ok {
			stats.Correct++
		}
	}
	if stats.Count > 0 {
		stats.Rate = float64(stats.Correct) / float64(stats.Count)
	}
	return stats
}

// Outcome is the ground-truth status of an executed task.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomePending   Outcome = "pending"
)

// DecisionResult captures what happened after a decision was acted upon.
type DecisionResult struct {
	TaskID         string        `json:"task_id"`
	FinalDecision  any           `json:"final_decision"` // the answer produced by ActualActor
	ActualActor    Actor         `json:"actual_actor"`
	HumanOverride  bool          `json:"human_override"` // the actor that executed differs from the allocated one
	Outcome        Outcome       `json:"outcome"`
	ProcessingTime time.Duration `json:"processing_time"` // wall time of the allocation call
}
