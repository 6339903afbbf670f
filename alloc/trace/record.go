// Package trace provides decision-trace recording for allocation analysis.
// This package has no dependencies on alloc/ and stores pure data types.
package trace

// AllocationRecord captures a single allocation decision.
type AllocationRecord struct {
	TaskID         string   `json:"task_id"`
	TaskType       string   `json:"task_type"`
	Actor          string   `json:"actor"`
	FallbackActor  string   `json:"fallback_actor"`
	Confidence     float64  `json:"confidence"`
	MachineUtility float64  `json:"machine_utility"`
	HumanUtility   float64  `json:"human_utility"`
	RulesFired     []string `json:"rules_fired"` // in cascade order
	Regret         float64  `json:"regret"`      // max(U_machine, U_human) - U(chosen); 0 if the chosen actor is utility-optimal
}

// OutcomeRecord captures the ground truth observed after a task was executed.
type OutcomeRecord struct {
	TaskID    string  `json:"task_id"`
	TaskType  string  `json:"task_type"`
	Actor     string  `json:"actor"`
	Correct   bool    `json:"correct"`
	ErrorCost float64 `json:"error_cost"` // false-positive or false-negative cost; 0 when Correct
}
