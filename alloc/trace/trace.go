package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every allocation decision and outcome.
	TraceLevelDecisions TraceLevel = "decisions"
)

var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether records should be collected.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelDecisions
}

// DecisionTrace collects records during a simulation run.
// Not safe for concurrent use; callers record from a single goroutine.
type DecisionTrace struct {
	Config      TraceConfig        `json:"-"`
	Allocations []AllocationRecord `json:"allocations"`
	Outcomes    []OutcomeRecord    `json:"outcomes"`
}

// NewDecisionTrace creates a DecisionTrace ready for recording.
func NewDecisionTrace(config TraceConfig) *DecisionTrace {
	return &DecisionTrace{
		Config:      config,
		Allocations: make([]AllocationRecord, 0),
		Outcomes:    make([]OutcomeRecord, 0),
	}
}

// RecordAllocation appends an allocation record.
func (dt *DecisionTrace) RecordAllocation(record AllocationRecord) {
	dt.Allocations = append(dt.Allocations, record)
}

// RecordOutcome appends an outcome record.
func (dt *DecisionTrace) RecordOutcome(record OutcomeRecord) {
	dt.Outcomes = append(dt.Outcomes, record)
}
