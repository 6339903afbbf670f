package trace

// TraceSummary aggregates statistics from a DecisionTrace.
type TraceSummary struct {
	TotalDecisions    int            `json:"total_decisions"`
	ActorDistribution map[string]int `json:"actor_distribution"` // actor → count of tasks allocated
	RuleDistribution  map[string]int `json:"rule_distribution"`  // rule tag → count of firings
	OverriddenCount   int            `json:"overridden_count"`   // decisions with positive regret
	MeanRegret        float64        `json:"mean_regret"`
	MaxRegret         float64        `json:"max_regret"`

	TotalOutcomes   int                `json:"total_outcomes"`
	CorrectCount    int                `json:"correct_count"`
	Accuracy        float64            `json:"accuracy"`
	AccuracyByActor map[string]float64 `json:"accuracy_by_actor"`
	TotalErrorCost  float64            `json:"total_error_cost"`
}

// Summarize computes aggregate statistics from a DecisionTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(dt *DecisionTrace) *TraceSummary {
	summary := &TraceSummary{
		ActorDistribution: make(map[string]int),
		RuleDistribution:  make(map[string]int),
		AccuracyByActor:   make(map[string]float64),
	}
	if dt == nil {
		return summary
	}

	summary.TotalDecisions = len(dt.Allocations)
	if len(dt.Allocations) > 0 {
		totalRegret := 0.0
		for _, a := range dt.Allocations {
			summary.ActorDistribution[a.Actor]++
			for _, r := range a.RulesFired {
				summary.RuleDistribution[r]++
			}
			if a.Regret > 0 {
				summary.OverriddenCount++
			}
			totalRegret += a.Regret
			if a.Regret > summary.MaxRegret {
				summary.MaxRegret = a.Regret
			}
		}
		summary.MeanRegret = totalRegret / float64(len(dt.Allocations))
	}

	summary.TotalOutcomes = len(dt.Outcomes)
	perActor := make(map[string]int)
	perActorCorrect := make(map[string]int)
	for _, o := range dt.Outcomes {
		perActor[o.Actor]++
		if o.Correct {
			summary.CorrectCount++
			perActorCorrect[o.Actor]++
		}
		summary.TotalErrorCost += o.ErrorCost
	}
	if summary.TotalOutcomes > 0 {
		summary.Accuracy = float64(summary.CorrectCount) / float64(summary.TotalOutcomes)
	}
	for actor, n := range perActor {
		summary.AccuracyByActor[actor] = float64(perActorCorrect[actor]) / float64(n)
	}

	return summary
}
