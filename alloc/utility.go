package alloc

import "fmt"

// Utility is the per-actor score used by the default allocation rule.
type Utility struct {
	U        float64 `json:"u"` // PCorrect - Cost, full precision
	PCorrect float64 `json:"p_correct"`
	Cost     float64 `json:"cost"`
}

// UtilityCalculator combines the Estimator and the CostModel.
type UtilityCalculator struct {
	estimator *Estimator
	costs     CostModel
}

// NewUtilityCalculator creates a UtilityCalculator.
func NewUtilityCalculator(estimator *Estimator, costs CostModel) *UtilityCalculator {
	return &UtilityCalculator{estimator: estimator, costs: costs}
}

// Utility computes U = P_correct - Cost for actor and appends one reasoning line.
// Rounding is applied to the reasoning line only.
func (uc *UtilityCalculator) Utility(ctx DecisionContext, mc MachineConfidence, actor Actor, humanExpertise float64, reasoning *[]string) (Utility, error) {
	p, err := uc.estimator.EstimateAccuracy(ctx, mc, actor, humanExpertise)
	if err != nil {
		return Utility{}, err
	}
	c := uc.costs.Cost(ctx, actor)
	u := Utility{U: p - c, PCorrect: p, Cost: c}
	*reasoning = append(*reasoning, fmt.Sprintf("%s utility: P_correct=%.3f, Cost=%.3f, U=%.3f",
		actor.Label(), u.PCorrect, u.Cost, u.U))
	return u, nil
}
