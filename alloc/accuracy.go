package alloc

import "fmt"

// Estimator estimates the probability that an actor handles a task correctly.
//
// The instantaneous signal is blended with observed history for the task type:
//
//	w = n / (n + PriorWeight)
//	P = (1 - w) * signal + w * rate
//
// where n is the number of recorded outcomes (optionally the last HistoryWindow)
// and rate their fraction correct. With no history P equals the signal.
type Estimator struct {
	cfg     EstimatorConfig
	history HistoryStore
}

// NewEstimator creates an Estimator. history may be nil, in which case no blending happens.
func NewEstimator(cfg EstimatorConfig, history HistoryStore) *Estimator {
	return &Estimator{cfg: cfg, history: history}
}

// EstimateAccuracy returns P_correct in [0,1] for actor on this task.
// Machine signal: confidence * (1 - UncertaintyPenalty * uncertainty), which is
// non-decreasing in confidence and non-increasing in uncertainty.
// Human signal: humanExpertise.
func (e *Estimator) EstimateAccuracy(ctx DecisionContext, mc MachineConfidence, actor Actor, humanExpertise float64) (float64, error) {
	var signal float64
	if actor == ActorMachine {
		signal = mc.ConfidenceScore * (1 - e.cfg.UncertaintyPenalty*mc.UncertaintyScore)
	} else {
		signal = humanExpertise
	}

	outcomes, err := e.outcomes(ctx.TaskType, actor)
	if err != nil {
		return 0, err
	}
	if len(outcomes) == 0 {
		return clampUnit(signal), nil
	}

	stats := NewPerformanceStats(outcomes)
	n := float64(stats.Count)
	w := n / (n + e.cfg.PriorWeight)
	return clampUnit((1-w)*signal + w*stats.Rate), nil
}

func (e *Estimator) outcomes(taskType TaskType, actor Actor) ([]bool, error) {
	if e.history == nil {
		return nil, nil
	}
	outcomes, err := e.history.Query(taskType, actor)
	if err != nil {
		return nil, fmt.Errorf("querying %s history for %s: %w", actor, taskType, err)
	}
	if w := e.cfg.HistoryWindow; w > 0 && len(outcomes) > w {
		outcomes = outcomes[len(outcomes)-w:]
	}
	return outcomes, nil
}

// clampUnit guards against floating-point drift; inputs are validated before this point.
func clampUnit(v float64) float64 {
	return min(1, max(0, v))
}
