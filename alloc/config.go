package alloc

import "fmt"

// CostModelParams parameterizes the per-actor cost model.
type CostModelParams struct {
	MachineBaseCost    float64 // computational overhead
	EmergencySurcharge float64 // added to machine cost for emergency tasks
	HumanBaseCost      float64 // effort, time and opportunity cost
	RoutineDiscount    float64 // subtracted from human cost for routine tasks (floored at 0)
	PlanningSurcharge  float64 // added to human cost for planning tasks
}

// RuleThresholds holds the boundaries of the override cascade.
type RuleThresholds struct {
	AutoClearConfidence      float64 // auto-cleared requires confidence > this
	AutoClearUncertainty     float64 // auto-cleared requires uncertainty < this
	HumanRequiredUncertainty float64 // human-required fires when uncertainty > this
	StandbyLow               float64 // human-standby fires when confidence in [StandbyLow, StandbyHigh]
	StandbyHigh              float64
	EmergencyUncertainty     float64 // emergency-override fires when uncertainty > this
}

// EstimatorConfig parameterizes accuracy estimation.
type EstimatorConfig struct {
	// UncertaintyPenalty scales how strongly uncertainty discounts machine confidence. In [0,1].
	UncertaintyPenalty float64
	// PriorWeight is the pseudo-count given to the instantaneous signal when blending with history.
	PriorWeight float64
	// HistoryWindow limits blending to the most recent outcomes; 0 uses all of them.
	HistoryWindow int
	// DefaultHumanExpertise is used when the caller does not supply one.
	DefaultHumanExpertise float64
}

// Config is the full engine configuration, fixed at construction.
type Config struct {
	Costs     CostConfiguration
	CostModel CostModelParams
	Rules     RuleThresholds
	Estimator EstimatorConfig
}

// DefaultCostModelParams returns the built-in cost model.
func DefaultCostModelParams() CostModelParams {
	return CostModelParams{
		MachineBaseCost:    0.05,
		EmergencySurcharge: 0.20,
		HumanBaseCost:      0.15,
		RoutineDiscount:    0.05,
		PlanningSurcharge:  0.10,
	}
}

// DefaultRuleThresholds returns the standard cascade boundaries.
func DefaultRuleThresholds() RuleThresholds {
	return RuleThresholds{
		AutoClearConfidence:      0.8,
		AutoClearUncertainty:     0.2,
		HumanRequiredUncertainty: 0.3,
		StandbyLow:               0.5,
		StandbyHigh:              0.8,
		EmergencyUncertainty:     0.5,
	}
}

// DefaultEstimatorConfig returns the standard estimator parameters.
func DefaultEstimatorConfig() EstimatorConfig {
	return EstimatorConfig{
		UncertaintyPenalty:    1.0,
		PriorWeight:           10,
		HistoryWindow:         0,
		DefaultHumanExpertise: 0.8,
	}
}

// DefaultConfig returns a Config with the given costs and default everything else.
func DefaultConfig(costs CostConfiguration) Config {
	return Config{
		Costs:     costs,
		CostModel: DefaultCostModelParams(),
		Rules:     DefaultRuleThresholds(),
		Estimator: DefaultEstimatorConfig(),
	}
}

// Validate checks all parameter ranges.
func (c Config) Validate() error {
	if err := c.Costs.Validate(); err != nil {
		return err
	}
	m := c.CostModel
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"machine_base_cost", m.MachineBaseCost},
		{"emergency_surcharge", m.EmergencySurcharge},
		{"human_base_cost", m.HumanBaseCost},
		{"routine_discount", m.RoutineDiscount},
		{"planning_surcharge", m.PlanningSurcharge},
		{"prior_weight", c.Estimator.PriorWeight},
	} {
		if err := checkNonNegative(p.name, p.v); err != nil {
			return err
		}
	}
	r := c.Rules
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"auto_clear_confidence", r.AutoClearConfidence},
		{"auto_clear_uncertainty", r.AutoClearUncertainty},
		{"human_required_uncertainty", r.HumanRequiredUncertainty},
		{"standby_low", r.StandbyLow},
		{"standby_high", r.StandbyHigh},
		{"emergency_uncertainty", r.EmergencyUncertainty},
		{"uncertainty_penalty", c.Estimator.UncertaintyPenalty},
		{"default_human_expertise", c.Estimator.DefaultHumanExpertise},
	} {
		if err := checkUnit(p.name, p.v); err != nil {
			return err
		}
	}
	if r.StandbyLow > r.StandbyHigh {
		return &ValidationError{
			Field:  "standby_low",
			Value:  r.StandbyLow,
			Reason: fmt.Sprintf("must not exceed standby_high (%g)", r.StandbyHigh),
		}
	}
	if c.Estimator.HistoryWindow < 0 {
		return &ValidationError{Field: "history_window", Value: c.Estimator.HistoryWindow, Reason: "must be non-negative"}
	}
	return nil
}
