package alloc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// PolicyBundle holds allocation policy configuration, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML": the built-in default applies.
type PolicyBundle struct {
	Costs     CostsConfig     `yaml:"costs"`
	CostModel CostModelConfig `yaml:"cost_model"`
	Rules     RulesConfig     `yaml:"rules"`
	Estimator EstimatorBundle `yaml:"estimator"`
}

// CostsConfig mirrors CostConfiguration.
type CostsConfig struct {
	FalsePositiveCost *float64 `yaml:"false_positive_cost"`
	FalseNegativeCost *float64 `yaml:"false_negative_cost"`
	TimeDelayCost     *float64 `yaml:"time_delay_cost"`
}

// CostModelConfig overrides CostModelParams.
type CostModelConfig struct {
	MachineBaseCost    *float64 `yaml:"machine_base_cost"`
	EmergencySurcharge *float64 `yaml:"emergency_surcharge"`
	HumanBaseCost      *float64 `yaml:"human_base_cost"`
	RoutineDiscount    *float64 `yaml:"routine_discount"`
	PlanningSurcharge  *float64 `yaml:"planning_surcharge"`
}

// RulesConfig overrides RuleThresholds.
type RulesConfig struct {
	AutoClearConfidence      *float64 `yaml:"auto_clear_confidence"`
	AutoClearUncertainty     *float64 `yaml:"auto_clear_uncertainty"`
	HumanRequiredUncertainty *float64 `yaml:"human_required_uncertainty"`
	StandbyLow               *float64 `yaml:"standby_low"`
	StandbyHigh              *float64 `yaml:"standby_high"`
	EmergencyUncertainty     *float64 `yaml:"emergency_uncertainty"`
}

// EstimatorBundle overrides EstimatorConfig.
type EstimatorBundle struct {
	UncertaintyPenalty    *float64 `yaml:"uncertainty_penalty"`
	PriorWeight           *float64 `yaml:"prior_weight"`
	HistoryWindow         *int     `yaml:"history_window"`
	DefaultHumanExpertise *float64 `yaml:"default_human_expertise"`
}

// LoadPolicyBundle reads and parses a YAML policy configuration file.
// Unknown fields are rejected so typos surface as errors.
func LoadPolicyBundle(path string) (*PolicyBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy config: %w", err)
	}
	return ParsePolicyBundle(data)
}

// ParsePolicyBundle parses YAML policy configuration with strict field checking.
func ParsePolicyBundle(data []byte) (*PolicyBundle, error) {
	var bundle PolicyBundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	// An empty document is a bundle with nothing set.
	if err := decoder.Decode(&bundle); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing policy config: %w", err)
	}
	return &bundle, nil
}

// Config overlays the bundle onto DefaultConfig and validates the result.
func (b *PolicyBundle) Config() (Config, error) {
	cfg := DefaultConfig(CostConfiguration{})
	setFloat(&cfg.Costs.FalsePositiveCost, b.Costs.FalsePositiveCost)
	setFloat(&cfg.Costs.FalseNegativeCost, b.Costs.FalseNegativeCost)
	setFloat(&cfg.Costs.TimeDelayCost, b.Costs.TimeDelayCost)

	setFloat(&cfg.CostModel.MachineBaseCost, b.CostModel.MachineBaseCost)
	setFloat(&cfg.CostModel.EmergencySurcharge, b.CostModel.EmergencySurcharge)
	setFloat(&cfg.CostModel.HumanBaseCost, b.CostModel.HumanBaseCost)
	setFloat(&cfg.CostModel.RoutineDiscount, b.CostModel.RoutineDiscount)
	setFloat(&cfg.CostModel.PlanningSurcharge, b.CostModel.PlanningSurcharge)

	setFloat(&cfg.Rules.AutoClearConfidence, b.Rules.AutoClearConfidence)
	setFloat(&cfg.Rules.AutoClearUncertainty, b.Rules.AutoClearUncertainty)
	setFloat(&cfg.Rules.HumanRequiredUncertainty, b.Rules.HumanRequiredUncertainty)
	setFloat(&cfg.Rules.StandbyLow, b.Rules.StandbyLow)
	setFloat(&cfg.Rules.StandbyHigh, b.Rules.StandbyHigh)
	setFloat(&cfg.Rules.EmergencyUncertainty, b.Rules.EmergencyUncertainty)

	setFloat(&cfg.Estimator.UncertaintyPenalty, b.Estimator.UncertaintyPenalty)
	setFloat(&cfg.Estimator.PriorWeight, b.Estimator.PriorWeight)
	setFloat(&cfg.Estimator.DefaultHumanExpertise, b.Estimator.DefaultHumanExpertise)
	if b.Estimator.HistoryWindow != nil {
		cfg.Estimator.HistoryWindow = *b.Estimator.HistoryWindow
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("policy config: %w", err)
	}
	return cfg, nil
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
