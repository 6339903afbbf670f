package alloc

import (
	"errors"
	"math"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string // empty means valid
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "negative false negative cost", mutate: func(c *Config) { c.Costs.FalseNegativeCost = -0.1 }, wantField: "false_negative_cost"},
		{name: "infinite machine base cost", mutate: func(c *Config) { c.CostModel.MachineBaseCost = math.Inf(1) }, wantField: "machine_base_cost"},
		{name: "negative prior weight", mutate: func(c *Config) { c.Estimator.PriorWeight = -1 }, wantField: "prior_weight"},
		{name: "threshold above one", mutate: func(c *Config) { c.Rules.AutoClearConfidence = 1.1 }, wantField: "auto_clear_confidence"},
		{name: "NaN penalty", mutate: func(c *Config) { c.Estimator.UncertaintyPenalty = math.NaN() }, wantField: "uncertainty_penalty"},
		{name: "inverted standby band", mutate: func(c *Config) { c.Rules.StandbyLow, c.Rules.StandbyHigh = 0.9, 0.4 }, wantField: "standby_low"},
		{name: "negative history window", mutate: func(c *Config) { c.Estimator.HistoryWindow = -5 }, wantField: "history_window"},
		{name: "zero prior weight is allowed", mutate: func(c *Config) { c.Estimator.PriorWeight = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig(CostConfiguration{FalsePositiveCost: 0.1, FalseNegativeCost: 0.1})
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if ve.Field != tc.wantField {
				t.Errorf("field: got %s, want %s", ve.Field, tc.wantField)
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Error("expected error to wrap ErrInvalidInput")
			}
		})
	}
}
