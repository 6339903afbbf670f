package alloc

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is wrapped by every ValidationError.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError reports an out-of-domain input field.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// checkUnit rejects NaN and values outside [0,1]. Out-of-range scores are never clamped.
func checkUnit(field string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return &ValidationError{Field: field, Value: v, Reason: "must be in [0,1]"}
	}
	return nil
}

// checkNonNegative rejects NaN, infinities and negative values.
func checkNonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return &ValidationError{Field: field, Value: v, Reason: "must be non-negative"}
	}
	return nil
}

// Validate checks the cost configuration invariants.
func (c CostConfiguration) Validate() error {
	if err := checkNonNegative("false_positive_cost", c.FalsePositiveCost); err != nil {
		return err
	}
	if err := checkNonNegative("false_negative_cost", c.FalseNegativeCost); err != nil {
		return err
	}
	return checkNonNegative("time_delay_cost", c.TimeDelayCost)
}

// Validate checks that the task type is recognized.
func (dc DecisionContext) Validate() error {
	if !validTaskTypes[dc.TaskType] {
		return &ValidationError{Field: "task_type", Value: string(dc.TaskType), Reason: "unknown task type"}
	}
	return nil
}

// Validate checks that both scores lie in [0,1].
func (mc MachineConfidence) Validate() error {
	if err := checkUnit("confidence_score", mc.ConfidenceScore); err != nil {
		return err
	}
	return checkUnit("uncertainty_score", mc.UncertaintyScore)
}

func validateActor(a Actor) error {
	if !validActors[a] {
		return &ValidationError{Field: "actor", Value: string(a), Reason: "unknown actor"}
	}
	return nil
}
