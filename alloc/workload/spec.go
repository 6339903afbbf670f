// Package workload generates seeded synthetic task streams for allocation runs.
package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/allocsim/alloc"
)

// WorkloadSpec is the top-level workload configuration.
// Loaded from YAML via LoadWorkloadSpec(path).
type WorkloadSpec struct {
	Version  string      `yaml:"version"`
	Seed     int64       `yaml:"seed"`
	NumTasks int         `yaml:"num_tasks"`
	Classes  []ClassSpec `yaml:"classes"`
}

// ClassSpec describes one task type's share of the stream and how its signals are drawn.
type ClassSpec struct {
	TaskType string  `yaml:"task_type"`
	Weight   float64 `yaml:"weight"` // relative share; normalized across classes
	// Confidence and Uncertainty are sampled independently and clamped to [0,1].
	Confidence  DistSpec `yaml:"confidence"`
	Uncertainty DistSpec `yaml:"uncertainty"`
	// HumanExpertise is passed to the allocator for tasks of this class.
	HumanExpertise float64 `yaml:"human_expertise"`
	// HumanAccuracy is the true probability a human is correct; defaults to HumanExpertise.
	HumanAccuracy *float64 `yaml:"human_accuracy,omitempty"`
	// MachineCalibration scales the machine's true correctness probability
	// confidence*(1-uncertainty). 1 means a perfectly calibrated model.
	MachineCalibration *float64 `yaml:"machine_calibration,omitempty"`
	// PositiveRate is the fraction of tasks whose ground-truth label is positive.
	PositiveRate float64 `yaml:"positive_rate"`
	// OverrideRate is the fraction of tasks where the allocation is overridden
	// at execution time and the fallback actor runs the task instead.
	OverrideRate float64 `yaml:"override_rate,omitempty"`
	// PendingRate is the fraction of tasks whose ground truth never arrives.
	// Their outcome stays pending and is not reported into history.
	PendingRate float64 `yaml:"pending_rate,omitempty"`
}

// DistSpec parameterizes a score distribution.
//   - constant: value
//   - uniform: min, max
//   - gaussian: mean, stdev
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

var validDistTypes = map[string]bool{"constant": true, "uniform": true, "gaussian": true}

var requiredParams = map[string][]string{
	"constant": {"value"},
	"uniform":  {"min", "max"},
	"gaussian": {"mean", "stdev"},
}

// LoadWorkloadSpec reads and parses a YAML workload specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	if spec.Version == "" {
		spec.Version = "1"
	}
	return &spec, nil
}

// DefaultWorkloadSpec returns a mixed stream of all four task types.
func DefaultWorkloadSpec() *WorkloadSpec {
	return &WorkloadSpec{
		Version:  "1",
		Seed:     42,
		NumTasks: 200,
		Classes: []ClassSpec{
			{
				TaskType:       string(alloc.TaskClassification),
				Weight:         0.4,
				Confidence:     DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 0.75, "stdev": 0.15}},
				Uncertainty:    DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 0.2, "stdev": 0.1}},
				HumanExpertise: 0.8,
				PositiveRate:   0.3,
			},
			{
				TaskType:       string(alloc.TaskRoutine),
				Weight:         0.3,
				Confidence:     DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 0.85, "stdev": 0.1}},
				Uncertainty:    DistSpec{Type: "uniform", Params: map[string]float64{"min": 0, "max": 0.25}},
				HumanExpertise: 0.85,
				PositiveRate:   0.2,
			},
			{
				TaskType:       string(alloc.TaskPlanning),
				Weight:         0.2,
				Confidence:     DistSpec{Type: "uniform", Params: map[string]float64{"min": 0.3, "max": 0.9}},
				Uncertainty:    DistSpec{Type: "uniform", Params: map[string]float64{"min": 0.1, "max": 0.5}},
				HumanExpertise: 0.75,
				PositiveRate:   0.5,
			},
			{
				TaskType:       string(alloc.TaskEmergency),
				Weight:         0.1,
				Confidence:     DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 0.7, "stdev": 0.2}},
				Uncertainty:    DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 0.4, "stdev": 0.2}},
				HumanExpertise: 0.9,
				PositiveRate:   0.6,
			},
		},
	}
}

// Validate checks that all fields in the spec are valid.
func (s *WorkloadSpec) Validate() error {
	if s.NumTasks < 0 {
		return fmt.Errorf("num_tasks must be non-negative, got %d", s.NumTasks)
	}
	if len(s.Classes) == 0 {
		return fmt.Errorf("at least one class required")
	}
	total := 0.0
	for i := range s.Classes {
		if err := validateClass(&s.Classes[i], i); err != nil {
			return err
		}
		total += s.Classes[i].Weight
	}
	if total <= 0 {
		return fmt.Errorf("class weights must sum to a positive value")
	}
	return nil
}

func validateClass(c *ClassSpec, idx int) error {
	prefix := fmt.Sprintf("class[%d]", idx)
	if !alloc.IsValidTaskType(c.TaskType) {
		return fmt.Errorf("%s: unknown task_type %q; valid: classification, planning, emergency, routine", prefix, c.TaskType)
	}
	if err := validateFiniteNonNegative(prefix+".weight", c.Weight); err != nil {
		return err
	}
	if err := validateUnit(prefix+".human_expertise", c.HumanExpertise); err != nil {
		return err
	}
	if err := validateUnit(prefix+".positive_rate", c.PositiveRate); err != nil {
		return err
	}
	if err := validateUnit(prefix+".override_rate", c.OverrideRate); err != nil {
		return err
	}
	if err := validateUnit(prefix+".pending_rate", c.PendingRate); err != nil {
		return err
	}
	if c.HumanAccuracy != nil {
		if err := validateUnit(prefix+".human_accuracy", *c.HumanAccuracy); err != nil {
			return err
		}
	}
	if c.MachineCalibration != nil {
		if err := validateFiniteNonNegative(prefix+".machine_calibration", *c.MachineCalibration); err != nil {
			return err
		}
		if *c.MachineCalibration > 1.5 {
			logrus.Warnf("%s: machine_calibration %.2f makes the model far more accurate than it reports", prefix, *c.MachineCalibration)
		}
	}
	if err := validateDistSpec(prefix+".confidence", &c.Confidence); err != nil {
		return err
	}
	return validateDistSpec(prefix+".uncertainty", &c.Uncertainty)
}

func validateDistSpec(prefix string, d *DistSpec) error {
	if !validDistTypes[d.Type] {
		return fmt.Errorf("%s: unknown distribution type %q; valid: constant, uniform, gaussian", prefix, d.Type)
	}
	for _, name := range requiredParams[d.Type] {
		if _, ok := d.Params[name]; !ok {
			return fmt.Errorf("%s.params.%s is required for %s", prefix, name, d.Type)
		}
	}
	for name, val := range d.Params {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%s.params.%s must be a finite number, got %f", prefix, name, val)
		}
	}
	if d.Type == "uniform" && d.Params["min"] > d.Params["max"] {
		return fmt.Errorf("%s: min %f exceeds max %f", prefix, d.Params["min"], d.Params["max"])
	}
	if d.Type == "gaussian" && d.Params["stdev"] < 0 {
		return fmt.Errorf("%s.params.stdev must be non-negative, got %f", prefix, d.Params["stdev"])
	}
	return nil
}

func validateUnit(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("%s must be in [0,1], got %f", name, v)
	}
	return nil
}

func validateFiniteNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%s must be a finite non-negative number, got %f", name, v)
	}
	return nil
}
