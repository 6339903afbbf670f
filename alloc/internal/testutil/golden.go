// Package testutil provides shared test infrastructure for the allocation engine.
// It holds the golden dataset types and assertion helpers used by alloc/ tests.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one allocation scenario evaluated against the default
// configuration with an empty history.
type GoldenTestCase struct {
	Name             string       `json:"name"`
	TaskType         string       `json:"task_type"`
	ConfidenceScore  float64      `json:"confidence_score"`
	UncertaintyScore float64      `json:"uncertainty_score"`
	HumanExpertise   float64      `json:"human_expertise"`
	Expected         GoldenResult `json:"expected"`
}

// GoldenResult represents the expected decision for a golden test case.
type GoldenResult struct {
	Actor          string   `json:"actor"`
	Confidence     float64  `json:"confidence"`
	RulesFired     []string `json:"rules_fired"`
	MachineUtility float64  `json:"machine_utility"`
	HumanUtility   float64  `json:"human_utility"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: alloc/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("Golden dataset has no tests")
	}
	return &dataset
}

// AssertFloat64Equal compares two float64 values with absolute tolerance.
// Utilities can be zero or negative, so a relative tolerance is not usable.
func AssertFloat64Equal(t *testing.T, name string, want, got, tol float64) {
	t.Helper()
	if diff := math.Abs(want - got); diff > tol {
		t.Errorf("%s: got %v, want %v (diff=%v)", name, got, want, diff)
	}
}
