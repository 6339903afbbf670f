package alloc

import (
	"testing"

	"github.com/inference-sim/allocsim/alloc/internal/testutil"
)

func TestAllocate_GoldenDataset(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	const tol = 1e-9

	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			// GIVEN a fresh allocator with default configuration
			a, _ := defaultAllocator(t)

			// WHEN the golden scenario is allocated
			d, err := a.AllocateWithExpertise(taskContext(TaskType(tc.TaskType)),
				confidence(tc.ConfidenceScore, tc.UncertaintyScore), tc.HumanExpertise)
			if err != nil {
				t.Fatalf("AllocateWithExpertise: %v", err)
			}

			// THEN the decision matches the recorded expectation
			if string(d.Actor) != tc.Expected.Actor {
				t.Errorf("actor: got %s, want %s", d.Actor, tc.Expected.Actor)
			}
			if len(d.RulesFired) != len(tc.Expected.RulesFired) {
				t.Fatalf("rules fired: got %v, want %v", d.RulesFired, tc.Expected.RulesFired)
			}
			for i := range d.RulesFired {
				if d.RulesFired[i] != tc.Expected.RulesFired[i] {
					t.Errorf("rules fired[%d]: got %s, want %s", i, d.RulesFired[i], tc.Expected.RulesFired[i])
				}
			}
			testutil.AssertFloat64Equal(t, "confidence", tc.Expected.Confidence, d.Confidence, tol)
			testutil.AssertFloat64Equal(t, "machine_utility", tc.Expected.MachineUtility, d.MachineUtility.U, tol)
			testutil.AssertFloat64Equal(t, "human_utility", tc.Expected.HumanUtility, d.HumanUtility.U, tol)
		})
	}
}
