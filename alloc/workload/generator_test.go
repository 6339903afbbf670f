package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/allocsim/alloc"
)

func TestGenerateTasks_SameSeed_Identical(t *testing.T) {
	// GIVEN the same spec twice
	a, err := GenerateTasks(DefaultWorkloadSpec())
	require.NoError(t, err)
	b, err := GenerateTasks(DefaultWorkloadSpec())
	require.NoError(t, err)

	// THEN the generated streams are identical, IDs included
	require.Len(t, a, 200)
	assert.Equal(t, a, b)
}

func TestGenerateTasks_DifferentSeed_Differs(t *testing.T) {
	s1 := DefaultWorkloadSpec()
	s2 := DefaultWorkloadSpec()
	s2.Seed = 43

	a, err := GenerateTasks(s1)
	require.NoError(t, err)
	b, err := GenerateTasks(s2)
	require.NoError(t, err)

	assert.NotEqual(t, a[0].Context.TaskID, b[0].Context.TaskID)
}

func TestGenerateTasks_ScoresInUnitRangeAndIDsUnique(t *testing.T) {
	tasks, err := GenerateTasks(DefaultWorkloadSpec())
	require.NoError(t, err)

	seen := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		assert.GreaterOrEqual(t, task.Confidence.ConfidenceScore, 0.0)
		assert.LessOrEqual(t, task.Confidence.ConfidenceScore, 1.0)
		assert.GreaterOrEqual(t, task.Confidence.UncertaintyScore, 0.0)
		assert.LessOrEqual(t, task.Confidence.UncertaintyScore, 1.0)
		assert.True(t, alloc.IsValidTaskType(string(task.Context.TaskType)))
		assert.False(t, seen[task.Context.TaskID], "duplicate task id %s", task.Context.TaskID)
		seen[task.Context.TaskID] = true
	}
}

func TestGenerateTasks_ZeroWeightClass_NeverPicked(t *testing.T) {
	spec := &WorkloadSpec{Seed: 1, NumTasks: 100, Classes: []ClassSpec{
		{
			TaskType:    "emergency",
			Weight:      0,
			Confidence:  DistSpec{Type: "constant", Params: map[string]float64{"value": 0.5}},
			Uncertainty: DistSpec{Type: "constant", Params: map[string]float64{"value": 0.5}},
		},
		{
			TaskType:    "routine",
			Weight:      1,
			Confidence:  DistSpec{Type: "constant", Params: map[string]float64{"value": 0.9}},
			Uncertainty: DistSpec{Type: "constant", Params: map[string]float64{"value": 0.1}},
		},
	}}
	tasks, err := GenerateTasks(spec)
	require.NoError(t, err)
	for _, task := range tasks {
		assert.Equal(t, alloc.TaskRoutine, task.Context.TaskType)
		assert.Equal(t, 0.9, task.Confidence.ConfidenceScore)
	}
}

func TestGenerateTasks_PerfectActors_AlwaysCorrect(t *testing.T) {
	one := 1.0
	spec := &WorkloadSpec{Seed: 3, NumTasks: 50, Classes: []ClassSpec{{
		TaskType:       "classification",
		Weight:         1,
		Confidence:     DistSpec{Type: "constant", Params: map[string]float64{"value": 1}},
		Uncertainty:    DistSpec{Type: "constant", Params: map[string]float64{"value": 0}},
		HumanExpertise: 0.5,
		HumanAccuracy:  &one,
	}}}
	tasks, err := GenerateTasks(spec)
	require.NoError(t, err)
	for _, task := range tasks {
		assert.True(t, task.Truth.Correct(alloc.ActorMachine))
		assert.True(t, task.Truth.Correct(alloc.ActorHuman))
		assert.False(t, task.Truth.Positive, "positive_rate 0 yields negative labels")
	}
}

func TestGenerateTasks_InvalidSpec_Errors(t *testing.T) {
	_, err := GenerateTasks(&WorkloadSpec{NumTasks: 1})
	assert.Error(t, err)
}

func TestGenerateTasks_PredictionMatchesMachineCorrectness(t *testing.T) {
	tasks, err := GenerateTasks(DefaultWorkloadSpec())
	require.NoError(t, err)

	for _, task := range tasks {
		pred, ok := task.Confidence.Prediction.(bool)
		require.True(t, ok, "prediction is the machine's label")
		assert.Equal(t, task.Truth.MachineCorrect, pred == task.Truth.Positive)
		assert.Equal(t, pred, task.Truth.Answer(alloc.ActorMachine))
	}
}

func TestGenerateTasks_ExecutionRates(t *testing.T) {
	// GIVEN a spec where every allocation is overridden and no outcome arrives
	spec := DefaultWorkloadSpec()
	for i := range spec.Classes {
		spec.Classes[i].OverrideRate = 1
		spec.Classes[i].PendingRate = 1
	}

	tasks, err := GenerateTasks(spec)
	require.NoError(t, err)

	// THEN every task carries both flags
	for _, task := range tasks {
		assert.True(t, task.Execution.Override)
		assert.True(t, task.Execution.Pending)
	}

	// AND the other streams are unaffected by the rates
	base, err := GenerateTasks(DefaultWorkloadSpec())
	require.NoError(t, err)
	for i := range tasks {
		assert.Equal(t, base[i].Context.TaskID, tasks[i].Context.TaskID)
		assert.Equal(t, base[i].Truth, tasks[i].Truth)
		assert.False(t, base[i].Execution.Override)
		assert.False(t, base[i].Execution.Pending)
	}
}
