package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/allocsim/alloc/trace"
	"github.com/inference-sim/allocsim/alloc/workload"
)

func simulateOnce(t *testing.T, spec *workload.WorkloadSpec, level trace.TraceLevel) map[string]json.RawMessage {
	t.Helper()
	a := newTestAllocator(t)
	var buf bytes.Buffer
	err := runSimulate(context.Background(), a, simulateOptions{
		Spec:      spec,
		Workers:   4,
		BatchSize: 16,
		Trace:     trace.TraceConfig{Level: level},
	}, &buf)
	require.NoError(t, err)

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestRunSimulate_SummaryOutput(t *testing.T) {
	// GIVEN the default workload with 50 tasks
	spec := workload.DefaultWorkloadSpec()
	spec.NumTasks = 50

	// WHEN simulate runs without tracing
	out := simulateOnce(t, spec, trace.TraceLevelNone)

	// THEN the summary covers every task and no trace is printed
	var summary trace.TraceSummary
	require.NoError(t, json.Unmarshal(out["summary"], &summary))
	assert.Equal(t, 50, summary.TotalDecisions)
	assert.Equal(t, 50, summary.TotalOutcomes)
	assert.NotContains(t, out, "trace")
	assert.Contains(t, out, "history")
}

func TestRunSimulate_SameSeed_SameOutput(t *testing.T) {
	// GIVEN two runs with the same seed (the seed override path of --seed)
	spec1 := workload.DefaultWorkloadSpec()
	spec2 := workload.DefaultWorkloadSpec()
	spec1.Seed, spec2.Seed = 7, 7
	spec1.NumTasks, spec2.NumTasks = 40, 40

	// WHEN both are simulated
	out1 := simulateOnce(t, spec1, trace.TraceLevelDecisions)
	out2 := simulateOnce(t, spec2, trace.TraceLevelDecisions)

	// THEN the outputs are byte-identical
	assert.JSONEq(t, string(out1["summary"]), string(out2["summary"]))
	assert.JSONEq(t, string(out1["trace"]), string(out2["trace"]))
}

func TestRunSimulate_InvalidSpec_Errors(t *testing.T) {
	spec := workload.DefaultWorkloadSpec()
	spec.NumTasks = -1

	a := newTestAllocator(t)
	var buf bytes.Buffer
	err := runSimulate(context.Background(), a, simulateOptions{Spec: spec}, &buf)
	assert.Error(t, err)
}
