package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/allocsim/alloc"
	"github.com/inference-sim/allocsim/alloc/workload"
)

// withFlags sets the persistent flag globals for one test and restores them after.
func withFlags(t *testing.T, policy, db string) {
	t.Helper()
	oldPolicy, oldDB := policyConfig, historyDB
	policyConfig, historyDB = policy, db
	t.Cleanup(func() {
		policyConfig, historyDB = oldPolicy, oldDB
	})
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_NoPolicy_Defaults(t *testing.T) {
	withFlags(t, "", "")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, alloc.DefaultConfig(alloc.CostConfiguration{}), cfg)
}

func TestLoadConfig_PolicyOverridesDefaults(t *testing.T) {
	// GIVEN a policy bundle that sets the error costs and one threshold
	path := writeFile(t, "policy.yaml", `
costs:
  false_positive_cost: 0.3
  false_negative_cost: 0.9
rules:
  auto_clear_confidence: 0.85
`)
	withFlags(t, path, "")

	// WHEN the config is resolved
	cfg, err := loadConfig()

	// THEN the bundle values are applied and the rest keep their defaults
	require.NoError(t, err)
	assert.Equal(t, 0.3, cfg.Costs.FalsePositiveCost)
	assert.Equal(t, 0.9, cfg.Costs.FalseNegativeCost)
	assert.Equal(t, 0.85, cfg.Rules.AutoClearConfidence)
	assert.Equal(t, alloc.DefaultRuleThresholds().AutoClearUncertainty, cfg.Rules.AutoClearUncertainty)
}

func TestLoadConfig_UnknownField_Errors(t *testing.T) {
	path := writeFile(t, "policy.yaml", "rules:\n  auto_clear_confidnce: 0.85\n")
	withFlags(t, path, "")

	_, err := loadConfig()
	assert.Error(t, err)
}

func TestPrintJSON_Indented(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())

	var out map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
}

func TestExamples_LoadAndRun(t *testing.T) {
	// GIVEN the shipped example policy and workload
	withFlags(t, filepath.Join("..", "examples", "policy.yaml"), "")
	spec, err := workload.LoadWorkloadSpec(filepath.Join("..", "examples", "workload.yaml"))
	require.NoError(t, err)
	spec.NumTasks = 60

	// WHEN an allocator is built from the policy and the workload is simulated
	a, closer, err := newAllocator()
	require.NoError(t, err)
	defer closer.Close()
	var buf bytes.Buffer
	err = runSimulate(context.Background(), a, simulateOptions{Spec: spec, Workers: 2, BatchSize: 8}, &buf)

	// THEN both parse and the run completes with the policy's error costs
	require.NoError(t, err)
	assert.Equal(t, 0.6, a.Config().Costs.FalseNegativeCost)
	assert.Contains(t, buf.String(), "\"total_decisions\": 60")
}
