package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/allocsim/alloc"
)

func TestRunRecord_PersistsAcrossAllocators(t *testing.T) {
	// GIVEN a SQLite history file
	withFlags(t, "", filepath.Join(t.TempDir(), "history.db"))

	// WHEN two outcomes are recorded through one allocator
	a, closer, err := newAllocator()
	require.NoError(t, err)
	require.NoError(t, runRecord(a, alloc.TaskPlanning, alloc.ActorHuman, true))
	require.NoError(t, runRecord(a, alloc.TaskPlanning, alloc.ActorHuman, false))
	require.NoError(t, closer.Close())

	// THEN a fresh allocator over the same file reports them
	b, closer, err := newAllocator()
	require.NoError(t, err)
	defer closer.Close()

	var buf bytes.Buffer
	require.NoError(t, runHistory(b, &buf))
	var stats map[alloc.TaskType]map[alloc.Actor]alloc.PerformanceStats
	require.NoError(t, json.Unmarshal(buf.Bytes(), &stats))
	assert.Equal(t, alloc.PerformanceStats{Count: 2, Correct: 1, Rate: 0.5}, stats[alloc.TaskPlanning][alloc.ActorHuman])
	assert.Zero(t, stats[alloc.TaskPlanning][alloc.ActorMachine].Count)
}

func TestRunRecord_InvalidActor_Errors(t *testing.T) {
	a := newTestAllocator(t)
	err := runRecord(a, alloc.TaskRoutine, alloc.Actor("robot"), true)
	assert.ErrorIs(t, err, alloc.ErrInvalidInput)
}

func TestRunRecord_InvalidTaskType_Errors(t *testing.T) {
	a := newTestAllocator(t)
	err := runRecord(a, alloc.TaskType("Routine"), alloc.ActorHuman, true)
	assert.ErrorIs(t, err, alloc.ErrInvalidInput)
}

func TestRecordCmd_CorrectFlagRequired(t *testing.T) {
	// GIVEN a record invocation without --correct
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"record", "--task-type", "routine", "--actor", "machine"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	// WHEN the command is executed
	err := rootCmd.Execute()

	// THEN cobra rejects it before any outcome is stored
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"correct"`)
}
