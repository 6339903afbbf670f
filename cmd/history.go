package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/allocsim/alloc"
)

var (
	recordActor   string // Actor that executed the task
	recordCorrect bool   // Whether the outcome was correct
)

// runRecord reports one outcome into history.
func runRecord(a *alloc.Allocator, tt alloc.TaskType, actor alloc.Actor, correct bool) error {
	ctx := alloc.DecisionContext{TaskID: taskID, TaskType: tt}
	return a.UpdatePerformanceHistory(ctx, actor, correct)
}

// runHistory prints per task type/actor stats.
func runHistory(a *alloc.Allocator, w io.Writer) error {
	stats, err := a.PerformanceStats()
	if err != nil {
		return err
	}
	return printJSON(w, stats)
}

// recordCmd reports a ground-truth outcome
var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Report the ground-truth outcome of an executed task",
	Run: func(cmd *cobra.Command, args []string) {
		if historyDB == "" {
			logrus.Warnf("No --history-db given; the outcome will not outlive this process")
		}
		a, closer, err := newAllocator()
		if err != nil {
			logrus.Fatalf("Failed to build allocator: %v", err)
		}
		defer closer.Close()

		if err := runRecord(a, alloc.TaskType(taskType), alloc.Actor(recordActor), recordCorrect); err != nil {
			logrus.Fatalf("Recording failed: %v", err)
		}
		logrus.Infof("Recorded %s outcome for %s (correct=%v)", recordActor, taskType, recordCorrect)
	},
}

// historyCmd prints performance history statistics
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print performance history statistics per task type and actor",
	Run: func(cmd *cobra.Command, args []string) {
		a, closer, err := newAllocator()
		if err != nil {
			logrus.Fatalf("Failed to build allocator: %v", err)
		}
		defer closer.Close()

		if err := runHistory(a, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Reading history failed: %v", err)
		}
	},
}

func init() {
	recordCmd.Flags().StringVar(&taskID, "task-id", "task-0", "Task identifier")
	recordCmd.Flags().StringVar(&taskType, "task-type", "classification", "Task type (classification, planning, emergency, routine)")
	recordCmd.Flags().StringVar(&recordActor, "actor", "", fmt.Sprintf("Actor that executed the task (%s, %s)", alloc.ActorMachine, alloc.ActorHuman))
	recordCmd.Flags().BoolVar(&recordCorrect, "correct", false, "Whether the outcome was correct")
	_ = recordCmd.MarkFlagRequired("actor")
	_ = recordCmd.MarkFlagRequired("correct")
}
