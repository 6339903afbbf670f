package cmd

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/allocsim/alloc"
)

var (
	taskID         string  // Task identifier
	taskType       string  // Task type
	confidenceArg  float64 // Machine confidence score
	uncertaintyArg float64 // Machine uncertainty score
	modelVersion   string  // Model version tag
	humanExpertise float64 // Human domain expertise
)

// allocateRequest is one allocation as read from flags.
type allocateRequest struct {
	Context        alloc.DecisionContext
	Confidence     alloc.MachineConfidence
	HumanExpertise float64
	UseDefault     bool // the caller did not pass --human-expertise
}

// runAllocate performs one allocation and prints the decision.
func runAllocate(a *alloc.Allocator, req allocateRequest, w io.Writer) error {
	var (
		d   alloc.AllocationDecision
		err error
	)
	if req.UseDefault {
		d, err = a.Allocate(req.Context, req.Confidence)
	} else {
		d, err = a.AllocateWithExpertise(req.Context, req.Confidence, req.HumanExpertise)
	}
	if err != nil {
		return err
	}
	for _, line := range d.Reasoning {
		logrus.Infof("  %s", line)
	}
	return printJSON(w, d)
}

// allocateCmd decides who executes a single task
var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Allocate a single task to a human or the machine",
	Run: func(cmd *cobra.Command, args []string) {
		a, closer, err := newAllocator()
		if err != nil {
			logrus.Fatalf("Failed to build allocator: %v", err)
		}
		defer closer.Close()

		req := allocateRequest{
			Context: alloc.DecisionContext{
				TaskID:    taskID,
				TaskType:  alloc.TaskType(taskType),
				Timestamp: time.Now().UTC(),
			},
			Confidence: alloc.MachineConfidence{
				ConfidenceScore:  confidenceArg,
				UncertaintyScore: uncertaintyArg,
				ModelVersion:     modelVersion,
			},
			HumanExpertise: humanExpertise,
			UseDefault:     !cmd.Flags().Changed("human-expertise"),
		}
		if err := runAllocate(a, req, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Allocation failed: %v", err)
		}
	},
}

func init() {
	allocateCmd.Flags().StringVar(&taskID, "task-id", "task-0", "Task identifier")
	allocateCmd.Flags().StringVar(&taskType, "task-type", "classification", "Task type (classification, planning, emergency, routine)")
	allocateCmd.Flags().Float64Var(&confidenceArg, "confidence", 0, "Machine confidence score in [0,1]")
	allocateCmd.Flags().Float64Var(&uncertaintyArg, "uncertainty", 0, "Machine uncertainty score in [0,1]")
	allocateCmd.Flags().StringVar(&modelVersion, "model-version", "", "Model version tag")
	allocateCmd.Flags().Float64Var(&humanExpertise, "human-expertise", 0.8, "Human domain expertise in [0,1] (default from policy config)")
	_ = allocateCmd.MarkFlagRequired("confidence")
	_ = allocateCmd.MarkFlagRequired("uncertainty")
}
