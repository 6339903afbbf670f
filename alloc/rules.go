package alloc

import "fmt"

// Rule tags, as they appear in AllocationDecision.RulesFired and at the head of reasoning lines.
const (
	RuleHumanOptimal      = "human-optimal"
	RuleMachineOptimal    = "machine-optimal"
	RuleAutoCleared       = "auto-cleared"
	RuleHumanRequired     = "human-required"
	RuleHumanStandby      = "human-standby"
	RuleEmergencyOverride = "emergency-override"
)

// RuleInput is everything a rule may inspect.
type RuleInput struct {
	Context    DecisionContext
	Confidence MachineConfidence
	Machine    Utility
	Human      Utility
	Thresholds RuleThresholds
}

// Rule is one predicate/action pair of the cascade.
// When Applies holds, the selection becomes Select with confidence equal to
// that actor's P_correct, and Explain is appended to the reasoning log.
type Rule struct {
	Name    string
	Applies func(in RuleInput) bool
	Select  Actor
	Explain func(in RuleInput) string
}

// DefaultRules returns the standard cascade. Order matters: every applicable
// rule is applied and later rules overwrite earlier ones, so the emergency
// override can undo an auto-clearance.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    RuleHumanOptimal,
			Applies: func(in RuleInput) bool { return in.Human.U > in.Machine.U },
			Select:  ActorHuman,
			Explain: func(in RuleInput) string {
				return fmt.Sprintf("U_human=%.3f > U_machine=%.3f", in.Human.U, in.Machine.U)
			},
		},
		{
			Name:    RuleMachineOptimal,
			Applies: func(in RuleInput) bool { return in.Machine.U > in.Human.U },
			Select:  ActorMachine,
			Explain: func(in RuleInput) string {
				return fmt.Sprintf("U_machine=%.3f > U_human=%.3f", in.Machine.U, in.Human.U)
			},
		},
		{
			Name: RuleAutoCleared,
			Applies: func(in RuleInput) bool {
				return in.Confidence.ConfidenceScore > in.Thresholds.AutoClearConfidence &&
					in.Confidence.UncertaintyScore < in.Thresholds.AutoClearUncertainty
			},
			Select: ActorMachine,
			Explain: func(in RuleInput) string {
				return fmt.Sprintf("confidence %.3f > %.3f and uncertainty %.3f < %.3f",
					in.Confidence.ConfidenceScore, in.Thresholds.AutoClearConfidence,
					in.Confidence.UncertaintyScore, in.Thresholds.AutoClearUncertainty)
			},
		},
		{
			Name: RuleHumanRequired,
			Applies: func(in RuleInput) bool {
				return in.Confidence.UncertaintyScore > in.Thresholds.HumanRequiredUncertainty
			},
			Select: ActorHuman,
			Explain: func(in RuleInput) string {
				return fmt.Sprintf("uncertainty %.3f > %.3f",
					in.Confidence.UncertaintyScore, in.Thresholds.HumanRequiredUncertainty)
			},
		},
		{
			Name: RuleHumanStandby,
			Applies: func(in RuleInput) bool {
				c := in.Confidence.ConfidenceScore
				return c >= in.Thresholds.StandbyLow && c <= in.Thresholds.StandbyHigh
			},
			Select: ActorHuman,
			Explain: func(in RuleInput) string {
				return fmt.Sprintf("confidence %.3f in gray zone [%.3f, %.3f]",
					in.Confidence.ConfidenceScore, in.Thresholds.StandbyLow, in.Thresholds.StandbyHigh)
			},
		},
		{
			Name: RuleEmergencyOverride,
			Applies: func(in RuleInput) bool {
				return in.Context.TaskType == TaskEmergency &&
					in.Confidence.UncertaintyScore > in.Thresholds.EmergencyUncertainty
			},
			Select: ActorHuman,
			Explain: func(in RuleInput) string {
				return fmt.Sprintf("emergency task with uncertainty %.3f > %.3f",
					in.Confidence.UncertaintyScore, in.Thresholds.EmergencyUncertainty)
			},
		},
	}
}

// cascadeResult is the outcome of applying a rule list.
type cascadeResult struct {
	actor      Actor
	confidence float64
	fired      []string
}

// applyRules runs every rule in order. Starts from human with confidence 0;
// an exact utility tie with no override leaves that default in place.
func applyRules(rules []Rule, in RuleInput, reasoning *[]string) cascadeResult {
	res := cascadeResult{actor: ActorHuman, confidence: 0}
	for _, r := range rules {
		if !r.Applies(in) {
			continue
		}
		res.actor = r.Select
		if r.Select == ActorMachine {
			res.confidence = in.Machine.PCorrect
		} else {
			res.confidence = in.Human.PCorrect
		}
		res.fired = append(res.fired, r.Name)
		*reasoning = append(*reasoning, fmt.Sprintf("%s: %s -> %s", r.Name, r.Explain(in), r.Select))
	}
	return res
}
