package alloc

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Allocator decides, per task, whether a human or a machine executes it.
//
// U_human   = P_correct,human   - C_human
// U_machine = P_correct,machine - C_machine
//
// The utility comparison is the default rule; the override cascade in
// rules.go is layered on top of it. Allocator is safe for concurrent use
// as long as its HistoryStore is.
type Allocator struct {
	cfg       Config
	history   HistoryStore
	utilities *UtilityCalculator
	rules     []Rule
}

// NewAllocator validates cfg and creates an Allocator backed by history.
// history is required: callers needing independent engines own distinct stores.
func NewAllocator(cfg Config, history HistoryStore) (*Allocator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if history == nil {
		return nil, fmt.Errorf("allocator requires a history store")
	}
	estimator := NewEstimator(cfg.Estimator, history)
	return &Allocator{
		cfg:       cfg,
		history:   history,
		utilities: NewUtilityCalculator(estimator, NewCostModel(cfg.Costs, cfg.CostModel)),
		rules:     DefaultRules(),
	}, nil
}

// Config returns the configuration the Allocator was built with.
func (a *Allocator) Config() Config {
	return a.cfg
}

// CostModel returns the cost model used for utility computation.
func (a *Allocator) CostModel() CostModel {
	return NewCostModel(a.cfg.Costs, a.cfg.CostModel)
}

// Allocate decides using the configured default human expertise.
func (a *Allocator) Allocate(ctx DecisionContext, mc MachineConfidence) (AllocationDecision, error) {
	return a.AllocateWithExpertise(ctx, mc, a.cfg.Estimator.DefaultHumanExpertise)
}

// AllocateWithExpertise decides who executes the task given the human's domain expertise in [0,1].
// Returns a *ValidationError (wrapping ErrInvalidInput) for out-of-domain inputs;
// scores are never clamped.
func (a *Allocator) AllocateWithExpertise(ctx DecisionContext, mc MachineConfidence, humanExpertise float64) (AllocationDecision, error) {
	if err := ctx.Validate(); err != nil {
		return AllocationDecision{}, err
	}
	if err := mc.Validate(); err != nil {
		return AllocationDecision{}, err
	}
	if err := checkUnit("human_expertise", humanExpertise); err != nil {
		return AllocationDecision{}, err
	}

	reasoning := make([]string, 0, 2+len(a.rules))
	machine, err := a.utilities.Utility(ctx, mc, ActorMachine, humanExpertise, &reasoning)
	if err != nil {
		return AllocationDecision{}, err
	}
	human, err := a.utilities.Utility(ctx, mc, ActorHuman, humanExpertise, &reasoning)
	if err != nil {
		return AllocationDecision{}, err
	}

	res := applyRules(a.rules, RuleInput{
		Context:    ctx,
		Confidence: mc,
		Machine:    machine,
		Human:      human,
		Thresholds: a.cfg.Rules,
	}, &reasoning)

	logrus.Debugf("task %s (%s): %s selected, confidence=%.3f, rules=%v",
		ctx.TaskID, ctx.TaskType, res.actor, res.confidence, res.fired)

	return AllocationDecision{
		Actor:         res.actor,
		Confidence:    res.confidence,
		Reasoning:     reasoning,
		FallbackActor: res.actor.Complement(),
		RulesFired:    res.fired,

		MachineUtility: machine,
		HumanUtility:   human,
	}, nil
}

// UpdatePerformanceHistory reports the ground-truth outcome of a task executed by actualActor.
func (a *Allocator) UpdatePerformanceHistory(ctx DecisionContext, actualActor Actor, wasCorrect bool) error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if err := validateActor(actualActor); err != nil {
		return err
	}
	if err := a.history.Record(ctx.TaskType, actualActor, wasCorrect); err != nil {
		return fmt.Errorf("recording outcome for task %s: %w", ctx.TaskID, err)
	}
	return nil
}

// PerformanceStats summarizes the history for every task type and actor.
func (a *Allocator) PerformanceStats() (map[TaskType]map[Actor]PerformanceStats, error) {
	return CollectStats(a.history)
}

// CollectStats summarizes a HistoryStore for every task type and actor.
func CollectStats(store HistoryStore) (map[TaskType]map[Actor]PerformanceStats, error) {
	out := make(map[TaskType]map[Actor]PerformanceStats, len(AllTaskTypes))
	for _, tt := range AllTaskTypes {
		perActor := make(map[Actor]PerformanceStats, 2)
		for _, actor := range []Actor{ActorMachine, ActorHuman} {
			outcomes, err := store.Query(tt, actor)
			if err != nil {
				return nil, fmt.Errorf("querying %s history for %s: %w", actor, tt, err)
			}
			perActor[actor] = NewPerformanceStats(outcomes)
		}
		out[tt] = perActor
	}
	return out, nil
}
