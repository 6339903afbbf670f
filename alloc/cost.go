package alloc

// CostModel maps a task context to a non-negative cost per actor.
// Pure and deterministic; holds no mutable state.
type CostModel struct {
	costs  CostConfiguration
	params CostModelParams
}

// NewCostModel creates a CostModel. Inputs are assumed validated (see Config.Validate).
func NewCostModel(costs CostConfiguration, params CostModelParams) CostModel {
	return CostModel{costs: costs, params: params}
}

// Cost returns the cost of assigning the task to actor.
func (m CostModel) Cost(ctx DecisionContext, actor Actor) float64 {
	if actor == ActorMachine {
		return m.machineCost(ctx)
	}
	return m.humanCost(ctx)
}

func (m CostModel) machineCost(ctx DecisionContext) float64 {
	cost := m.params.MachineBaseCost
	if ctx.TaskType == TaskEmergency {
		cost += m.params.EmergencySurcharge
	}
	return cost
}

// humanCost carries the time-delay cost: humans are the slow path.
func (m CostModel) humanCost(ctx DecisionContext) float64 {
	cost := m.params.HumanBaseCost
	switch ctx.TaskType {
	case TaskRoutine:
		cost = max(0, cost-m.params.RoutineDiscount)
	case TaskPlanning:
		cost += m.params.PlanningSurcharge
	}
	return cost + m.costs.TimeDelayCost
}

// ErrorCost prices one incorrect outcome. An error on a positive-labelled task
// is a false negative; on a negative-labelled task, a false positive.
func (m CostModel) ErrorCost(positive bool) float64 {
	if positive {
		return m.costs.FalseNegativeCost
	}
	return m.costs.FalsePositiveCost
}
