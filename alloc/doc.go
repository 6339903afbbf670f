// Package alloc provides the human/machine decision allocation engine.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - types.go: DecisionContext, MachineConfidence, AllocationDecision and the actor/task enums
//   - utility.go: U = P_correct - Cost per actor, with the reasoning line it appends
//   - rules.go: the ordered override cascade applied on top of the utility comparison
//   - allocator.go: Allocate, the single entry point that wires everything together
//
// # Architecture
//
// The alloc package defines the engine and the HistoryStore interface; the
// supporting pieces live in sub-packages:
//   - alloc/history/: HistoryStore implementations (in-memory, SQLite)
//   - alloc/trace/: decision and outcome trace recording
//   - alloc/workload/: seeded synthetic task generation
//   - alloc/simulation/: closed-loop runner (allocate, draw ground truth, record outcome)
//
// # Key Interfaces
//
//   - HistoryStore: append/query correctness outcomes per (task type, actor)
//   - Rule: one predicate/action pair of the cascade
//
// Every Allocate call is synchronous and CPU-only. The only shared mutable
// state is the HistoryStore injected at construction.
package alloc
