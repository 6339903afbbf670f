package alloc

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeStore is a minimal HistoryStore for in-package tests. The real
// implementations live in alloc/history, which imports this package.
type fakeStore struct {
	mu       sync.Mutex
	outcomes map[TaskType]map[Actor][]bool
	queryErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{outcomes: make(map[TaskType]map[Actor][]bool)}
}

func (s *fakeStore) Record(tt TaskType, a Actor, ok bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outcomes[tt] == nil {
		s.outcomes[tt] = make(map[Actor][]bool)
	}
	s.outcomes[tt][a] = append(s.outcomes[tt][a], ok)
	return nil
}

func (s *fakeStore) Query(tt TaskType, a Actor) ([]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return append([]bool{}, s.outcomes[tt][a]...), nil
}

var errStoreDown = errors.New("store down")

func newTestAllocator(t *testing.T, cfg Config) (*Allocator, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	a, err := NewAllocator(cfg, store)
	if err != nil {
		t.Fatalf("NewAllocator: %v", err)
	}
	return a, store
}

func defaultAllocator(t *testing.T) (*Allocator, *fakeStore) {
	t.Helper()
	return newTestAllocator(t, DefaultConfig(CostConfiguration{}))
}

func taskContext(tt TaskType) DecisionContext {
	return DecisionContext{
		TaskID:    "task-" + string(tt),
		TaskType:  tt,
		Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func confidence(c, u float64) MachineConfidence {
	return MachineConfidence{ConfidenceScore: c, UncertaintyScore: u, ModelVersion: "test"}
}

func approxEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
