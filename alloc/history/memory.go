// Package history provides alloc.HistoryStore implementations.
package history

import (
	"sync"

	"github.com/inference-sim/allocsim/alloc"
)

type key struct {
	taskType alloc.TaskType
	actor    alloc.Actor
}

// series is the outcome sequence of one key. Its own mutex serializes
// appends so different keys never contend.
type series struct {
	mu       sync.Mutex
	outcomes []bool
}

// MemoryStore is an in-process HistoryStore. Outcomes are never evicted.
// Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	series map[key]*series
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{series: make(map[key]*series)}
}

// Record appends an outcome. Never returns an error.
func (s *MemoryStore) Record(taskType alloc.TaskType, actor alloc.Actor, wasCorrect bool) error {
	ser := s.getOrCreate(key{taskType, actor})
	ser.mu.Lock()
	ser.outcomes = append(ser.outcomes, wasCorrect)
	ser.mu.Unlock()
	return nil
}

// Query returns a copy of the outcomes for the key, in insertion order.
func (s *MemoryStore) Query(taskType alloc.TaskType, actor alloc.Actor) ([]bool, error) {
	s.mu.RLock()
	ser, ok := s.series[key{taskType, actor}]
	s.mu.RUnlock()
	if !ok {
		return []bool{}, nil
	}
	ser.mu.Lock()
	defer ser.mu.Unlock()
	out := make([]bool, len(ser.outcomes))
	copy(out, ser.outcomes)
	return out, nil
}

// Len returns the total number of recorded outcomes across all keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, ser := range s.series {
		ser.mu.Lock()
		n += len(ser.outcomes)
		ser.mu.Unlock()
	}
	return n
}

func (s *MemoryStore) getOrCreate(k key) *series {
	s.mu.RLock()
	ser, ok := s.series[k]
	s.mu.RUnlock()
	if ok {
		return ser
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ser, ok = s.series[k]; ok {
		return ser
	}
	ser = &series{}
	s.series[k] = ser
	return ser
}
