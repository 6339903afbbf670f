package alloc

// HistoryStore records correctness outcomes per (task type, actor).
// Implementations live in alloc/history/.
//
// Record on the same key must serialize and preserve insertion order.
// Query returns a snapshot the caller may keep; it never observes a
// partially written record. A key with no outcomes yields an empty slice.
type HistoryStore interface {
	Record(taskType TaskType, actor Actor, wasCorrect bool) error
	Query(taskType TaskType, actor Actor) ([]bool, error)
}
