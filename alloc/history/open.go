package history

import (
	"io"

	"github.com/inference-sim/allocsim/alloc"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns a MemoryStore when dbPath is empty, otherwise a SQLiteStore.
// The returned Closer must be closed by the caller.
func Open(dbPath string) (alloc.HistoryStore, io.Closer, error) {
	if dbPath == "" {
		return NewMemoryStore(), nopCloser{}, nil
	}
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		return nil, nil, err
	}
	return s, s, nil
}
