package history

import "sync"

// memoryStore implements Store in memory.
type memoryStore struct {
	records    []Record
	seq        uint64
	maxRecords int
	mu         sync.Mutex
}

// NewMemoryStore creates an in-memory store keeping at most maxRecords
// records. maxRecords <= 0 keeps everything.
//
// Useful for testing or when persistence is disabled.
func NewMemoryStore(maxRecords int) Store {
	return &memoryStore{maxRecords: maxRecords}
}

// Append implements Store.Append.
func (s *memoryStore) Append(rec *Record) error {
	if rec == nil {
		return ErrNilRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	rec.Seq = s.seq

	stored := *rec
	stored.Args = append([]string(nil), rec.Args...)
	s.records = append(s.records, stored)

	if s.maxRecords > 0 && len(s.records) > s.maxRecords {
		s.records = append([]Record(nil), s.records[len(s.records)-s.maxRecords:]...)
	}

	return nil
}

// Recent implements Store.Recent.
func (s *memoryStore) Recent(n int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := 0
	if n > 0 && len(s.records) > n {
		start = len(s.records) - n
	}

	out := make([]Record, len(s.records)-start)
	copy(out, s.records[start:])
	return out, nil
}

// Close implements Store.Close.
func (s *memoryStore) Close() error {
	return nil
}
