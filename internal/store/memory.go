package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-process RecordStore used by tests and by
// deployments that run without a database. Failures are injectable so
// the degradation paths stay testable.
type MemoryStore struct {
	mu   sync.RWMutex
	rows []Record

	ReadErr  error
	WriteErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Read(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	out := make([]Record, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *MemoryStore) Write(ctx context.Context, rows []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.rows = make([]Record, len(rows))
	copy(s.rows, rows)
	return nil
}

// Seed replaces the table without going through Write, bypassing any
// injected write failure.
func (s *MemoryStore) Seed(rows []Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = make([]Record, len(rows))
	copy(s.rows, rows)
}
