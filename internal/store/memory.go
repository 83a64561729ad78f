package store

import (
	"sync"

	"github.com/baristalabs/mastrena/internal/extraction"
)

// MemoryStore keeps records in a mutex-guarded slice. The lock is held only
// for the insert or the snapshot copy, never across validation or simulation.
type MemoryStore struct {
	mu      sync.RWMutex
	records []extraction.Record
	nextID  uint64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Append implements Store. It never fails under normal operation.
func (s *MemoryStore) Append(record extraction.Record) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = s.nextID
	s.nextID++
	s.records = append(s.records, record)
	return record.ID, nil
}

// All implements Store. The returned slice is a copy; concurrent appends
// cannot mutate it.
func (s *MemoryStore) All() ([]extraction.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]extraction.Record, len(s.records))
	copy(snapshot, s.records)
	return snapshot, nil
}

// Len implements Store.
func (s *MemoryStore) Len() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Close implements Store. Memory stores hold no external resources.
func (s *MemoryStore) Close() error { return nil }
