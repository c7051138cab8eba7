package store

import (
	"sync"
	"time"

	"github.com/micronauticals/txnquery/schema"
)

// Store holds the ingested record set. Records are immutable after Set, so
// readers share the same backing array; only the slice header is copied.
type Store struct {
	mu          sync.RWMutex
	records     []schema.Record
	lastUpdated time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Set replaces the dataset.
func (s *Store) Set(records []schema.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.lastUpdated = time.Now()
}

// Snapshot returns the current record set. Callers must not mutate it.
func (s *Store) Snapshot() []schema.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Clear drops the dataset.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.lastUpdated = time.Time{}
}

// HasData reports whether a dataset has been ingested.
func (s *Store) HasData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records) > 0
}

// Len returns the dataset size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// LastUpdated returns the time of the last successful Set, or the zero
// time when nothing has been ingested.
func (s *Store) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}
