package visits

import (
	"sync"
	"time"
)

// Store holds the in-memory visit record list, most-recent-first. Every
// mutation completes atomically before any read can observe it; readers only
// ever see Snapshot copies, so aggregation always works over a consistent
// list.
type Store struct {
	mu      sync.RWMutex
	records []VisitRecord
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Add prepends a record. Display convention is most-recent-first.
func (s *Store) Add(record VisitRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]VisitRecord{record}, s.records...)
}

// Toggle flips a record's completed flag, setting completedAt on the
// pending→completed transition and clearing it on the way back. Returns the
// updated record, or ErrVisitNotFound leaving state unchanged.
func (s *Store) Toggle(id string, now time.Time) (VisitRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID != id {
			continue
		}
		s.records[i].Completed = !s.records[i].Completed
		if s.records[i].Completed {
			at := now
			s.records[i].CompletedAt = &at
		} else {
			s.records[i].CompletedAt = nil
		}
		return s.records[i], nil
	}
	return VisitRecord{}, ErrVisitNotFound
}

// Delete removes a record by id. The second return value reports whether the
// store is empty afterwards, which callers use to reset the fallback cache.
func (s *Store) Delete(id string) (empty bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return len(s.records) == 0, nil
		}
	}
	return len(s.records) == 0, ErrVisitNotFound
}

// ClearAll removes every record.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}

// Replace swaps in a full record list, used after a gateway resync.
func (s *Store) Replace(records []VisitRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]VisitRecord(nil), records...)
}

// Snapshot returns a copy of the current record list.
func (s *Store) Snapshot() []VisitRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]VisitRecord(nil), s.records...)
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
