package memory

import (
	"fmt"
	"sync"

	entity "agrotrade/internal/domain"
)

// RecordStore is the in-memory source of truth for offers and counters.
// Records keep insertion order; an id index backs point lookups. All reads
// hand out copies so callers can never mutate store state in place.
type RecordStore struct {
	mu      sync.RWMutex
	records []entity.OfferRecord
	index   map[string]int
}

func NewRecordStore(initial []entity.OfferRecord) (*RecordStore, error) {
	s := &RecordStore{
		records: make([]entity.OfferRecord, 0, len(initial)),
		index:   make(map[string]int, len(initial)),
	}
	for _, rec := range initial {
		if err := s.insertLocked(rec); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *RecordStore) insertLocked(rec entity.OfferRecord) error {
	if _, ok := s.index[rec.ID]; ok {
		return fmt.Errorf("duplicate record id %q", rec.ID)
	}
	s.index[rec.ID] = len(s.records)
	s.records = append(s.records, rec)
	return nil
}

// Insert appends a new record. The id must be unused.
func (s *RecordStore) Insert(rec entity.OfferRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(rec)
}

// Get returns a copy of the record with the given id.
func (s *RecordStore) Get(id string) (entity.OfferRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return entity.OfferRecord{}, false
	}
	return s.records[i], true
}

// Update replaces the stored record with the same id.
func (s *RecordStore) Update(rec entity.OfferRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[rec.ID]
	if !ok {
		return fmt.Errorf("unknown record id %q", rec.ID)
	}
	s.records[i] = rec
	return nil
}

// List returns copies of all records matching the filter, in insertion
// order. A nil filter matches everything.
func (s *RecordStore) List(match func(entity.OfferRecord) bool) []entity.OfferRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.OfferRecord, 0)
	for _, rec := range s.records {
		if match == nil || match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Snapshot copies the full collection, for persistence flushes and for
// rollback on flush failure.
func (s *RecordStore) Snapshot() []entity.OfferRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.OfferRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Restore replaces the collection with a previously taken snapshot.
func (s *RecordStore) Restore(snapshot []entity.OfferRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make([]entity.OfferRecord, len(snapshot))
	copy(s.records, snapshot)
	s.index = make(map[string]int, len(snapshot))
	for i, rec := range s.records {
		s.index[rec.ID] = i
	}
}
