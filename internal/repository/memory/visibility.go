package memory

import "sync"

type visKey struct {
	buyer   string
	offerID string
}

// VisibilityFilter tracks which offers a buyer has already dispositioned in
// their feed. It is process-local and intentionally not persisted.
type VisibilityFilter struct {
	mu    sync.RWMutex
	marks map[visKey]struct{}
}

func NewVisibilityFilter() *VisibilityFilter {
	return &VisibilityFilter{marks: make(map[visKey]struct{})}
}

// Mark records that the buyer acted on the offer. Idempotent.
func (f *VisibilityFilter) Mark(buyer, offerID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marks[visKey{buyer, offerID}] = struct{}{}
}

// Clear removes any matching mark. Idempotent.
func (f *VisibilityFilter) Clear(buyer, offerID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.marks, visKey{buyer, offerID})
}

// IsSuppressed reports whether the offer is hidden from the buyer's feed.
func (f *VisibilityFilter) IsSuppressed(buyer, offerID string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.marks[visKey{buyer, offerID}]
	return ok
}
