package memory

import (
	"sync"

	entity "agrotrade/internal/domain"
)

// HistoryLog is the append-only action timeline. Insertion order is
// chronological order; entries are never rewritten.
type HistoryLog struct {
	mu      sync.RWMutex
	entries []entity.HistoryEntry
}

func NewHistoryLog(initial []entity.HistoryEntry) *HistoryLog {
	l := &HistoryLog{entries: make([]entity.HistoryEntry, len(initial))}
	copy(l.entries, initial)
	return l
}

func (l *HistoryLog) Append(e entity.HistoryEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
}

// ListByOffer returns the entries for one offer timeline in append order.
func (l *HistoryLog) ListByOffer(offerID string) []entity.HistoryEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]entity.HistoryEntry, 0)
	for _, e := range l.entries {
		if e.OfferID == offerID {
			out = append(out, e)
		}
	}
	return out
}

func (l *HistoryLog) Snapshot() []entity.HistoryEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]entity.HistoryEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *HistoryLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// TruncateTo drops entries appended after the given length. Used to roll
// back a failed operation; the log otherwise only grows.
func (l *HistoryLog) TruncateTo(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n >= 0 && n <= len(l.entries) {
		l.entries = l.entries[:n]
	}
}
