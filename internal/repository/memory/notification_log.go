package memory

import (
	"sync"

	entity "agrotrade/internal/domain"
)

// NotificationLog is the append-only per-user message log. There is no read
// state and no deletion.
type NotificationLog struct {
	mu      sync.RWMutex
	entries []entity.Notification
}

func NewNotificationLog(initial []entity.Notification) *NotificationLog {
	l := &NotificationLog{entries: make([]entity.Notification, len(initial))}
	copy(l.entries, initial)
	return l
}

func (l *NotificationLog) Append(n entity.Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, n)
}

// ListFor returns the user's notifications newest first. Entries are
// appended in timestamp order, so walking backwards is enough.
func (l *NotificationLog) ListFor(user string) []entity.Notification {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]entity.Notification, 0)
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].TargetUser == user {
			out = append(out, l.entries[i])
		}
	}
	return out
}

func (l *NotificationLog) Snapshot() []entity.Notification {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]entity.Notification, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *NotificationLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func (l *NotificationLog) TruncateTo(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n >= 0 && n <= len(l.entries) {
		l.entries = l.entries[:n]
	}
}
