package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entity "agrotrade/internal/domain"
)

func TestHistoryLogAppendOrderPerOffer(t *testing.T) {
	l := NewHistoryLog(nil)
	base := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)

	l.Append(entity.HistoryEntry{OfferID: "o1", Action: "create_offer", Timestamp: base})
	l.Append(entity.HistoryEntry{OfferID: "o2", Action: "create_offer", Timestamp: base.Add(time.Minute)})
	l.Append(entity.HistoryEntry{OfferID: "o1", Action: "counter_buyer", Timestamp: base.Add(2 * time.Minute)})

	got := l.ListByOffer("o1")
	require.Len(t, got, 2)
	assert.Equal(t, "create_offer", got[0].Action)
	assert.Equal(t, "counter_buyer", got[1].Action)

	assert.Empty(t, l.ListByOffer("o9"))
}

func TestHistoryLogTruncateTo(t *testing.T) {
	l := NewHistoryLog(nil)
	l.Append(entity.HistoryEntry{OfferID: "o1"})
	mark := l.Len()
	l.Append(entity.HistoryEntry{OfferID: "o1"})
	l.Append(entity.HistoryEntry{OfferID: "o1"})

	l.TruncateTo(mark)
	assert.Equal(t, 1, l.Len())

	// Out-of-range lengths are ignored.
	l.TruncateTo(99)
	assert.Equal(t, 1, l.Len())
}

func TestNotificationLogListForNewestFirst(t *testing.T) {
	l := NewNotificationLog(nil)
	base := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)

	l.Append(entity.Notification{TargetUser: "buyer1", Message: "first", Timestamp: base})
	l.Append(entity.Notification{TargetUser: "buyer2", Message: "other", Timestamp: base.Add(time.Minute)})
	l.Append(entity.Notification{TargetUser: "buyer1", Message: "second", Timestamp: base.Add(2 * time.Minute)})

	got := l.ListFor("buyer1")
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Message)
	assert.Equal(t, "first", got[1].Message)

	assert.Empty(t, l.ListFor("producer1"))
}
