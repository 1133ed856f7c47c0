package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entity "agrotrade/internal/domain"
)

func rec(id string, kind entity.RecordKind) entity.OfferRecord {
	now := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	return entity.OfferRecord{
		ID:        id,
		Kind:      kind,
		Producer:  "producer1",
		Status:    entity.StatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRecordStoreInsertRejectsDuplicateIDs(t *testing.T) {
	s, err := NewRecordStore(nil)
	require.NoError(t, err)

	require.NoError(t, s.Insert(rec("a1", entity.KindOffer)))
	err = s.Insert(rec("a1", entity.KindCounter))
	assert.Error(t, err, "offers and counters share one id space")

	_, err = NewRecordStore([]entity.OfferRecord{
		rec("a1", entity.KindOffer),
		rec("a1", entity.KindOffer),
	})
	assert.Error(t, err)
}

func TestRecordStoreGetReturnsCopies(t *testing.T) {
	s, err := NewRecordStore([]entity.OfferRecord{rec("a1", entity.KindOffer)})
	require.NoError(t, err)

	got, ok := s.Get("a1")
	require.True(t, ok)
	got.Status = entity.StatusDeleted

	again, ok := s.Get("a1")
	require.True(t, ok)
	assert.Equal(t, entity.StatusOpen, again.Status)
}

func TestRecordStoreListKeepsInsertionOrder(t *testing.T) {
	s, err := NewRecordStore(nil)
	require.NoError(t, err)
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, s.Insert(rec(id, entity.KindOffer)))
	}

	all := s.List(nil)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "a", all[1].ID)
	assert.Equal(t, "b", all[2].ID)

	offersOnly := s.List(func(r entity.OfferRecord) bool { return r.ID != "a" })
	require.Len(t, offersOnly, 2)
}

func TestRecordStoreSnapshotRestore(t *testing.T) {
	s, err := NewRecordStore([]entity.OfferRecord{rec("a1", entity.KindOffer)})
	require.NoError(t, err)

	snap := s.Snapshot()
	require.NoError(t, s.Insert(rec("b2", entity.KindCounter)))
	updated := rec("a1", entity.KindOffer)
	updated.Status = entity.StatusAccepted
	require.NoError(t, s.Update(updated))

	s.Restore(snap)

	got, ok := s.Get("a1")
	require.True(t, ok)
	assert.Equal(t, entity.StatusOpen, got.Status)
	_, ok = s.Get("b2")
	assert.False(t, ok)

	// Index is rebuilt, inserts keep working.
	require.NoError(t, s.Insert(rec("c3", entity.KindOffer)))
}

func TestRecordStoreUpdateUnknownID(t *testing.T) {
	s, err := NewRecordStore(nil)
	require.NoError(t, err)
	assert.Error(t, s.Update(rec("ghost", entity.KindOffer)))
}
