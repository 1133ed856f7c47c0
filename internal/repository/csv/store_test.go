package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entity "agrotrade/internal/domain"
)

func sampleRecords() []entity.OfferRecord {
	created := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	return []entity.OfferRecord{
		{
			ID:       "aa11bb22",
			Kind:     entity.KindOffer,
			Producer: "producer1",
			Terms: entity.Terms{
				Quantity:         12.5,
				CollectionWindow: "10-15 days",
				Packaging:        "40 crates",
				Price:            decimal.RequireFromString("101.50"),
				Notes:            "notes with, comma and \"quotes\"",
			},
			Status:    entity.StatusOpen,
			CreatedAt: created,
			UpdatedAt: created,
		},
		{
			ID:            "cc33dd44",
			Kind:          entity.KindCounter,
			Producer:      "producer1",
			Buyer:         "buyer1",
			ParentOfferID: "aa11bb22",
			Terms: entity.Terms{
				Quantity: 12.5,
				Price:    decimal.RequireFromString("90"),
			},
			Status:    entity.StatusAnswered,
			CreatedAt: created.Add(time.Hour),
			UpdatedAt: created.Add(2 * time.Hour),
		},
	}
}

func TestOffersRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	want := sampleRecords()
	require.NoError(t, store.SaveOffers(want))

	got, err := store.LoadOffers()
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, want[0].ID, got[0].ID)
	assert.Equal(t, want[0].Kind, got[0].Kind)
	assert.Equal(t, want[0].Terms.Notes, got[0].Terms.Notes)
	assert.True(t, want[0].Terms.Price.Equal(got[0].Terms.Price))
	assert.True(t, want[0].CreatedAt.Equal(got[0].CreatedAt))

	assert.Equal(t, "aa11bb22", got[1].ParentOfferID)
	assert.Equal(t, entity.StatusAnswered, got[1].Status)
	assert.Equal(t, "buyer1", got[1].Buyer)
}

func TestHistoryAndNotificationsRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	ts := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	history := []entity.HistoryEntry{
		{OfferID: "aa11bb22", Actor: "buyer1", Action: "accept_offer", Detail: "Buyer buyer1 accepted the offer.", Timestamp: ts},
	}
	require.NoError(t, store.SaveHistory(history))
	gotHistory, err := store.LoadHistory()
	require.NoError(t, err)
	assert.Equal(t, history[0].Detail, gotHistory[0].Detail)
	assert.True(t, ts.Equal(gotHistory[0].Timestamp))

	notifications := []entity.Notification{
		{TargetUser: "producer1", Message: "Buyer buyer1 accepted your offer #aa11bb22.", Timestamp: ts},
	}
	require.NoError(t, store.SaveNotifications(notifications))
	gotNotes, err := store.LoadNotifications()
	require.NoError(t, err)
	assert.Equal(t, notifications[0].Message, gotNotes[0].Message)
}

func TestMissingFilesLoadAsEmptyCollections(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	offers, err := store.LoadOffers()
	require.NoError(t, err)
	assert.Empty(t, offers)

	history, err := store.LoadHistory()
	require.NoError(t, err)
	assert.Empty(t, history)

	notes, err := store.LoadNotifications()
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestSaveLeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.SaveOffers(sampleRecords()))
	require.NoError(t, store.SaveOffers(sampleRecords())) // overwrite path

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "offers.csv", files[0].Name())
}

func TestSaveEmptyCollectionWritesHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.SaveOffers(nil))

	raw, err := os.ReadFile(filepath.Join(dir, "offers.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "id,kind,producer"))

	got, err := store.LoadOffers()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadRejectsCorruptRows(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveOffers(sampleRecords()))

	path := filepath.Join(dir, "offers.csv")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	corrupted := strings.Replace(string(raw), "101.5", "not-a-price", 1)
	require.NoError(t, os.WriteFile(path, []byte(corrupted), 0o644))

	_, err = store.LoadOffers()
	assert.Error(t, err)
}
