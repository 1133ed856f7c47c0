// Package csv is the durable persistence collaborator: three flat
// fixed-column files holding the offer, history and notification
// collections. Every save rewrites the whole collection through a temp file
// in the same directory followed by a rename, so a crash can never leave a
// partially written file visible.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	entity "agrotrade/internal/domain"
)

const (
	offersFile        = "offers.csv"
	historyFile       = "history.csv"
	notificationsFile = "notifications.csv"

	timeLayout = time.RFC3339
)

var (
	offerHeader = []string{
		"id", "kind", "producer", "buyer", "parent_offer_id",
		"quantity", "collection_window", "packaging", "price", "notes",
		"status", "created_at", "updated_at",
	}
	historyHeader      = []string{"offer_id", "actor", "action", "detail", "timestamp"}
	notificationHeader = []string{"target_user", "message", "timestamp"}
)

// Store is the contract the negotiation engine flushes through.
type Store interface {
	LoadOffers() ([]entity.OfferRecord, error)
	LoadHistory() ([]entity.HistoryEntry, error)
	LoadNotifications() ([]entity.Notification, error)
	SaveOffers([]entity.OfferRecord) error
	SaveHistory([]entity.HistoryEntry) error
	SaveNotifications([]entity.Notification) error
}

type fileStore struct {
	dir string
}

func NewStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &fileStore{dir: dir}, nil
}

// readAll returns the data rows of a CSV file, skipping the header. A
// missing file is an empty collection, not an error.
func (s *fileStore) readAll(name string, want int) ([][]string, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = want
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(rows) > 0 {
		rows = rows[1:]
	}
	return rows, nil
}

// writeAll replaces a collection file atomically.
func (s *fileStore) writeAll(name string, header []string, rows [][]string) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

func (s *fileStore) LoadOffers() ([]entity.OfferRecord, error) {
	rows, err := s.readAll(offersFile, len(offerHeader))
	if err != nil {
		return nil, err
	}
	out := make([]entity.OfferRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := decodeOffer(row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", offersFile, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *fileStore) SaveOffers(records []entity.OfferRecord) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, encodeOffer(rec))
	}
	return s.writeAll(offersFile, offerHeader, rows)
}

func (s *fileStore) LoadHistory() ([]entity.HistoryEntry, error) {
	rows, err := s.readAll(historyFile, len(historyHeader))
	if err != nil {
		return nil, err
	}
	out := make([]entity.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		ts, err := time.Parse(timeLayout, row[4])
		if err != nil {
			return nil, fmt.Errorf("%s: bad timestamp %q: %w", historyFile, row[4], err)
		}
		out = append(out, entity.HistoryEntry{
			OfferID:   row[0],
			Actor:     row[1],
			Action:    row[2],
			Detail:    row[3],
			Timestamp: ts,
		})
	}
	return out, nil
}

func (s *fileStore) SaveHistory(entries []entity.HistoryEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.OfferID, e.Actor, e.Action, e.Detail,
			e.Timestamp.Format(timeLayout),
		})
	}
	return s.writeAll(historyFile, historyHeader, rows)
}

func (s *fileStore) LoadNotifications() ([]entity.Notification, error) {
	rows, err := s.readAll(notificationsFile, len(notificationHeader))
	if err != nil {
		return nil, err
	}
	out := make([]entity.Notification, 0, len(rows))
	for _, row := range rows {
		ts, err := time.Parse(timeLayout, row[2])
		if err != nil {
			return nil, fmt.Errorf("%s: bad timestamp %q: %w", notificationsFile, row[2], err)
		}
		out = append(out, entity.Notification{
			TargetUser: row[0],
			Message:    row[1],
			Timestamp:  ts,
		})
	}
	return out, nil
}

func (s *fileStore) SaveNotifications(entries []entity.Notification) error {
	rows := make([][]string, 0, len(entries))
	for _, n := range entries {
		rows = append(rows, []string{
			n.TargetUser, n.Message, n.Timestamp.Format(timeLayout),
		})
	}
	return s.writeAll(notificationsFile, notificationHeader, rows)
}

func encodeOffer(rec entity.OfferRecord) []string {
	return []string{
		rec.ID,
		string(rec.Kind),
		rec.Producer,
		rec.Buyer,
		rec.ParentOfferID,
		strconv.FormatFloat(rec.Terms.Quantity, 'f', -1, 64),
		rec.Terms.CollectionWindow,
		rec.Terms.Packaging,
		rec.Terms.Price.String(),
		rec.Terms.Notes,
		string(rec.Status),
		rec.CreatedAt.Format(timeLayout),
		rec.UpdatedAt.Format(timeLayout),
	}
}

func decodeOffer(row []string) (entity.OfferRecord, error) {
	qty, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return entity.OfferRecord{}, fmt.Errorf("bad quantity %q: %w", row[5], err)
	}
	price, err := decimal.NewFromString(row[8])
	if err != nil {
		return entity.OfferRecord{}, fmt.Errorf("bad price %q: %w", row[8], err)
	}
	created, err := time.Parse(timeLayout, row[11])
	if err != nil {
		return entity.OfferRecord{}, fmt.Errorf("bad created_at %q: %w", row[11], err)
	}
	updated, err := time.Parse(timeLayout, row[12])
	if err != nil {
		return entity.OfferRecord{}, fmt.Errorf("bad updated_at %q: %w", row[12], err)
	}
	return entity.OfferRecord{
		ID:            row[0],
		Kind:          entity.RecordKind(row[1]),
		Producer:      row[2],
		Buyer:         row[3],
		ParentOfferID: row[4],
		Terms: entity.Terms{
			Quantity:         qty,
			CollectionWindow: row[6],
			Packaging:        row[7],
			Price:            price,
			Notes:            row[9],
		},
		Status:    entity.Status(row[10]),
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}
