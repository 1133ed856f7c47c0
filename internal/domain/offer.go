package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind discriminates the two record shapes that share the offer
// collection and its id space.
type RecordKind string

const (
	KindOffer   RecordKind = "offer"
	KindCounter RecordKind = "counter"
)

// Status values for offers and counters. `open` is the only non-terminal
// status for both kinds; the terminal sets differ per kind.
type Status string

const (
	StatusOpen     Status = "open"
	StatusAccepted Status = "accepted"
	StatusClosed   Status = "closed"   // offer only: closed through an accepted counter
	StatusRejected Status = "rejected" // counter only
	StatusAnswered Status = "answered" // counter only: producer revised the parent offer instead
	StatusDeleted  Status = "deleted"
)

func (s Status) IsTerminal() bool {
	return s != StatusOpen
}

// Terms are the negotiable business terms carried by both offers and
// counters. Price uses decimal so CSV round-trips stay exact.
type Terms struct {
	Quantity         float64         `json:"quantity"`          // tons
	CollectionWindow string          `json:"collection_window"` // e.g. "10-15 days"
	Packaging        string          `json:"packaging"`         // crates
	Price            decimal.Decimal `json:"price"`
	Notes            string          `json:"notes"`
}

// OfferRecord is the single record type for both producer offers and buyer
// counters. For KindOffer, Buyer stays empty until a deal closes and
// ParentOfferID is always empty. For KindCounter, Buyer is the counter's
// author and ParentOfferID references the offer being countered.
type OfferRecord struct {
	ID            string     `json:"id"`
	Kind          RecordKind `json:"kind"`
	Producer      string     `json:"producer"`
	Buyer         string     `json:"buyer,omitempty"`
	ParentOfferID string     `json:"parent_offer_id,omitempty"`
	Terms         Terms      `json:"terms"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TermsInput is the request shape for creating or revising terms.
type TermsInput struct {
	Quantity         float64 `json:"quantity"`
	CollectionWindow string  `json:"collection_window"`
	Packaging        string  `json:"packaging"`
	Price            string  `json:"price" binding:"required"`
	Notes            string  `json:"notes"`
}

// ReviseOfferInput carries the counter being answered alongside the new
// offer terms.
type ReviseOfferInput struct {
	CounterID string     `json:"counter_id" binding:"required"`
	Terms     TermsInput `json:"terms"`
}
