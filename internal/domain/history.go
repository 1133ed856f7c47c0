package entity

import "time"

// Action names recorded in the history log.
const (
	ActionCreateOffer   = "create_offer"
	ActionCounterBuyer  = "counter_buyer"
	ActionAcceptOffer   = "accept_offer"
	ActionRejectOffer   = "reject_offer"
	ActionMarkInterest  = "mark_interest"
	ActionAcceptCounter = "accept_counter"
	ActionRejectCounter = "reject_counter"
	ActionReviseOffer   = "revise_offer"
	ActionDeleteOffer   = "delete_offer"
	ActionDeleteCounter = "delete_counter"
)

// HistoryEntry is one immutable line in an offer's timeline. OfferID always
// refers to the root offer, so counters and their parent share one timeline.
type HistoryEntry struct {
	OfferID   string    `json:"offer_id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}
