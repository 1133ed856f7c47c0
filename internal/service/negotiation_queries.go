package service

import (
	entity "agrotrade/internal/domain"
)

// Read queries consumed by the presentation layer. They go straight to the
// stores, which serve consistent copies under their own locks.

// ListOffersFor is the buyer feed: open offers the buyer has not yet
// dispositioned.
func (s *NegotiationService) ListOffersFor(buyer string) []entity.OfferRecord {
	return s.records.List(func(r entity.OfferRecord) bool {
		return r.Kind == entity.KindOffer &&
			r.Status == entity.StatusOpen &&
			!s.visibility.IsSuppressed(buyer, r.ID)
	})
}

// ListCountersFor is the producer inbox: open counters awaiting a response.
func (s *NegotiationService) ListCountersFor(producer string) []entity.OfferRecord {
	return s.records.List(func(r entity.OfferRecord) bool {
		return r.Kind == entity.KindCounter &&
			r.Producer == producer &&
			r.Status == entity.StatusOpen
	})
}

// ListMyOffers returns every offer the producer ever published, any status.
func (s *NegotiationService) ListMyOffers(producer string) []entity.OfferRecord {
	return s.records.List(func(r entity.OfferRecord) bool {
		return r.Kind == entity.KindOffer && r.Producer == producer
	})
}

// ListMyCounters returns every counter the buyer ever sent, any status.
func (s *NegotiationService) ListMyCounters(buyer string) []entity.OfferRecord {
	return s.records.List(func(r entity.OfferRecord) bool {
		return r.Kind == entity.KindCounter && r.Buyer == buyer
	})
}

// ListDealsFor returns the offers that closed with this buyer, whether by
// direct acceptance or through an accepted counter.
func (s *NegotiationService) ListDealsFor(buyer string) []entity.OfferRecord {
	return s.records.List(func(r entity.OfferRecord) bool {
		return r.Kind == entity.KindOffer &&
			r.Buyer == buyer &&
			(r.Status == entity.StatusAccepted || r.Status == entity.StatusClosed)
	})
}

// ListNotifications returns the user's notifications, newest first.
func (s *NegotiationService) ListNotifications(user string) []entity.Notification {
	return s.notices.ListFor(user)
}

// ListHistory returns the shared timeline of an offer. Passing a counter id
// resolves to its parent's timeline.
func (s *NegotiationService) ListHistory(id string) ([]entity.HistoryEntry, error) {
	rec, ok := s.records.Get(id)
	if !ok {
		return nil, ErrOfferNotFound
	}
	root := rec.ID
	if rec.Kind == entity.KindCounter {
		root = rec.ParentOfferID
	}
	return s.history.ListByOffer(root), nil
}
