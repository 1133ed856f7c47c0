package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	entity "agrotrade/internal/domain"
	csvrepo "agrotrade/internal/repository/csv"
	"agrotrade/internal/repository/memory"
	"agrotrade/internal/repository/userdir"
)

// NegotiationService owns every state transition over the record store.
// Each operation runs under one mutex and behaves as a unit: validate,
// mutate, append history, dispatch notifications, flush to durable storage.
// If the flush fails the in-memory mutation is rolled back, so memory and
// disk never diverge. Visibility marks are applied only after a successful
// flush.
type NegotiationService struct {
	mu sync.Mutex

	records    *memory.RecordStore
	history    *memory.HistoryLog
	notices    *memory.NotificationLog
	visibility *memory.VisibilityFilter
	users      userdir.UserDirectory
	store      csvrepo.Store

	now func() time.Time
}

func NewNegotiationService(
	records *memory.RecordStore,
	history *memory.HistoryLog,
	notices *memory.NotificationLog,
	visibility *memory.VisibilityFilter,
	users userdir.UserDirectory,
	store csvrepo.Store,
) *NegotiationService {
	return &NegotiationService{
		records:    records,
		history:    history,
		notices:    notices,
		visibility: visibility,
		users:      users,
		store:      store,
		now:        time.Now,
	}
}

// --- HELPERS ---

func (s *NegotiationService) parseTerms(input entity.TermsInput) (entity.Terms, error) {
	if input.Quantity < 0 {
		return entity.Terms{}, fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return entity.Terms{}, fmt.Errorf("%w: invalid price %q", ErrValidation, input.Price)
	}
	if price.IsNegative() {
		return entity.Terms{}, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	return entity.Terms{
		Quantity:         input.Quantity,
		CollectionWindow: input.CollectionWindow,
		Packaging:        input.Packaging,
		Price:            price,
		Notes:            input.Notes,
	}, nil
}

func (s *NegotiationService) requireRole(username string, role entity.Role) error {
	u, ok := s.users.GetByUsername(username)
	if !ok {
		return ErrUserNotFound
	}
	if u.Role != role {
		return ErrWrongRole
	}
	return nil
}

func (s *NegotiationService) getOffer(id string) (entity.OfferRecord, error) {
	rec, ok := s.records.Get(id)
	if !ok || rec.Kind != entity.KindOffer {
		return entity.OfferRecord{}, ErrOfferNotFound
	}
	return rec, nil
}

func (s *NegotiationService) getCounter(id string) (entity.OfferRecord, error) {
	rec, ok := s.records.Get(id)
	if !ok || rec.Kind != entity.KindCounter {
		return entity.OfferRecord{}, ErrCounterNotFound
	}
	return rec, nil
}

func (s *NegotiationService) logHistory(offerID, actor, action, detail string, ts time.Time) {
	s.history.Append(entity.HistoryEntry{
		OfferID:   offerID,
		Actor:     actor,
		Action:    action,
		Detail:    detail,
		Timestamp: ts,
	})
}

func (s *NegotiationService) notify(user, message string, ts time.Time) {
	s.notices.Append(entity.Notification{
		TargetUser: user,
		Message:    message,
		Timestamp:  ts,
	})
}

func (s *NegotiationService) broadcastToBuyers(message string, ts time.Time) {
	for _, u := range s.users.ListByRole(entity.RoleBuyer) {
		s.notify(u.Username, message, ts)
	}
}

// txMark captures the store state an operation can roll back to.
type txMark struct {
	records []entity.OfferRecord
	histLen int
	noteLen int
}

func (s *NegotiationService) begin() txMark {
	return txMark{
		records: s.records.Snapshot(),
		histLen: s.history.Len(),
		noteLen: s.notices.Len(),
	}
}

func (s *NegotiationService) rollback(tx txMark) {
	s.records.Restore(tx.records)
	s.history.TruncateTo(tx.histLen)
	s.notices.TruncateTo(tx.noteLen)
}

// commit flushes all three collections. On failure the caller's in-memory
// mutation is undone before the error is surfaced.
func (s *NegotiationService) commit(tx txMark) error {
	if err := s.flush(); err != nil {
		s.rollback(tx)
		logrus.WithError(err).Error("flush failed, in-memory state rolled back")
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func (s *NegotiationService) flush() error {
	if err := s.store.SaveOffers(s.records.Snapshot()); err != nil {
		return err
	}
	if err := s.store.SaveHistory(s.history.Snapshot()); err != nil {
		return err
	}
	return s.store.SaveNotifications(s.notices.Snapshot())
}

// --- OFFER OPERATIONS ---

// CreateOffer publishes a new open offer and notifies every buyer.
func (s *NegotiationService) CreateOffer(producer string, input entity.TermsInput) (*entity.OfferRecord, error) {
	if err := s.requireRole(producer, entity.RoleProducer); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	terms, err := s.parseTerms(input)
	if err != nil {
		return nil, err
	}

	offer := entity.OfferRecord{
		ID:        entity.NewID(),
		Kind:      entity.KindOffer,
		Producer:  producer,
		Terms:     terms,
		Status:    entity.StatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx := s.begin()
	if err := s.records.Insert(offer); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	s.logHistory(offer.ID, producer, entity.ActionCreateOffer,
		"Producer published the initial offer.", now)
	s.broadcastToBuyers(
		fmt.Sprintf("Producer %s published a new offer #%s.", producer, offer.ID), now)
	if err := s.commit(tx); err != nil {
		return nil, err
	}
	return &offer, nil
}

// AcceptOffer closes a deal directly on the offer's current terms.
func (s *NegotiationService) AcceptOffer(offerID, buyer string) (*entity.OfferRecord, error) {
	if err := s.requireRole(buyer, entity.RoleBuyer); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	offer, err := s.getOffer(offerID)
	if err != nil {
		return nil, err
	}
	if offer.Status != entity.StatusOpen {
		return nil, ErrNotOpen
	}

	now := s.now()
	offer.Status = entity.StatusAccepted
	offer.Buyer = buyer
	offer.UpdatedAt = now

	tx := s.begin()
	if err := s.records.Update(offer); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	s.logHistory(offer.ID, buyer, entity.ActionAcceptOffer,
		fmt.Sprintf("Buyer %s accepted the offer.", buyer), now)
	s.notify(offer.Producer,
		fmt.Sprintf("Buyer %s accepted your offer #%s.", buyer, offer.ID), now)
	if err := s.commit(tx); err != nil {
		return nil, err
	}
	s.visibility.Mark(buyer, offer.ID)
	return &offer, nil
}

// RejectOffer records the rejection without changing the offer, which stays
// available to every other buyer. The visibility mark hides it from this
// buyer's feed only.
func (s *NegotiationService) RejectOffer(offerID, buyer string) error {
	if err := s.requireRole(buyer, entity.RoleBuyer); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	offer, err := s.getOffer(offerID)
	if err != nil {
		return err
	}
	if offer.Status != entity.StatusOpen {
		return ErrNotOpen
	}

	now := s.now()
	tx := s.begin()
	s.logHistory(offer.ID, buyer, entity.ActionRejectOffer,
		fmt.Sprintf("Buyer %s rejected the offer.", buyer), now)
	s.notify(offer.Producer,
		fmt.Sprintf("Buyer %s rejected your offer #%s.", buyer, offer.ID), now)
	if err := s.commit(tx); err != nil {
		return err
	}
	s.visibility.Mark(buyer, offer.ID)
	return nil
}

// MarkInterest flags the offer to the producer without any commitment from
// the buyer. The offer leaves the buyer's feed like any other disposition.
func (s *NegotiationService) MarkInterest(offerID, buyer string) error {
	if err := s.requireRole(buyer, entity.RoleBuyer); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	offer, err := s.getOffer(offerID)
	if err != nil {
		return err
	}
	if offer.Status != entity.StatusOpen {
		return ErrNotOpen
	}

	now := s.now()
	tx := s.begin()
	s.logHistory(offer.ID, buyer, entity.ActionMarkInterest,
		fmt.Sprintf("Buyer %s marked interest in the offer.", buyer), now)
	s.notify(offer.Producer,
		fmt.Sprintf("Buyer %s marked interest in your offer #%s.", buyer, offer.ID), now)
	if err := s.commit(tx); err != nil {
		return err
	}
	s.visibility.Mark(buyer, offer.ID)
	return nil
}

// DeleteOffer withdraws a still-open offer and tells every buyer.
func (s *NegotiationService) DeleteOffer(offerID, producer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	offer, err := s.getOffer(offerID)
	if err != nil {
		return err
	}
	if offer.Producer != producer {
		return ErrNotOwner
	}
	if offer.Status != entity.StatusOpen {
		return ErrNotOpen
	}

	now := s.now()
	offer.Status = entity.StatusDeleted
	offer.UpdatedAt = now

	tx := s.begin()
	if err := s.records.Update(offer); err != nil {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	s.logHistory(offer.ID, producer, entity.ActionDeleteOffer,
		"Producer removed the offer.", now)
	s.broadcastToBuyers(
		fmt.Sprintf("Offer #%s was removed by the producer.", offer.ID), now)
	return s.commit(tx)
}

// --- COUNTER OPERATIONS ---

// CreateCounter attaches a buyer counterproposal to an open offer. The
// offer itself stays open for other buyers.
func (s *NegotiationService) CreateCounter(offerID, buyer string, input entity.TermsInput) (*entity.OfferRecord, error) {
	if err := s.requireRole(buyer, entity.RoleBuyer); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	offer, err := s.getOffer(offerID)
	if err != nil {
		return nil, err
	}
	if offer.Status != entity.StatusOpen {
		return nil, ErrNotOpen
	}

	now := s.now()
	terms, err := s.parseTerms(input)
	if err != nil {
		return nil, err
	}

	counter := entity.OfferRecord{
		ID:            entity.NewID(),
		Kind:          entity.KindCounter,
		Producer:      offer.Producer,
		Buyer:         buyer,
		ParentOfferID: offer.ID,
		Terms:         terms,
		Status:        entity.StatusOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	tx := s.begin()
	if err := s.records.Insert(counter); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	s.logHistory(offer.ID, buyer, entity.ActionCounterBuyer,
		fmt.Sprintf("Buyer %s sent a counteroffer.", buyer), now)
	s.notify(offer.Producer,
		fmt.Sprintf("Buyer %s countered your offer #%s.", buyer, offer.ID), now)
	if err := s.commit(tx); err != nil {
		return nil, err
	}
	s.visibility.Mark(buyer, offer.ID)
	return &counter, nil
}

// AcceptCounter closes the deal on the counter's terms: the counter is
// accepted, the parent offer is closed with the counter's buyer, and every
// sibling counter still open against the same parent is rejected.
func (s *NegotiationService) AcceptCounter(counterID, producer string) (*entity.OfferRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counter, err := s.getCounter(counterID)
	if err != nil {
		return nil, err
	}
	if counter.Producer != producer {
		return nil, ErrNotOwner
	}
	if counter.Status != entity.StatusOpen {
		return nil, ErrNotOpen
	}
	parent, err := s.getOffer(counter.ParentOfferID)
	if err != nil {
		return nil, fmt.Errorf("%w: counter %s has no parent offer", ErrValidation, counter.ID)
	}
	if parent.Status != entity.StatusOpen {
		return nil, ErrParentNotOpen
	}

	now := s.now()
	counter.Status = entity.StatusAccepted
	counter.UpdatedAt = now
	parent.Status = entity.StatusClosed
	parent.Buyer = counter.Buyer
	parent.UpdatedAt = now

	tx := s.begin()
	if err := s.records.Update(counter); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	if err := s.records.Update(parent); err != nil {
		s.rollback(tx)
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	s.logHistory(parent.ID, producer, entity.ActionAcceptCounter,
		fmt.Sprintf("Producer accepted the counteroffer from %s.", counter.Buyer), now)
	s.notify(counter.Buyer,
		fmt.Sprintf("Producer accepted your counteroffer #%s.", counter.ID), now)

	// Cascade: sibling counters can no longer be acted on once the parent
	// is closed, so they are rejected rather than left dangling open.
	for _, sib := range s.records.List(func(r entity.OfferRecord) bool {
		return r.Kind == entity.KindCounter &&
			r.ParentOfferID == parent.ID &&
			r.ID != counter.ID &&
			r.Status == entity.StatusOpen
	}) {
		sib.Status = entity.StatusRejected
		sib.UpdatedAt = now
		if err := s.records.Update(sib); err != nil {
			s.rollback(tx)
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		s.logHistory(parent.ID, producer, entity.ActionRejectCounter,
			fmt.Sprintf("Counteroffer from %s lapsed when the offer closed.", sib.Buyer), now)
		s.notify(sib.Buyer,
			fmt.Sprintf("Offer #%s closed with another buyer; your counteroffer #%s lapsed.", parent.ID, sib.ID), now)
	}

	if err := s.commit(tx); err != nil {
		return nil, err
	}
	return &counter, nil
}

// RejectCounter declines the counter without touching the parent offer.
func (s *NegotiationService) RejectCounter(counterID, producer string) (*entity.OfferRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counter, err := s.getCounter(counterID)
	if err != nil {
		return nil, err
	}
	if counter.Producer != producer {
		return nil, ErrNotOwner
	}
	if counter.Status != entity.StatusOpen {
		return nil, ErrNotOpen
	}
	parent, err := s.getOffer(counter.ParentOfferID)
	if err != nil {
		return nil, fmt.Errorf("%w: counter %s has no parent offer", ErrValidation, counter.ID)
	}
	if parent.Status != entity.StatusOpen {
		return nil, ErrParentNotOpen
	}

	now := s.now()
	counter.Status = entity.StatusRejected
	counter.UpdatedAt = now

	tx := s.begin()
	if err := s.records.Update(counter); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	s.logHistory(parent.ID, producer, entity.ActionRejectCounter,
		fmt.Sprintf("Producer rejected the counteroffer from %s.", counter.Buyer), now)
	s.notify(counter.Buyer,
		fmt.Sprintf("Producer rejected your counteroffer #%s.", counter.ID), now)
	if err := s.commit(tx); err != nil {
		return nil, err
	}
	return &counter, nil
}

// ReviseOffer is the producer's counter-to-the-counter: the original offer
// keeps its id and stays open under new terms, and the triggering counter
// reaches the answered state. The counter's buyer gets the offer back in
// their feed.
func (s *NegotiationService) ReviseOffer(offerID string, producer string, input entity.ReviseOfferInput) (*entity.OfferRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offer, err := s.getOffer(offerID)
	if err != nil {
		return nil, err
	}
	if offer.Producer != producer {
		return nil, ErrNotOwner
	}
	counter, err := s.getCounter(input.CounterID)
	if err != nil {
		return nil, err
	}
	if counter.ParentOfferID != offer.ID {
		return nil, fmt.Errorf("%w: counter %s does not answer offer %s", ErrValidation, counter.ID, offer.ID)
	}
	if counter.Status != entity.StatusOpen {
		return nil, ErrNotOpen
	}
	if offer.Status != entity.StatusOpen {
		return nil, ErrParentNotOpen
	}

	now := s.now()
	terms, err := s.parseTerms(input.Terms)
	if err != nil {
		return nil, err
	}
	// Empty notes keep the previous ones instead of blanking them.
	if terms.Notes == "" {
		terms.Notes = offer.Terms.Notes
	}

	offer.Terms = terms
	offer.UpdatedAt = now
	counter.Status = entity.StatusAnswered
	counter.UpdatedAt = now

	tx := s.begin()
	if err := s.records.Update(offer); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	if err := s.records.Update(counter); err != nil {
		s.rollback(tx)
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}
	s.logHistory(offer.ID, producer, entity.ActionReviseOffer,
		fmt.Sprintf("Producer revised the offer in response to buyer %s.", counter.Buyer), now)
	s.notify(counter.Buyer,
		fmt.Sprintf("Producer %s revised offer #%s in response to your counteroffer.", producer, offer.ID), now)
	if err := s.commit(tx); err != nil {
		return nil, err
	}
	s.visibility.Clear(counter.Buyer, offer.ID)
	return &offer, nil
}

// DeleteCounter lets a buyer withdraw their own open counter.
func (s *NegotiationService) DeleteCounter(counterID, buyer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	counter, err := s.getCounter(counterID)
	if err != nil {
		return err
	}
	if counter.Buyer != buyer {
		return ErrNotOwner
	}
	if counter.Status != entity.StatusOpen {
		return ErrNotOpen
	}

	now := s.now()
	counter.Status = entity.StatusDeleted
	counter.UpdatedAt = now

	tx := s.begin()
	if err := s.records.Update(counter); err != nil {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	s.logHistory(counter.ParentOfferID, buyer, entity.ActionDeleteCounter,
		fmt.Sprintf("Buyer %s withdrew their counteroffer.", buyer), now)
	s.notify(counter.Producer,
		fmt.Sprintf("Buyer %s withdrew counteroffer #%s.", buyer, counter.ID), now)
	return s.commit(tx)
}
