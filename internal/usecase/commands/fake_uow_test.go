//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"rentalflow/internal/domain/agreement"
	"rentalflow/internal/domain/fulfillment"
	"rentalflow/internal/domain/intent"
	"rentalflow/internal/domain/offer"
	"rentalflow/internal/pkg/errs"
	"rentalflow/internal/usecase/events"
	"rentalflow/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeUoW is an in-memory shared.UnitOfWork. Within serializes on a mutex so
// concurrent callers observe the same isolation the row locks give the real
// implementation: one transaction at a time over shared state.
type fakeUoW struct {
	mu    sync.Mutex
	state *fakeState
}

type fakeState struct {
	intents      map[uuid.UUID]shared.IntentSnapshot
	offers       map[uuid.UUID]shared.OfferSnapshot
	agreements   map[uuid.UUID]shared.AgreementSnapshot
	fulfillments map[uuid.UUID]shared.FulfillmentSnapshot
	resources    map[uuid.UUID]shared.ResourceSnapshot
	specs        map[uuid.UUID]bool
	idempotency  map[idemKey]shared.IdempotencyRecord
}

type idemKey struct {
	key     uuid.UUID
	actorID uuid.UUID
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{state: &fakeState{
		intents:      make(map[uuid.UUID]shared.IntentSnapshot),
		offers:       make(map[uuid.UUID]shared.OfferSnapshot),
		agreements:   make(map[uuid.UUID]shared.AgreementSnapshot),
		fulfillments: make(map[uuid.UUID]shared.FulfillmentSnapshot),
		resources:    make(map[uuid.UUID]shared.ResourceSnapshot),
		specs:        make(map[uuid.UUID]bool),
		idempotency:  make(map[idemKey]shared.IdempotencyRecord),
	}}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(ctx, &fakeTx{state: u.state})
}

func (u *fakeUoW) seedIntent(s *shared.IntentSnapshot)           { u.state.intents[s.ID] = *s }
func (u *fakeUoW) seedOffer(s *shared.OfferSnapshot)             { u.state.offers[s.ID] = *s }
func (u *fakeUoW) seedAgreement(s *shared.AgreementSnapshot)     { u.state.agreements[s.ID] = *s }
func (u *fakeUoW) seedFulfillment(s *shared.FulfillmentSnapshot) { u.state.fulfillments[s.ID] = *s }
func (u *fakeUoW) seedResource(s *shared.ResourceSnapshot)       { u.state.resources[s.ID] = *s }
func (u *fakeUoW) seedSpecification(id uuid.UUID)                { u.state.specs[id] = true }

func (u *fakeUoW) intent(id uuid.UUID) shared.IntentSnapshot           { return u.state.intents[id] }
func (u *fakeUoW) offer(id uuid.UUID) shared.OfferSnapshot             { return u.state.offers[id] }
func (u *fakeUoW) agreement(id uuid.UUID) shared.AgreementSnapshot     { return u.state.agreements[id] }
func (u *fakeUoW) fulfillment(id uuid.UUID) shared.FulfillmentSnapshot { return u.state.fulfillments[id] }

type fakeTx struct {
	state *fakeState
}

func (t *fakeTx) Intents() shared.IntentRepository           { return &fakeIntentRepo{t.state} }
func (t *fakeTx) Offers() shared.OfferRepository             { return &fakeOfferRepo{t.state} }
func (t *fakeTx) Agreements() shared.AgreementRepository     { return &fakeAgreementRepo{t.state} }
func (t *fakeTx) Fulfillments() shared.FulfillmentRepository { return &fakeFulfillmentRepo{t.state} }
func (t *fakeTx) Idempotency() shared.IdempotencyRepository  { return &fakeIdempotencyRepo{t.state} }
func (t *fakeTx) Reads() shared.CommandReads                 { return &fakeReads{t.state} }

type fakeIntentRepo struct {
	state *fakeState
}

func (r *fakeIntentRepo) Create(_ context.Context, it *intent.Intent) error {
	r.state.intents[it.ID()] = shared.IntentSnapshot{
		ID:              it.ID(),
		ReceiverID:      it.ReceiverID(),
		SpecificationID: it.SpecificationID(),
		Quantity:        it.Quantity().Int(),
		WindowStart:     it.Window().Start(),
		WindowEnd:       it.Window().End(),
		DueDate:         it.DueDate(),
		Status:          it.Status(),
	}
	return nil
}

func (r *fakeIntentRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to intent.Status) (bool, error) {
	s, ok := r.state.intents[id]
	if !ok || s.Status != from {
		return false, nil
	}
	s.Status = to
	r.state.intents[id] = s
	return true, nil
}

func (r *fakeIntentRepo) ExpirePendingBefore(_ context.Context, now time.Time) ([]uuid.UUID, error) {
	var expired []uuid.UUID
	for id, s := range r.state.intents {
		if s.Status != intent.StatusPending || s.WindowStart.After(now) {
			continue
		}
		if r.hasAgreement(id) {
			continue
		}
		s.Status = intent.StatusExpired
		r.state.intents[id] = s
		expired = append(expired, id)
	}
	return expired, nil
}

func (r *fakeIntentRepo) hasAgreement(intentID uuid.UUID) bool {
	for _, a := range r.state.agreements {
		if a.IntentID == intentID {
			return true
		}
	}
	return false
}

type fakeOfferRepo struct {
	state *fakeState
}

func (r *fakeOfferRepo) Create(_ context.Context, o *offer.Offer) error {
	snap := shared.OfferSnapshot{
		ID:          o.ID(),
		IntentID:    o.IntentID(),
		ProviderID:  o.ProviderID(),
		ResourceID:  o.ResourceID(),
		WindowStart: o.Window().Start(),
		WindowEnd:   o.Window().End(),
		Terms:       o.Terms(),
		Status:      o.Status(),
	}
	if !o.Price().IsZero() {
		cents := o.Price().Cents()
		currency := o.Price().Currency()
		snap.PriceCents = &cents
		snap.Currency = &currency
	}
	r.state.offers[o.ID()] = snap
	return nil
}

func (r *fakeOfferRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to offer.Status) (bool, error) {
	s, ok := r.state.offers[id]
	if !ok || s.Status != from {
		return false, nil
	}
	s.Status = to
	r.state.offers[id] = s
	return true, nil
}

func (r *fakeOfferRepo) DeclineSiblings(_ context.Context, intentID, acceptedOfferID uuid.UUID) ([]uuid.UUID, error) {
	var declined []uuid.UUID
	for id, s := range r.state.offers {
		if s.IntentID != intentID || id == acceptedOfferID || s.Status != offer.StatusProposed {
			continue
		}
		s.Status = offer.StatusDeclined
		r.state.offers[id] = s
		declined = append(declined, id)
	}
	return declined, nil
}

func (r *fakeOfferRepo) ExpireProposedBefore(_ context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	var expired []uuid.UUID
	for id, s := range r.state.offers {
		if s.Status != offer.StatusProposed || !s.CreatedAt.Before(cutoff) {
			continue
		}
		s.Status = offer.StatusExpired
		r.state.offers[id] = s
		expired = append(expired, id)
	}
	return expired, nil
}

type fakeAgreementRepo struct {
	state *fakeState
}

func (r *fakeAgreementRepo) Create(_ context.Context, a *agreement.Agreement) error {
	snap := shared.AgreementSnapshot{
		ID:          a.ID(),
		IntentID:    a.IntentID(),
		OfferID:     a.OfferID(),
		ProviderID:  a.ProviderID(),
		ReceiverID:  a.ReceiverID(),
		ResourceID:  a.ResourceID(),
		WindowStart: a.Window().Start(),
		WindowEnd:   a.Window().End(),
		Terms:       a.Terms(),
		Status:      a.Status(),
	}
	if !a.Price().IsZero() {
		cents := a.Price().Cents()
		currency := a.Price().Currency()
		snap.PriceCents = &cents
		snap.Currency = &currency
	}
	r.state.agreements[a.ID()] = snap
	return nil
}

func (r *fakeAgreementRepo) Sign(_ context.Context, id uuid.UUID, signedAt time.Time) (bool, error) {
	return r.update(id, agreement.StatusPending, agreement.StatusSigned, func(s *shared.AgreementSnapshot) {
		s.SignedAt = &signedAt
	})
}

func (r *fakeAgreementRepo) Activate(_ context.Context, id uuid.UUID) (bool, error) {
	return r.update(id, agreement.StatusSigned, agreement.StatusActive, nil)
}

func (r *fakeAgreementRepo) Fulfill(_ context.Context, id uuid.UUID, fulfilledAt time.Time) (bool, error) {
	return r.update(id, agreement.StatusActive, agreement.StatusFulfilled, func(s *shared.AgreementSnapshot) {
		s.FulfilledAt = &fulfilledAt
	})
}

func (r *fakeAgreementRepo) Cancel(_ context.Context, id uuid.UUID, reason string) (bool, error) {
	s, ok := r.state.agreements[id]
	if !ok || (s.Status != agreement.StatusPending && s.Status != agreement.StatusSigned) {
		return false, nil
	}
	s.Status = agreement.StatusCancelled
	r.state.agreements[id] = s
	return true, nil
}

func (r *fakeAgreementRepo) Dispute(_ context.Context, id uuid.UUID, reason string) (bool, error) {
	return r.update(id, agreement.StatusActive, agreement.StatusDisputed, nil)
}

func (r *fakeAgreementRepo) update(id uuid.UUID, from, to agreement.Status, mutate func(*shared.AgreementSnapshot)) (bool, error) {
	s, ok := r.state.agreements[id]
	if !ok || s.Status != from {
		return false, nil
	}
	s.Status = to
	if mutate != nil {
		mutate(&s)
	}
	r.state.agreements[id] = s
	return true, nil
}

type fakeFulfillmentRepo struct {
	state *fakeState
}

func (r *fakeFulfillmentRepo) Create(_ context.Context, f *fulfillment.Fulfillment) error {
	r.state.fulfillments[f.ID()] = shared.FulfillmentSnapshot{
		ID:          f.ID(),
		AgreementID: f.AgreementID(),
		OwnerID:     f.OwnerID(),
		Action:      f.Action(),
		Location:    f.Location(),
		Notes:       f.Notes(),
		Status:      f.Status(),
	}
	return nil
}

func (r *fakeFulfillmentRepo) Start(_ context.Context, id uuid.UUID, startedAt time.Time) (bool, error) {
	return r.update(id, []fulfillment.Status{fulfillment.StatusScheduled}, fulfillment.StatusInProgress, func(s *shared.FulfillmentSnapshot) {
		s.StartedAt = &startedAt
	})
}

func (r *fakeFulfillmentRepo) Complete(_ context.Context, id uuid.UUID, completedAt time.Time) (bool, error) {
	return r.update(id, []fulfillment.Status{fulfillment.StatusInProgress}, fulfillment.StatusCompleted, func(s *shared.FulfillmentSnapshot) {
		s.CompletedAt = &completedAt
	})
}

func (r *fakeFulfillmentRepo) Cancel(_ context.Context, id uuid.UUID) (bool, error) {
	return r.update(id, []fulfillment.Status{fulfillment.StatusScheduled, fulfillment.StatusInProgress}, fulfillment.StatusCancelled, nil)
}

func (r *fakeFulfillmentRepo) Fail(_ context.Context, id uuid.UUID) (bool, error) {
	return r.update(id, []fulfillment.Status{fulfillment.StatusScheduled, fulfillment.StatusInProgress}, fulfillment.StatusFailed, nil)
}

func (r *fakeFulfillmentRepo) update(id uuid.UUID, from []fulfillment.Status, to fulfillment.Status, mutate func(*shared.FulfillmentSnapshot)) (bool, error) {
	s, ok := r.state.fulfillments[id]
	if !ok {
		return false, nil
	}
	matched := false
	for _, f := range from {
		if s.Status == f {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}
	s.Status = to
	if mutate != nil {
		mutate(&s)
	}
	r.state.fulfillments[id] = s
	return true, nil
}

type fakeIdempotencyRepo struct {
	state *fakeState
}

func (r *fakeIdempotencyRepo) TryInsert(_ context.Context, key, actorID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	k := idemKey{key: key, actorID: actorID}
	if _, exists := r.state.idempotency[k]; exists {
		return false, nil
	}
	r.state.idempotency[k] = shared.IdempotencyRecord{
		Key:         key,
		ActorID:     actorID,
		Endpoint:    endpoint,
		Status:      "processing",
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r *fakeIdempotencyRepo) Get(_ context.Context, key, actorID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.state.idempotency[idemKey{key: key, actorID: actorID}]
	if !ok {
		return nil, errs.Mark(errs.New("idempotency record missing"), errs.ErrNotFound)
	}
	return &rec, nil
}

func (r *fakeIdempotencyRepo) MarkCompleted(_ context.Context, key, actorID uuid.UUID, resultID uuid.UUID) error {
	k := idemKey{key: key, actorID: actorID}
	rec, ok := r.state.idempotency[k]
	if !ok {
		return errs.Mark(errs.New("idempotency record missing"), errs.ErrNotFound)
	}
	rec.Status = "completed"
	id := resultID
	rec.ResultID = &id
	r.state.idempotency[k] = rec
	return nil
}

type fakeReads struct {
	state *fakeState
}

func (r *fakeReads) IntentForUpdate(_ context.Context, id uuid.UUID) (*shared.IntentSnapshot, error) {
	s, ok := r.state.intents[id]
	if !ok {
		return nil, errs.Mark(errs.New("intent missing"), errs.ErrNotFound)
	}
	return &s, nil
}

func (r *fakeReads) OfferForUpdate(_ context.Context, id uuid.UUID) (*shared.OfferSnapshot, error) {
	s, ok := r.state.offers[id]
	if !ok {
		return nil, errs.Mark(errs.New("offer missing"), errs.ErrNotFound)
	}
	return &s, nil
}

func (r *fakeReads) AgreementForUpdate(_ context.Context, id uuid.UUID) (*shared.AgreementSnapshot, error) {
	s, ok := r.state.agreements[id]
	if !ok {
		return nil, errs.Mark(errs.New("agreement missing"), errs.ErrNotFound)
	}
	return &s, nil
}

func (r *fakeReads) FulfillmentForUpdate(_ context.Context, id uuid.UUID) (*shared.FulfillmentSnapshot, error) {
	s, ok := r.state.fulfillments[id]
	if !ok {
		return nil, errs.Mark(errs.New("fulfillment missing"), errs.ErrNotFound)
	}
	return &s, nil
}

func (r *fakeReads) AgreementByIntent(_ context.Context, intentID uuid.UUID) (*shared.AgreementSnapshot, error) {
	for _, s := range r.state.agreements {
		if s.IntentID == intentID {
			snap := s
			return &snap, nil
		}
	}
	return nil, nil
}

func (r *fakeReads) BlockingOfferByProvider(_ context.Context, intentID, providerID uuid.UUID) (*shared.OfferSnapshot, error) {
	for _, s := range r.state.offers {
		if s.IntentID == intentID && s.ProviderID == providerID && s.Status.BlocksNewOffer() {
			snap := s
			return &snap, nil
		}
	}
	return nil, nil
}

func (r *fakeReads) FulfillmentByAction(_ context.Context, agreementID uuid.UUID, action fulfillment.Action) (*shared.FulfillmentSnapshot, error) {
	for _, s := range r.state.fulfillments {
		if s.AgreementID == agreementID && s.Action == action {
			snap := s
			return &snap, nil
		}
	}
	return nil, nil
}

func (r *fakeReads) CountBlockingAgreements(_ context.Context, resourceID uuid.UUID, start, end time.Time, excludeIntentID uuid.UUID) (int64, error) {
	var count int64
	for _, s := range r.state.agreements {
		if s.ResourceID != resourceID || s.IntentID == excludeIntentID || !s.Status.BlocksResource() {
			continue
		}
		if s.WindowStart.Before(end) && start.Before(s.WindowEnd) {
			count++
		}
	}
	return count, nil
}

func (r *fakeReads) ResourceByID(_ context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	s, ok := r.state.resources[id]
	if !ok {
		return nil, errs.Mark(errs.New("resource missing"), errs.ErrNotFound)
	}
	return &s, nil
}

func (r *fakeReads) SpecificationExists(_ context.Context, id uuid.UUID) (bool, error) {
	return r.state.specs[id], nil
}

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *capturePublisher) Publish(e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *capturePublisher) kinds() []events.Kind {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]events.Kind, 0, len(p.events))
	for _, e := range p.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
