package agreement

import (
	"errors"
	"time"

	"rentalflow/internal/domain/rental"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid agreement transition")
	ErrNotReceiver       = errors.New("actor is not the agreement receiver")
	ErrNotParty          = errors.New("actor is not a party to the agreement")
)

// Agreement is the binding contract formed from exactly one accepted Offer.
// Provider, receiver, resource, price and window are copied from the offer
// at creation and never change afterwards.
type Agreement struct {
	id           uuid.UUID
	intentID     uuid.UUID
	offerID      uuid.UUID
	providerID   uuid.UUID
	receiverID   uuid.UUID
	resourceID   uuid.UUID
	window       rental.Window
	price        rental.Money
	terms        string
	status       Status
	cancelReason string
	signedAt     *time.Time
	fulfilledAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func NewAgreement(
	intentID, offerID, providerID, receiverID, resourceID uuid.UUID,
	window rental.Window,
	price rental.Money,
	terms string,
) *Agreement {
	return &Agreement{
		id:         uuid.New(),
		intentID:   intentID,
		offerID:    offerID,
		providerID: providerID,
		receiverID: receiverID,
		resourceID: resourceID,
		window:     window,
		price:      price,
		terms:      terms,
		status:     StatusPending,
	}
}

func ReconstructAgreement(
	id, intentID, offerID, providerID, receiverID, resourceID uuid.UUID,
	window rental.Window,
	price rental.Money,
	terms string,
	status Status,
	cancelReason string,
	signedAt, fulfilledAt *time.Time,
	createdAt, updatedAt time.Time,
) *Agreement {
	return &Agreement{
		id:           id,
		intentID:     intentID,
		offerID:      offerID,
		providerID:   providerID,
		receiverID:   receiverID,
		resourceID:   resourceID,
		window:       window,
		price:        price,
		terms:        terms,
		status:       status,
		cancelReason: cancelReason,
		signedAt:     signedAt,
		fulfilledAt:  fulfilledAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (a *Agreement) ID() uuid.UUID          { return a.id }
func (a *Agreement) IntentID() uuid.UUID    { return a.intentID }
func (a *Agreement) OfferID() uuid.UUID     { return a.offerID }
func (a *Agreement) ProviderID() uuid.UUID  { return a.providerID }
func (a *Agreement) ReceiverID() uuid.UUID  { return a.receiverID }
func (a *Agreement) ResourceID() uuid.UUID  { return a.resourceID }
func (a *Agreement) Window() rental.Window  { return a.window }
func (a *Agreement) Price() rental.Money    { return a.price }
func (a *Agreement) Terms() string          { return a.terms }
func (a *Agreement) Status() Status         { return a.status }
func (a *Agreement) CancelReason() string   { return a.cancelReason }
func (a *Agreement) SignedAt() *time.Time   { return a.signedAt }
func (a *Agreement) FulfilledAt() *time.Time { return a.fulfilledAt }
func (a *Agreement) CreatedAt() time.Time   { return a.createdAt }
func (a *Agreement) UpdatedAt() time.Time   { return a.updatedAt }

func (a *Agreement) IsParty(actorID uuid.UUID) bool {
	return actorID == a.providerID || actorID == a.receiverID
}

// Sign is receiver-only and makes the pickup leg eligible for scheduling.
func (a *Agreement) Sign(actorID uuid.UUID, now time.Time) error {
	if actorID != a.receiverID {
		return ErrNotReceiver
	}
	if err := a.transition(StatusSigned); err != nil {
		return err
	}
	t := now
	a.signedAt = &t
	return nil
}

// Activate records that the first fulfillment leg has started.
func (a *Agreement) Activate() error {
	return a.transition(StatusActive)
}

// Fulfill closes the agreement once both legs completed.
func (a *Agreement) Fulfill(now time.Time) error {
	if err := a.transition(StatusFulfilled); err != nil {
		return err
	}
	t := now
	a.fulfilledAt = &t
	return nil
}

// Cancel is available to either party before the rental goes active. Once
// ACTIVE the only way out of a bad rental is the dispute path.
func (a *Agreement) Cancel(actorID uuid.UUID, reason string) error {
	if !a.IsParty(actorID) {
		return ErrNotParty
	}
	if err := a.transition(StatusCancelled); err != nil {
		return err
	}
	a.cancelReason = reason
	return nil
}

// Dispute flags an active agreement for manual disposition.
func (a *Agreement) Dispute(actorID uuid.UUID, reason string) error {
	if !a.IsParty(actorID) {
		return ErrNotParty
	}
	if err := a.transition(StatusDisputed); err != nil {
		return err
	}
	a.cancelReason = reason
	return nil
}

func (a *Agreement) transition(to Status) error {
	if !a.status.CanTransitionTo(to) {
		return ErrInvalidTransition
	}
	a.status = to
	return nil
}
