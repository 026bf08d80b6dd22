package offer

import (
	"errors"
	"time"

	"rentalflow/internal/domain/rental"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid offer transition")
	ErrNotProvider       = errors.New("actor is not the offer provider")
	ErrWindowOutOfBounds = errors.New("offer window not contained in intent window")
)

// Offer is a provider's proposal to satisfy one Intent with a concrete
// resource instance. Soft-terminal: offers are never deleted, only moved to
// a terminal status.
type Offer struct {
	id         uuid.UUID
	intentID   uuid.UUID
	providerID uuid.UUID
	resourceID uuid.UUID
	window     rental.Window
	price      rental.Money
	terms      string
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

// NewOffer validates window containment against the intent window; every
// other creation guard (intent open, duplicate provider offer, resource
// availability) needs repository state and lives in the command layer.
func NewOffer(
	intentID, providerID, resourceID uuid.UUID,
	window, intentWindow rental.Window,
	price rental.Money,
	terms string,
) (*Offer, error) {
	if !window.Within(intentWindow) {
		return nil, ErrWindowOutOfBounds
	}
	return &Offer{
		id:         uuid.New(),
		intentID:   intentID,
		providerID: providerID,
		resourceID: resourceID,
		window:     window,
		price:      price,
		terms:      terms,
		status:     StatusProposed,
	}, nil
}

func ReconstructOffer(
	id, intentID, providerID, resourceID uuid.UUID,
	window rental.Window,
	price rental.Money,
	terms string,
	status Status,
	createdAt, updatedAt time.Time,
) *Offer {
	return &Offer{
		id:         id,
		intentID:   intentID,
		providerID: providerID,
		resourceID: resourceID,
		window:     window,
		price:      price,
		terms:      terms,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (o *Offer) ID() uuid.UUID         { return o.id }
func (o *Offer) IntentID() uuid.UUID   { return o.intentID }
func (o *Offer) ProviderID() uuid.UUID { return o.providerID }
func (o *Offer) ResourceID() uuid.UUID { return o.resourceID }
func (o *Offer) Window() rental.Window { return o.window }
func (o *Offer) Price() rental.Money   { return o.price }
func (o *Offer) Terms() string         { return o.terms }
func (o *Offer) Status() Status        { return o.status }
func (o *Offer) CreatedAt() time.Time  { return o.createdAt }
func (o *Offer) UpdatedAt() time.Time  { return o.updatedAt }

// Accept moves a proposed offer to accepted. Receiver authorization is
// checked against the parent intent by the caller.
func (o *Offer) Accept() error {
	return o.transition(StatusAccepted)
}

// Decline is the receiver-side rejection of a proposed offer.
func (o *Offer) Decline() error {
	return o.transition(StatusDeclined)
}

// Withdraw is the provider-side retraction of their own proposed offer.
func (o *Offer) Withdraw(actorID uuid.UUID) error {
	if actorID != o.providerID {
		return ErrNotProvider
	}
	return o.transition(StatusWithdrawn)
}

func (o *Offer) Expire() error {
	return o.transition(StatusExpired)
}

func (o *Offer) transition(to Status) error {
	if !o.status.CanTransitionTo(to) {
		return ErrInvalidTransition
	}
	o.status = to
	return nil
}
