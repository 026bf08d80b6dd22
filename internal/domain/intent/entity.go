package intent

import (
	"errors"
	"time"

	"rentalflow/internal/domain/rental"

	"github.com/google/uuid"
)

// Action is fixed for rentals: the receiver requests use of a resource.
const ActionUse = "use"

var (
	ErrInvalidTransition = errors.New("invalid intent transition")
	ErrNotReceiver       = errors.New("actor is not the intent receiver")
)

// Intent is a receiver's declared request to use a resource of a given
// specification for a time window. Status fields are only mutated through
// the transition methods below.
type Intent struct {
	id              uuid.UUID
	receiverID      uuid.UUID
	specificationID uuid.UUID
	quantity        rental.Quantity
	window          rental.Window
	dueDate         *time.Time
	status          Status
	createdAt       time.Time
	updatedAt       time.Time
}

func NewIntent(
	receiverID, specificationID uuid.UUID,
	quantity rental.Quantity,
	window rental.Window,
	dueDate *time.Time,
) *Intent {
	return &Intent{
		id:              uuid.New(),
		receiverID:      receiverID,
		specificationID: specificationID,
		quantity:        quantity,
		window:          window,
		dueDate:         dueDate,
		status:          StatusPending,
	}
}

func ReconstructIntent(
	id, receiverID, specificationID uuid.UUID,
	quantity rental.Quantity,
	window rental.Window,
	dueDate *time.Time,
	status Status,
	createdAt, updatedAt time.Time,
) *Intent {
	return &Intent{
		id:              id,
		receiverID:      receiverID,
		specificationID: specificationID,
		quantity:        quantity,
		window:          window,
		dueDate:         dueDate,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (i *Intent) ID() uuid.UUID              { return i.id }
func (i *Intent) ReceiverID() uuid.UUID      { return i.receiverID }
func (i *Intent) SpecificationID() uuid.UUID { return i.specificationID }
func (i *Intent) Quantity() rental.Quantity  { return i.quantity }
func (i *Intent) Window() rental.Window      { return i.window }
func (i *Intent) DueDate() *time.Time        { return i.dueDate }
func (i *Intent) Status() Status             { return i.status }
func (i *Intent) CreatedAt() time.Time       { return i.createdAt }
func (i *Intent) UpdatedAt() time.Time       { return i.updatedAt }

func (i *Intent) IsOpen() bool { return i.status == StatusPending }

// Cancel is a receiver-only transition from PENDING.
func (i *Intent) Cancel(actorID uuid.UUID) error {
	if actorID != i.receiverID {
		return ErrNotReceiver
	}
	return i.transition(StatusCancelled)
}

// Match records that one of the intent's offers has been accepted.
func (i *Intent) Match() error {
	return i.transition(StatusMatched)
}

// Fulfill closes the intent once the return leg completed.
func (i *Intent) Fulfill() error {
	return i.transition(StatusFulfilled)
}

// Expire marks a pending intent whose window start passed without an
// agreement. Idempotent at the sweep level: already-expired intents are
// simply not selected again.
func (i *Intent) Expire(now time.Time) error {
	if !i.window.Started(now) {
		return ErrInvalidTransition
	}
	return i.transition(StatusExpired)
}

func (i *Intent) transition(to Status) error {
	if !i.status.CanTransitionTo(to) {
		return ErrInvalidTransition
	}
	i.status = to
	return nil
}
