package fulfillment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid fulfillment transition")
	ErrNotOwner          = errors.New("actor does not own this fulfillment leg")
	ErrInvalidAction     = errors.New("unknown fulfillment action")
)

// Fulfillment is one physical leg of executing a signed agreement. The
// provider owns the pickup leg, the receiver owns the return leg; only the
// owning party may advance it.
type Fulfillment struct {
	id          uuid.UUID
	agreementID uuid.UUID
	ownerID     uuid.UUID
	action      Action
	location    string
	notes       string
	status      Status
	startedAt   *time.Time
	completedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func NewFulfillment(
	agreementID, ownerID uuid.UUID,
	action Action,
	location, notes string,
) (*Fulfillment, error) {
	if !action.IsValid() {
		return nil, ErrInvalidAction
	}
	return &Fulfillment{
		id:          uuid.New(),
		agreementID: agreementID,
		ownerID:     ownerID,
		action:      action,
		location:    location,
		notes:       notes,
		status:      StatusScheduled,
	}, nil
}

func ReconstructFulfillment(
	id, agreementID, ownerID uuid.UUID,
	action Action,
	location, notes string,
	status Status,
	startedAt, completedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Fulfillment {
	return &Fulfillment{
		id:          id,
		agreementID: agreementID,
		ownerID:     ownerID,
		action:      action,
		location:    location,
		notes:       notes,
		status:      status,
		startedAt:   startedAt,
		completedAt: completedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (f *Fulfillment) ID() uuid.UUID          { return f.id }
func (f *Fulfillment) AgreementID() uuid.UUID { return f.agreementID }
func (f *Fulfillment) OwnerID() uuid.UUID     { return f.ownerID }
func (f *Fulfillment) Action() Action         { return f.action }
func (f *Fulfillment) Location() string       { return f.location }
func (f *Fulfillment) Notes() string          { return f.notes }
func (f *Fulfillment) Status() Status         { return f.status }
func (f *Fulfillment) StartedAt() *time.Time  { return f.startedAt }
func (f *Fulfillment) CompletedAt() *time.Time { return f.completedAt }
func (f *Fulfillment) CreatedAt() time.Time   { return f.createdAt }
func (f *Fulfillment) UpdatedAt() time.Time   { return f.updatedAt }

func (f *Fulfillment) Start(actorID uuid.UUID, now time.Time) error {
	if actorID != f.ownerID {
		return ErrNotOwner
	}
	if err := f.transition(StatusInProgress); err != nil {
		return err
	}
	t := now
	f.startedAt = &t
	return nil
}

func (f *Fulfillment) Complete(actorID uuid.UUID, now time.Time) error {
	if actorID != f.ownerID {
		return ErrNotOwner
	}
	if err := f.transition(StatusCompleted); err != nil {
		return err
	}
	t := now
	f.completedAt = &t
	return nil
}

// Cancel and Fail never cascade to the agreement; a dead leg surfaces as a
// blocker needing explicit agreement-level disposition.
func (f *Fulfillment) Cancel(actorID uuid.UUID) error {
	if actorID != f.ownerID {
		return ErrNotOwner
	}
	return f.transition(StatusCancelled)
}

func (f *Fulfillment) Fail(actorID uuid.UUID) error {
	if actorID != f.ownerID {
		return ErrNotOwner
	}
	return f.transition(StatusFailed)
}

func (f *Fulfillment) transition(to Status) error {
	if !f.status.CanTransitionTo(to) {
		return ErrInvalidTransition
	}
	f.status = to
	return nil
}
