package shared

import (
	"time"

	"rentalflow/internal/domain/agreement"
	"rentalflow/internal/domain/fulfillment"
	"rentalflow/internal/domain/intent"
	"rentalflow/internal/domain/offer"

	"github.com/google/uuid"
)

// Command-side snapshots keep the write path independent of the read-side
// view types (CQRS separation).

type IntentSnapshot struct {
	ID              uuid.UUID
	ReceiverID      uuid.UUID
	SpecificationID uuid.UUID
	Quantity        int
	WindowStart     time.Time
	WindowEnd       time.Time
	DueDate         *time.Time
	Status          intent.Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type OfferSnapshot struct {
	ID          uuid.UUID
	IntentID    uuid.UUID
	ProviderID  uuid.UUID
	ResourceID  uuid.UUID
	WindowStart time.Time
	WindowEnd   time.Time
	PriceCents  *int64
	Currency    *string
	Terms       string
	Status      offer.Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type AgreementSnapshot struct {
	ID          uuid.UUID
	IntentID    uuid.UUID
	OfferID     uuid.UUID
	ProviderID  uuid.UUID
	ReceiverID  uuid.UUID
	ResourceID  uuid.UUID
	WindowStart time.Time
	WindowEnd   time.Time
	PriceCents  *int64
	Currency    *string
	Terms       string
	Status      agreement.Status
	SignedAt    *time.Time
	FulfilledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type FulfillmentSnapshot struct {
	ID          uuid.UUID
	AgreementID uuid.UUID
	OwnerID     uuid.UUID
	Action      fulfillment.Action
	Location    string
	Notes       string
	Status      fulfillment.Status
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ResourceSnapshot struct {
	ID                uuid.UUID
	SpecificationID   uuid.UUID
	Name              string
	AvailabilityStart time.Time
	AvailabilityEnd   time.Time
}
