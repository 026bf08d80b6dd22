package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTOs for the read side)

type IntentView struct {
	ID              uuid.UUID  `json:"id"`
	Action          string     `json:"action"`
	ReceiverID      uuid.UUID  `json:"receiver_id"`
	SpecificationID uuid.UUID  `json:"specification_id"`
	Quantity        int        `json:"quantity"`
	WindowStart     time.Time  `json:"window_start"`
	WindowEnd       time.Time  `json:"window_end"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Offers []OfferView `json:"offers,omitempty"`
}

type OfferView struct {
	ID          uuid.UUID `json:"id"`
	IntentID    uuid.UUID `json:"intent_id"`
	ProviderID  uuid.UUID `json:"provider_id"`
	ResourceID  uuid.UUID `json:"resource_id"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	PriceCents  *int64    `json:"price_cents,omitempty"`
	Currency    *string   `json:"currency,omitempty"`
	Terms       string    `json:"terms,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AgreementView struct {
	ID          uuid.UUID  `json:"id"`
	IntentID    uuid.UUID  `json:"intent_id"`
	OfferID     uuid.UUID  `json:"offer_id"`
	ProviderID  uuid.UUID  `json:"provider_id"`
	ReceiverID  uuid.UUID  `json:"receiver_id"`
	ResourceID  uuid.UUID  `json:"resource_id"`
	WindowStart time.Time  `json:"window_start"`
	WindowEnd   time.Time  `json:"window_end"`
	PriceCents  *int64     `json:"price_cents,omitempty"`
	Currency    *string    `json:"currency,omitempty"`
	Terms       string     `json:"terms,omitempty"`
	Status      string     `json:"status"`
	SignedAt    *time.Time `json:"signed_at,omitempty"`
	FulfilledAt *time.Time `json:"fulfilled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Fulfillments []FulfillmentView `json:"fulfillments,omitempty"`
}

type FulfillmentView struct {
	ID          uuid.UUID  `json:"id"`
	AgreementID uuid.UUID  `json:"agreement_id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	Action      string     `json:"action"`
	Location    string     `json:"location"`
	Notes       string     `json:"notes,omitempty"`
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ResourceView struct {
	ID                uuid.UUID `json:"id"`
	SpecificationID   uuid.UUID `json:"specification_id"`
	Name              string    `json:"name"`
	AvailabilityStart time.Time `json:"availability_start"`
	AvailabilityEnd   time.Time `json:"availability_end"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type PartyView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
