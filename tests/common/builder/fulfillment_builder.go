//go:build unit || e2e

package builder

import (
	"time"

	domfulfillment "rentalflow/internal/domain/fulfillment"
	"rentalflow/internal/usecase/shared"

	"github.com/google/uuid"
)

type FulfillmentBuilder struct {
	ID          uuid.UUID
	AgreementID uuid.UUID
	OwnerID     uuid.UUID
	Action      domfulfillment.Action
	Location    string
	Notes       string
	Status      domfulfillment.Status
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewFulfillmentBuilder() *FulfillmentBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	return &FulfillmentBuilder{
		ID:          uuid.New(),
		AgreementID: uuid.New(),
		OwnerID:     uuid.New(),
		Action:      domfulfillment.ActionPickup,
		Location:    "depot A",
		Status:      domfulfillment.StatusScheduled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (b *FulfillmentBuilder) BuildDomain() *domfulfillment.Fulfillment {
	return domfulfillment.ReconstructFulfillment(
		b.ID, b.AgreementID, b.OwnerID,
		b.Action, b.Location, b.Notes, b.Status,
		b.StartedAt, b.CompletedAt, b.CreatedAt, b.UpdatedAt,
	)
}

func (b *FulfillmentBuilder) BuildSnapshot() *shared.FulfillmentSnapshot {
	return &shared.FulfillmentSnapshot{
		ID:          b.ID,
		AgreementID: b.AgreementID,
		OwnerID:     b.OwnerID,
		Action:      b.Action,
		Location:    b.Location,
		Notes:       b.Notes,
		Status:      b.Status,
		StartedAt:   b.StartedAt,
		CompletedAt: b.CompletedAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (b *FulfillmentBuilder) WithID(id uuid.UUID) *FulfillmentBuilder {
	b.ID = id
	return b
}

func (b *FulfillmentBuilder) WithAgreementID(id uuid.UUID) *FulfillmentBuilder {
	b.AgreementID = id
	return b
}

func (b *FulfillmentBuilder) WithOwnerID(id uuid.UUID) *FulfillmentBuilder {
	b.OwnerID = id
	return b
}

func (b *FulfillmentBuilder) WithAction(a domfulfillment.Action) *FulfillmentBuilder {
	b.Action = a
	return b
}

func (b *FulfillmentBuilder) WithStatus(s domfulfillment.Status) *FulfillmentBuilder {
	b.Status = s
	return b
}

func (b *FulfillmentBuilder) AsReturn() *FulfillmentBuilder {
	b.Action = domfulfillment.ActionReturn
	return b
}

func (b *FulfillmentBuilder) AsInProgress() *FulfillmentBuilder {
	b.Status = domfulfillment.StatusInProgress
	startedAt := b.CreatedAt.Add(time.Hour)
	b.StartedAt = &startedAt
	return b
}

func (b *FulfillmentBuilder) AsCompleted() *FulfillmentBuilder {
	b.AsInProgress()
	b.Status = domfulfillment.StatusCompleted
	completedAt := b.CreatedAt.Add(2 * time.Hour)
	b.CompletedAt = &completedAt
	return b
}
