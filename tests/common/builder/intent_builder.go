//go:build unit || e2e

package builder

import (
	"time"

	domintent "rentalflow/internal/domain/intent"
	"rentalflow/internal/domain/rental"
	reqdto "rentalflow/internal/handler/dto/request"
	"rentalflow/internal/usecase/queries"
	"rentalflow/internal/usecase/shared"

	"github.com/google/uuid"
)

type IntentBuilder struct {
	ID              uuid.UUID
	ReceiverID      uuid.UUID
	SpecificationID uuid.UUID
	Quantity        int
	WindowStart     time.Time
	WindowEnd       time.Time
	DueDate         *time.Time
	Status          domintent.Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewIntentBuilder() *IntentBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	return &IntentBuilder{
		ID:              uuid.New(),
		ReceiverID:      uuid.New(),
		SpecificationID: uuid.New(),
		Quantity:        1,
		WindowStart:     now.Add(24 * time.Hour),
		WindowEnd:       now.Add(72 * time.Hour),
		Status:          domintent.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (b *IntentBuilder) BuildDomain() *domintent.Intent {
	qty, _ := rental.NewQuantity(b.Quantity)
	return domintent.ReconstructIntent(
		b.ID, b.ReceiverID, b.SpecificationID,
		qty,
		rental.ReconstructWindow(b.WindowStart, b.WindowEnd),
		b.DueDate, b.Status, b.CreatedAt, b.UpdatedAt,
	)
}

func (b *IntentBuilder) BuildSnapshot() *shared.IntentSnapshot {
	return &shared.IntentSnapshot{
		ID:              b.ID,
		ReceiverID:      b.ReceiverID,
		SpecificationID: b.SpecificationID,
		Quantity:        b.Quantity,
		WindowStart:     b.WindowStart,
		WindowEnd:       b.WindowEnd,
		DueDate:         b.DueDate,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (b *IntentBuilder) BuildView() *queries.IntentView {
	return &queries.IntentView{
		ID:              b.ID,
		Action:          "use",
		ReceiverID:      b.ReceiverID,
		SpecificationID: b.SpecificationID,
		Quantity:        b.Quantity,
		WindowStart:     b.WindowStart,
		WindowEnd:       b.WindowEnd,
		DueDate:         b.DueDate,
		Status:          b.Status.String(),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (b *IntentBuilder) BuildCreateRequestDTO() reqdto.CreateIntentRequest {
	return reqdto.CreateIntentRequest{
		SpecificationID: b.SpecificationID,
		Quantity:        b.Quantity,
		WindowStart:     b.WindowStart,
		WindowEnd:       b.WindowEnd,
		DueDate:         b.DueDate,
	}
}

func (b *IntentBuilder) WithID(id uuid.UUID) *IntentBuilder {
	b.ID = id
	return b
}

func (b *IntentBuilder) WithReceiverID(id uuid.UUID) *IntentBuilder {
	b.ReceiverID = id
	return b
}

func (b *IntentBuilder) WithSpecificationID(id uuid.UUID) *IntentBuilder {
	b.SpecificationID = id
	return b
}

func (b *IntentBuilder) WithQuantity(q int) *IntentBuilder {
	b.Quantity = q
	return b
}

func (b *IntentBuilder) WithWindow(start, end time.Time) *IntentBuilder {
	b.WindowStart = start
	b.WindowEnd = end
	return b
}

func (b *IntentBuilder) WithStatus(s domintent.Status) *IntentBuilder {
	b.Status = s
	return b
}

func (b *IntentBuilder) AsMatched() *IntentBuilder {
	b.Status = domintent.StatusMatched
	return b
}

func (b *IntentBuilder) AsCancelled() *IntentBuilder {
	b.Status = domintent.StatusCancelled
	return b
}
