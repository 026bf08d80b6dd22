//go:build unit || e2e

package builder

import (
	"time"

	domoffer "rentalflow/internal/domain/offer"
	"rentalflow/internal/domain/rental"
	reqdto "rentalflow/internal/handler/dto/request"
	"rentalflow/internal/usecase/shared"

	"github.com/google/uuid"
)

type OfferBuilder struct {
	ID          uuid.UUID
	IntentID    uuid.UUID
	ProviderID  uuid.UUID
	ResourceID  uuid.UUID
	WindowStart time.Time
	WindowEnd   time.Time
	PriceCents  *int64
	Currency    *string
	Terms       string
	Status      domoffer.Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewOfferBuilder() *OfferBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	price := int64(5000)
	currency := "USD"
	return &OfferBuilder{
		ID:          uuid.New(),
		IntentID:    uuid.New(),
		ProviderID:  uuid.New(),
		ResourceID:  uuid.New(),
		WindowStart: now.Add(24 * time.Hour),
		WindowEnd:   now.Add(72 * time.Hour),
		PriceCents:  &price,
		Currency:    &currency,
		Terms:       "standard terms",
		Status:      domoffer.StatusProposed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (b *OfferBuilder) BuildDomain() *domoffer.Offer {
	var price rental.Money
	if b.PriceCents != nil && b.Currency != nil {
		price, _ = rental.NewMoney(*b.PriceCents, *b.Currency)
	}
	return domoffer.ReconstructOffer(
		b.ID, b.IntentID, b.ProviderID, b.ResourceID,
		rental.ReconstructWindow(b.WindowStart, b.WindowEnd),
		price, b.Terms, b.Status, b.CreatedAt, b.UpdatedAt,
	)
}

func (b *OfferBuilder) BuildSnapshot() *shared.OfferSnapshot {
	return &shared.OfferSnapshot{
		ID:          b.ID,
		IntentID:    b.IntentID,
		ProviderID:  b.ProviderID,
		ResourceID:  b.ResourceID,
		WindowStart: b.WindowStart,
		WindowEnd:   b.WindowEnd,
		PriceCents:  b.PriceCents,
		Currency:    b.Currency,
		Terms:       b.Terms,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (b *OfferBuilder) BuildCreateRequestDTO() reqdto.CreateOfferRequest {
	return reqdto.CreateOfferRequest{
		IntentID:    b.IntentID,
		ResourceID:  b.ResourceID,
		WindowStart: b.WindowStart,
		WindowEnd:   b.WindowEnd,
		PriceCents:  b.PriceCents,
		Currency:    b.Currency,
		Terms:       b.Terms,
	}
}

func (b *OfferBuilder) WithID(id uuid.UUID) *OfferBuilder {
	b.ID = id
	return b
}

func (b *OfferBuilder) WithIntentID(id uuid.UUID) *OfferBuilder {
	b.IntentID = id
	return b
}

func (b *OfferBuilder) WithProviderID(id uuid.UUID) *OfferBuilder {
	b.ProviderID = id
	return b
}

func (b *OfferBuilder) WithResourceID(id uuid.UUID) *OfferBuilder {
	b.ResourceID = id
	return b
}

func (b *OfferBuilder) WithWindow(start, end time.Time) *OfferBuilder {
	b.WindowStart = start
	b.WindowEnd = end
	return b
}

func (b *OfferBuilder) WithStatus(s domoffer.Status) *OfferBuilder {
	b.Status = s
	return b
}

func (b *OfferBuilder) WithoutPrice() *OfferBuilder {
	b.PriceCents = nil
	b.Currency = nil
	return b
}

func (b *OfferBuilder) AsAccepted() *OfferBuilder {
	b.Status = domoffer.StatusAccepted
	return b
}
