//go:build unit || e2e

package builder

import (
	"time"

	domagreement "rentalflow/internal/domain/agreement"
	"rentalflow/internal/domain/rental"
	"rentalflow/internal/usecase/shared"

	"github.com/google/uuid"
)

type AgreementBuilder struct {
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
	Status      domagreement.Status
	SignedAt    *time.Time
	FulfilledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewAgreementBuilder() *AgreementBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	price := int64(5000)
	currency := "USD"
	return &AgreementBuilder{
		ID:          uuid.New(),
		IntentID:    uuid.New(),
		OfferID:     uuid.New(),
		ProviderID:  uuid.New(),
		ReceiverID:  uuid.New(),
		ResourceID:  uuid.New(),
		WindowStart: now.Add(24 * time.Hour),
		WindowEnd:   now.Add(72 * time.Hour),
		PriceCents:  &price,
		Currency:    &currency,
		Terms:       "standard terms",
		Status:      domagreement.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (b *AgreementBuilder) BuildDomain() *domagreement.Agreement {
	var price rental.Money
	if b.PriceCents != nil && b.Currency != nil {
		price, _ = rental.NewMoney(*b.PriceCents, *b.Currency)
	}
	return domagreement.ReconstructAgreement(
		b.ID, b.IntentID, b.OfferID, b.ProviderID, b.ReceiverID, b.ResourceID,
		rental.ReconstructWindow(b.WindowStart, b.WindowEnd),
		price, b.Terms, b.Status, "",
		b.SignedAt, b.FulfilledAt, b.CreatedAt, b.UpdatedAt,
	)
}

func (b *AgreementBuilder) BuildSnapshot() *shared.AgreementSnapshot {
	return &shared.AgreementSnapshot{
		ID:          b.ID,
		IntentID:    b.IntentID,
		OfferID:     b.OfferID,
		ProviderID:  b.ProviderID,
		ReceiverID:  b.ReceiverID,
		ResourceID:  b.ResourceID,
		WindowStart: b.WindowStart,
		WindowEnd:   b.WindowEnd,
		PriceCents:  b.PriceCents,
		Currency:    b.Currency,
		Terms:       b.Terms,
		Status:      b.Status,
		SignedAt:    b.SignedAt,
		FulfilledAt: b.FulfilledAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (b *AgreementBuilder) WithID(id uuid.UUID) *AgreementBuilder {
	b.ID = id
	return b
}

func (b *AgreementBuilder) WithIntentID(id uuid.UUID) *AgreementBuilder {
	b.IntentID = id
	return b
}

func (b *AgreementBuilder) WithOfferID(id uuid.UUID) *AgreementBuilder {
	b.OfferID = id
	return b
}

func (b *AgreementBuilder) WithProviderID(id uuid.UUID) *AgreementBuilder {
	b.ProviderID = id
	return b
}

func (b *AgreementBuilder) WithReceiverID(id uuid.UUID) *AgreementBuilder {
	b.ReceiverID = id
	return b
}

func (b *AgreementBuilder) WithResourceID(id uuid.UUID) *AgreementBuilder {
	b.ResourceID = id
	return b
}

func (b *AgreementBuilder) WithWindow(start, end time.Time) *AgreementBuilder {
	b.WindowStart = start
	b.WindowEnd = end
	return b
}

func (b *AgreementBuilder) WithStatus(s domagreement.Status) *AgreementBuilder {
	b.Status = s
	return b
}

func (b *AgreementBuilder) AsSigned() *AgreementBuilder {
	b.Status = domagreement.StatusSigned
	signedAt := b.CreatedAt.Add(time.Hour)
	b.SignedAt = &signedAt
	return b
}

func (b *AgreementBuilder) AsActive() *AgreementBuilder {
	b.AsSigned()
	b.Status = domagreement.StatusActive
	return b
}
