package writerepo

import (
	"context"
	"time"

	"rentalflow/internal/domain/agreement"
	"rentalflow/internal/infra/db"

	"github.com/google/uuid"
)

type AgreementRepository struct {
	db db.DBTX
}

func NewAgreementRepository(dbtx db.DBTX) *AgreementRepository {
	return &AgreementRepository{db: dbtx}
}

func (r *AgreementRepository) Create(ctx context.Context, a *agreement.Agreement) error {
	const query = `
		INSERT INTO agreements (id, intent_id, offer_id, provider_id, receiver_id, resource_id, window_start, window_end, price_cents, currency, terms, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	var priceCents *int64
	var currency *string
	if !a.Price().IsZero() {
		cents := a.Price().Cents()
		cur := a.Price().Currency()
		priceCents = &cents
		currency = &cur
	}

	_, err := r.db.Exec(ctx, query,
		a.ID(), a.IntentID(), a.OfferID(), a.ProviderID(), a.ReceiverID(), a.ResourceID(),
		a.Window().Start(), a.Window().End(), priceCents, currency, a.Terms(), a.Status().String(),
	)
	if err != nil {
		return wrapPgErr("failed to create agreement", err)
	}
	return nil
}

func (r *AgreementRepository) Sign(ctx context.Context, id uuid.UUID, signedAt time.Time) (bool, error) {
	const query = `
		UPDATE agreements SET status = $3, signed_at = $4, updated_at = now()
		WHERE id = $1 AND status = $2`

	tag, err := r.db.Exec(ctx, query, id, agreement.StatusPending.String(), agreement.StatusSigned.String(), signedAt)
	if err != nil {
		return false, wrapPgErr("failed to sign agreement", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *AgreementRepository) Activate(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `
		UPDATE agreements SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`

	tag, err := r.db.Exec(ctx, query, id, agreement.StatusSigned.String(), agreement.StatusActive.String())
	if err != nil {
		return false, wrapPgErr("failed to activate agreement", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *AgreementRepository) Fulfill(ctx context.Context, id uuid.UUID, fulfilledAt time.Time) (bool, error) {
	const query = `
		UPDATE agreements SET status = $3, fulfilled_at = $4, updated_at = now()
		WHERE id = $1 AND status = $2`

	tag, err := r.db.Exec(ctx, query, id, agreement.StatusActive.String(), agreement.StatusFulfilled.String(), fulfilledAt)
	if err != nil {
		return false, wrapPgErr("failed to fulfill agreement", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *AgreementRepository) Cancel(ctx context.Context, id uuid.UUID, reason string) (bool, error) {
	const query = `
		UPDATE agreements SET status = $4, cancel_reason = $3, updated_at = now()
		WHERE id = $1 AND status = ANY($2)`

	from := []string{agreement.StatusPending.String(), agreement.StatusSigned.String()}
	tag, err := r.db.Exec(ctx, query, id, from, reason, agreement.StatusCancelled.String())
	if err != nil {
		return false, wrapPgErr("failed to cancel agreement", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *AgreementRepository) Dispute(ctx context.Context, id uuid.UUID, reason string) (bool, error) {
	const query = `
		UPDATE agreements SET status = $4, cancel_reason = $3, updated_at = now()
		WHERE id = $1 AND status = $2`

	tag, err := r.db.Exec(ctx, query, id, agreement.StatusActive.String(), reason, agreement.StatusDisputed.String())
	if err != nil {
		return false, wrapPgErr("failed to dispute agreement", err)
	}
	return tag.RowsAffected() == 1, nil
}
