package writerepo

import (
	"context"
	"time"

	"rentalflow/internal/domain/offer"
	"rentalflow/internal/infra"
	"rentalflow/internal/infra/db"

	"github.com/google/uuid"
)

type OfferRepository struct {
	db db.DBTX
}

func NewOfferRepository(dbtx db.DBTX) *OfferRepository {
	return &OfferRepository{db: dbtx}
}

func (r *OfferRepository) Create(ctx context.Context, o *offer.Offer) error {
	const query = `
		INSERT INTO offers (id, intent_id, provider_id, resource_id, window_start, window_end, price_cents, currency, terms, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	var priceCents *int64
	var currency *string
	if !o.Price().IsZero() {
		cents := o.Price().Cents()
		cur := o.Price().Currency()
		priceCents = &cents
		currency = &cur
	}

	_, err := r.db.Exec(ctx, query,
		o.ID(), o.IntentID(), o.ProviderID(), o.ResourceID(),
		o.Window().Start(), o.Window().End(), priceCents, currency, o.Terms(), o.Status().String(),
	)
	if err != nil {
		return wrapPgErr("failed to create offer", err)
	}
	return nil
}

func (r *OfferRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to offer.Status) (bool, error) {
	const query = `
		UPDATE offers SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`

	tag, err := r.db.Exec(ctx, query, id, from.String(), to.String())
	if err != nil {
		return false, wrapPgErr("failed to update offer status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *OfferRepository) DeclineSiblings(ctx context.Context, intentID, acceptedOfferID uuid.UUID) ([]uuid.UUID, error) {
	const query = `
		UPDATE offers SET status = $3, updated_at = now()
		WHERE intent_id = $1 AND id <> $2 AND status = $4
		RETURNING id`

	rows, err := r.db.Query(ctx, query, intentID, acceptedOfferID, offer.StatusDeclined.String(), offer.StatusProposed.String())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decline sibling offers", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan declined offer id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read declined offer ids", err)
	}
	return ids, nil
}

func (r *OfferRepository) ExpireProposedBefore(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	const query = `
		UPDATE offers SET status = $2, updated_at = now()
		WHERE status = $1 AND created_at < $3
		RETURNING id`

	rows, err := r.db.Query(ctx, query, offer.StatusProposed.String(), offer.StatusExpired.String(), cutoff)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to expire offers", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expired offer id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read expired offer ids", err)
	}
	return ids, nil
}
