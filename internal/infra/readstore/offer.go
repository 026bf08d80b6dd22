package readstore

import (
	"context"
	"errors"

	"rentalflow/internal/infra"
	"rentalflow/internal/infra/db"
	"rentalflow/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OfferReadStore struct {
	db db.DBTX
}

func NewOfferReadStore(dbtx db.DBTX) *OfferReadStore {
	return &OfferReadStore{db: dbtx}
}

func (s *OfferReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OfferView, error) {
	const query = `
		SELECT id, intent_id, provider_id, resource_id, window_start, window_end,
		       price_cents, currency, terms, status, created_at, updated_at
		FROM offers WHERE id = $1`

	var v queries.OfferView
	err := s.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.IntentID, &v.ProviderID, &v.ResourceID, &v.WindowStart, &v.WindowEnd,
		&v.PriceCents, &v.Currency, &v.Terms, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find offer by ID", err)
	}
	return &v, nil
}
