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

type AgreementReadStore struct {
	db db.DBTX
}

func NewAgreementReadStore(dbtx db.DBTX) *AgreementReadStore {
	return &AgreementReadStore{db: dbtx}
}

func (s *AgreementReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AgreementView, error) {
	const query = `
		SELECT id, intent_id, offer_id, provider_id, receiver_id, resource_id,
		       window_start, window_end, price_cents, currency, terms, status,
		       signed_at, fulfilled_at, created_at, updated_at
		FROM agreements WHERE id = $1`

	var v queries.AgreementView
	err := s.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.IntentID, &v.OfferID, &v.ProviderID, &v.ReceiverID, &v.ResourceID,
		&v.WindowStart, &v.WindowEnd, &v.PriceCents, &v.Currency, &v.Terms, &v.Status,
		&v.SignedAt, &v.FulfilledAt, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("agreement not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find agreement by ID", err)
	}
	return &v, nil
}

func (s *AgreementReadStore) FindFulfillmentsByAgreement(ctx context.Context, agreementID uuid.UUID) ([]queries.FulfillmentView, error) {
	const query = `
		SELECT id, agreement_id, owner_id, action, location, notes, status,
		       started_at, completed_at, created_at, updated_at
		FROM fulfillments
		WHERE agreement_id = $1
		ORDER BY action`

	rows, err := s.db.Query(ctx, query, agreementID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find fulfillments by agreement", err)
	}
	defer rows.Close()

	var views []queries.FulfillmentView
	for rows.Next() {
		var v queries.FulfillmentView
		err := rows.Scan(
			&v.ID, &v.AgreementID, &v.OwnerID, &v.Action, &v.Location, &v.Notes, &v.Status,
			&v.StartedAt, &v.CompletedAt, &v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan fulfillment row", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read fulfillment rows", err)
	}
	return views, nil
}
