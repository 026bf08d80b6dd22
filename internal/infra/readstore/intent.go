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

type IntentReadStore struct {
	db db.DBTX
}

func NewIntentReadStore(dbtx db.DBTX) *IntentReadStore {
	return &IntentReadStore{db: dbtx}
}

const intentColumns = `
	id, action, receiver_id, specification_id, quantity,
	window_start, window_end, due_date, status, created_at, updated_at`

func (s *IntentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.IntentView, error) {
	query := `SELECT ` + intentColumns + ` FROM intents WHERE id = $1`

	var v queries.IntentView
	err := s.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Action, &v.ReceiverID, &v.SpecificationID, &v.Quantity,
		&v.WindowStart, &v.WindowEnd, &v.DueDate, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("intent not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find intent by ID", err)
	}
	return &v, nil
}

func (s *IntentReadStore) FindOffersByIntent(ctx context.Context, intentID uuid.UUID) ([]queries.OfferView, error) {
	const query = `
		SELECT id, intent_id, provider_id, resource_id, window_start, window_end,
		       price_cents, currency, terms, status, created_at, updated_at
		FROM offers
		WHERE intent_id = $1
		ORDER BY created_at, id`

	rows, err := s.db.Query(ctx, query, intentID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find offers by intent", err)
	}
	defer rows.Close()

	var views []queries.OfferView
	for rows.Next() {
		var v queries.OfferView
		err := rows.Scan(
			&v.ID, &v.IntentID, &v.ProviderID, &v.ResourceID, &v.WindowStart, &v.WindowEnd,
			&v.PriceCents, &v.Currency, &v.Terms, &v.Status, &v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer row", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read offer rows", err)
	}
	return views, nil
}

func (s *IntentReadStore) FindByReceiver(ctx context.Context, receiverID uuid.UUID, limit int32) ([]queries.IntentView, error) {
	query := `SELECT ` + intentColumns + `
		FROM intents
		WHERE receiver_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := s.db.Query(ctx, query, receiverID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find intents by receiver", err)
	}
	defer rows.Close()

	var views []queries.IntentView
	for rows.Next() {
		var v queries.IntentView
		err := rows.Scan(
			&v.ID, &v.Action, &v.ReceiverID, &v.SpecificationID, &v.Quantity,
			&v.WindowStart, &v.WindowEnd, &v.DueDate, &v.Status, &v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan intent row", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read intent rows", err)
	}
	return views, nil
}
