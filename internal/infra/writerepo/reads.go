package writerepo

import (
	"context"
	"errors"
	"time"

	"rentalflow/internal/domain/agreement"
	"rentalflow/internal/domain/fulfillment"
	"rentalflow/internal/infra"
	"rentalflow/internal/infra/db"
	"rentalflow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CommandReads serves fresh in-transaction reads for the write path. The
// ForUpdate queries take row locks so conflicting lifecycle writes on the
// same intent or agreement serialize instead of racing.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{db: dbtx}
}

func (r *CommandReads) IntentForUpdate(ctx context.Context, id uuid.UUID) (*shared.IntentSnapshot, error) {
	const query = `
		SELECT id, receiver_id, specification_id, quantity, window_start, window_end, due_date, status, created_at, updated_at
		FROM intents WHERE id = $1
		FOR UPDATE`

	var s shared.IntentSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.ReceiverID, &s.SpecificationID, &s.Quantity,
		&s.WindowStart, &s.WindowEnd, &s.DueDate, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("intent not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read intent", err)
	}
	return &s, nil
}

func (r *CommandReads) OfferForUpdate(ctx context.Context, id uuid.UUID) (*shared.OfferSnapshot, error) {
	const query = `
		SELECT id, intent_id, provider_id, resource_id, window_start, window_end, price_cents, currency, terms, status, created_at, updated_at
		FROM offers WHERE id = $1
		FOR UPDATE`

	s, err := r.scanOffer(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read offer", err)
	}
	return s, nil
}

func (r *CommandReads) AgreementForUpdate(ctx context.Context, id uuid.UUID) (*shared.AgreementSnapshot, error) {
	const query = `
		SELECT id, intent_id, offer_id, provider_id, receiver_id, resource_id, window_start, window_end,
		       price_cents, currency, terms, status, signed_at, fulfilled_at, created_at, updated_at
		FROM agreements WHERE id = $1
		FOR UPDATE`

	s, err := r.scanAgreement(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("agreement not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read agreement", err)
	}
	return s, nil
}

func (r *CommandReads) FulfillmentForUpdate(ctx context.Context, id uuid.UUID) (*shared.FulfillmentSnapshot, error) {
	const query = `
		SELECT id, agreement_id, owner_id, action, location, notes, status, started_at, completed_at, created_at, updated_at
		FROM fulfillments WHERE id = $1
		FOR UPDATE`

	s, err := r.scanFulfillment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("fulfillment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read fulfillment", err)
	}
	return s, nil
}

func (r *CommandReads) AgreementByIntent(ctx context.Context, intentID uuid.UUID) (*shared.AgreementSnapshot, error) {
	const query = `
		SELECT id, intent_id, offer_id, provider_id, receiver_id, resource_id, window_start, window_end,
		       price_cents, currency, terms, status, signed_at, fulfilled_at, created_at, updated_at
		FROM agreements WHERE intent_id = $1`

	s, err := r.scanAgreement(r.db.QueryRow(ctx, query, intentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to read agreement by intent", err)
	}
	return s, nil
}

func (r *CommandReads) BlockingOfferByProvider(ctx context.Context, intentID, providerID uuid.UUID) (*shared.OfferSnapshot, error) {
	// Declined and expired offers still block; only withdrawal frees the
	// provider's slot on an intent.
	const query = `
		SELECT id, intent_id, provider_id, resource_id, window_start, window_end, price_cents, currency, terms, status, created_at, updated_at
		FROM offers
		WHERE intent_id = $1 AND provider_id = $2 AND status <> 'withdrawn'
		ORDER BY created_at DESC
		LIMIT 1`

	s, err := r.scanOffer(r.db.QueryRow(ctx, query, intentID, providerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to read provider offer", err)
	}
	return s, nil
}

func (r *CommandReads) FulfillmentByAction(ctx context.Context, agreementID uuid.UUID, action fulfillment.Action) (*shared.FulfillmentSnapshot, error) {
	const query = `
		SELECT id, agreement_id, owner_id, action, location, notes, status, started_at, completed_at, created_at, updated_at
		FROM fulfillments
		WHERE agreement_id = $1 AND action = $2`

	s, err := r.scanFulfillment(r.db.QueryRow(ctx, query, agreementID, action.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to read fulfillment by action", err)
	}
	return s, nil
}

func (r *CommandReads) CountBlockingAgreements(
	ctx context.Context,
	resourceID uuid.UUID,
	start, end time.Time,
	excludeIntentID uuid.UUID,
) (int64, error) {
	const query = `
		SELECT count(*)
		FROM agreements
		WHERE resource_id = $1
		  AND intent_id <> $2
		  AND status = ANY($3)
		  AND window_start < $5
		  AND $4 < window_end`

	blocking := []string{agreement.StatusSigned.String(), agreement.StatusActive.String()}
	var count int64
	err := r.db.QueryRow(ctx, query, resourceID, excludeIntentID, blocking, start, end).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count blocking agreements", err)
	}
	return count, nil
}

func (r *CommandReads) ResourceByID(ctx context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	const query = `
		SELECT id, specification_id, name, availability_start, availability_end
		FROM resources WHERE id = $1`

	var s shared.ResourceSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.SpecificationID, &s.Name, &s.AvailabilityStart, &s.AvailabilityEnd,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read resource", err)
	}
	return &s, nil
}

func (r *CommandReads) SpecificationExists(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM resource_specifications WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check specification", err)
	}
	return exists, nil
}

func (r *CommandReads) scanOffer(row pgx.Row) (*shared.OfferSnapshot, error) {
	var s shared.OfferSnapshot
	err := row.Scan(
		&s.ID, &s.IntentID, &s.ProviderID, &s.ResourceID,
		&s.WindowStart, &s.WindowEnd, &s.PriceCents, &s.Currency, &s.Terms, &s.Status,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CommandReads) scanAgreement(row pgx.Row) (*shared.AgreementSnapshot, error) {
	var s shared.AgreementSnapshot
	err := row.Scan(
		&s.ID, &s.IntentID, &s.OfferID, &s.ProviderID, &s.ReceiverID, &s.ResourceID,
		&s.WindowStart, &s.WindowEnd, &s.PriceCents, &s.Currency, &s.Terms, &s.Status,
		&s.SignedAt, &s.FulfilledAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CommandReads) scanFulfillment(row pgx.Row) (*shared.FulfillmentSnapshot, error) {
	var s shared.FulfillmentSnapshot
	err := row.Scan(
		&s.ID, &s.AgreementID, &s.OwnerID, &s.Action, &s.Location, &s.Notes, &s.Status,
		&s.StartedAt, &s.CompletedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
