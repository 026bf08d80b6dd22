package writerepo

import (
	"context"
	"time"

	"rentalflow/internal/domain/fulfillment"
	"rentalflow/internal/infra/db"

	"github.com/google/uuid"
)

type FulfillmentRepository struct {
	db db.DBTX
}

func NewFulfillmentRepository(dbtx db.DBTX) *FulfillmentRepository {
	return &FulfillmentRepository{db: dbtx}
}

func (r *FulfillmentRepository) Create(ctx context.Context, f *fulfillment.Fulfillment) error {
	const query = `
		INSERT INTO fulfillments (id, agreement_id, owner_id, action, location, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		f.ID(), f.AgreementID(), f.OwnerID(), f.Action().String(), f.Location(), f.Notes(), f.Status().String(),
	)
	if err != nil {
		return wrapPgErr("failed to create fulfillment", err)
	}
	return nil
}

func (r *FulfillmentRepository) Start(ctx context.Context, id uuid.UUID, startedAt time.Time) (bool, error) {
	const query = `
		UPDATE fulfillments SET status = $3, started_at = $4, updated_at = now()
		WHERE id = $1 AND status = $2`

	tag, err := r.db.Exec(ctx, query, id, fulfillment.StatusScheduled.String(), fulfillment.StatusInProgress.String(), startedAt)
	if err != nil {
		return false, wrapPgErr("failed to start fulfillment", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *FulfillmentRepository) Complete(ctx context.Context, id uuid.UUID, completedAt time.Time) (bool, error) {
	const query = `
		UPDATE fulfillments SET status = $3, completed_at = $4, updated_at = now()
		WHERE id = $1 AND status = $2`

	tag, err := r.db.Exec(ctx, query, id, fulfillment.StatusInProgress.String(), fulfillment.StatusCompleted.String(), completedAt)
	if err != nil {
		return false, wrapPgErr("failed to complete fulfillment", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *FulfillmentRepository) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.terminate(ctx, id, fulfillment.StatusCancelled)
}

func (r *FulfillmentRepository) Fail(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.terminate(ctx, id, fulfillment.StatusFailed)
}

func (r *FulfillmentRepository) terminate(ctx context.Context, id uuid.UUID, to fulfillment.Status) (bool, error) {
	const query = `
		UPDATE fulfillments SET status = $3, updated_at = now()
		WHERE id = $1 AND status = ANY($2)`

	from := []string{fulfillment.StatusScheduled.String(), fulfillment.StatusInProgress.String()}
	tag, err := r.db.Exec(ctx, query, id, from, to.String())
	if err != nil {
		return false, wrapPgErr("failed to terminate fulfillment", err)
	}
	return tag.RowsAffected() == 1, nil
}
