package writerepo

import (
	"context"
	"time"

	"rentalflow/internal/domain/intent"
	"rentalflow/internal/infra"
	"rentalflow/internal/infra/db"

	"github.com/google/uuid"
)

type IntentRepository struct {
	db db.DBTX
}

func NewIntentRepository(dbtx db.DBTX) *IntentRepository {
	return &IntentRepository{db: dbtx}
}

func (r *IntentRepository) Create(ctx context.Context, it *intent.Intent) error {
	const query = `
		INSERT INTO intents (id, action, receiver_id, specification_id, quantity, window_start, window_end, due_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		it.ID(), intent.ActionUse, it.ReceiverID(), it.SpecificationID(),
		it.Quantity().Int(), it.Window().Start(), it.Window().End(), it.DueDate(), it.Status().String(),
	)
	if err != nil {
		return wrapPgErr("failed to create intent", err)
	}
	return nil
}

func (r *IntentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to intent.Status) (bool, error) {
	const query = `
		UPDATE intents SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`

	tag, err := r.db.Exec(ctx, query, id, from.String(), to.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to update intent status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IntentRepository) ExpirePendingBefore(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	const query = `
		UPDATE intents SET status = $2, updated_at = now()
		WHERE status = $1
		  AND window_start <= $3
		  AND NOT EXISTS (SELECT 1 FROM agreements a WHERE a.intent_id = intents.id)
		RETURNING id`

	rows, err := r.db.Query(ctx, query, intent.StatusPending.String(), intent.StatusExpired.String(), now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to expire intents", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expired intent id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read expired intent ids", err)
	}
	return ids, nil
}
