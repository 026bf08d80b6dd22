package writerepo

import (
	"context"
	"time"

	"rentalflow/internal/infra"
	"rentalflow/internal/infra/db"
	"rentalflow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(dbtx db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx}
}

func (r *IdempotencyRepository) TryInsert(
	ctx context.Context,
	key, actorID uuid.UUID,
	endpoint, requestHash string,
	expiresAt time.Time,
) (bool, error) {
	// An expired claim may be retaken; otherwise the existing row wins and
	// the caller inspects it with Get.
	const query = `
		INSERT INTO idempotency_keys (key, actor_id, endpoint, request_hash, status, expires_at)
		VALUES ($1, $2, $3, $4, 'processing', $5)
		ON CONFLICT (key, actor_id) DO UPDATE
		SET endpoint = EXCLUDED.endpoint,
		    request_hash = EXCLUDED.request_hash,
		    status = 'processing',
		    result_id = NULL,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = now()
		WHERE idempotency_keys.expires_at < now()`

	tag, err := r.db.Exec(ctx, query, key, actorID, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, wrapPgErr("failed to claim idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key, actorID uuid.UUID) (*shared.IdempotencyRecord, error) {
	const query = `
		SELECT key, actor_id, endpoint, status, request_hash, result_id, expires_at
		FROM idempotency_keys
		WHERE key = $1 AND actor_id = $2`

	var rec shared.IdempotencyRecord
	err := r.db.QueryRow(ctx, query, key, actorID).Scan(
		&rec.Key, &rec.ActorID, &rec.Endpoint, &rec.Status, &rec.RequestHash, &rec.ResultID, &rec.ExpiresAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	return &rec, nil
}

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, key, actorID, resultID uuid.UUID) error {
	const query = `
		UPDATE idempotency_keys
		SET status = 'completed', result_id = $3, updated_at = now()
		WHERE key = $1 AND actor_id = $2`

	_, err := r.db.Exec(ctx, query, key, actorID, resultID)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	return nil
}
