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

type ResourceReadStore struct {
	db db.DBTX
}

func NewResourceReadStore(dbtx db.DBTX) *ResourceReadStore {
	return &ResourceReadStore{db: dbtx}
}

func (s *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	const query = `
		SELECT id, specification_id, name, availability_start, availability_end, created_at, updated_at
		FROM resources WHERE id = $1`

	var v queries.ResourceView
	err := s.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.SpecificationID, &v.Name, &v.AvailabilityStart, &v.AvailabilityEnd,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}
	return &v, nil
}
