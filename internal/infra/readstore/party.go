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

type PartyReadStore struct {
	db db.DBTX
}

func NewPartyReadStore(dbtx db.DBTX) *PartyReadStore {
	return &PartyReadStore{db: dbtx}
}

func (s *PartyReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PartyView, error) {
	const query = `SELECT id, name, email FROM parties WHERE id = $1`

	var v queries.PartyView
	err := s.db.QueryRow(ctx, query, id).Scan(&v.ID, &v.Name, &v.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("party not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find party by ID", err)
	}
	return &v, nil
}
