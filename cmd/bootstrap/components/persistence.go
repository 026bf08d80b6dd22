package components

import (
	"rentalflow/internal/infra/db"
	"rentalflow/internal/infra/readstore"
	"rentalflow/internal/infra/uow"
	"rentalflow/internal/usecase/queries"
	"rentalflow/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,

		// UnitOfWork for the write side; repositories are bound per
		// transaction inside it.
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),

		// Read-side stores
		fx.Annotate(
			readstore.NewIntentReadStore,
			fx.As(new(queries.IntentStore)),
		),
		fx.Annotate(
			readstore.NewOfferReadStore,
			fx.As(new(queries.OfferStore)),
		),
		fx.Annotate(
			readstore.NewAgreementReadStore,
			fx.As(new(queries.AgreementStore)),
		),
		fx.Annotate(
			readstore.NewResourceReadStore,
			fx.As(new(queries.ResourceStore)),
		),
		fx.Annotate(
			readstore.NewPartyReadStore,
			fx.As(new(queries.PartyStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
