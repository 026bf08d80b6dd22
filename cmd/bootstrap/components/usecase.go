package components

import (
	"rentalflow/internal/pkg/clock"
	"rentalflow/internal/pkg/config"
	"rentalflow/internal/usecase"
	"rentalflow/internal/usecase/commands"
	"rentalflow/internal/usecase/events"
	"rentalflow/internal/usecase/queries"
	"rentalflow/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewIntentCommands,
		commands.NewOfferCommands,
		commands.NewAgreementCommands,
		commands.NewFulfillmentCommands,
		NewSweepCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewIntentQueries,
		queries.NewOfferQueries,
		queries.NewAgreementQueries,
		queries.NewCatalogQueries,
		queries.NewPartyQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewSweepCommands(uow shared.UnitOfWork, clk clock.Clock, publisher events.Publisher, cfg config.Config) commands.SweepCommands {
	return commands.NewSweepCommands(uow, clk, publisher, cfg.Sweep.OfferTTL)
}
