package bootstrap

import (
	"context"
	"log/slog"

	"rentalflow/internal/usecase/events"

	"go.uber.org/fx"
)

const eventBufferSize = 256

var EventsModule = fx.Module("events",
	fx.Provide(
		fx.Annotate(
			NewEventPublisher,
			fx.As(new(events.Publisher)),
		),
	),
)

func NewEventPublisher(lc fx.Lifecycle, logger *slog.Logger) *events.AsyncPublisher {
	publisher := events.NewAsyncPublisher(logger, eventBufferSize)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			publisher.Close()
			return nil
		},
	})

	return publisher
}
