package components

import (
	"context"

	"rentalflow/internal/jobs"
	"rentalflow/internal/pkg/config"
	"rentalflow/internal/usecase/commands"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(NewSweeper),
	fx.Invoke(startSweeper),
)

func NewSweeper(sweep commands.SweepCommands, cfg config.Config) (*jobs.Sweeper, error) {
	return jobs.NewSweeper(sweep, cfg.Sweep)
}

func startSweeper(lc fx.Lifecycle, sweeper *jobs.Sweeper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}
