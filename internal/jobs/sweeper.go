package jobs

import (
	"context"
	"log/slog"
	"time"

	"rentalflow/internal/pkg/config"
	"rentalflow/internal/usecase/commands"

	"github.com/robfig/cron/v3"
)

const sweepTimeout = 30 * time.Second

// Sweeper runs the periodic expiry pass on a cron schedule. Each run expires
// overdue pending intents and, when a TTL is configured, stale offers.
type Sweeper struct {
	cron  *cron.Cron
	sweep commands.SweepCommands
	cfg   config.SweepConfig
}

func NewSweeper(sweep commands.SweepCommands, cfg config.SweepConfig) (*Sweeper, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	s := &Sweeper{
		cron:  c,
		sweep: sweep,
		cfg:   cfg,
	}

	if _, err := c.AddFunc(cfg.Schedule, s.run); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sweeper) run() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("expiry sweep panicked", "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	result, err := s.sweep.Run(ctx)
	if err != nil {
		slog.Error("expiry sweep failed", "error", err)
		return
	}
	if len(result.ExpiredIntents) > 0 || len(result.ExpiredOffers) > 0 {
		slog.Info("expiry sweep completed",
			"expired_intents", len(result.ExpiredIntents),
			"expired_offers", len(result.ExpiredOffers),
		)
	}
}

func (s *Sweeper) Start() {
	slog.Info("starting expiry sweeper", "schedule", s.cfg.Schedule, "offer_ttl", s.cfg.OfferTTL)
	s.cron.Start()
}

func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("expiry sweeper stopped")
}
