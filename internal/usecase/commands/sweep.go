package commands

import (
	"context"
	"time"

	"rentalflow/internal/pkg/clock"
	"rentalflow/internal/usecase/events"
	"rentalflow/internal/usecase/shared"

	"github.com/google/uuid"
)

type SweepResult struct {
	ExpiredIntents []uuid.UUID
	ExpiredOffers  []uuid.UUID
}

// SweepCommands runs the periodic expiry pass: PENDING intents whose window
// start passed without an agreement, plus (when a TTL is configured) stale
// PROPOSED offers. The sweep is idempotent: a second run over the same state
// finds nothing left to expire.
type SweepCommands interface {
	Run(ctx context.Context) (*SweepResult, error)
}

type sweepUseCaseImpl struct {
	uow       shared.UnitOfWork
	clock     clock.Clock
	publisher events.Publisher
	offerTTL  time.Duration
}

func NewSweepCommands(uow shared.UnitOfWork, clk clock.Clock, publisher events.Publisher, offerTTL time.Duration) SweepCommands {
	return &sweepUseCaseImpl{uow: uow, clock: clk, publisher: publisher, offerTTL: offerTTL}
}

func (uc *sweepUseCaseImpl) Run(ctx context.Context) (*SweepResult, error) {
	now := uc.clock.Now()
	var result *SweepResult

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expiredIntents, derr := tx.Intents().ExpirePendingBefore(ctx, now)
		if derr != nil {
			return derr
		}

		var expiredOffers []uuid.UUID
		if uc.offerTTL > 0 {
			expiredOffers, derr = tx.Offers().ExpireProposedBefore(ctx, now.Add(-uc.offerTTL))
			if derr != nil {
				return derr
			}
		}

		result = &SweepResult{ExpiredIntents: expiredIntents, ExpiredOffers: expiredOffers}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, id := range result.ExpiredIntents {
		uc.publisher.Publish(events.Event{Kind: events.IntentExpired, EntityID: id, OccurredAt: now})
	}
	for _, id := range result.ExpiredOffers {
		uc.publisher.Publish(events.Event{Kind: events.OfferExpired, EntityID: id, OccurredAt: now})
	}
	return result, nil
}
