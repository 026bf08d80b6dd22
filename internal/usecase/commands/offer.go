package commands

import (
	"context"
	"errors"
	"time"

	"rentalflow/internal/domain/intent"
	"rentalflow/internal/domain/offer"
	"rentalflow/internal/domain/rental"
	"rentalflow/internal/pkg/clock"
	"rentalflow/internal/pkg/errs"
	"rentalflow/internal/usecase/events"
	"rentalflow/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateOfferCommand struct {
	IntentID    uuid.UUID `json:"intent_id"`
	ResourceID  uuid.UUID `json:"resource_id"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	PriceCents  *int64    `json:"price_cents,omitempty"`
	Currency    *string   `json:"currency,omitempty"`
	Terms       string    `json:"terms,omitempty"`
}

type CreateOfferResult struct {
	OfferID  uuid.UUID
	Replayed bool
}

type AcceptOfferResult struct {
	OfferID         uuid.UUID
	DeclinedSiblings []uuid.UUID
}

type OfferCommands interface {
	Create(ctx context.Context, cmd CreateOfferCommand, actorID, idempotencyKey uuid.UUID) (*CreateOfferResult, error)
	// Accept flips the offer to ACCEPTED, declines every sibling and matches
	// the intent, all inside one transaction.
	Accept(ctx context.Context, offerID, actorID uuid.UUID) (*AcceptOfferResult, error)
	Decline(ctx context.Context, offerID, actorID uuid.UUID) error
	Withdraw(ctx context.Context, offerID, actorID uuid.UUID) error
}

type offerUseCaseImpl struct {
	uow       shared.UnitOfWork
	clock     clock.Clock
	publisher events.Publisher
}

func NewOfferCommands(uow shared.UnitOfWork, clk clock.Clock, publisher events.Publisher) OfferCommands {
	return &offerUseCaseImpl{uow: uow, clock: clk, publisher: publisher}
}

func (uc *offerUseCaseImpl) Create(
	ctx context.Context,
	cmd CreateOfferCommand,
	actorID, idempotencyKey uuid.UUID,
) (*CreateOfferResult, error) {
	window, err := rental.NewWindow(cmd.WindowStart, cmd.WindowEnd)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidWindow)
	}

	var price rental.Money
	if cmd.PriceCents != nil {
		currency := "USD"
		if cmd.Currency != nil {
			currency = *cmd.Currency
		}
		if price, err = rental.NewMoney(*cmd.PriceCents, currency); err != nil {
			return nil, errs.Mark(err, errs.ErrValidation)
		}
	}

	requestHash := hashCommand(cmd)
	var result *CreateOfferResult

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		replayed, derr := claimIdempotencyKey(ctx, tx, idempotencyKey, actorID, "POST /offers", requestHash, uc.clock.Now().Add(idempotencyTTL))
		if derr != nil {
			return derr
		}
		if replayed != nil {
			result = &CreateOfferResult{OfferID: *replayed, Replayed: true}
			return nil
		}

		// Lock the intent row so creation serializes with accept and cancel.
		intentSnap, derr := tx.Reads().IntentForUpdate(ctx, cmd.IntentID)
		if derr != nil {
			return derr
		}
		if intentSnap.Status != intent.StatusPending {
			return reject(errs.ErrIntentNotOpen, "intent", cmd.IntentID, "offer", intentSnap.Status.String())
		}

		existing, derr := tx.Reads().BlockingOfferByProvider(ctx, cmd.IntentID, actorID)
		if derr != nil {
			return derr
		}
		if existing != nil {
			return reject(errs.ErrDuplicateOffer, "offer", existing.ID, "create", existing.Status.String())
		}

		resourceSnap, derr := tx.Reads().ResourceByID(ctx, cmd.ResourceID)
		if derr != nil {
			return derr
		}
		availability := rental.ReconstructWindow(resourceSnap.AvailabilityStart, resourceSnap.AvailabilityEnd)
		if !availability.Covers(window) {
			return reject(errs.ErrResourceUnavailable, "resource", cmd.ResourceID, "offer", availability.String())
		}

		intentWindow := rental.ReconstructWindow(intentSnap.WindowStart, intentSnap.WindowEnd)
		o, derr := offer.NewOffer(cmd.IntentID, actorID, cmd.ResourceID, window, intentWindow, price, cmd.Terms)
		if derr != nil {
			if errors.Is(derr, offer.ErrWindowOutOfBounds) {
				return reject(errs.ErrWindowOutOfBounds, "intent", cmd.IntentID, "offer", intentWindow.String())
			}
			return derr
		}

		if derr = tx.Offers().Create(ctx, o); derr != nil {
			return derr
		}
		if derr = tx.Idempotency().MarkCompleted(ctx, idempotencyKey, actorID, o.ID()); derr != nil {
			return derr
		}
		result = &CreateOfferResult{OfferID: o.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Replayed {
		uc.publish(events.OfferProposed, result.OfferID, actorID)
	}
	return result, nil
}

func (uc *offerUseCaseImpl) Accept(ctx context.Context, offerID, actorID uuid.UUID) (*AcceptOfferResult, error) {
	var result *AcceptOfferResult

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		offerSnap, derr := tx.Reads().OfferForUpdate(ctx, offerID)
		if derr != nil {
			return derr
		}
		intentSnap, derr := tx.Reads().IntentForUpdate(ctx, offerSnap.IntentID)
		if derr != nil {
			return derr
		}

		if actorID != intentSnap.ReceiverID {
			return reject(errs.ErrUnauthorized, "offer", offerID, "accept", offerSnap.Status.String())
		}

		o := offerFromSnapshot(offerSnap)
		if derr = o.Accept(); derr != nil {
			return reject(errs.ErrInvalidTransition, "offer", offerID, "accept", offerSnap.Status.String())
		}

		// Re-check inside the transaction: a concurrent accept that already
		// landed leaves the intent MATCHED and this one loses the race.
		if intentSnap.Status != intent.StatusPending {
			return reject(errs.ErrIntentNotOpen, "intent", intentSnap.ID, "accept offer", intentSnap.Status.String())
		}

		changed, derr := tx.Offers().UpdateStatus(ctx, offerID, offer.StatusProposed, offer.StatusAccepted)
		if derr != nil {
			return derr
		}
		if !changed {
			return reject(errs.ErrInvalidTransition, "offer", offerID, "accept", offerSnap.Status.String())
		}

		declined, derr := tx.Offers().DeclineSiblings(ctx, offerSnap.IntentID, offerID)
		if derr != nil {
			return derr
		}

		changed, derr = tx.Intents().UpdateStatus(ctx, offerSnap.IntentID, intent.StatusPending, intent.StatusMatched)
		if derr != nil {
			return derr
		}
		if !changed {
			return reject(errs.ErrIntentNotOpen, "intent", intentSnap.ID, "accept offer", intentSnap.Status.String())
		}

		result = &AcceptOfferResult{OfferID: offerID, DeclinedSiblings: declined}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publish(events.OfferAccepted, offerID, actorID)
	for _, siblingID := range result.DeclinedSiblings {
		uc.publish(events.OfferDeclined, siblingID, actorID)
	}
	return result, nil
}

func (uc *offerUseCaseImpl) Decline(ctx context.Context, offerID, actorID uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		offerSnap, derr := tx.Reads().OfferForUpdate(ctx, offerID)
		if derr != nil {
			return derr
		}
		intentSnap, derr := tx.Reads().IntentForUpdate(ctx, offerSnap.IntentID)
		if derr != nil {
			return derr
		}
		if actorID != intentSnap.ReceiverID {
			return reject(errs.ErrUnauthorized, "offer", offerID, "decline", offerSnap.Status.String())
		}

		o := offerFromSnapshot(offerSnap)
		if derr = o.Decline(); derr != nil {
			return reject(errs.ErrInvalidTransition, "offer", offerID, "decline", offerSnap.Status.String())
		}

		changed, derr := tx.Offers().UpdateStatus(ctx, offerID, offer.StatusProposed, offer.StatusDeclined)
		if derr != nil {
			return derr
		}
		if !changed {
			return reject(errs.ErrInvalidTransition, "offer", offerID, "decline", offerSnap.Status.String())
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.publish(events.OfferDeclined, offerID, actorID)
	return nil
}

func (uc *offerUseCaseImpl) Withdraw(ctx context.Context, offerID, actorID uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		offerSnap, derr := tx.Reads().OfferForUpdate(ctx, offerID)
		if derr != nil {
			return derr
		}

		o := offerFromSnapshot(offerSnap)
		if derr = o.Withdraw(actorID); derr != nil {
			if errors.Is(derr, offer.ErrNotProvider) {
				return reject(errs.ErrUnauthorized, "offer", offerID, "withdraw", offerSnap.Status.String())
			}
			return reject(errs.ErrInvalidTransition, "offer", offerID, "withdraw", offerSnap.Status.String())
		}

		changed, derr := tx.Offers().UpdateStatus(ctx, offerID, offer.StatusProposed, offer.StatusWithdrawn)
		if derr != nil {
			return derr
		}
		if !changed {
			return reject(errs.ErrInvalidTransition, "offer", offerID, "withdraw", offerSnap.Status.String())
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.publish(events.OfferWithdrawn, offerID, actorID)
	return nil
}

func (uc *offerUseCaseImpl) publish(kind events.Kind, entityID, actorID uuid.UUID) {
	uc.publisher.Publish(events.Event{
		Kind:       kind,
		EntityID:   entityID,
		ActorID:    actorID,
		OccurredAt: uc.clock.Now(),
	})
}
