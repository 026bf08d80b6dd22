package commands

import (
	"context"
	"errors"
	"time"

	"rentalflow/internal/domain/agreement"
	"rentalflow/internal/domain/fulfillment"
	"rentalflow/internal/domain/intent"
	"rentalflow/internal/domain/rental"
	"rentalflow/internal/pkg/clock"
	"rentalflow/internal/pkg/errs"
	"rentalflow/internal/usecase/events"
	"rentalflow/internal/usecase/shared"

	"github.com/google/uuid"
)

type ScheduleFulfillmentCommand struct {
	AgreementID uuid.UUID          `json:"agreement_id"`
	Action      fulfillment.Action `json:"action"`
	Location    string             `json:"location"`
	Notes       string             `json:"notes,omitempty"`
}

type ScheduleFulfillmentResult struct {
	FulfillmentID uuid.UUID
}

type CompleteFulfillmentResult struct {
	FulfillmentID uuid.UUID
	// AgreementFulfilled and IntentFulfilled report the return-leg cascade.
	AgreementFulfilled bool
	IntentFulfilled    bool
}

type FulfillmentCommands interface {
	Schedule(ctx context.Context, cmd ScheduleFulfillmentCommand, actorID uuid.UUID) (*ScheduleFulfillmentResult, error)
	Start(ctx context.Context, fulfillmentID, actorID uuid.UUID) error
	// Complete finishes a leg; completing the return leg atomically moves
	// the agreement and the intent to FULFILLED in the same transaction.
	Complete(ctx context.Context, fulfillmentID, actorID uuid.UUID) (*CompleteFulfillmentResult, error)
	Cancel(ctx context.Context, fulfillmentID, actorID uuid.UUID) error
	Fail(ctx context.Context, fulfillmentID, actorID uuid.UUID) error
}

type fulfillmentUseCaseImpl struct {
	uow       shared.UnitOfWork
	clock     clock.Clock
	publisher events.Publisher
}

func NewFulfillmentCommands(uow shared.UnitOfWork, clk clock.Clock, publisher events.Publisher) FulfillmentCommands {
	return &fulfillmentUseCaseImpl{uow: uow, clock: clk, publisher: publisher}
}

func (uc *fulfillmentUseCaseImpl) Schedule(
	ctx context.Context,
	cmd ScheduleFulfillmentCommand,
	actorID uuid.UUID,
) (*ScheduleFulfillmentResult, error) {
	if !cmd.Action.IsValid() {
		return nil, errs.Mark(fulfillment.ErrInvalidAction, errs.ErrValidation)
	}

	now := uc.clock.Now()
	var result *ScheduleFulfillmentResult

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		agSnap, derr := tx.Reads().AgreementForUpdate(ctx, cmd.AgreementID)
		if derr != nil {
			return derr
		}

		if derr = uc.checkSchedulePreconditions(ctx, tx, agSnap, cmd.Action, actorID, now); derr != nil {
			return derr
		}

		existing, derr := tx.Reads().FulfillmentByAction(ctx, cmd.AgreementID, cmd.Action)
		if derr != nil {
			return derr
		}
		if existing != nil {
			return reject(errs.ErrDuplicateLeg, "fulfillment", existing.ID, "schedule", existing.Status.String())
		}

		f, derr := fulfillment.NewFulfillment(cmd.AgreementID, actorID, cmd.Action, cmd.Location, cmd.Notes)
		if derr != nil {
			return errs.Mark(derr, errs.ErrValidation)
		}
		if derr = tx.Fulfillments().Create(ctx, f); derr != nil {
			return derr
		}
		result = &ScheduleFulfillmentResult{FulfillmentID: f.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publish(events.FulfillmentScheduled, result.FulfillmentID, actorID)
	return result, nil
}

// checkSchedulePreconditions enforces the leg eligibility rules: pickup
// needs a signed agreement, the provider as actor and a started window;
// return needs a completed pickup leg and the receiver as actor.
func (uc *fulfillmentUseCaseImpl) checkSchedulePreconditions(
	ctx context.Context,
	tx shared.Tx,
	agSnap *shared.AgreementSnapshot,
	action fulfillment.Action,
	actorID uuid.UUID,
	now time.Time,
) error {
	switch action {
	case fulfillment.ActionPickup:
		if actorID != agSnap.ProviderID {
			return reject(errs.ErrUnauthorized, "agreement", agSnap.ID, "schedule pickup", agSnap.Status.String())
		}
		if agSnap.Status != agreement.StatusSigned {
			return reject(errs.ErrPreconditionNotMet, "agreement", agSnap.ID, "schedule pickup", agSnap.Status.String())
		}
		window := rental.ReconstructWindow(agSnap.WindowStart, agSnap.WindowEnd)
		if !window.Started(now) {
			return reject(errs.ErrPreconditionNotMet, "agreement", agSnap.ID, "schedule pickup", "window not started")
		}
		return nil

	case fulfillment.ActionReturn:
		if actorID != agSnap.ReceiverID {
			return reject(errs.ErrUnauthorized, "agreement", agSnap.ID, "schedule return", agSnap.Status.String())
		}
		pickup, err := tx.Reads().FulfillmentByAction(ctx, agSnap.ID, fulfillment.ActionPickup)
		if err != nil {
			return err
		}
		if pickup == nil {
			return reject(errs.ErrPreconditionNotMet, "agreement", agSnap.ID, "schedule return", "no pickup leg")
		}
		if pickup.Status != fulfillment.StatusCompleted {
			return reject(errs.ErrPreconditionNotMet, "fulfillment", pickup.ID, "schedule return", pickup.Status.String())
		}
		return nil

	default:
		return errs.Mark(fulfillment.ErrInvalidAction, errs.ErrValidation)
	}
}

func (uc *fulfillmentUseCaseImpl) Start(ctx context.Context, fulfillmentID, actorID uuid.UUID) error {
	now := uc.clock.Now()

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fSnap, derr := tx.Reads().FulfillmentForUpdate(ctx, fulfillmentID)
		if derr != nil {
			return derr
		}
		agSnap, derr := tx.Reads().AgreementForUpdate(ctx, fSnap.AgreementID)
		if derr != nil {
			return derr
		}

		f := fulfillmentFromSnapshot(fSnap)
		if derr = f.Start(actorID, now); derr != nil {
			if errors.Is(derr, fulfillment.ErrNotOwner) {
				return reject(errs.ErrUnauthorized, "fulfillment", fulfillmentID, "start", fSnap.Status.String())
			}
			return reject(errs.ErrInvalidTransition, "fulfillment", fulfillmentID, "start", fSnap.Status.String())
		}

		changed, derr := tx.Fulfillments().Start(ctx, fulfillmentID, now)
		if derr != nil {
			return derr
		}
		if !changed {
			return reject(errs.ErrInvalidTransition, "fulfillment", fulfillmentID, "start", fSnap.Status.String())
		}

		// First leg start moves the agreement to ACTIVE.
		if agSnap.Status == agreement.StatusSigned {
			changed, derr = tx.Agreements().Activate(ctx, agSnap.ID)
			if derr != nil {
				return derr
			}
			if !changed {
				return reject(errs.ErrInvalidTransition, "agreement", agSnap.ID, "activate", agSnap.Status.String())
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.publish(events.FulfillmentStarted, fulfillmentID, actorID)
	return nil
}

func (uc *fulfillmentUseCaseImpl) Complete(ctx context.Context, fulfillmentID, actorID uuid.UUID) (*CompleteFulfillmentResult, error) {
	now := uc.clock.Now()
	var result *CompleteFulfillmentResult
	var agreementID, intentID uuid.UUID

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fSnap, derr := tx.Reads().FulfillmentForUpdate(ctx, fulfillmentID)
		if derr != nil {
			return derr
		}
		agSnap, derr := tx.Reads().AgreementForUpdate(ctx, fSnap.AgreementID)
		if derr != nil {
			return derr
		}
		agreementID = agSnap.ID
		intentID = agSnap.IntentID

		f := fulfillmentFromSnapshot(fSnap)
		if derr = f.Complete(actorID, now); derr != nil {
			if errors.Is(derr, fulfillment.ErrNotOwner) {
				return reject(errs.ErrUnauthorized, "fulfillment", fulfillmentID, "complete", fSnap.Status.String())
			}
			return reject(errs.ErrInvalidTransition, "fulfillment", fulfillmentID, "complete", fSnap.Status.String())
		}

		changed, derr := tx.Fulfillments().Complete(ctx, fulfillmentID, now)
		if derr != nil {
			return derr
		}
		if !changed {
			return reject(errs.ErrInvalidTransition, "fulfillment", fulfillmentID, "complete", fSnap.Status.String())
		}

		result = &CompleteFulfillmentResult{FulfillmentID: fulfillmentID}

		// Return completion cascades: agreement and intent both settle in
		// this same transaction so readers never observe one without the
		// other.
		if fSnap.Action == fulfillment.ActionReturn {
			changed, derr = tx.Agreements().Fulfill(ctx, agSnap.ID, now)
			if derr != nil {
				return derr
			}
			if !changed {
				return reject(errs.ErrInvalidTransition, "agreement", agSnap.ID, "fulfill", agSnap.Status.String())
			}
			result.AgreementFulfilled = true

			changed, derr = tx.Intents().UpdateStatus(ctx, agSnap.IntentID, intent.StatusMatched, intent.StatusFulfilled)
			if derr != nil {
				return derr
			}
			if !changed {
				return reject(errs.ErrInvalidTransition, "intent", agSnap.IntentID, "fulfill", "not matched")
			}
			result.IntentFulfilled = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publish(events.FulfillmentCompleted, fulfillmentID, actorID)
	if result.AgreementFulfilled {
		uc.publish(events.AgreementFulfilled, agreementID, actorID)
	}
	if result.IntentFulfilled {
		uc.publish(events.IntentFulfilled, intentID, actorID)
	}
	return result, nil
}

func (uc *fulfillmentUseCaseImpl) Cancel(ctx context.Context, fulfillmentID, actorID uuid.UUID) error {
	err := uc.terminate(ctx, fulfillmentID, actorID, "cancel")
	if err != nil {
		return err
	}
	uc.publish(events.FulfillmentCancelled, fulfillmentID, actorID)
	return nil
}

func (uc *fulfillmentUseCaseImpl) Fail(ctx context.Context, fulfillmentID, actorID uuid.UUID) error {
	err := uc.terminate(ctx, fulfillmentID, actorID, "fail")
	if err != nil {
		return err
	}
	uc.publish(events.FulfillmentFailed, fulfillmentID, actorID)
	return nil
}

// terminate handles cancel and fail, which share guards and never cascade
// to the agreement: a dead leg needs explicit agreement-level disposition.
func (uc *fulfillmentUseCaseImpl) terminate(ctx context.Context, fulfillmentID, actorID uuid.UUID, verb string) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fSnap, derr := tx.Reads().FulfillmentForUpdate(ctx, fulfillmentID)
		if derr != nil {
			return derr
		}

		f := fulfillmentFromSnapshot(fSnap)
		if verb == "cancel" {
			derr = f.Cancel(actorID)
		} else {
			derr = f.Fail(actorID)
		}
		if derr != nil {
			if errors.Is(derr, fulfillment.ErrNotOwner) {
				return reject(errs.ErrUnauthorized, "fulfillment", fulfillmentID, verb, fSnap.Status.String())
			}
			return reject(errs.ErrInvalidTransition, "fulfillment", fulfillmentID, verb, fSnap.Status.String())
		}

		var changed bool
		if verb == "cancel" {
			changed, derr = tx.Fulfillments().Cancel(ctx, fulfillmentID)
		} else {
			changed, derr = tx.Fulfillments().Fail(ctx, fulfillmentID)
		}
		if derr != nil {
			return derr
		}
		if !changed {
			return reject(errs.ErrInvalidTransition, "fulfillment", fulfillmentID, verb, fSnap.Status.String())
		}
		return nil
	})
}

func (uc *fulfillmentUseCaseImpl) publish(kind events.Kind, entityID, actorID uuid.UUID) {
	uc.publisher.Publish(events.Event{
		Kind:       kind,
		EntityID:   entityID,
		ActorID:    actorID,
		OccurredAt: uc.clock.Now(),
	})
}
