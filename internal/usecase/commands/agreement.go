package commands

import (
	"context"
	"errors"

	"rentalflow/internal/domain/agreement"
	"rentalflow/internal/domain/offer"
	"rentalflow/internal/domain/rental"
	"rentalflow/internal/pkg/clock"
	"rentalflow/internal/pkg/errs"
	"rentalflow/internal/usecase/events"
	"rentalflow/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateAgreementCommand struct {
	OfferID uuid.UUID `json:"offer_id"`
	Terms   string    `json:"terms,omitempty"`
}

type CreateAgreementResult struct {
	AgreementID uuid.UUID
	Replayed    bool
}

type AgreementCommands interface {
	// Create converts the single accepted offer on an intent into the
	// binding agreement. Retried calls with the same offer id return the
	// existing agreement instead of creating a second one.
	Create(ctx context.Context, cmd CreateAgreementCommand, actorID uuid.UUID) (*CreateAgreementResult, error)
	Sign(ctx context.Context, agreementID, actorID uuid.UUID) error
	Cancel(ctx context.Context, agreementID, actorID uuid.UUID, reason string) error
	Dispute(ctx context.Context, agreementID, actorID uuid.UUID, reason string) error
}

type agreementUseCaseImpl struct {
	uow       shared.UnitOfWork
	clock     clock.Clock
	publisher events.Publisher
}

func NewAgreementCommands(uow shared.UnitOfWork, clk clock.Clock, publisher events.Publisher) AgreementCommands {
	return &agreementUseCaseImpl{uow: uow, clock: clk, publisher: publisher}
}

func (uc *agreementUseCaseImpl) Create(
	ctx context.Context,
	cmd CreateAgreementCommand,
	actorID uuid.UUID,
) (*CreateAgreementResult, error) {
	var result *CreateAgreementResult

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		offerSnap, derr := tx.Reads().OfferForUpdate(ctx, cmd.OfferID)
		if derr != nil {
			return derr
		}
		intentSnap, derr := tx.Reads().IntentForUpdate(ctx, offerSnap.IntentID)
		if derr != nil {
			return derr
		}

		if actorID != intentSnap.ReceiverID {
			return reject(errs.ErrUnauthorized, "offer", cmd.OfferID, "finalize", offerSnap.Status.String())
		}
		if offerSnap.Status != offer.StatusAccepted {
			return reject(errs.ErrOfferNotAccepted, "offer", cmd.OfferID, "finalize", offerSnap.Status.String())
		}

		// Idempotency guard: only one accepted offer exists per intent, so
		// an existing agreement on this intent is the one this offer made.
		existing, derr := tx.Reads().AgreementByIntent(ctx, offerSnap.IntentID)
		if derr != nil {
			return derr
		}
		if existing != nil {
			if existing.OfferID == cmd.OfferID {
				result = &CreateAgreementResult{AgreementID: existing.ID, Replayed: true}
				return nil
			}
			return reject(errs.ErrAgreementAlreadyExists, "intent", offerSnap.IntentID, "finalize", existing.Status.String())
		}

		// Availability is not locked at offer time, so re-validate here
		// against overlapping signed/active agreements on the resource.
		blocking, derr := tx.Reads().CountBlockingAgreements(ctx, offerSnap.ResourceID, offerSnap.WindowStart, offerSnap.WindowEnd, offerSnap.IntentID)
		if derr != nil {
			return derr
		}
		if blocking > 0 {
			return reject(errs.ErrResourceDoubleBooked, "resource", offerSnap.ResourceID, "finalize", "overlapping agreement")
		}

		terms := cmd.Terms
		if terms == "" {
			terms = offerSnap.Terms
		}
		a := agreement.NewAgreement(
			offerSnap.IntentID, cmd.OfferID, offerSnap.ProviderID, intentSnap.ReceiverID, offerSnap.ResourceID,
			rental.ReconstructWindow(offerSnap.WindowStart, offerSnap.WindowEnd),
			moneyFromSnapshot(offerSnap.PriceCents, offerSnap.Currency),
			terms,
		)
		if derr = tx.Agreements().Create(ctx, a); derr != nil {
			return derr
		}
		result = &CreateAgreementResult{AgreementID: a.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Replayed {
		uc.publish(events.AgreementCreated, result.AgreementID, actorID)
	}
	return result, nil
}

func (uc *agreementUseCaseImpl) Sign(ctx context.Context, agreementID, actorID uuid.UUID) error {
	now := uc.clock.Now()
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().AgreementForUpdate(ctx, agreementID)
		if derr != nil {
			return derr
		}

		a := agreementFromSnapshot(snap)
		if derr = a.Sign(actorID, now); derr != nil {
			if errors.Is(derr, agreement.ErrNotReceiver) {
				return reject(errs.ErrUnauthorized, "agreement", agreementID, "sign", snap.Status.String())
			}
			return reject(errs.ErrInvalidTransition, "agreement", agreementID, "sign", snap.Status.String())
		}

		changed, derr := tx.Agreements().Sign(ctx, agreementID, now)
		if derr != nil {
			return derr
		}
		if !changed {
			return reject(errs.ErrInvalidTransition, "agreement", agreementID, "sign", snap.Status.String())
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.publish(events.AgreementSigned, agreementID, actorID)
	return nil
}

func (uc *agreementUseCaseImpl) Cancel(ctx context.Context, agreementID, actorID uuid.UUID, reason string) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().AgreementForUpdate(ctx, agreementID)
		if derr != nil {
			return derr
		}

		a := agreementFromSnapshot(snap)
		if derr = a.Cancel(actorID, reason); derr != nil {
			if errors.Is(derr, agreement.ErrNotParty) {
				return reject(errs.ErrUnauthorized, "agreement", agreementID, "cancel", snap.Status.String())
			}
			return reject(errs.ErrInvalidTransition, "agreement", agreementID, "cancel", snap.Status.String())
		}

		changed, derr := tx.Agreements().Cancel(ctx, agreementID, reason)
		if derr != nil {
			return derr
		}
		if !changed {
			return reject(errs.ErrInvalidTransition, "agreement", agreementID, "cancel", snap.Status.String())
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.publish(events.AgreementCancelled, agreementID, actorID)
	return nil
}

func (uc *agreementUseCaseImpl) Dispute(ctx context.Context, agreementID, actorID uuid.UUID, reason string) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().AgreementForUpdate(ctx, agreementID)
		if derr != nil {
			return derr
		}

		a := agreementFromSnapshot(snap)
		if derr = a.Dispute(actorID, reason); derr != nil {
			if errors.Is(derr, agreement.ErrNotParty) {
				return reject(errs.ErrUnauthorized, "agreement", agreementID, "dispute", snap.Status.String())
			}
			return reject(errs.ErrInvalidTransition, "agreement", agreementID, "dispute", snap.Status.String())
		}

		changed, derr := tx.Agreements().Dispute(ctx, agreementID, reason)
		if derr != nil {
			return derr
		}
		if !changed {
			return reject(errs.ErrInvalidTransition, "agreement", agreementID, "dispute", snap.Status.String())
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.publish(events.AgreementDisputed, agreementID, actorID)
	return nil
}

func (uc *agreementUseCaseImpl) publish(kind events.Kind, entityID, actorID uuid.UUID) {
	uc.publisher.Publish(events.Event{
		Kind:       kind,
		EntityID:   entityID,
		ActorID:    actorID,
		OccurredAt: uc.clock.Now(),
	})
}
