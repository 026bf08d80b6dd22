package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"rentalflow/internal/domain/intent"
	"rentalflow/internal/domain/rental"
	"rentalflow/internal/pkg/clock"
	"rentalflow/internal/pkg/errs"
	"rentalflow/internal/usecase/events"
	"rentalflow/internal/usecase/shared"

	"github.com/google/uuid"
)

const idempotencyTTL = 24 * time.Hour

type CreateIntentCommand struct {
	SpecificationID uuid.UUID  `json:"specification_id"`
	Quantity        int        `json:"quantity"`
	WindowStart     time.Time  `json:"window_start"`
	WindowEnd       time.Time  `json:"window_end"`
	DueDate         *time.Time `json:"due_date,omitempty"`
}

type CreateIntentResult struct {
	IntentID uuid.UUID
	Replayed bool
}

type IntentCommands interface {
	Create(ctx context.Context, cmd CreateIntentCommand, actorID, idempotencyKey uuid.UUID) (*CreateIntentResult, error)
	Cancel(ctx context.Context, intentID, actorID uuid.UUID) error
}

type intentUseCaseImpl struct {
	uow       shared.UnitOfWork
	clock     clock.Clock
	publisher events.Publisher
}

func NewIntentCommands(uow shared.UnitOfWork, clk clock.Clock, publisher events.Publisher) IntentCommands {
	return &intentUseCaseImpl{uow: uow, clock: clk, publisher: publisher}
}

func (uc *intentUseCaseImpl) Create(
	ctx context.Context,
	cmd CreateIntentCommand,
	actorID, idempotencyKey uuid.UUID,
) (*CreateIntentResult, error) {
	window, err := rental.NewWindow(cmd.WindowStart, cmd.WindowEnd)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidWindow)
	}
	qty, err := rental.NewQuantity(cmd.Quantity)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	requestHash := hashCommand(cmd)
	var result *CreateIntentResult

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		replayed, derr := claimIdempotencyKey(ctx, tx, idempotencyKey, actorID, "POST /intents", requestHash, uc.clock.Now().Add(idempotencyTTL))
		if derr != nil {
			return derr
		}
		if replayed != nil {
			result = &CreateIntentResult{IntentID: *replayed, Replayed: true}
			return nil
		}

		exists, derr := tx.Reads().SpecificationExists(ctx, cmd.SpecificationID)
		if derr != nil {
			return errs.Mark(derr, errs.ErrDependencyFailed)
		}
		if !exists {
			return reject(errs.ErrUnknownSpecification, "specification", cmd.SpecificationID, "reference", "missing")
		}

		it := intent.NewIntent(actorID, cmd.SpecificationID, qty, window, cmd.DueDate)
		if derr = tx.Intents().Create(ctx, it); derr != nil {
			return derr
		}
		if derr = tx.Idempotency().MarkCompleted(ctx, idempotencyKey, actorID, it.ID()); derr != nil {
			return derr
		}
		result = &CreateIntentResult{IntentID: it.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Replayed {
		uc.publish(events.IntentCreated, result.IntentID, actorID)
	}
	return result, nil
}

func (uc *intentUseCaseImpl) Cancel(ctx context.Context, intentID, actorID uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().IntentForUpdate(ctx, intentID)
		if derr != nil {
			return derr
		}

		it := intentFromSnapshot(snap)
		if derr = it.Cancel(actorID); derr != nil {
			switch {
			case errors.Is(derr, intent.ErrNotReceiver):
				return reject(errs.ErrUnauthorized, "intent", intentID, "cancel", snap.Status.String())
			default:
				return reject(errs.ErrInvalidTransition, "intent", intentID, "cancel", snap.Status.String())
			}
		}

		changed, derr := tx.Intents().UpdateStatus(ctx, intentID, snap.Status, intent.StatusCancelled)
		if derr != nil {
			return derr
		}
		if !changed {
			return reject(errs.ErrInvalidTransition, "intent", intentID, "cancel", snap.Status.String())
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.publish(events.IntentCancelled, intentID, actorID)
	return nil
}

func (uc *intentUseCaseImpl) publish(kind events.Kind, entityID, actorID uuid.UUID) {
	uc.publisher.Publish(events.Event{
		Kind:       kind,
		EntityID:   entityID,
		ActorID:    actorID,
		OccurredAt: uc.clock.Now(),
	})
}

// claimIdempotencyKey implements the shared claim-or-replay protocol. A nil,
// nil return means the claim is fresh and the caller should proceed; a
// non-nil id means the original request completed and its result should be
// replayed.
func claimIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	key, actorID uuid.UUID,
	endpoint, requestHash string,
	expiresAt time.Time,
) (*uuid.UUID, error) {
	if key == uuid.Nil {
		return nil, errs.ErrIdempotencyKeyRequired
	}

	inserted, err := tx.Idempotency().TryInsert(ctx, key, actorID, endpoint, requestHash, expiresAt)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if inserted {
		return nil, nil
	}

	existing, err := tx.Idempotency().Get(ctx, key, actorID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.RequestHash != requestHash {
			return nil, errs.Mark(errs.New("idempotency key reused with different request"), errs.ErrIdempotencyCheckFailed)
		}
		if existing.ResultID == nil {
			return nil, errs.Mark(errs.New("completed request missing result id"), errs.ErrIdempotencyCheckFailed)
		}
		return existing.ResultID, nil
	case "processing":
		return nil, errs.ErrIdempotencyInProgress
	default:
		return nil, errs.Mark(errs.New("invalid idempotency key status"), errs.ErrIdempotencyCheckFailed)
	}
}

func hashCommand(cmd any) string {
	data, _ := json.Marshal(cmd)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
