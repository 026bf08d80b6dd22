package shared

import (
	"context"
	"time"

	"rentalflow/internal/domain/agreement"
	"rentalflow/internal/domain/fulfillment"
	"rentalflow/internal/domain/intent"
	"rentalflow/internal/domain/offer"

	"github.com/google/uuid"
)

// UnitOfWork is the transaction boundary for every multi-entity lifecycle
// transition. The command layer is the sole writer of status fields and
// always re-reads current state inside the same transaction that writes it.
type UnitOfWork interface {
	// Within: full read-write transaction with retry on serialization errors
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Intents() IntentRepository
	Offers() OfferRepository
	Agreements() AgreementRepository
	Fulfillments() FulfillmentRepository
	Idempotency() IdempotencyRepository
	Reads() CommandReads
}

// CommandReads are fresh in-transaction reads. ForUpdate variants take a row
// lock so concurrent accepts on the same intent serialize.
type CommandReads interface {
	IntentForUpdate(ctx context.Context, id uuid.UUID) (*IntentSnapshot, error)
	OfferForUpdate(ctx context.Context, id uuid.UUID) (*OfferSnapshot, error)
	AgreementForUpdate(ctx context.Context, id uuid.UUID) (*AgreementSnapshot, error)
	FulfillmentForUpdate(ctx context.Context, id uuid.UUID) (*FulfillmentSnapshot, error)

	AgreementByIntent(ctx context.Context, intentID uuid.UUID) (*AgreementSnapshot, error)
	// BlockingOfferByProvider returns the provider's non-withdrawn offer on
	// the intent, if any. Declined and expired offers still block re-offering.
	BlockingOfferByProvider(ctx context.Context, intentID, providerID uuid.UUID) (*OfferSnapshot, error)
	FulfillmentByAction(ctx context.Context, agreementID uuid.UUID, action fulfillment.Action) (*FulfillmentSnapshot, error)

	// CountBlockingAgreements counts SIGNED/ACTIVE agreements on the resource
	// whose windows overlap [start, end); used for double-booking detection.
	CountBlockingAgreements(ctx context.Context, resourceID uuid.UUID, start, end time.Time, excludeIntentID uuid.UUID) (int64, error)

	ResourceByID(ctx context.Context, id uuid.UUID) (*ResourceSnapshot, error)
	SpecificationExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type IntentRepository interface {
	Create(ctx context.Context, it *intent.Intent) error
	// UpdateStatus is guarded: it only writes when the row still holds from,
	// reporting whether a row was changed.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to intent.Status) (bool, error)
	// ExpirePendingBefore sweeps PENDING intents whose window start passed
	// without an agreement and returns the expired ids.
	ExpirePendingBefore(ctx context.Context, now time.Time) ([]uuid.UUID, error)
}

type OfferRepository interface {
	Create(ctx context.Context, o *offer.Offer) error
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to offer.Status) (bool, error)
	// DeclineSiblings declines every other PROPOSED offer on the intent in
	// the same transaction as the accept.
	DeclineSiblings(ctx context.Context, intentID, acceptedOfferID uuid.UUID) ([]uuid.UUID, error)
	ExpireProposedBefore(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
}

type AgreementRepository interface {
	Create(ctx context.Context, a *agreement.Agreement) error
	Sign(ctx context.Context, id uuid.UUID, signedAt time.Time) (bool, error)
	Activate(ctx context.Context, id uuid.UUID) (bool, error)
	Fulfill(ctx context.Context, id uuid.UUID, fulfilledAt time.Time) (bool, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string) (bool, error)
	Dispute(ctx context.Context, id uuid.UUID, reason string) (bool, error)
}

type FulfillmentRepository interface {
	Create(ctx context.Context, f *fulfillment.Fulfillment) error
	Start(ctx context.Context, id uuid.UUID, startedAt time.Time) (bool, error)
	Complete(ctx context.Context, id uuid.UUID, completedAt time.Time) (bool, error)
	Cancel(ctx context.Context, id uuid.UUID) (bool, error)
	Fail(ctx context.Context, id uuid.UUID) (bool, error)
}

type IdempotencyRepository interface {
	// TryInsert claims the key for this actor, reporting whether the claim
	// is fresh. A false return means a record for (key, actor) already
	// exists and Get shows its state.
	TryInsert(ctx context.Context, key, actorID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, key, actorID uuid.UUID) (*IdempotencyRecord, error)
	MarkCompleted(ctx context.Context, key, actorID uuid.UUID, resultID uuid.UUID) error
}

type IdempotencyRecord struct {
	Key         uuid.UUID
	ActorID     uuid.UUID
	Endpoint    string
	Status      string
	RequestHash string
	ResultID    *uuid.UUID
	ExpiresAt   time.Time
}
