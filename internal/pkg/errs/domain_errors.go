package errs

import "errors"

// Sentinel errors shared across the lifecycle usecase layers. The command
// layer marks these onto causes with Mark so callers can match with
// errors.Is while keeping the full chain.
var (
	// Validation: rejected before any transaction starts
	ErrInvalidWindow        = errors.New("invalid rental window")
	ErrWindowOutOfBounds    = errors.New("offer window not contained in intent window")
	ErrUnknownSpecification = errors.New("unknown resource specification")
	ErrValidation           = errors.New("validation error")

	// Authorization
	ErrUnauthorized = errors.New("actor is not the permitted party for this transition")

	// State machine
	ErrInvalidTransition = errors.New("invalid transition")

	// Conflicts: rejected inside the transaction after a fresh read
	ErrIntentNotOpen          = errors.New("intent is not open for offers")
	ErrDuplicateOffer         = errors.New("provider already has an active offer on this intent")
	ErrOfferNotAccepted       = errors.New("offer is not accepted")
	ErrAgreementAlreadyExists = errors.New("intent already has an agreement")
	ErrResourceDoubleBooked   = errors.New("resource is already booked for an overlapping window")
	ErrDuplicateLeg           = errors.New("fulfillment leg already exists for this agreement")

	// Preconditions
	ErrPreconditionNotMet  = errors.New("fulfillment precondition not met")
	ErrResourceUnavailable = errors.New("resource not available for the requested window")

	// Lookups
	ErrNotFound = errors.New("entity not found")

	// Idempotency
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Dependencies: catalog or persistence unavailable, retryable
	ErrDependencyFailed = errors.New("dependency operation failed")
)
