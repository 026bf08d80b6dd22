package api

import (
	"errors"
	"net/http"

	"rentalflow/internal/handler/httperr"
	"rentalflow/internal/infra"
	"rentalflow/internal/pkg/errs"
	"rentalflow/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// respondError translates the usecase error taxonomy into HTTP statuses.
// Every lifecycle endpoint shares the same sentinels, so the mapping lives
// here once instead of in each handler.
func respondError(c *gin.Context, err error) {
	status, msg := classify(err)

	var detail any
	var rej *commands.Rejection
	if errors.As(err, &rej) {
		detail = gin.H{
			"entity":    rej.Entity,
			"entity_id": rej.EntityID,
			"attempted": rej.Attempted,
			"current":   rej.Current,
		}
	}

	httperr.AbortWithError(c, status, err, msg, detail)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrInvalidWindow):
		return http.StatusBadRequest, "Invalid rental window"
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, "Validation failed"
	case errors.Is(err, errs.ErrIdempotencyKeyRequired):
		return http.StatusBadRequest, "Idempotency key required"

	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusForbidden, "Not permitted for this party"

	case errors.Is(err, errs.ErrNotFound), infra.IsKind(err, infra.KindNotFound):
		return http.StatusNotFound, "Not found"

	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict, "Invalid state transition"
	case errors.Is(err, errs.ErrIntentNotOpen):
		return http.StatusConflict, "Intent is not open for offers"
	case errors.Is(err, errs.ErrDuplicateOffer):
		return http.StatusConflict, "Provider already has an active offer on this intent"
	case errors.Is(err, errs.ErrOfferNotAccepted):
		return http.StatusConflict, "Offer is not accepted"
	case errors.Is(err, errs.ErrAgreementAlreadyExists):
		return http.StatusConflict, "Intent already has an agreement"
	case errors.Is(err, errs.ErrResourceDoubleBooked):
		return http.StatusConflict, "Resource already booked for an overlapping window"
	case errors.Is(err, errs.ErrDuplicateLeg):
		return http.StatusConflict, "Fulfillment leg already exists"
	case errors.Is(err, errs.ErrIdempotencyInProgress):
		return http.StatusConflict, "Request is currently being processed"
	case errors.Is(err, errs.ErrIdempotencyCheckFailed):
		return http.StatusConflict, "Idempotency key reused with different parameters"

	case errors.Is(err, errs.ErrWindowOutOfBounds):
		return http.StatusUnprocessableEntity, "Offer window exceeds intent window"
	case errors.Is(err, errs.ErrUnknownSpecification):
		return http.StatusUnprocessableEntity, "Unknown resource specification"
	case errors.Is(err, errs.ErrResourceUnavailable):
		return http.StatusUnprocessableEntity, "Resource not available for the requested window"
	case errors.Is(err, errs.ErrPreconditionNotMet):
		return http.StatusUnprocessableEntity, "Precondition not met"

	case errors.Is(err, errs.ErrDependencyFailed):
		return http.StatusServiceUnavailable, "Dependency unavailable"

	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
