package commands

import (
	"fmt"

	"rentalflow/internal/pkg/errs"

	"github.com/google/uuid"
)

// Rejection carries enough context (entity id, attempted transition, actual
// current state) for the caller to explain a refusal without a second
// round-trip. It is always marked with one of the errs sentinels.
type Rejection struct {
	Entity    string
	EntityID  uuid.UUID
	Attempted string
	Current   string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s %s: cannot %s while %s", r.Entity, r.EntityID, r.Attempted, r.Current)
}

func reject(sentinel error, entity string, id uuid.UUID, attempted, current string) error {
	return errs.Mark(&Rejection{
		Entity:    entity,
		EntityID:  id,
		Attempted: attempted,
		Current:   current,
	}, sentinel)
}
