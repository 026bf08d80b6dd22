package request

import (
	"strings"

	"rentalflow/internal/domain/fulfillment"
	"rentalflow/internal/usecase/commands"

	"github.com/google/uuid"
)

type ScheduleFulfillmentRequest struct {
	AgreementID uuid.UUID `json:"agreement_id" binding:"required"`
	Action      string    `json:"action" binding:"required,oneof=pickup return"`
	Location    string    `json:"location" binding:"required"`
	Notes       string    `json:"notes,omitempty"`
}

func (r ScheduleFulfillmentRequest) ToCommand() commands.ScheduleFulfillmentCommand {
	return commands.ScheduleFulfillmentCommand{
		AgreementID: r.AgreementID,
		Action:      fulfillment.Action(r.Action),
		Location:    strings.TrimSpace(r.Location),
		Notes:       strings.TrimSpace(r.Notes),
	}
}
