package request

import (
	"strings"

	"rentalflow/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateAgreementRequest struct {
	OfferID uuid.UUID `json:"offer_id" binding:"required"`
	Terms   string    `json:"terms,omitempty"`
}

func (r CreateAgreementRequest) ToCommand() commands.CreateAgreementCommand {
	return commands.CreateAgreementCommand{
		OfferID: r.OfferID,
		Terms:   strings.TrimSpace(r.Terms),
	}
}

type CancelAgreementRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type DisputeAgreementRequest struct {
	Reason string `json:"reason" binding:"required"`
}
