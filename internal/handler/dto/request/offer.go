package request

import (
	"strings"
	"time"

	"rentalflow/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateOfferRequest struct {
	IntentID    uuid.UUID `json:"intent_id" binding:"required"`
	ResourceID  uuid.UUID `json:"resource_id" binding:"required"`
	WindowStart time.Time `json:"window_start" binding:"required"`
	WindowEnd   time.Time `json:"window_end" binding:"required"`
	PriceCents  *int64    `json:"price_cents,omitempty"`
	Currency    *string   `json:"currency,omitempty"`
	Terms       string    `json:"terms,omitempty"`
}

func (r CreateOfferRequest) ToCommand() commands.CreateOfferCommand {
	return commands.CreateOfferCommand{
		IntentID:    r.IntentID,
		ResourceID:  r.ResourceID,
		WindowStart: r.WindowStart,
		WindowEnd:   r.WindowEnd,
		PriceCents:  r.PriceCents,
		Currency:    r.Currency,
		Terms:       strings.TrimSpace(r.Terms),
	}
}
