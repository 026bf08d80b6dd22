package request

import (
	"time"

	"rentalflow/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateIntentRequest struct {
	SpecificationID uuid.UUID  `json:"specification_id" binding:"required"`
	Quantity        int        `json:"quantity" binding:"required,min=1"`
	WindowStart     time.Time  `json:"window_start" binding:"required"`
	WindowEnd       time.Time  `json:"window_end" binding:"required"`
	DueDate         *time.Time `json:"due_date,omitempty"`
}

func (r CreateIntentRequest) ToCommand() commands.CreateIntentCommand {
	return commands.CreateIntentCommand{
		SpecificationID: r.SpecificationID,
		Quantity:        r.Quantity,
		WindowStart:     r.WindowStart,
		WindowEnd:       r.WindowEnd,
		DueDate:         r.DueDate,
	}
}
