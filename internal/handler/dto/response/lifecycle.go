package response

import (
	"rentalflow/internal/usecase/commands"

	"github.com/google/uuid"
)

// Command results. Read endpoints serve the queries view types directly;
// these wrap only the write-side outcomes that need extra shape (replay
// flags, cascade outcomes).

type CreateIntentResponse struct {
	IntentID uuid.UUID `json:"intent_id"`
	Replayed bool      `json:"replayed"`
}

func FromCreateIntentResult(r *commands.CreateIntentResult) *CreateIntentResponse {
	return &CreateIntentResponse{IntentID: r.IntentID, Replayed: r.Replayed}
}

type CreateOfferResponse struct {
	OfferID  uuid.UUID `json:"offer_id"`
	Replayed bool      `json:"replayed"`
}

func FromCreateOfferResult(r *commands.CreateOfferResult) *CreateOfferResponse {
	return &CreateOfferResponse{OfferID: r.OfferID, Replayed: r.Replayed}
}

type AcceptOfferResponse struct {
	OfferID          uuid.UUID   `json:"offer_id"`
	DeclinedSiblings []uuid.UUID `json:"declined_siblings"`
}

func FromAcceptOfferResult(r *commands.AcceptOfferResult) *AcceptOfferResponse {
	declined := r.DeclinedSiblings
	if declined == nil {
		declined = []uuid.UUID{}
	}
	return &AcceptOfferResponse{OfferID: r.OfferID, DeclinedSiblings: declined}
}

type CreateAgreementResponse struct {
	AgreementID uuid.UUID `json:"agreement_id"`
	Replayed    bool      `json:"replayed"`
}

func FromCreateAgreementResult(r *commands.CreateAgreementResult) *CreateAgreementResponse {
	return &CreateAgreementResponse{AgreementID: r.AgreementID, Replayed: r.Replayed}
}

type ScheduleFulfillmentResponse struct {
	FulfillmentID uuid.UUID `json:"fulfillment_id"`
}

func FromScheduleFulfillmentResult(r *commands.ScheduleFulfillmentResult) *ScheduleFulfillmentResponse {
	return &ScheduleFulfillmentResponse{FulfillmentID: r.FulfillmentID}
}

type CompleteFulfillmentResponse struct {
	FulfillmentID      uuid.UUID `json:"fulfillment_id"`
	AgreementFulfilled bool      `json:"agreement_fulfilled"`
	IntentFulfilled    bool      `json:"intent_fulfilled"`
}

func FromCompleteFulfillmentResult(r *commands.CompleteFulfillmentResult) *CompleteFulfillmentResponse {
	return &CompleteFulfillmentResponse{
		FulfillmentID:      r.FulfillmentID,
		AgreementFulfilled: r.AgreementFulfilled,
		IntentFulfilled:    r.IntentFulfilled,
	}
}

type SweepResponse struct {
	ExpiredIntents []uuid.UUID `json:"expired_intents"`
	ExpiredOffers  []uuid.UUID `json:"expired_offers"`
}

func FromSweepResult(r *commands.SweepResult) *SweepResponse {
	intents := r.ExpiredIntents
	if intents == nil {
		intents = []uuid.UUID{}
	}
	offers := r.ExpiredOffers
	if offers == nil {
		offers = []uuid.UUID{}
	}
	return &SweepResponse{ExpiredIntents: intents, ExpiredOffers: offers}
}

type AvailabilityResponse struct {
	ResourceID uuid.UUID `json:"resource_id"`
	Available  bool      `json:"available"`
}
