package commands

import (
	"rentalflow/internal/domain/agreement"
	"rentalflow/internal/domain/fulfillment"
	"rentalflow/internal/domain/intent"
	"rentalflow/internal/domain/offer"
	"rentalflow/internal/domain/rental"
	"rentalflow/internal/usecase/shared"
)

// Snapshot-to-entity reconstruction for in-transaction guard checks.

func intentFromSnapshot(s *shared.IntentSnapshot) *intent.Intent {
	qty, _ := rental.NewQuantity(s.Quantity)
	return intent.ReconstructIntent(
		s.ID, s.ReceiverID, s.SpecificationID,
		qty,
		rental.ReconstructWindow(s.WindowStart, s.WindowEnd),
		s.DueDate,
		s.Status,
		s.CreatedAt, s.UpdatedAt,
	)
}

func offerFromSnapshot(s *shared.OfferSnapshot) *offer.Offer {
	return offer.ReconstructOffer(
		s.ID, s.IntentID, s.ProviderID, s.ResourceID,
		rental.ReconstructWindow(s.WindowStart, s.WindowEnd),
		moneyFromSnapshot(s.PriceCents, s.Currency),
		s.Terms,
		s.Status,
		s.CreatedAt, s.UpdatedAt,
	)
}

func agreementFromSnapshot(s *shared.AgreementSnapshot) *agreement.Agreement {
	return agreement.ReconstructAgreement(
		s.ID, s.IntentID, s.OfferID, s.ProviderID, s.ReceiverID, s.ResourceID,
		rental.ReconstructWindow(s.WindowStart, s.WindowEnd),
		moneyFromSnapshot(s.PriceCents, s.Currency),
		s.Terms,
		s.Status,
		"",
		s.SignedAt, s.FulfilledAt,
		s.CreatedAt, s.UpdatedAt,
	)
}

func fulfillmentFromSnapshot(s *shared.FulfillmentSnapshot) *fulfillment.Fulfillment {
	return fulfillment.ReconstructFulfillment(
		s.ID, s.AgreementID, s.OwnerID,
		s.Action,
		s.Location, s.Notes,
		s.Status,
		s.StartedAt, s.CompletedAt,
		s.CreatedAt, s.UpdatedAt,
	)
}

func moneyFromSnapshot(cents *int64, currency *string) rental.Money {
	if cents == nil || currency == nil {
		return rental.Money{}
	}
	m, err := rental.NewMoney(*cents, *currency)
	if err != nil {
		return rental.Money{}
	}
	return m
}
