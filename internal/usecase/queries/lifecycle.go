package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Stores are the read-side persistence ports, implemented by
// internal/infra/readstore.

type IntentStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*IntentView, error)
	FindOffersByIntent(ctx context.Context, intentID uuid.UUID) ([]OfferView, error)
	FindByReceiver(ctx context.Context, receiverID uuid.UUID, limit int32) ([]IntentView, error)
}

type OfferStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OfferView, error)
}

type AgreementStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AgreementView, error)
	FindFulfillmentsByAgreement(ctx context.Context, agreementID uuid.UUID) ([]FulfillmentView, error)
}

type ResourceStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
}

type PartyStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PartyView, error)
}

type IntentQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*IntentView, error)
	ListByReceiver(ctx context.Context, receiverID uuid.UUID, limit int32) ([]IntentView, error)
}

type OfferQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*OfferView, error)
}

type AgreementQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*AgreementView, error)
}

type CatalogQueries interface {
	GetResource(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	// GetResourceAvailability reports whether the resource's availability
	// window covers [start, end).
	GetResourceAvailability(ctx context.Context, id uuid.UUID, start, end time.Time) (bool, error)
}

type PartyQueries interface {
	GetParty(ctx context.Context, id uuid.UUID) (*PartyView, error)
}

const defaultListLimit = 50

type intentQueriesImpl struct {
	store IntentStore
}

func NewIntentQueries(store IntentStore) IntentQueries {
	return &intentQueriesImpl{store: store}
}

func (q *intentQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*IntentView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	offers, err := q.store.FindOffersByIntent(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Offers = offers
	return view, nil
}

func (q *intentQueriesImpl) ListByReceiver(ctx context.Context, receiverID uuid.UUID, limit int32) ([]IntentView, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	return q.store.FindByReceiver(ctx, receiverID, limit)
}

type offerQueriesImpl struct {
	store OfferStore
}

func NewOfferQueries(store OfferStore) OfferQueries {
	return &offerQueriesImpl{store: store}
}

func (q *offerQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OfferView, error) {
	return q.store.FindByID(ctx, id)
}

type agreementQueriesImpl struct {
	store AgreementStore
}

func NewAgreementQueries(store AgreementStore) AgreementQueries {
	return &agreementQueriesImpl{store: store}
}

func (q *agreementQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*AgreementView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	legs, err := q.store.FindFulfillmentsByAgreement(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Fulfillments = legs
	return view, nil
}

type catalogQueriesImpl struct {
	store ResourceStore
}

func NewCatalogQueries(store ResourceStore) CatalogQueries {
	return &catalogQueriesImpl{store: store}
}

func (q *catalogQueriesImpl) GetResource(ctx context.Context, id uuid.UUID) (*ResourceView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *catalogQueriesImpl) GetResourceAvailability(ctx context.Context, id uuid.UUID, start, end time.Time) (bool, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	covered := !start.Before(view.AvailabilityStart) && !end.After(view.AvailabilityEnd)
	return covered, nil
}

type partyQueriesImpl struct {
	store PartyStore
}

func NewPartyQueries(store PartyStore) PartyQueries {
	return &partyQueriesImpl{store: store}
}

func (q *partyQueriesImpl) GetParty(ctx context.Context, id uuid.UUID) (*PartyView, error) {
	return q.store.FindByID(ctx, id)
}
