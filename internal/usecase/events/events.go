package events

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	IntentCreated   Kind = "IntentCreated"
	IntentCancelled Kind = "IntentCancelled"
	IntentExpired   Kind = "IntentExpired"
	IntentFulfilled Kind = "IntentFulfilled"

	OfferProposed  Kind = "OfferProposed"
	OfferAccepted  Kind = "OfferAccepted"
	OfferDeclined  Kind = "OfferDeclined"
	OfferWithdrawn Kind = "OfferWithdrawn"
	OfferExpired   Kind = "OfferExpired"

	AgreementCreated   Kind = "AgreementCreated"
	AgreementSigned    Kind = "AgreementSigned"
	AgreementCancelled Kind = "AgreementCancelled"
	AgreementDisputed  Kind = "AgreementDisputed"
	AgreementFulfilled Kind = "AgreementFulfilled"

	FulfillmentScheduled Kind = "FulfillmentScheduled"
	FulfillmentStarted   Kind = "FulfillmentStarted"
	FulfillmentCompleted Kind = "FulfillmentCompleted"
	FulfillmentCancelled Kind = "FulfillmentCancelled"
	FulfillmentFailed    Kind = "FulfillmentFailed"
)

// Event is emitted once per successful lifecycle transition, after the
// transaction committed.
type Event struct {
	Kind       Kind
	EntityID   uuid.UUID
	ActorID    uuid.UUID
	OccurredAt time.Time
}

// Publisher delivers events to the external notification layer. Delivery is
// best-effort: Publish must never block the calling request and a dropped
// event never rolls back the committed transaction it describes.
type Publisher interface {
	Publish(e Event)
}

// AsyncPublisher buffers events and logs them from a background goroutine.
// When the buffer is full the event is dropped and counted, honoring the
// non-blocking contract.
type AsyncPublisher struct {
	mu     sync.Mutex
	closed bool
	ch     chan Event
	done   chan struct{}
	logger *slog.Logger
}

func NewAsyncPublisher(logger *slog.Logger, buffer int) *AsyncPublisher {
	if buffer <= 0 {
		buffer = 256
	}
	p := &AsyncPublisher{
		ch:     make(chan Event, buffer),
		done:   make(chan struct{}),
		logger: logger,
	}
	go p.run()
	return p
}

func (p *AsyncPublisher) Publish(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// A request may commit while the publisher shuts down; its event is
	// dropped, never panicked on.
	if p.closed {
		p.logger.Warn("publisher closed, dropping event",
			"kind", string(e.Kind), "entity_id", e.EntityID)
		return
	}
	select {
	case p.ch <- e:
	default:
		p.logger.Warn("event buffer full, dropping event",
			"kind", string(e.Kind), "entity_id", e.EntityID)
	}
}

func (p *AsyncPublisher) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.ch)
	}
	p.mu.Unlock()
	<-p.done
}

func (p *AsyncPublisher) run() {
	defer close(p.done)
	for e := range p.ch {
		p.logger.Info("lifecycle event",
			"kind", string(e.Kind),
			"entity_id", e.EntityID,
			"actor_id", e.ActorID,
			"occurred_at", e.OccurredAt,
		)
	}
}

// NopPublisher is used in tests and tooling that does not care about events.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
