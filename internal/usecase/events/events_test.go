//go:build unit

package events_test

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"rentalflow/internal/usecase/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func someEvent(kind events.Kind) events.Event {
	return events.Event{
		Kind:       kind,
		EntityID:   uuid.New(),
		ActorID:    uuid.New(),
		OccurredAt: time.Now(),
	}
}

func TestAsyncPublisher(t *testing.T) {
	t.Run("publish after close is dropped, not panicked", func(t *testing.T) {
		p := events.NewAsyncPublisher(discardLogger(), 4)
		p.Publish(someEvent(events.IntentCreated))
		p.Close()

		require.NotPanics(t, func() {
			p.Publish(someEvent(events.AgreementSigned))
		})
	})

	t.Run("close is idempotent", func(t *testing.T) {
		p := events.NewAsyncPublisher(discardLogger(), 4)
		require.NotPanics(t, func() {
			p.Close()
			p.Close()
		})
	})

	t.Run("publish never blocks on a full buffer", func(t *testing.T) {
		p := events.NewAsyncPublisher(discardLogger(), 1)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for range 100 {
				p.Publish(someEvent(events.OfferProposed))
			}
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("Publish blocked on a full buffer")
		}
		p.Close()
	})

	t.Run("concurrent publish racing close", func(t *testing.T) {
		p := events.NewAsyncPublisher(discardLogger(), 2)

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 50 {
					p.Publish(someEvent(events.FulfillmentCompleted))
				}
			}()
		}
		p.Close()
		require.NotPanics(t, wg.Wait)
	})
}
