//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"rentalflow/internal/domain/agreement"
	"rentalflow/internal/domain/fulfillment"
	"rentalflow/internal/domain/intent"
	"rentalflow/internal/pkg/clock"
	"rentalflow/internal/pkg/errs"
	"rentalflow/internal/usecase/commands"
	"rentalflow/internal/usecase/events"
	"rentalflow/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fulfillmentScene holds a matched intent with a signed agreement whose
// rental window already started relative to the scene clock.
type fulfillmentScene struct {
	uow       *fakeUoW
	clk       *clock.MockClock
	intent    *builder.IntentBuilder
	agreement *builder.AgreementBuilder
}

func newFulfillmentScene() *fulfillmentScene {
	clk := fixedClock()
	uow := newFakeUoW()

	ib := builder.NewIntentBuilder().
		AsMatched().
		WithWindow(clk.Now().Add(-time.Hour), clk.Now().Add(48*time.Hour))
	uow.seedIntent(ib.BuildSnapshot())

	ab := builder.NewAgreementBuilder().
		WithIntentID(ib.ID).
		WithReceiverID(ib.ReceiverID).
		WithWindow(ib.WindowStart, ib.WindowEnd).
		AsSigned()
	uow.seedAgreement(ab.BuildSnapshot())

	return &fulfillmentScene{uow: uow, clk: clk, intent: ib, agreement: ab}
}

func (s *fulfillmentScene) seedPickup(status fulfillment.Status) *builder.FulfillmentBuilder {
	fb := builder.NewFulfillmentBuilder().
		WithAgreementID(s.agreement.ID).
		WithOwnerID(s.agreement.ProviderID).
		WithStatus(status)
	s.uow.seedFulfillment(fb.BuildSnapshot())
	return fb
}

func TestFulfillmentCommands_Schedule(t *testing.T) {
	ctx := context.Background()

	t.Run("provider schedules pickup on a signed agreement", func(t *testing.T) {
		scene := newFulfillmentScene()
		pub := &capturePublisher{}
		uc := commands.NewFulfillmentCommands(scene.uow, scene.clk, pub)

		result, err := uc.Schedule(ctx, commands.ScheduleFulfillmentCommand{
			AgreementID: scene.agreement.ID,
			Action:      fulfillment.ActionPickup,
			Location:    "depot A",
		}, scene.agreement.ProviderID)
		require.NoError(t, err)

		stored := scene.uow.fulfillment(result.FulfillmentID)
		assert.Equal(t, fulfillment.StatusScheduled, stored.Status)
		assert.Equal(t, scene.agreement.ProviderID, stored.OwnerID)
		assert.Equal(t, []events.Kind{events.FulfillmentScheduled}, pub.kinds())
	})

	t.Run("pickup before the window starts is premature", func(t *testing.T) {
		scene := newFulfillmentScene()
		uc := commands.NewFulfillmentCommands(scene.uow, scene.clk, events.NopPublisher{})

		future := scene.agreement.
			WithWindow(scene.clk.Now().Add(24*time.Hour), scene.clk.Now().Add(72*time.Hour))
		scene.uow.seedAgreement(future.BuildSnapshot())

		_, err := uc.Schedule(ctx, commands.ScheduleFulfillmentCommand{
			AgreementID: scene.agreement.ID,
			Action:      fulfillment.ActionPickup,
			Location:    "depot A",
		}, scene.agreement.ProviderID)
		assert.ErrorIs(t, err, errs.ErrPreconditionNotMet)
	})

	t.Run("pickup needs a signed agreement", func(t *testing.T) {
		scene := newFulfillmentScene()
		uc := commands.NewFulfillmentCommands(scene.uow, scene.clk, events.NopPublisher{})

		pending := scene.agreement.WithStatus(agreement.StatusPending)
		scene.uow.seedAgreement(pending.BuildSnapshot())

		_, err := uc.Schedule(ctx, commands.ScheduleFulfillmentCommand{
			AgreementID: scene.agreement.ID,
			Action:      fulfillment.ActionPickup,
			Location:    "depot A",
		}, scene.agreement.ProviderID)
		assert.ErrorIs(t, err, errs.ErrPreconditionNotMet)
	})

	t.Run("receiver cannot schedule pickup", func(t *testing.T) {
		scene := newFulfillmentScene()
		uc := commands.NewFulfillmentCommands(scene.uow, scene.clk, events.NopPublisher{})

		_, err := uc.Schedule(ctx, commands.ScheduleFulfillmentCommand{
			AgreementID: scene.agreement.ID,
			Action:      fulfillment.ActionPickup,
			Location:    "depot A",
		}, scene.agreement.ReceiverID)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("each leg exists at most once", func(t *testing.T) {
		scene := newFulfillmentScene()
		uc := commands.NewFulfillmentCommands(scene.uow, scene.clk, events.NopPublisher{})

		scene.seedPickup(fulfillment.StatusScheduled)

		_, err := uc.Schedule(ctx, commands.ScheduleFulfillmentCommand{
			AgreementID: scene.agreement.ID,
			Action:      fulfillment.ActionPickup,
			Location:    "depot A",
		}, scene.agreement.ProviderID)
		assert.ErrorIs(t, err, errs.ErrDuplicateLeg)
	})

	t.Run("return needs a completed pickup", func(t *testing.T) {
		scene := newFulfillmentScene()
		uc := commands.NewFulfillmentCommands(scene.uow, scene.clk, events.NopPublisher{})

		cmd := commands.ScheduleFulfillmentCommand{
			AgreementID: scene.agreement.ID,
			Action:      fulfillment.ActionReturn,
			Location:    "depot A",
		}

		_, err := uc.Schedule(ctx, cmd, scene.agreement.ReceiverID)
		assert.ErrorIs(t, err, errs.ErrPreconditionNotMet)

		scene.seedPickup(fulfillment.StatusInProgress)
		_, err = uc.Schedule(ctx, cmd, scene.agreement.ReceiverID)
		assert.ErrorIs(t, err, errs.ErrPreconditionNotMet)
	})

	t.Run("receiver schedules return after pickup completes", func(t *testing.T) {
		scene := newFulfillmentScene()
		uc := commands.NewFulfillmentCommands(scene.uow, scene.clk, events.NopPublisher{})

		scene.seedPickup(fulfillment.StatusCompleted)

		result, err := uc.Schedule(ctx, commands.ScheduleFulfillmentCommand{
			AgreementID: scene.agreement.ID,
			Action:      fulfillment.ActionReturn,
			Location:    "depot B",
		}, scene.agreement.ReceiverID)
		require.NoError(t, err)
		assert.Equal(t, scene.agreement.ReceiverID, scene.uow.fulfillment(result.FulfillmentID).OwnerID)
	})

	t.Run("provider cannot schedule the return leg", func(t *testing.T) {
		scene := newFulfillmentScene()
		uc := commands.NewFulfillmentCommands(scene.uow, scene.clk, events.NopPublisher{})

		scene.seedPickup(fulfillment.StatusCompleted)

		_, err := uc.Schedule(ctx, commands.ScheduleFulfillmentCommand{
			AgreementID: scene.agreement.ID,
			Action:      fulfillment.ActionReturn,
			Location:    "depot B",
		}, scene.agreement.ProviderID)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})
}

func TestFulfillmentCommands_Start(t *testing.T) {
	ctx := context.Background()

	t.Run("starting the first leg activates the agreement", func(t *testing.T) {
		scene := newFulfillmentScene()
		uc := commands.NewFulfillmentCommands(scene.uow, scene.clk, events.NopPublisher{})

		fb := scene.seedPickup(fulfillment.StatusScheduled)
		require.NoError(t, uc.Start(ctx, fb.ID, fb.OwnerID))

		stored := scene.uow.fulfillment(fb.ID)
		assert.Equal(t, fulfillment.StatusInProgress, stored.Status)
		require.NotNil(t, stored.StartedAt)
		assert.Equal(t, agreement.StatusActive, scene.uow.agreement(scene.agreement.ID).Status)
	})

	t.Run("starting a later leg leaves the active agreement alone", func(t *testing.T) {
		scene := newFulfillmentScene()
		uc := commands.NewFulfillmentCommands(scene.uow, scene.clk, events.NopPublisher{})

		active := scene.agreement.AsActive()
		scene.uow.seedAgreement(active.BuildSnapshot())

		fb := builder.NewFulfillmentBuilder().
			WithAgreementID(scene.agreement.ID).
			WithOwnerID(scene.agreement.ReceiverID).
			AsReturn()
		scene.uow.seedFulfillment(fb.BuildSnapshot())

		require.NoError(t, uc.Start(ctx, fb.ID, fb.OwnerID))
		assert.Equal(t, agreement.StatusActive, scene.uow.agreement(scene.agreement.ID).Status)
	})

	t.Run("only the owner starts a leg", func(t *testing.T) {
		scene := newFulfillmentScene()
		uc := commands.NewFulfillmentCommands(scene.uow, scene.clk, events.NopPublisher{})

		fb := scene.seedPickup(fulfillment.StatusScheduled)
		err := uc.Start(ctx, fb.ID, scene.agreement.ReceiverID)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})
}

func TestFulfillmentCommands_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("pickup completion does not settle anything", func(t *testing.T) {
		scene := newFulfillmentScene()
		uc := commands.NewFulfillmentCommands(scene.uow, scene.clk, events.NopPublisher{})

		active := scene.agreement.AsActive()
		scene.uow.seedAgreement(active.BuildSnapshot())
		fb := scene.seedPickup(fulfillment.StatusInProgress)

		result, err := uc.Complete(ctx, fb.ID, fb.OwnerID)
		require.NoError(t, err)
		assert.False(t, result.AgreementFulfilled)
		assert.False(t, result.IntentFulfilled)
		assert.Equal(t, agreement.StatusActive, scene.uow.agreement(scene.agreement.ID).Status)
		assert.Equal(t, intent.StatusMatched, scene.uow.intent(scene.intent.ID).Status)
	})

	t.Run("return completion settles agreement and intent together", func(t *testing.T) {
		scene := newFulfillmentScene()
		pub := &capturePublisher{}
		uc := commands.NewFulfillmentCommands(scene.uow, scene.clk, pub)

		active := scene.agreement.AsActive()
		scene.uow.seedAgreement(active.BuildSnapshot())

		fb := builder.NewFulfillmentBuilder().
			WithAgreementID(scene.agreement.ID).
			WithOwnerID(scene.agreement.ReceiverID).
			AsReturn().
			WithStatus(fulfillment.StatusInProgress)
		scene.uow.seedFulfillment(fb.BuildSnapshot())

		result, err := uc.Complete(ctx, fb.ID, fb.OwnerID)
		require.NoError(t, err)
		assert.True(t, result.AgreementFulfilled)
		assert.True(t, result.IntentFulfilled)

		assert.Equal(t, fulfillment.StatusCompleted, scene.uow.fulfillment(fb.ID).Status)
		assert.Equal(t, agreement.StatusFulfilled, scene.uow.agreement(scene.agreement.ID).Status)
		assert.Equal(t, intent.StatusFulfilled, scene.uow.intent(scene.intent.ID).Status)
		assert.Equal(t, []events.Kind{
			events.FulfillmentCompleted,
			events.AgreementFulfilled,
			events.IntentFulfilled,
		}, pub.kinds())
	})

	t.Run("scheduled leg cannot be completed", func(t *testing.T) {
		scene := newFulfillmentScene()
		uc := commands.NewFulfillmentCommands(scene.uow, scene.clk, events.NopPublisher{})

		fb := scene.seedPickup(fulfillment.StatusScheduled)
		_, err := uc.Complete(ctx, fb.ID, fb.OwnerID)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestFulfillmentCommands_CancelFail(t *testing.T) {
	ctx := context.Background()

	t.Run("cancelling a leg never settles the agreement", func(t *testing.T) {
		scene := newFulfillmentScene()
		uc := commands.NewFulfillmentCommands(scene.uow, scene.clk, events.NopPublisher{})

		fb := scene.seedPickup(fulfillment.StatusScheduled)
		require.NoError(t, uc.Cancel(ctx, fb.ID, fb.OwnerID))

		assert.Equal(t, fulfillment.StatusCancelled, scene.uow.fulfillment(fb.ID).Status)
		assert.Equal(t, agreement.StatusSigned, scene.uow.agreement(scene.agreement.ID).Status)
	})

	t.Run("failing an in-progress leg leaves the agreement active", func(t *testing.T) {
		scene := newFulfillmentScene()
		uc := commands.NewFulfillmentCommands(scene.uow, scene.clk, events.NopPublisher{})

		active := scene.agreement.AsActive()
		scene.uow.seedAgreement(active.BuildSnapshot())
		fb := scene.seedPickup(fulfillment.StatusInProgress)

		require.NoError(t, uc.Fail(ctx, fb.ID, fb.OwnerID))
		assert.Equal(t, fulfillment.StatusFailed, scene.uow.fulfillment(fb.ID).Status)
		assert.Equal(t, agreement.StatusActive, scene.uow.agreement(scene.agreement.ID).Status)
	})

	t.Run("only the owner terminates a leg", func(t *testing.T) {
		scene := newFulfillmentScene()
		uc := commands.NewFulfillmentCommands(scene.uow, scene.clk, events.NopPublisher{})

		fb := scene.seedPickup(fulfillment.StatusScheduled)
		assert.ErrorIs(t, uc.Cancel(ctx, fb.ID, uuid.New()), errs.ErrUnauthorized)
		assert.ErrorIs(t, uc.Fail(ctx, fb.ID, uuid.New()), errs.ErrUnauthorized)
	})
}
