//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"rentalflow/internal/domain/agreement"
	"rentalflow/internal/pkg/errs"
	"rentalflow/internal/usecase/commands"
	"rentalflow/internal/usecase/events"
	"rentalflow/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// agreementScene holds a matched intent with its accepted offer, the state an
// agreement is created from.
type agreementScene struct {
	uow    *fakeUoW
	intent *builder.IntentBuilder
	offer  *builder.OfferBuilder
}

func newAgreementScene() *agreementScene {
	uow := newFakeUoW()
	ib := builder.NewIntentBuilder().AsMatched()
	uow.seedIntent(ib.BuildSnapshot())

	ob := builder.NewOfferBuilder().
		WithIntentID(ib.ID).
		WithWindow(ib.WindowStart, ib.WindowEnd).
		AsAccepted()
	uow.seedOffer(ob.BuildSnapshot())

	return &agreementScene{uow: uow, intent: ib, offer: ob}
}

func TestAgreementCommands_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("receiver finalizes the accepted offer", func(t *testing.T) {
		scene := newAgreementScene()
		pub := &capturePublisher{}
		uc := commands.NewAgreementCommands(scene.uow, fixedClock(), pub)

		result, err := uc.Create(ctx, commands.CreateAgreementCommand{OfferID: scene.offer.ID}, scene.intent.ReceiverID)
		require.NoError(t, err)
		assert.False(t, result.Replayed)

		stored := scene.uow.agreement(result.AgreementID)
		assert.Equal(t, agreement.StatusPending, stored.Status)
		assert.Equal(t, scene.intent.ID, stored.IntentID)
		assert.Equal(t, scene.offer.ProviderID, stored.ProviderID)
		assert.Equal(t, scene.intent.ReceiverID, stored.ReceiverID)
		assert.Equal(t, scene.offer.Terms, stored.Terms)
		assert.Equal(t, []events.Kind{events.AgreementCreated}, pub.kinds())
	})

	t.Run("retry with the same offer returns the existing agreement", func(t *testing.T) {
		scene := newAgreementScene()
		pub := &capturePublisher{}
		uc := commands.NewAgreementCommands(scene.uow, fixedClock(), pub)

		cmd := commands.CreateAgreementCommand{OfferID: scene.offer.ID}
		first, err := uc.Create(ctx, cmd, scene.intent.ReceiverID)
		require.NoError(t, err)

		second, err := uc.Create(ctx, cmd, scene.intent.ReceiverID)
		require.NoError(t, err)
		assert.True(t, second.Replayed)
		assert.Equal(t, first.AgreementID, second.AgreementID)
		assert.Len(t, pub.kinds(), 1)
	})

	t.Run("an intent carries at most one agreement", func(t *testing.T) {
		scene := newAgreementScene()
		uc := commands.NewAgreementCommands(scene.uow, fixedClock(), events.NopPublisher{})

		// a second accepted offer on the same intent should be impossible in
		// storage; if it happens anyway the conflict is reported
		other := builder.NewOfferBuilder().
			WithIntentID(scene.intent.ID).
			WithWindow(scene.intent.WindowStart, scene.intent.WindowEnd).
			AsAccepted()
		scene.uow.seedOffer(other.BuildSnapshot())

		_, err := uc.Create(ctx, commands.CreateAgreementCommand{OfferID: scene.offer.ID}, scene.intent.ReceiverID)
		require.NoError(t, err)

		_, err = uc.Create(ctx, commands.CreateAgreementCommand{OfferID: other.ID}, scene.intent.ReceiverID)
		assert.ErrorIs(t, err, errs.ErrAgreementAlreadyExists)
	})

	t.Run("only an accepted offer can be finalized", func(t *testing.T) {
		scene := newAgreementScene()
		uc := commands.NewAgreementCommands(scene.uow, fixedClock(), events.NopPublisher{})

		proposed := builder.NewOfferBuilder().
			WithIntentID(scene.intent.ID).
			WithWindow(scene.intent.WindowStart, scene.intent.WindowEnd)
		scene.uow.seedOffer(proposed.BuildSnapshot())

		_, err := uc.Create(ctx, commands.CreateAgreementCommand{OfferID: proposed.ID}, scene.intent.ReceiverID)
		assert.ErrorIs(t, err, errs.ErrOfferNotAccepted)
	})

	t.Run("only the receiver finalizes", func(t *testing.T) {
		scene := newAgreementScene()
		uc := commands.NewAgreementCommands(scene.uow, fixedClock(), events.NopPublisher{})

		_, err := uc.Create(ctx, commands.CreateAgreementCommand{OfferID: scene.offer.ID}, scene.offer.ProviderID)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("overlapping booking on the resource blocks finalization", func(t *testing.T) {
		scene := newAgreementScene()
		uc := commands.NewAgreementCommands(scene.uow, fixedClock(), events.NopPublisher{})

		blocking := builder.NewAgreementBuilder().
			WithResourceID(scene.offer.ResourceID).
			WithWindow(scene.offer.WindowStart.Add(-12*time.Hour), scene.offer.WindowStart.Add(12*time.Hour)).
			AsSigned()
		scene.uow.seedAgreement(blocking.BuildSnapshot())

		_, err := uc.Create(ctx, commands.CreateAgreementCommand{OfferID: scene.offer.ID}, scene.intent.ReceiverID)
		assert.ErrorIs(t, err, errs.ErrResourceDoubleBooked)
	})

	t.Run("back-to-back booking does not block", func(t *testing.T) {
		scene := newAgreementScene()
		uc := commands.NewAgreementCommands(scene.uow, fixedClock(), events.NopPublisher{})

		adjacent := builder.NewAgreementBuilder().
			WithResourceID(scene.offer.ResourceID).
			WithWindow(scene.offer.WindowStart.Add(-48*time.Hour), scene.offer.WindowStart).
			AsSigned()
		scene.uow.seedAgreement(adjacent.BuildSnapshot())

		_, err := uc.Create(ctx, commands.CreateAgreementCommand{OfferID: scene.offer.ID}, scene.intent.ReceiverID)
		assert.NoError(t, err)
	})

	t.Run("cancelled booking does not block", func(t *testing.T) {
		scene := newAgreementScene()
		uc := commands.NewAgreementCommands(scene.uow, fixedClock(), events.NopPublisher{})

		cancelled := builder.NewAgreementBuilder().
			WithResourceID(scene.offer.ResourceID).
			WithWindow(scene.offer.WindowStart, scene.offer.WindowEnd).
			WithStatus(agreement.StatusCancelled)
		scene.uow.seedAgreement(cancelled.BuildSnapshot())

		_, err := uc.Create(ctx, commands.CreateAgreementCommand{OfferID: scene.offer.ID}, scene.intent.ReceiverID)
		assert.NoError(t, err)
	})

	t.Run("explicit terms override the offer terms", func(t *testing.T) {
		scene := newAgreementScene()
		uc := commands.NewAgreementCommands(scene.uow, fixedClock(), events.NopPublisher{})

		result, err := uc.Create(ctx, commands.CreateAgreementCommand{
			OfferID: scene.offer.ID,
			Terms:   "weekend rate, fuel included",
		}, scene.intent.ReceiverID)
		require.NoError(t, err)
		assert.Equal(t, "weekend rate, fuel included", scene.uow.agreement(result.AgreementID).Terms)
	})
}

func TestAgreementCommands_Sign(t *testing.T) {
	ctx := context.Background()

	t.Run("receiver signs a pending agreement", func(t *testing.T) {
		uow := newFakeUoW()
		clk := fixedClock()
		pub := &capturePublisher{}
		uc := commands.NewAgreementCommands(uow, clk, pub)

		ab := builder.NewAgreementBuilder()
		uow.seedAgreement(ab.BuildSnapshot())

		require.NoError(t, uc.Sign(ctx, ab.ID, ab.ReceiverID))

		stored := uow.agreement(ab.ID)
		assert.Equal(t, agreement.StatusSigned, stored.Status)
		require.NotNil(t, stored.SignedAt)
		assert.Equal(t, clk.Now(), *stored.SignedAt)
		assert.Equal(t, []events.Kind{events.AgreementSigned}, pub.kinds())
	})

	t.Run("provider cannot sign", func(t *testing.T) {
		uow := newFakeUoW()
		uc := commands.NewAgreementCommands(uow, fixedClock(), events.NopPublisher{})

		ab := builder.NewAgreementBuilder()
		uow.seedAgreement(ab.BuildSnapshot())

		err := uc.Sign(ctx, ab.ID, ab.ProviderID)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("signing twice is rejected", func(t *testing.T) {
		uow := newFakeUoW()
		uc := commands.NewAgreementCommands(uow, fixedClock(), events.NopPublisher{})

		ab := builder.NewAgreementBuilder().AsSigned()
		uow.seedAgreement(ab.BuildSnapshot())

		err := uc.Sign(ctx, ab.ID, ab.ReceiverID)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestAgreementCommands_CancelDispute(t *testing.T) {
	ctx := context.Background()

	t.Run("either party cancels before activity", func(t *testing.T) {
		for _, party := range []string{"provider", "receiver"} {
			t.Run(party, func(t *testing.T) {
				uow := newFakeUoW()
				uc := commands.NewAgreementCommands(uow, fixedClock(), events.NopPublisher{})

				ab := builder.NewAgreementBuilder().AsSigned()
				uow.seedAgreement(ab.BuildSnapshot())

				actor := ab.ProviderID
				if party == "receiver" {
					actor = ab.ReceiverID
				}
				require.NoError(t, uc.Cancel(ctx, ab.ID, actor, "resource damaged"))
				assert.Equal(t, agreement.StatusCancelled, uow.agreement(ab.ID).Status)
			})
		}
	})

	t.Run("active agreement cannot be cancelled", func(t *testing.T) {
		uow := newFakeUoW()
		uc := commands.NewAgreementCommands(uow, fixedClock(), events.NopPublisher{})

		ab := builder.NewAgreementBuilder().AsActive()
		uow.seedAgreement(ab.BuildSnapshot())

		err := uc.Cancel(ctx, ab.ID, ab.ReceiverID, "changed my mind")
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		uow := newFakeUoW()
		uc := commands.NewAgreementCommands(uow, fixedClock(), events.NopPublisher{})

		ab := builder.NewAgreementBuilder().AsSigned()
		uow.seedAgreement(ab.BuildSnapshot())

		err := uc.Cancel(ctx, ab.ID, uuid.New(), "not mine")
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("party disputes an active agreement", func(t *testing.T) {
		uow := newFakeUoW()
		pub := &capturePublisher{}
		uc := commands.NewAgreementCommands(uow, fixedClock(), pub)

		ab := builder.NewAgreementBuilder().AsActive()
		uow.seedAgreement(ab.BuildSnapshot())

		require.NoError(t, uc.Dispute(ctx, ab.ID, ab.ProviderID, "returned damaged"))
		assert.Equal(t, agreement.StatusDisputed, uow.agreement(ab.ID).Status)
		assert.Equal(t, []events.Kind{events.AgreementDisputed}, pub.kinds())
	})

	t.Run("signed agreement cannot be disputed", func(t *testing.T) {
		uow := newFakeUoW()
		uc := commands.NewAgreementCommands(uow, fixedClock(), events.NopPublisher{})

		ab := builder.NewAgreementBuilder().AsSigned()
		uow.seedAgreement(ab.BuildSnapshot())

		err := uc.Dispute(ctx, ab.ID, ab.ReceiverID, "too early")
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}
