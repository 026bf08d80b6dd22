//go:build unit

package fulfillment_test

import (
	"testing"
	"time"

	"rentalflow/internal/domain/fulfillment"
	"rentalflow/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFulfillment(t *testing.T) {
	t.Run("valid pickup leg", func(t *testing.T) {
		f, err := fulfillment.NewFulfillment(uuid.New(), uuid.New(), fulfillment.ActionPickup, "depot A", "")
		require.NoError(t, err)
		assert.Equal(t, fulfillment.StatusScheduled, f.Status())
		assert.Equal(t, fulfillment.ActionPickup, f.Action())
	})

	t.Run("unknown action rejected", func(t *testing.T) {
		_, err := fulfillment.NewFulfillment(uuid.New(), uuid.New(), fulfillment.Action("delivery"), "depot A", "")
		assert.ErrorIs(t, err, fulfillment.ErrInvalidAction)
	})
}

func TestFulfillmentProgress(t *testing.T) {
	now := time.Now().UTC()

	t.Run("owner walks the leg to completion", func(t *testing.T) {
		f := builder.NewFulfillmentBuilder().BuildDomain()

		require.NoError(t, f.Start(f.OwnerID(), now))
		assert.Equal(t, fulfillment.StatusInProgress, f.Status())
		require.NotNil(t, f.StartedAt())

		require.NoError(t, f.Complete(f.OwnerID(), now.Add(time.Hour)))
		assert.Equal(t, fulfillment.StatusCompleted, f.Status())
		require.NotNil(t, f.CompletedAt())
	})

	t.Run("non-owner rejected on every transition", func(t *testing.T) {
		stranger := uuid.New()

		f := builder.NewFulfillmentBuilder().BuildDomain()
		assert.ErrorIs(t, f.Start(stranger, now), fulfillment.ErrNotOwner)
		assert.ErrorIs(t, f.Cancel(stranger), fulfillment.ErrNotOwner)
		assert.ErrorIs(t, f.Fail(stranger), fulfillment.ErrNotOwner)

		inProgress := builder.NewFulfillmentBuilder().AsInProgress().BuildDomain()
		assert.ErrorIs(t, inProgress.Complete(stranger, now), fulfillment.ErrNotOwner)
	})

	t.Run("cannot complete before starting", func(t *testing.T) {
		f := builder.NewFulfillmentBuilder().BuildDomain()
		assert.ErrorIs(t, f.Complete(f.OwnerID(), now), fulfillment.ErrInvalidTransition)
	})

	t.Run("cancel and fail from either live status", func(t *testing.T) {
		scheduled := builder.NewFulfillmentBuilder().BuildDomain()
		require.NoError(t, scheduled.Cancel(scheduled.OwnerID()))

		inProgress := builder.NewFulfillmentBuilder().AsInProgress().BuildDomain()
		require.NoError(t, inProgress.Fail(inProgress.OwnerID()))
	})

	t.Run("terminal legs frozen", func(t *testing.T) {
		f := builder.NewFulfillmentBuilder().AsCompleted().BuildDomain()
		assert.ErrorIs(t, f.Cancel(f.OwnerID()), fulfillment.ErrInvalidTransition)
		assert.ErrorIs(t, f.Fail(f.OwnerID()), fulfillment.ErrInvalidTransition)
		assert.ErrorIs(t, f.Start(f.OwnerID(), now), fulfillment.ErrInvalidTransition)
	})
}
