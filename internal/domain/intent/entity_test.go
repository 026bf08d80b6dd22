//go:build unit

package intent_test

import (
	"testing"
	"time"

	"rentalflow/internal/domain/intent"
	"rentalflow/internal/domain/rental"
	"rentalflow/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIntent(t *testing.T) {
	receiverID := uuid.New()
	specID := uuid.New()
	qty, err := rental.NewQuantity(2)
	require.NoError(t, err)
	window, err := rental.NewWindow(time.Now().Add(time.Hour), time.Now().Add(48*time.Hour))
	require.NoError(t, err)

	it := intent.NewIntent(receiverID, specID, qty, window, nil)

	assert.NotEqual(t, uuid.Nil, it.ID())
	assert.Equal(t, receiverID, it.ReceiverID())
	assert.Equal(t, specID, it.SpecificationID())
	assert.Equal(t, intent.StatusPending, it.Status())
	assert.True(t, it.IsOpen())
}

func TestIntentCancel(t *testing.T) {
	t.Run("receiver cancels pending intent", func(t *testing.T) {
		it := builder.NewIntentBuilder().BuildDomain()
		require.NoError(t, it.Cancel(it.ReceiverID()))
		assert.Equal(t, intent.StatusCancelled, it.Status())
	})

	t.Run("non-receiver rejected", func(t *testing.T) {
		it := builder.NewIntentBuilder().BuildDomain()
		err := it.Cancel(uuid.New())
		assert.ErrorIs(t, err, intent.ErrNotReceiver)
		assert.Equal(t, intent.StatusPending, it.Status())
	})

	t.Run("matched intent cannot be cancelled", func(t *testing.T) {
		it := builder.NewIntentBuilder().AsMatched().BuildDomain()
		err := it.Cancel(it.ReceiverID())
		assert.ErrorIs(t, err, intent.ErrInvalidTransition)
	})
}

func TestIntentTransitions(t *testing.T) {
	t.Run("pending to matched to fulfilled", func(t *testing.T) {
		it := builder.NewIntentBuilder().BuildDomain()
		require.NoError(t, it.Match())
		assert.Equal(t, intent.StatusMatched, it.Status())
		require.NoError(t, it.Fulfill())
		assert.Equal(t, intent.StatusFulfilled, it.Status())
	})

	t.Run("pending cannot be fulfilled directly", func(t *testing.T) {
		it := builder.NewIntentBuilder().BuildDomain()
		assert.ErrorIs(t, it.Fulfill(), intent.ErrInvalidTransition)
	})

	t.Run("terminal states are closed", func(t *testing.T) {
		for _, s := range []intent.Status{
			intent.StatusDeclined,
			intent.StatusCancelled,
			intent.StatusFulfilled,
			intent.StatusExpired,
		} {
			it := builder.NewIntentBuilder().WithStatus(s).BuildDomain()
			assert.ErrorIs(t, it.Match(), intent.ErrInvalidTransition, "from %s", s)
			assert.True(t, s.IsTerminal())
		}
	})
}

func TestIntentExpire(t *testing.T) {
	now := time.Now().UTC()

	t.Run("window started without agreement", func(t *testing.T) {
		it := builder.NewIntentBuilder().
			WithWindow(now.Add(-2*time.Hour), now.Add(2*time.Hour)).
			BuildDomain()
		require.NoError(t, it.Expire(now))
		assert.Equal(t, intent.StatusExpired, it.Status())
	})

	t.Run("window not yet started", func(t *testing.T) {
		it := builder.NewIntentBuilder().
			WithWindow(now.Add(time.Hour), now.Add(3*time.Hour)).
			BuildDomain()
		assert.ErrorIs(t, it.Expire(now), intent.ErrInvalidTransition)
		assert.Equal(t, intent.StatusPending, it.Status())
	})
}
