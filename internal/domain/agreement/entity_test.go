//go:build unit

package agreement_test

import (
	"testing"
	"time"

	"rentalflow/internal/domain/agreement"
	"rentalflow/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgreementSign(t *testing.T) {
	now := time.Now().UTC()

	t.Run("receiver signs pending agreement", func(t *testing.T) {
		a := builder.NewAgreementBuilder().BuildDomain()
		require.NoError(t, a.Sign(a.ReceiverID(), now))
		assert.Equal(t, agreement.StatusSigned, a.Status())
		require.NotNil(t, a.SignedAt())
		assert.Equal(t, now, *a.SignedAt())
	})

	t.Run("provider cannot sign", func(t *testing.T) {
		a := builder.NewAgreementBuilder().BuildDomain()
		assert.ErrorIs(t, a.Sign(a.ProviderID(), now), agreement.ErrNotReceiver)
		assert.Equal(t, agreement.StatusPending, a.Status())
	})

	t.Run("signing twice rejected", func(t *testing.T) {
		a := builder.NewAgreementBuilder().BuildDomain()
		require.NoError(t, a.Sign(a.ReceiverID(), now))
		assert.ErrorIs(t, a.Sign(a.ReceiverID(), now), agreement.ErrInvalidTransition)
	})
}

func TestAgreementCancel(t *testing.T) {
	t.Run("either party before active", func(t *testing.T) {
		for name, pick := range map[string]func(*agreement.Agreement) uuid.UUID{
			"provider": func(a *agreement.Agreement) uuid.UUID { return a.ProviderID() },
			"receiver": func(a *agreement.Agreement) uuid.UUID { return a.ReceiverID() },
		} {
			t.Run(name, func(t *testing.T) {
				a := builder.NewAgreementBuilder().BuildDomain()
				require.NoError(t, a.Cancel(pick(a), "changed plans"))
				assert.Equal(t, agreement.StatusCancelled, a.Status())
				assert.Equal(t, "changed plans", a.CancelReason())
			})
		}
	})

	t.Run("signed agreement can still be cancelled", func(t *testing.T) {
		a := builder.NewAgreementBuilder().AsSigned().BuildDomain()
		require.NoError(t, a.Cancel(a.ReceiverID(), "no longer needed"))
		assert.Equal(t, agreement.StatusCancelled, a.Status())
	})

	t.Run("active agreement cannot be cancelled", func(t *testing.T) {
		a := builder.NewAgreementBuilder().AsActive().BuildDomain()
		assert.ErrorIs(t, a.Cancel(a.ReceiverID(), "too late"), agreement.ErrInvalidTransition)
	})

	t.Run("stranger rejected", func(t *testing.T) {
		a := builder.NewAgreementBuilder().BuildDomain()
		assert.ErrorIs(t, a.Cancel(uuid.New(), "not mine"), agreement.ErrNotParty)
	})
}

func TestAgreementDispute(t *testing.T) {
	t.Run("active agreement disputed by party", func(t *testing.T) {
		a := builder.NewAgreementBuilder().AsActive().BuildDomain()
		require.NoError(t, a.Dispute(a.ProviderID(), "damaged on return"))
		assert.Equal(t, agreement.StatusDisputed, a.Status())
		assert.Equal(t, "damaged on return", a.CancelReason())
	})

	t.Run("pending agreement cannot be disputed", func(t *testing.T) {
		a := builder.NewAgreementBuilder().BuildDomain()
		assert.ErrorIs(t, a.Dispute(a.ReceiverID(), "early"), agreement.ErrInvalidTransition)
	})
}

func TestAgreementLifecycle(t *testing.T) {
	now := time.Now().UTC()

	a := builder.NewAgreementBuilder().BuildDomain()
	require.NoError(t, a.Sign(a.ReceiverID(), now))
	require.NoError(t, a.Activate())
	require.NoError(t, a.Fulfill(now.Add(48*time.Hour)))

	assert.Equal(t, agreement.StatusFulfilled, a.Status())
	require.NotNil(t, a.FulfilledAt())
	assert.True(t, a.Status().IsSettled())
}

func TestStatusBlocksResource(t *testing.T) {
	assert.False(t, agreement.StatusPending.BlocksResource())
	assert.True(t, agreement.StatusSigned.BlocksResource())
	assert.True(t, agreement.StatusActive.BlocksResource())
	assert.False(t, agreement.StatusFulfilled.BlocksResource())
	assert.False(t, agreement.StatusCancelled.BlocksResource())
	assert.False(t, agreement.StatusDisputed.BlocksResource())
}
