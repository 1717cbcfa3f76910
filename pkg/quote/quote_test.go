package quote

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solstarter/solstarter/pkg/codec"
)

func TestPreviewParticipateWithinBounds(t *testing.T) {
	pool := &codec.Pool{AmountMin: 1, AmountMax: 5, GoalMax: 50, CollectedTotal: 10}
	q, err := PreviewParticipate(pool, 5)
	require.NoError(t, err)
	require.EqualValues(t, 5, q.ReceiptTokens)
	require.EqualValues(t, 15, q.CollectedTotalAfter)
	require.False(t, q.WouldFillGoal)
}

func TestPreviewParticipateFillsGoal(t *testing.T) {
	pool := &codec.Pool{AmountMin: 1, AmountMax: 10, GoalMax: 20, CollectedTotal: 10}
	q, err := PreviewParticipate(pool, 10)
	require.NoError(t, err)
	require.True(t, q.WouldFillGoal)
}

func TestPreviewParticipateOutOfRange(t *testing.T) {
	pool := &codec.Pool{AmountMin: 1, AmountMax: 5, GoalMax: 50}
	_, err := PreviewParticipate(pool, 6)
	require.Error(t, err)
}

func TestPreviewParticipateExceedsGoal(t *testing.T) {
	pool := &codec.Pool{AmountMin: 1, AmountMax: 10, GoalMax: 20, CollectedTotal: 15}
	_, err := PreviewParticipate(pool, 10)
	require.Error(t, err)
}

func TestPreviewClaimRounding(t *testing.T) {
	pool := &codec.Pool{PriceNumerator: 1, PriceDenominator: 10}
	q, err := PreviewClaim(pool, 5)
	require.NoError(t, err)
	require.EqualValues(t, 0, q.DistributedTokens)
}

func TestPreviewClaimClean(t *testing.T) {
	pool := &codec.Pool{PriceNumerator: 1, PriceDenominator: 1}
	q, err := PreviewClaim(pool, 5)
	require.NoError(t, err)
	require.EqualValues(t, 5, q.DistributedTokens)
}
