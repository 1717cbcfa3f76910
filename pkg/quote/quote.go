// Package quote provides off-chain preview calculations for a SolStarter
// pool: what a Participate call would do to collected_total, and what a
// Claim would pay out, without submitting a transaction. Every quote here
// is a non-binding estimate — SolStarter's pricing is fixed, not an AMM
// curve, so the number only changes if the pool itself is mutated by a
// concurrent Participate between preview and submission.
package quote

import (
	"fmt"

	"github.com/solstarter/solstarter/pkg/arithmetic"
	"github.com/solstarter/solstarter/pkg/codec"
)

// ParticipateQuote previews the effect of a Participate call.
type ParticipateQuote struct {
	// ReceiptTokens is the number of pool-mint (receipt) tokens the caller
	// would receive, 1:1 with the collected-token amount.
	ReceiptTokens uint64

	// CollectedTotalAfter is what collected_total would become if this
	// amount were accepted.
	CollectedTotalAfter uint64

	// WouldFillGoal reports whether this participation would bring
	// collected_total to exactly goal_max.
	WouldFillGoal bool
}

// PreviewParticipate validates amount against the pool's bounds the same
// way the on-chain Participate handler does (spec.md §4.6) and returns the
// resulting quote, or an error describing which bound amount violates.
func PreviewParticipate(pool *codec.Pool, amount uint64) (ParticipateQuote, error) {
	if amount < pool.AmountMin || amount > pool.AmountMax {
		return ParticipateQuote{}, fmt.Errorf("amount %d outside [%d, %d]", amount, pool.AmountMin, pool.AmountMax)
	}
	total, err := arithmetic.AddGoal(pool.CollectedTotal, amount)
	if err != nil {
		return ParticipateQuote{}, err
	}
	if total > pool.GoalMax {
		return ParticipateQuote{}, fmt.Errorf("amount %d would push collected_total to %d, exceeding goal_max %d", amount, total, pool.GoalMax)
	}
	return ParticipateQuote{
		ReceiptTokens:       amount,
		CollectedTotalAfter: total,
		WouldFillGoal:       total == pool.GoalMax,
	}, nil
}

// ClaimQuote previews the payout of a Claim against a Successful pool.
type ClaimQuote struct {
	// DistributedTokens is floor(receipts * price_numerator / price_denominator).
	DistributedTokens uint64
}

// PreviewClaim computes the distributed-token payout a Successful claim
// of receipts pool-mint tokens would yield (spec.md §4.1, §4.6). It does
// not apply to a Failed-pool refund claim, which always pays back
// receipts 1:1 in collected-token units.
func PreviewClaim(pool *codec.Pool, receipts uint64) (ClaimQuote, error) {
	payout, err := arithmetic.ConvertToDistributed(receipts, pool.PriceNumerator, pool.PriceDenominator)
	if err != nil {
		return ClaimQuote{}, err
	}
	return ClaimQuote{DistributedTokens: payout}, nil
}
