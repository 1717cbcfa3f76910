// Package arithmetic implements the checked fixed-point math SolStarter
// uses for price conversion and goal accounting (spec.md §4.1). Every
// operation here is overflow-checked and rounds toward zero; none of it
// uses floating point, per spec.md §9.
package arithmetic

import (
	"lukechampine.com/uint128"

	"github.com/solstarter/solstarter/pkg/solerrors"
)

// ConvertToDistributed computes floor(collected * numerator / denominator),
// the exchange from collected-token units to distributed-token units
// (spec.md §4.1). The multiply widens to 128 bits first so a u64×u64
// product can never overflow; the result only fails if the quotient itself
// doesn't fit back into 64 bits, or if denominator is zero.
//
// denominator == 0 is made unreachable by the den > 0 invariant enforced at
// InitPool, but ConvertToDistributed still checks it defensively since it is
// also called from off-chain preview code (pkg/quote) that doesn't go
// through InitPool's validation.
func ConvertToDistributed(collected, numerator, denominator uint64) (uint64, error) {
	if denominator == 0 {
		return 0, solerrors.ErrArithmeticOverflow
	}
	product := uint128.From64(collected).Mul(uint128.From64(numerator))
	quotient := product.Div(uint128.From64(denominator))
	if quotient.Hi != 0 {
		return 0, solerrors.ErrArithmeticOverflow
	}
	return quotient.Lo, nil
}

// AddGoal performs checked 64-bit addition for collected_total accumulation
// (spec.md §4.1). Used by Participate to update collected_total and
// anywhere else a running total must never silently wrap.
func AddGoal(total, amount uint64) (uint64, error) {
	sum := total + amount
	if sum < total {
		return 0, solerrors.ErrArithmeticOverflow
	}
	return sum, nil
}
