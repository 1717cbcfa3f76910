// Package kyc implements the market-scoped KYC gating check Participate
// applies when a pool has is_kyc set (spec.md §3, §4.6).
package kyc

import "github.com/solstarter/solstarter/pkg/codec"

// Passes reports whether a KYC record satisfies the gate at time now: the
// record must have passed=true and, if it carries an expiry, now must be
// strictly before it. now == expiry is treated as expired.
func Passes(now int64, rec *codec.Kyc) bool {
	if rec == nil {
		return false
	}
	if !rec.Passed {
		return false
	}
	if rec.HasExpiry && now >= rec.Expiry {
		return false
	}
	return true
}
