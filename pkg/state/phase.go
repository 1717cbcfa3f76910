// Package state implements the pool lifecycle state machine (spec.md §4.5):
// which phase a pool is in given the clock and its accumulated totals, and
// which instructions that phase admits.
package state

import "github.com/solstarter/solstarter/pkg/codec"

// Phase is one of the five mutually exclusive pool lifecycle states.
type Phase int

const (
	Preparing Phase = iota
	Active
	SoldOut
	Successful
	Failed
)

func (p Phase) String() string {
	switch p {
	case Preparing:
		return "preparing"
	case Active:
		return "active"
	case SoldOut:
		return "sold-out"
	case Successful:
		return "successful"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Resolve computes a pool's current phase from the clock and its record
// (spec.md §4.5). collected_total == goal_max with now < time_finish
// resolves to SoldOut rather than Active — Sold-out takes priority on tie.
func Resolve(now int64, pool *codec.Pool) Phase {
	switch {
	case now < pool.TimeStart:
		return Preparing
	case now >= pool.TimeFinish:
		if pool.CollectedTotal >= pool.GoalMin {
			return Successful
		}
		return Failed
	case pool.CollectedTotal >= pool.GoalMax:
		return SoldOut
	default:
		return Active
	}
}

// Tag identifies an instruction for the purposes of phase admissibility,
// independent of the instruction's decoded parameters.
type Tag int

const (
	TagInitMarket Tag = iota
	TagInitPool
	TagAddToWhitelist
	TagParticipate
	TagClaim
	TagWithdraw
	TagSetKyc
	TagClearKyc
)

// Admits reports whether phase p admits instruction tag (spec.md §4.5's
// table). InitMarket and InitPool are admitted in any phase since they
// operate on accounts that have no pool phase yet (Market precedes any
// pool; InitPool's target pool is itself uninitialized, checked by
// AlreadyInitialized rather than by phase). SetKyc/ClearKyc are market-
// scoped operations with no pool phase dependency and are likewise always
// admitted; the handler still requires the market owner's signature.
func Admits(phase Phase, tag Tag) bool {
	switch tag {
	case TagInitMarket, TagInitPool, TagSetKyc, TagClearKyc:
		return true
	case TagAddToWhitelist:
		return phase == Preparing
	case TagParticipate:
		return phase == Active
	case TagClaim:
		return phase == Successful || phase == Failed
	case TagWithdraw:
		return phase == Successful || phase == Failed
	default:
		return false
	}
}
