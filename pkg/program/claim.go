package program

import (
	"context"

	"github.com/solstarter/solstarter/pkg/accounts"
	"github.com/solstarter/solstarter/pkg/arithmetic"
	"github.com/solstarter/solstarter/pkg/solerrors"
	"github.com/solstarter/solstarter/pkg/state"
)

// Claim burns the user's entire pool-mint (receipt) balance and pays out
// against whichever custody account the user named as target (spec.md
// §4.6): distributed tokens from account_distribution in a Successful
// pool, or a straight refund of collected tokens from account_collection
// in a Failed pool. Any other (phase, target) combination fails with
// InvalidClaimTarget.
func Claim(ctx context.Context, deps Deps, acc ClaimAccounts) error {
	if !deps.Store.IsSigner(acc.User) {
		return solerrors.Wrap("Claim", "user", solerrors.ErrMissingSignature)
	}

	pool, err := loadPool(ctx, deps, acc.Pool)
	if err != nil {
		return solerrors.Wrap("Claim", "pool", err)
	}
	if pool.Market != acc.Market {
		return solerrors.Wrap("Claim", "market", solerrors.ErrInvalidAccounts)
	}

	custody, err := accounts.Resolve(acc.Market, acc.Pool)
	if err != nil {
		return solerrors.Wrap("Claim", "custody", err)
	}
	if err := accounts.Verify(custody.MintPool, acc.MintPool); err != nil {
		return solerrors.Wrap("Claim", "mint_pool", err)
	}
	authority, err := verifyAuthority(acc.Market, acc.Pool, acc.Authority)
	if err != nil {
		return solerrors.Wrap("Claim", "authority", err)
	}

	now, err := deps.Clock.UnixTimestamp(ctx)
	if err != nil {
		return solerrors.Wrap("Claim", "clock", err)
	}
	phase := state.Resolve(now, pool)
	if !state.Admits(phase, state.TagClaim) {
		return solerrors.Wrap("Claim", "phase", solerrors.ErrInvalidPoolState)
	}

	n, err := deps.Token.BalanceOf(ctx, acc.UserPoolAccount)
	if err != nil {
		return solerrors.Wrap("Claim", "user_pool_account", err)
	}

	if err := deps.Token.Burn(ctx, acc.UserPoolAccount, acc.MintPool, acc.User, n); err != nil {
		return solerrors.Wrap("Claim", "mint_pool", err)
	}

	switch {
	case phase == state.Successful && acc.Target == custody.Distribution:
		if pool.MintDistribution != acc.MintTarget {
			return solerrors.Wrap("Claim", "mint_target", solerrors.ErrInvalidClaimTarget)
		}
		payout, err := arithmetic.ConvertToDistributed(n, pool.PriceNumerator, pool.PriceDenominator)
		if err != nil {
			return solerrors.Wrap("Claim", "payout", err)
		}
		if err := deps.Token.Transfer(ctx, acc.Target, acc.UserTargetAccount, authority, payout); err != nil {
			return solerrors.Wrap("Claim", "distribution", err)
		}
		return nil

	case phase == state.Failed && acc.Target == custody.Collection:
		if pool.MintCollection != acc.MintTarget {
			return solerrors.Wrap("Claim", "mint_target", solerrors.ErrInvalidClaimTarget)
		}
		if err := deps.Token.Transfer(ctx, acc.Target, acc.UserTargetAccount, authority, n); err != nil {
			return solerrors.Wrap("Claim", "refund", err)
		}
		return nil

	default:
		return solerrors.Wrap("Claim", "target", solerrors.ErrInvalidClaimTarget)
	}
}
