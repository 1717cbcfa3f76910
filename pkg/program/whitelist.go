package program

import (
	"context"

	"github.com/solstarter/solstarter/pkg/solerrors"
	"github.com/solstarter/solstarter/pkg/state"
)

// AddToWhitelist mints exactly one whitelist token to the user's
// whitelist-token account (spec.md §4.6). Admitted only while the pool is
// Preparing and only for pools with is_whitelist set. Idempotency is not
// enforced: repeated calls mint repeated tokens, each redeemable for one
// Participate call.
func AddToWhitelist(ctx context.Context, deps Deps, acc AddToWhitelistAccounts) error {
	if !deps.Store.IsSigner(acc.Owner) {
		return solerrors.Wrap("AddToWhitelist", "owner", solerrors.ErrMissingSignature)
	}

	pool, err := loadPool(ctx, deps, acc.Pool)
	if err != nil {
		return solerrors.Wrap("AddToWhitelist", "pool", err)
	}
	if pool.Market != acc.Market {
		return solerrors.Wrap("AddToWhitelist", "market", solerrors.ErrInvalidAccounts)
	}
	if pool.Owner != acc.Owner {
		return solerrors.Wrap("AddToWhitelist", "owner", solerrors.ErrInvalidAccounts)
	}
	if !pool.IsWhitelist {
		return solerrors.Wrap("AddToWhitelist", "pool", solerrors.ErrInvalidPoolState)
	}
	if pool.MintWhitelist != acc.MintWhitelist {
		return solerrors.Wrap("AddToWhitelist", "mint_whitelist", solerrors.ErrInvalidAccounts)
	}

	authority, err := verifyAuthority(acc.Market, acc.Pool, acc.Authority)
	if err != nil {
		return solerrors.Wrap("AddToWhitelist", "authority", err)
	}

	now, err := deps.Clock.UnixTimestamp(ctx)
	if err != nil {
		return solerrors.Wrap("AddToWhitelist", "clock", err)
	}
	phase := state.Resolve(now, pool)
	if !state.Admits(phase, state.TagAddToWhitelist) {
		return solerrors.Wrap("AddToWhitelist", "phase", solerrors.ErrInvalidPoolState)
	}

	if err := deps.Token.MintTo(ctx, acc.MintWhitelist, acc.UserWhitelistAccount, authority, 1); err != nil {
		return solerrors.Wrap("AddToWhitelist", "mint_whitelist", err)
	}
	return nil
}
