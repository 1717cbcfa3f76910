package program

import (
	"context"

	"github.com/solstarter/solstarter/pkg/accounts"
	"github.com/solstarter/solstarter/pkg/arithmetic"
	"github.com/solstarter/solstarter/pkg/kyc"
	"github.com/solstarter/solstarter/pkg/solerrors"
	"github.com/solstarter/solstarter/pkg/state"
)

// Participate buys into an Active pool: it checks the per-transaction and
// goal bounds, enforces whitelist and KYC gating when the pool requires
// them, transfers collected tokens in, mints receipt tokens out, and
// updates collected_total (spec.md §4.6).
func Participate(ctx context.Context, deps Deps, acc ParticipateAccounts, params ParticipateParams) error {
	if !deps.Store.IsSigner(acc.User) {
		return solerrors.Wrap("Participate", "user", solerrors.ErrMissingSignature)
	}

	pool, err := loadPool(ctx, deps, acc.Pool)
	if err != nil {
		return solerrors.Wrap("Participate", "pool", err)
	}
	if pool.Market != acc.Market {
		return solerrors.Wrap("Participate", "market", solerrors.ErrInvalidAccounts)
	}

	custody, err := accounts.Resolve(acc.Market, acc.Pool)
	if err != nil {
		return solerrors.Wrap("Participate", "custody", err)
	}
	if err := accounts.Verify(custody.Collection, acc.AccountCollection); err != nil {
		return solerrors.Wrap("Participate", "account_collection", err)
	}
	if err := accounts.Verify(custody.MintPool, acc.MintPool); err != nil {
		return solerrors.Wrap("Participate", "mint_pool", err)
	}
	authority, err := verifyAuthority(acc.Market, acc.Pool, acc.Authority)
	if err != nil {
		return solerrors.Wrap("Participate", "authority", err)
	}

	now, err := deps.Clock.UnixTimestamp(ctx)
	if err != nil {
		return solerrors.Wrap("Participate", "clock", err)
	}
	phase := state.Resolve(now, pool)
	if !state.Admits(phase, state.TagParticipate) {
		return solerrors.Wrap("Participate", "phase", solerrors.ErrInvalidPoolState)
	}

	if pool.IsWhitelist {
		if err := accounts.Verify(custody.MintWhitelist, acc.MintWhitelist); err != nil {
			return solerrors.Wrap("Participate", "mint_whitelist", err)
		}
		balance, err := deps.Token.BalanceOf(ctx, acc.UserWhitelistAccount)
		if err != nil {
			return solerrors.Wrap("Participate", "whitelist_balance", err)
		}
		if balance < 1 {
			return solerrors.Wrap("Participate", "whitelist", solerrors.ErrWhitelistRequired)
		}
		if err := deps.Token.Burn(ctx, acc.UserWhitelistAccount, acc.MintWhitelist, acc.User, 1); err != nil {
			return solerrors.Wrap("Participate", "whitelist", err)
		}
	}

	if params.Amount < pool.AmountMin || params.Amount > pool.AmountMax {
		return solerrors.Wrap("Participate", "amount", solerrors.ErrAmountOutOfRange)
	}

	newTotal, err := arithmetic.AddGoal(pool.CollectedTotal, params.Amount)
	if err != nil {
		return solerrors.Wrap("Participate", "collected_total", err)
	}
	if newTotal > pool.GoalMax {
		return solerrors.Wrap("Participate", "collected_total", solerrors.ErrGoalExceeded)
	}

	if pool.IsKyc {
		expectedKyc, err := accounts.KycAddress(acc.Market, acc.User)
		if err != nil {
			return solerrors.Wrap("Participate", "kyc", err)
		}
		if err := accounts.Verify(expectedKyc, acc.KycRecord); err != nil {
			return solerrors.Wrap("Participate", "kyc", err)
		}
		rec, err := loadKyc(ctx, deps, acc.KycRecord)
		if err != nil {
			return solerrors.Wrap("Participate", "kyc", err)
		}
		if !kyc.Passes(now, rec) {
			return solerrors.Wrap("Participate", "kyc", solerrors.ErrKycRequired)
		}
	}

	if err := deps.Token.Transfer(ctx, acc.UserCollectionAccount, acc.AccountCollection, acc.User, params.Amount); err != nil {
		return solerrors.Wrap("Participate", "collection", err)
	}
	if err := deps.Token.MintTo(ctx, acc.MintPool, acc.UserPoolAccount, authority, params.Amount); err != nil {
		return solerrors.Wrap("Participate", "mint_pool", err)
	}

	pool.CollectedTotal = newTotal
	encoded, err := pool.Marshal()
	if err != nil {
		return solerrors.Wrap("Participate", "pool", err)
	}
	if err := deps.Store.Write(ctx, acc.Pool, encoded); err != nil {
		return solerrors.Wrap("Participate", "pool", err)
	}
	return nil
}
