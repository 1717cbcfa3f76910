package program

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/solstarter/solstarter/pkg/accounts"
	"github.com/solstarter/solstarter/pkg/solerrors"
	"github.com/solstarter/solstarter/pkg/state"
)

// Withdraw lets the pool owner drain custody accounts once the pool has
// reached a terminal phase (spec.md §4.6). A Successful pool may be
// drained on both account_collection (the raised funds) and any leftover
// in account_distribution (unsold inventory). A Failed pool may drain
// only account_distribution — its account_collection is reserved for
// participant refunds via Claim, and is rejected with
// RefundReservedForUsers.
func Withdraw(ctx context.Context, deps Deps, acc WithdrawAccounts) error {
	if !deps.Store.IsSigner(acc.Owner) {
		return solerrors.Wrap("Withdraw", "owner", solerrors.ErrMissingSignature)
	}

	pool, err := loadPool(ctx, deps, acc.Pool)
	if err != nil {
		return solerrors.Wrap("Withdraw", "pool", err)
	}
	if pool.Market != acc.Market {
		return solerrors.Wrap("Withdraw", "market", solerrors.ErrInvalidAccounts)
	}
	if pool.Owner != acc.Owner {
		return solerrors.Wrap("Withdraw", "owner", solerrors.ErrInvalidAccounts)
	}

	custody, err := accounts.Resolve(acc.Market, acc.Pool)
	if err != nil {
		return solerrors.Wrap("Withdraw", "custody", err)
	}
	authority, err := verifyAuthority(acc.Market, acc.Pool, acc.Authority)
	if err != nil {
		return solerrors.Wrap("Withdraw", "authority", err)
	}

	now, err := deps.Clock.UnixTimestamp(ctx)
	if err != nil {
		return solerrors.Wrap("Withdraw", "clock", err)
	}
	phase := state.Resolve(now, pool)
	if !state.Admits(phase, state.TagWithdraw) {
		return solerrors.Wrap("Withdraw", "phase", solerrors.ErrInvalidPoolState)
	}

	var mint, target solana.PublicKey
	switch acc.Target {
	case custody.Collection:
		if phase == state.Failed {
			return solerrors.Wrap("Withdraw", "account_collection", solerrors.ErrRefundReservedForUsers)
		}
		mint = pool.MintCollection
		target = custody.Collection
	case custody.Distribution:
		mint = pool.MintDistribution
		target = custody.Distribution
	default:
		return solerrors.Wrap("Withdraw", "target", solerrors.ErrInvalidAccounts)
	}
	if mint != acc.MintTarget {
		return solerrors.Wrap("Withdraw", "mint_target", solerrors.ErrInvalidAccounts)
	}

	balance, err := deps.Token.BalanceOf(ctx, target)
	if err != nil {
		return solerrors.Wrap("Withdraw", "balance", err)
	}
	if balance == 0 {
		return nil
	}
	if err := deps.Token.Transfer(ctx, target, acc.OwnerTargetAccount, authority, balance); err != nil {
		return solerrors.Wrap("Withdraw", "transfer", err)
	}
	return nil
}
