package program

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/solstarter/solstarter/pkg/solerrors"
)

// Dispatch decodes raw's leading tag byte, binds accounts positionally,
// and routes to the matching handler (spec.md §4.6's validation spine,
// steps a-b). Each handler performs the remaining steps (signer checks,
// account-address verification, state admissibility, arithmetic, token
// calls, reserialization) itself.
func Dispatch(ctx context.Context, deps Deps, accounts []solana.PublicKey, raw []byte) error {
	tag, data, err := SplitTag(raw)
	if err != nil {
		return solerrors.Wrap("Dispatch", "tag", err)
	}

	switch tag {
	case TagInitMarket:
		acc, err := bindInitMarketAccounts(accounts)
		if err != nil {
			return solerrors.Wrap("InitMarket", "accounts", err)
		}
		if len(data) != 0 {
			return solerrors.Wrap("InitMarket", "data", solerrors.ErrInvalidAccountData)
		}
		return InitMarket(ctx, deps, acc)

	case TagInitPool:
		acc, err := bindInitPoolAccounts(accounts)
		if err != nil {
			return solerrors.Wrap("InitPool", "accounts", err)
		}
		params, err := DecodeInitPoolParams(data)
		if err != nil {
			return solerrors.Wrap("InitPool", "params", err)
		}
		return InitPool(ctx, deps, acc, params)

	case TagAddToWhitelist:
		acc, err := bindAddToWhitelistAccounts(accounts)
		if err != nil {
			return solerrors.Wrap("AddToWhitelist", "accounts", err)
		}
		if len(data) != 0 {
			return solerrors.Wrap("AddToWhitelist", "data", solerrors.ErrInvalidAccountData)
		}
		return AddToWhitelist(ctx, deps, acc)

	case TagParticipate:
		acc, err := bindParticipateAccounts(accounts)
		if err != nil {
			return solerrors.Wrap("Participate", "accounts", err)
		}
		params, err := DecodeParticipateParams(data)
		if err != nil {
			return solerrors.Wrap("Participate", "params", err)
		}
		return Participate(ctx, deps, acc, params)

	case TagClaim:
		acc, err := bindClaimAccounts(accounts)
		if err != nil {
			return solerrors.Wrap("Claim", "accounts", err)
		}
		if len(data) != 0 {
			return solerrors.Wrap("Claim", "data", solerrors.ErrInvalidAccountData)
		}
		return Claim(ctx, deps, acc)

	case TagWithdraw:
		acc, err := bindWithdrawAccounts(accounts)
		if err != nil {
			return solerrors.Wrap("Withdraw", "accounts", err)
		}
		if len(data) != 0 {
			return solerrors.Wrap("Withdraw", "data", solerrors.ErrInvalidAccountData)
		}
		return Withdraw(ctx, deps, acc)

	case TagSetKyc:
		acc, err := bindKycAccounts(accounts)
		if err != nil {
			return solerrors.Wrap("SetKyc", "accounts", err)
		}
		if len(data) != 0 {
			return solerrors.Wrap("SetKyc", "data", solerrors.ErrInvalidAccountData)
		}
		return SetKyc(ctx, deps, acc)

	case TagClearKyc:
		acc, err := bindKycAccounts(accounts)
		if err != nil {
			return solerrors.Wrap("ClearKyc", "accounts", err)
		}
		if len(data) != 0 {
			return solerrors.Wrap("ClearKyc", "data", solerrors.ErrInvalidAccountData)
		}
		return ClearKyc(ctx, deps, acc)

	default:
		return solerrors.Wrap("Dispatch", "tag", solerrors.ErrInvalidAccounts)
	}
}
