package program

import (
	"context"

	"github.com/solstarter/solstarter/pkg/codec"
	"github.com/solstarter/solstarter/pkg/solerrors"
)

// InitMarket writes a fresh Market record with the passed owner (spec.md
// §4.6). Fails with AlreadyInitialized if the account's discriminant is
// already non-zero, and with NotRentExempt if its lamport balance is
// below the rent floor for a Market-sized blob.
func InitMarket(ctx context.Context, deps Deps, acc InitMarketAccounts) error {
	if !deps.Store.IsSigner(acc.Owner) {
		return solerrors.Wrap("InitMarket", "owner", solerrors.ErrMissingSignature)
	}

	data, lamports, err := deps.Store.Read(ctx, acc.Market)
	if err != nil {
		return solerrors.Wrap("InitMarket", "market", err)
	}
	if codec.PeekDiscriminant(data) != codec.DiscriminantUninitialized {
		return solerrors.Wrap("InitMarket", "market", solerrors.ErrAlreadyInitialized)
	}

	market := &codec.Market{Owner: acc.Owner, IsInitialized: true}
	encoded, err := market.Marshal()
	if err != nil {
		return solerrors.Wrap("InitMarket", "market", err)
	}

	exempt, err := deps.Rent.IsExempt(ctx, lamports, uint64(len(encoded)))
	if err != nil {
		return solerrors.Wrap("InitMarket", "rent", err)
	}
	if !exempt {
		return solerrors.Wrap("InitMarket", "market", solerrors.ErrNotRentExempt)
	}

	if err := deps.Store.Write(ctx, acc.Market, encoded); err != nil {
		return solerrors.Wrap("InitMarket", "market", err)
	}
	return nil
}
