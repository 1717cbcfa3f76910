package program

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/solstarter/solstarter/pkg/accounts"
	"github.com/solstarter/solstarter/pkg/codec"
	"github.com/solstarter/solstarter/pkg/solerrors"
)

// loadPool reads and decodes a Pool record, failing with
// InvalidAccountData if the account is missing or uninitialized.
func loadPool(ctx context.Context, deps Deps, addr solana.PublicKey) (*codec.Pool, error) {
	data, _, err := deps.Store.Read(ctx, addr)
	if err != nil {
		return nil, err
	}
	pool := &codec.Pool{}
	if err := pool.Unmarshal(data); err != nil {
		return nil, err
	}
	return pool, nil
}

// loadKyc reads and decodes a Kyc record. A missing or uninitialized
// account returns (nil, nil): callers treat that as "no KYC record",
// which pkg/kyc.Passes already fails closed on.
func loadKyc(ctx context.Context, deps Deps, addr solana.PublicKey) (*codec.Kyc, error) {
	data, _, err := deps.Store.Read(ctx, addr)
	if err != nil {
		return nil, err
	}
	if codec.PeekDiscriminant(data) != codec.DiscriminantKyc {
		return nil, nil
	}
	rec := &codec.Kyc{}
	if err := rec.Unmarshal(data); err != nil {
		return nil, err
	}
	return rec, nil
}

// verifyAuthority recomputes the authority PDA for (market, pool) and
// confirms it matches the account passed into the instruction, returning
// it for use as the token-program adapter's signing authority.
func verifyAuthority(market, pool, got solana.PublicKey) (solana.PublicKey, error) {
	want, err := accounts.AuthorityAddress(market, pool)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if err := accounts.Verify(want, got); err != nil {
		return solana.PublicKey{}, err
	}
	return want, nil
}

// verifyMarket recomputes nothing (markets aren't PDA-derived) but checks
// the account actually holds an initialized Market owned by owner.
func verifyMarket(ctx context.Context, deps Deps, addr, owner solana.PublicKey) error {
	data, _, err := deps.Store.Read(ctx, addr)
	if err != nil {
		return err
	}
	market := &codec.Market{}
	if err := market.Unmarshal(data); err != nil {
		return err
	}
	if market.Owner != owner {
		return solerrors.ErrInvalidAccounts
	}
	return nil
}
