package program

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/solstarter/solstarter/pkg/accounts"
	"github.com/solstarter/solstarter/pkg/codec"
	"github.com/solstarter/solstarter/pkg/solerrors"
)

// InitPool validates pool parameters, derives and verifies the custody
// account set, initializes the program-owned mints and token accounts,
// and persists a fresh Pool record with collected_total = 0 (spec.md
// §4.6).
func InitPool(ctx context.Context, deps Deps, acc InitPoolAccounts, params InitPoolParams) error {
	if !deps.Store.IsSigner(acc.Owner) {
		return solerrors.Wrap("InitPool", "owner", solerrors.ErrMissingSignature)
	}

	marketData, _, err := deps.Store.Read(ctx, acc.Market)
	if err != nil {
		return solerrors.Wrap("InitPool", "market", err)
	}
	market := &codec.Market{}
	if err := market.Unmarshal(marketData); err != nil {
		return solerrors.Wrap("InitPool", "market", err)
	}
	if market.Owner != acc.Owner {
		return solerrors.Wrap("InitPool", "owner", solerrors.ErrInvalidAccounts)
	}

	poolData, _, err := deps.Store.Read(ctx, acc.Pool)
	if err != nil {
		return solerrors.Wrap("InitPool", "pool", err)
	}
	if codec.PeekDiscriminant(poolData) != codec.DiscriminantUninitialized {
		return solerrors.Wrap("InitPool", "pool", solerrors.ErrAlreadyInitialized)
	}

	custody, err := accounts.Resolve(acc.Market, acc.Pool)
	if err != nil {
		return solerrors.Wrap("InitPool", "custody", err)
	}
	if err := accounts.Verify(custody.Collection, acc.AccountCollection); err != nil {
		return solerrors.Wrap("InitPool", "account_collection", err)
	}
	if err := accounts.Verify(custody.Distribution, acc.AccountDistribution); err != nil {
		return solerrors.Wrap("InitPool", "account_distribution", err)
	}
	if err := accounts.Verify(custody.MintPool, acc.MintPool); err != nil {
		return solerrors.Wrap("InitPool", "mint_pool", err)
	}
	if err := accounts.Verify(custody.Authority, acc.Authority); err != nil {
		return solerrors.Wrap("InitPool", "authority", err)
	}
	if params.IsWhitelist {
		if err := accounts.Verify(custody.MintWhitelist, acc.MintWhitelist); err != nil {
			return solerrors.Wrap("InitPool", "mint_whitelist", err)
		}
	}

	if params.PriceDenominator == 0 {
		return solerrors.Wrap("InitPool", "price_denominator", solerrors.ErrAmountOutOfRange)
	}
	if params.GoalMin > params.GoalMax {
		return solerrors.Wrap("InitPool", "goal_min", solerrors.ErrAmountOutOfRange)
	}
	if params.AmountMin == 0 || params.AmountMin > params.AmountMax || params.AmountMax > params.GoalMax {
		return solerrors.Wrap("InitPool", "amount_min", solerrors.ErrAmountOutOfRange)
	}
	if params.TimeStart >= params.TimeFinish {
		return solerrors.Wrap("InitPool", "time_start", solerrors.ErrAmountOutOfRange)
	}

	now, err := deps.Clock.UnixTimestamp(ctx)
	if err != nil {
		return solerrors.Wrap("InitPool", "clock", err)
	}
	if params.TimeStart < now {
		return solerrors.Wrap("InitPool", "time_start", solerrors.ErrAmountOutOfRange)
	}

	if err := deps.Token.InitMint(ctx, acc.MintPool, acc.Authority, 0); err != nil {
		return solerrors.Wrap("InitPool", "mint_pool", err)
	}
	if params.IsWhitelist {
		if err := deps.Token.InitMint(ctx, acc.MintWhitelist, acc.Authority, 0); err != nil {
			return solerrors.Wrap("InitPool", "mint_whitelist", err)
		}
	}
	if err := deps.Token.InitAccount(ctx, acc.AccountCollection, acc.MintCollection, acc.Authority); err != nil {
		return solerrors.Wrap("InitPool", "account_collection", err)
	}
	if err := deps.Token.InitAccount(ctx, acc.AccountDistribution, acc.MintDistribution, acc.Authority); err != nil {
		return solerrors.Wrap("InitPool", "account_distribution", err)
	}

	mintWhitelist := acc.MintWhitelist
	if !params.IsWhitelist {
		mintWhitelist = solana.PublicKey{}
	}

	pool := &codec.Pool{
		Market:              acc.Market,
		Owner:               acc.Owner,
		MintCollection:      acc.MintCollection,
		MintDistribution:    acc.MintDistribution,
		AccountCollection:   acc.AccountCollection,
		AccountDistribution: acc.AccountDistribution,
		MintPool:            acc.MintPool,
		MintWhitelist:       mintWhitelist,
		IsWhitelist:         params.IsWhitelist,
		IsKyc:               params.IsKyc,
		PriceNumerator:      params.PriceNumerator,
		PriceDenominator:    params.PriceDenominator,
		GoalMin:             params.GoalMin,
		GoalMax:             params.GoalMax,
		AmountMin:           params.AmountMin,
		AmountMax:           params.AmountMax,
		TimeStart:           params.TimeStart,
		TimeFinish:          params.TimeFinish,
		CollectedTotal:      0,
		IsInitialized:       true,
	}
	encoded, err := pool.Marshal()
	if err != nil {
		return solerrors.Wrap("InitPool", "pool", err)
	}
	if err := deps.Store.Write(ctx, acc.Pool, encoded); err != nil {
		return solerrors.Wrap("InitPool", "pool", err)
	}
	return nil
}
