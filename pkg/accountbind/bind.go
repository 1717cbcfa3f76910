package accountbind

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/solstarter/solstarter/pkg/accounts"
	"github.com/solstarter/solstarter/pkg/constants"
	"github.com/solstarter/solstarter/pkg/program"
	sdkrpc "github.com/solstarter/solstarter/pkg/rpc"
)

// BindInitMarket builds InitMarket's account set. Market has no PDA of its
// own (spec.md §4.2 only derives pool-custody addresses), so the caller
// supplies a fresh market account; this helper only applies overrides and
// preview output.
func BindInitMarket(market, owner solana.PublicKey, opts ...Option) program.InitMarketAccounts {
	o := resolveOptions(opts)
	acc := program.InitMarketAccounts{Market: market, Owner: owner}
	applyPubkeyOverrides(&acc, o.Overrides)
	writePreview(o, "InitMarket", acc)
	return acc
}

// BindInitPool derives the five custody addresses for (market, pool) and
// returns InitPool's account set plus nothing to create — InitPool itself
// creates the mints and token accounts on-chain, so there is no ATA to
// pre-ensure here.
func BindInitPool(market, pool, owner, mintCollection, mintDistribution solana.PublicKey, opts ...Option) (program.InitPoolAccounts, error) {
	o := resolveOptions(opts)
	custody, err := custodyFor(market, pool, o)
	if err != nil {
		return program.InitPoolAccounts{}, err
	}
	acc := program.InitPoolAccounts{
		Market:              market,
		Pool:                pool,
		Owner:               owner,
		MintCollection:      mintCollection,
		MintDistribution:    mintDistribution,
		AccountCollection:   custody.Collection,
		AccountDistribution: custody.Distribution,
		MintPool:            custody.MintPool,
		MintWhitelist:       custody.MintWhitelist,
		Authority:           custody.Authority,
	}
	applyPubkeyOverrides(&acc, o.Overrides)
	writePreview(o, "InitPool", acc)
	return acc, nil
}

// BindAddToWhitelist derives the pool's custody set and ensures the user's
// whitelist-mint ATA exists, returning the account set and any ATA-create
// instructions that must precede the AddToWhitelist instruction.
func BindAddToWhitelist(ctx context.Context, rpc *sdkrpc.Client, market, pool, owner, user solana.PublicKey, opts ...Option) (program.AddToWhitelistAccounts, []solana.Instruction, error) {
	o := resolveOptions(opts)
	custody, err := custodyFor(market, pool, o)
	if err != nil {
		return program.AddToWhitelistAccounts{}, nil, err
	}

	ensured, err := ensureATABatch(ctx, rpc, []ataRequest{
		{Payer: owner, Wallet: user, Mint: custody.MintWhitelist, TokenProgram: constants.TokenProgramID},
	}, o.KnownATAs)
	if err != nil {
		return program.AddToWhitelistAccounts{}, nil, err
	}
	userWhitelistATA, _, err := findATA(user, custody.MintWhitelist, constants.TokenProgramID)
	if err != nil {
		return program.AddToWhitelistAccounts{}, nil, err
	}

	acc := program.AddToWhitelistAccounts{
		Market:               market,
		Pool:                 pool,
		Owner:                owner,
		User:                 user,
		UserWhitelistAccount: userWhitelistATA,
		MintWhitelist:        custody.MintWhitelist,
		Authority:            custody.Authority,
	}
	applyPubkeyOverrides(&acc, o.Overrides)
	writePreview(o, "AddToWhitelist", acc)
	return acc, ensured.Instructions, nil
}

// BindParticipate reads the pool record to learn its collection mint and
// gating flags, derives the custody set and the caller's KYC record
// address, ensures every user-owned ATA the instruction touches exists
// (collection, pool-receipt, and — only when the pool gates on it —
// whitelist), and returns the account set plus any ATA-create
// instructions that must precede Participate.
func BindParticipate(ctx context.Context, rpc *sdkrpc.Client, payer, market, pool, user solana.PublicKey, opts ...Option) (program.ParticipateAccounts, []solana.Instruction, error) {
	o := resolveOptions(opts)
	p, err := fetchPool(ctx, rpc, pool)
	if err != nil {
		return program.ParticipateAccounts{}, nil, err
	}
	custody, err := custodyFor(market, pool, o)
	if err != nil {
		return program.ParticipateAccounts{}, nil, err
	}
	kycRecord, err := accounts.KycAddress(market, user)
	if err != nil {
		return program.ParticipateAccounts{}, nil, err
	}

	requests := []ataRequest{
		{Payer: payer, Wallet: user, Mint: p.MintCollection, TokenProgram: constants.TokenProgramID},
		{Payer: payer, Wallet: user, Mint: custody.MintPool, TokenProgram: constants.TokenProgramID},
	}
	if p.IsWhitelist && !isZeroPK(custody.MintWhitelist) {
		requests = append(requests, ataRequest{Payer: payer, Wallet: user, Mint: custody.MintWhitelist, TokenProgram: constants.TokenProgramID})
	}

	ensured, err := ensureATABatch(ctx, rpc, requests, o.KnownATAs)
	if err != nil {
		return program.ParticipateAccounts{}, nil, err
	}

	userCollectionATA, _, err := findATA(user, p.MintCollection, constants.TokenProgramID)
	if err != nil {
		return program.ParticipateAccounts{}, nil, err
	}
	userPoolATA, _, err := findATA(user, custody.MintPool, constants.TokenProgramID)
	if err != nil {
		return program.ParticipateAccounts{}, nil, err
	}
	var userWhitelistATA solana.PublicKey
	if p.IsWhitelist {
		userWhitelistATA, _, err = findATA(user, custody.MintWhitelist, constants.TokenProgramID)
		if err != nil {
			return program.ParticipateAccounts{}, nil, err
		}
	}

	acc := program.ParticipateAccounts{
		Market:                market,
		Pool:                  pool,
		User:                  user,
		UserCollectionAccount: userCollectionATA,
		AccountCollection:     custody.Collection,
		UserPoolAccount:       userPoolATA,
		MintPool:              custody.MintPool,
		UserWhitelistAccount:  userWhitelistATA,
		MintWhitelist:         custody.MintWhitelist,
		KycRecord:             kycRecord,
		Authority:             custody.Authority,
	}
	applyPubkeyOverrides(&acc, o.Overrides)
	writePreview(o, "Participate", acc)
	return acc, ensured.Instructions, nil
}

// BindClaim derives the custody set and ensures the user's target-mint ATA
// exists. target must be either the pool's account_collection (Failed
// refund) or account_distribution (Successful payout); the caller picks
// which, matching the phase it expects the pool to be in.
func BindClaim(ctx context.Context, rpc *sdkrpc.Client, payer, market, pool, user, target, mintTarget solana.PublicKey, opts ...Option) (program.ClaimAccounts, []solana.Instruction, error) {
	o := resolveOptions(opts)
	custody, err := custodyFor(market, pool, o)
	if err != nil {
		return program.ClaimAccounts{}, nil, err
	}

	ensured, err := ensureATABatch(ctx, rpc, []ataRequest{
		{Payer: payer, Wallet: user, Mint: custody.MintPool, TokenProgram: constants.TokenProgramID},
		{Payer: payer, Wallet: user, Mint: mintTarget, TokenProgram: constants.TokenProgramID},
	}, o.KnownATAs)
	if err != nil {
		return program.ClaimAccounts{}, nil, err
	}
	userPoolATA, _, err := findATA(user, custody.MintPool, constants.TokenProgramID)
	if err != nil {
		return program.ClaimAccounts{}, nil, err
	}
	userTargetATA, _, err := findATA(user, mintTarget, constants.TokenProgramID)
	if err != nil {
		return program.ClaimAccounts{}, nil, err
	}

	acc := program.ClaimAccounts{
		Market:            market,
		Pool:              pool,
		User:              user,
		UserPoolAccount:   userPoolATA,
		MintPool:          custody.MintPool,
		Target:            target,
		UserTargetAccount: userTargetATA,
		MintTarget:        mintTarget,
		Authority:         custody.Authority,
	}
	applyPubkeyOverrides(&acc, o.Overrides)
	writePreview(o, "Claim", acc)
	return acc, ensured.Instructions, nil
}

// BindWithdraw derives the custody set and ensures the owner's target-mint
// ATA exists. target must be one of the pool's two custody accounts.
func BindWithdraw(ctx context.Context, rpc *sdkrpc.Client, market, pool, owner, target, mintTarget solana.PublicKey, opts ...Option) (program.WithdrawAccounts, []solana.Instruction, error) {
	o := resolveOptions(opts)
	custody, err := custodyFor(market, pool, o)
	if err != nil {
		return program.WithdrawAccounts{}, nil, err
	}

	ensured, err := ensureATABatch(ctx, rpc, []ataRequest{
		{Payer: owner, Wallet: owner, Mint: mintTarget, TokenProgram: constants.TokenProgramID},
	}, o.KnownATAs)
	if err != nil {
		return program.WithdrawAccounts{}, nil, err
	}
	ownerTargetATA, _, err := findATA(owner, mintTarget, constants.TokenProgramID)
	if err != nil {
		return program.WithdrawAccounts{}, nil, err
	}

	acc := program.WithdrawAccounts{
		Market:             market,
		Pool:               pool,
		Owner:              owner,
		Target:             target,
		OwnerTargetAccount: ownerTargetATA,
		MintTarget:         mintTarget,
		Authority:          custody.Authority,
	}
	applyPubkeyOverrides(&acc, o.Overrides)
	writePreview(o, "Withdraw", acc)
	return acc, ensured.Instructions, nil
}

// BindSetKyc and BindClearKyc derive the KYC record address for (market,
// user); neither touches token accounts, so no RPC round-trip is needed.
func BindSetKyc(market, owner, user solana.PublicKey, opts ...Option) (program.KycAccounts, error) {
	return bindKyc(market, owner, user, opts...)
}

func BindClearKyc(market, owner, user solana.PublicKey, opts ...Option) (program.KycAccounts, error) {
	return bindKyc(market, owner, user, opts...)
}

func bindKyc(market, owner, user solana.PublicKey, opts ...Option) (program.KycAccounts, error) {
	o := resolveOptions(opts)
	record, err := accounts.KycAddress(market, user)
	if err != nil {
		return program.KycAccounts{}, err
	}
	acc := program.KycAccounts{Market: market, Owner: owner, KycRecord: record, User: user}
	applyPubkeyOverrides(&acc, o.Overrides)
	writePreview(o, "Kyc", acc)
	return acc, nil
}
