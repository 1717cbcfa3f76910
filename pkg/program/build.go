package program

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solstarter/solstarter/pkg/constants"
)

// ToAccountMetas converts each *Accounts struct into the ordered
// solana.AccountMeta list whose public keys Dispatch binds positionally,
// mirroring the teacher's generated Build<Ix> functions.

func (a InitMarketAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Market, true, false),
		solana.NewAccountMeta(a.Owner, false, true),
	}
}

// BuildInitMarket encodes the InitMarket instruction.
func BuildInitMarket(acc InitMarketAccounts) solana.Instruction {
	data := []byte{byte(TagInitMarket)}
	return solana.NewInstruction(constants.SolStarterProgramID, acc.ToAccountMetas(), data)
}

func (a InitPoolAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Market, false, false),
		solana.NewAccountMeta(a.Pool, true, false),
		solana.NewAccountMeta(a.Owner, false, true),
		solana.NewAccountMeta(a.MintCollection, false, false),
		solana.NewAccountMeta(a.MintDistribution, false, false),
		solana.NewAccountMeta(a.AccountCollection, true, false),
		solana.NewAccountMeta(a.AccountDistribution, true, false),
		solana.NewAccountMeta(a.MintPool, true, false),
		solana.NewAccountMeta(a.MintWhitelist, true, false),
		solana.NewAccountMeta(a.Authority, false, false),
	}
}

// BuildInitPool encodes the InitPool instruction.
func BuildInitPool(acc InitPoolAccounts, params InitPoolParams) solana.Instruction {
	data := append([]byte{byte(TagInitPool)}, EncodeInitPoolParams(params)...)
	return solana.NewInstruction(constants.SolStarterProgramID, acc.ToAccountMetas(), data)
}

func (a AddToWhitelistAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Market, false, false),
		solana.NewAccountMeta(a.Pool, false, false),
		solana.NewAccountMeta(a.Owner, false, true),
		solana.NewAccountMeta(a.User, false, false),
		solana.NewAccountMeta(a.UserWhitelistAccount, true, false),
		solana.NewAccountMeta(a.MintWhitelist, true, false),
		solana.NewAccountMeta(a.Authority, false, false),
	}
}

// BuildAddToWhitelist encodes the AddToWhitelist instruction.
func BuildAddToWhitelist(acc AddToWhitelistAccounts) solana.Instruction {
	return solana.NewInstruction(constants.SolStarterProgramID, acc.ToAccountMetas(), []byte{byte(TagAddToWhitelist)})
}

func (a ParticipateAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Market, false, false),
		solana.NewAccountMeta(a.Pool, true, false),
		solana.NewAccountMeta(a.User, false, true),
		solana.NewAccountMeta(a.UserCollectionAccount, true, false),
		solana.NewAccountMeta(a.AccountCollection, true, false),
		solana.NewAccountMeta(a.UserPoolAccount, true, false),
		solana.NewAccountMeta(a.MintPool, true, false),
		solana.NewAccountMeta(a.UserWhitelistAccount, true, false),
		solana.NewAccountMeta(a.MintWhitelist, true, false),
		solana.NewAccountMeta(a.KycRecord, false, false),
		solana.NewAccountMeta(a.Authority, false, false),
	}
}

// BuildParticipate encodes the Participate instruction.
func BuildParticipate(acc ParticipateAccounts, params ParticipateParams) solana.Instruction {
	data := append([]byte{byte(TagParticipate)}, EncodeParticipateParams(params)...)
	return solana.NewInstruction(constants.SolStarterProgramID, acc.ToAccountMetas(), data)
}

func (a ClaimAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Market, false, false),
		solana.NewAccountMeta(a.Pool, true, false),
		solana.NewAccountMeta(a.User, false, true),
		solana.NewAccountMeta(a.UserPoolAccount, true, false),
		solana.NewAccountMeta(a.MintPool, true, false),
		solana.NewAccountMeta(a.Target, true, false),
		solana.NewAccountMeta(a.UserTargetAccount, true, false),
		solana.NewAccountMeta(a.MintTarget, false, false),
		solana.NewAccountMeta(a.Authority, false, false),
	}
}

// BuildClaim encodes the Claim instruction.
func BuildClaim(acc ClaimAccounts) solana.Instruction {
	return solana.NewInstruction(constants.SolStarterProgramID, acc.ToAccountMetas(), []byte{byte(TagClaim)})
}

func (a WithdrawAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Market, false, false),
		solana.NewAccountMeta(a.Pool, false, false),
		solana.NewAccountMeta(a.Owner, false, true),
		solana.NewAccountMeta(a.Target, true, false),
		solana.NewAccountMeta(a.OwnerTargetAccount, true, false),
		solana.NewAccountMeta(a.MintTarget, false, false),
		solana.NewAccountMeta(a.Authority, false, false),
	}
}

// BuildWithdraw encodes the Withdraw instruction.
func BuildWithdraw(acc WithdrawAccounts) solana.Instruction {
	return solana.NewInstruction(constants.SolStarterProgramID, acc.ToAccountMetas(), []byte{byte(TagWithdraw)})
}

func (a KycAccounts) ToAccountMetas() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(a.Market, false, false),
		solana.NewAccountMeta(a.Owner, false, true),
		solana.NewAccountMeta(a.KycRecord, true, false),
		solana.NewAccountMeta(a.User, false, false),
	}
}

// BuildSetKyc encodes the SetKyc instruction.
func BuildSetKyc(acc KycAccounts) solana.Instruction {
	return solana.NewInstruction(constants.SolStarterProgramID, acc.ToAccountMetas(), []byte{byte(TagSetKyc)})
}

// BuildClearKyc encodes the ClearKyc instruction.
func BuildClearKyc(acc KycAccounts) solana.Instruction {
	return solana.NewInstruction(constants.SolStarterProgramID, acc.ToAccountMetas(), []byte{byte(TagClearKyc)})
}
