package program

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/solstarter/solstarter/pkg/constants"
)

func TestBuildInitMarketEncodesTagAndAccounts(t *testing.T) {
	market := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	ix := BuildInitMarket(InitMarketAccounts{Market: market, Owner: owner})

	require.Equal(t, constants.SolStarterProgramID, ix.ProgramID())
	data, err := ix.Data()
	require.NoError(t, err)
	require.Equal(t, []byte{byte(TagInitMarket)}, data)

	metas := ix.Accounts()
	require.Len(t, metas, 2)
	require.True(t, metas[0].PublicKey.Equals(market))
	require.True(t, metas[1].IsSigner)
}

func TestBuildInitPoolEncodesParams(t *testing.T) {
	acc := InitPoolAccounts{
		Market: solana.NewWallet().PublicKey(),
		Pool:   solana.NewWallet().PublicKey(),
		Owner:  solana.NewWallet().PublicKey(),
	}
	params := InitPoolParams{PriceNumerator: 1, PriceDenominator: 10, GoalMax: 100, AmountMax: 5, TimeFinish: 2000}
	ix := BuildInitPool(acc, params)
	data, err := ix.Data()
	require.NoError(t, err)
	require.Equal(t, byte(TagInitPool), data[0])
	require.Len(t, data, 1+initPoolParamsLen)

	decoded, err := DecodeInitPoolParams(data[1:])
	require.NoError(t, err)
	require.Equal(t, params, decoded)
}

func TestBuildParticipateEncodesAmount(t *testing.T) {
	ix := BuildParticipate(ParticipateAccounts{}, ParticipateParams{Amount: 42})
	data, err := ix.Data()
	require.NoError(t, err)
	require.Equal(t, byte(TagParticipate), data[0])
	decoded, err := DecodeParticipateParams(data[1:])
	require.NoError(t, err)
	require.EqualValues(t, 42, decoded.Amount)
}

func TestBuildNoParamInstructionsCarryOnlyTag(t *testing.T) {
	require.Len(t, mustData(t, BuildAddToWhitelist(AddToWhitelistAccounts{})), 1)
	require.Len(t, mustData(t, BuildClaim(ClaimAccounts{})), 1)
	require.Len(t, mustData(t, BuildWithdraw(WithdrawAccounts{})), 1)
	require.Len(t, mustData(t, BuildSetKyc(KycAccounts{})), 1)
	require.Len(t, mustData(t, BuildClearKyc(KycAccounts{})), 1)
}

func mustData(t *testing.T, ix solana.Instruction) []byte {
	t.Helper()
	data, err := ix.Data()
	require.NoError(t, err)
	return data
}
