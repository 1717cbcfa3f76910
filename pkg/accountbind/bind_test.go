package accountbind

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestApplyPubkeyOverridesByFieldName(t *testing.T) {
	type target struct{ Owner, User solana.PublicKey }
	owner := solana.NewWallet().PublicKey()
	var tgt target
	applyPubkeyOverrides(&tgt, map[string]solana.PublicKey{"Owner": owner})
	require.Equal(t, owner, tgt.Owner)
	require.True(t, isZeroPK(tgt.User))
}

func TestApplyPubkeyOverridesBySnakeCase(t *testing.T) {
	type target struct{ UserWhitelistAccount solana.PublicKey }
	addr := solana.NewWallet().PublicKey()
	var tgt target
	applyPubkeyOverrides(&tgt, map[string]solana.PublicKey{"user_whitelist_account": addr})
	require.Equal(t, addr, tgt.UserWhitelistAccount)
}

func TestSnake(t *testing.T) {
	require.Equal(t, "user_whitelist_account", snake("UserWhitelistAccount"))
	require.Equal(t, "owner", snake("Owner"))
}

func TestLowerCamel(t *testing.T) {
	require.Equal(t, "owner", lowerCamel("Owner"))
	require.Equal(t, "", lowerCamel(""))
}

func TestBindInitMarket(t *testing.T) {
	market := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	acc := BindInitMarket(market, owner)
	require.Equal(t, market, acc.Market)
	require.Equal(t, owner, acc.Owner)
}

func TestBindInitMarketOverride(t *testing.T) {
	market := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	forcedOwner := solana.NewWallet().PublicKey()
	acc := BindInitMarket(market, owner, WithOverrides(map[string]solana.PublicKey{"Owner": forcedOwner}))
	require.Equal(t, forcedOwner, acc.Owner)
}

func TestBindInitPoolDerivesCustody(t *testing.T) {
	market := solana.NewWallet().PublicKey()
	pool := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	mintCollection := solana.NewWallet().PublicKey()
	mintDistribution := solana.NewWallet().PublicKey()

	acc, err := BindInitPool(market, pool, owner, mintCollection, mintDistribution)
	require.NoError(t, err)
	require.False(t, isZeroPK(acc.AccountCollection))
	require.False(t, isZeroPK(acc.Authority))
	require.NotEqual(t, acc.AccountCollection, acc.AccountDistribution)

	// deriving again for the same (market, pool) must be deterministic.
	again, err := BindInitPool(market, pool, owner, mintCollection, mintDistribution)
	require.NoError(t, err)
	require.Equal(t, acc, again)
}

func TestBindSetKycAndClearKycDeriveSameRecord(t *testing.T) {
	market := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	user := solana.NewWallet().PublicKey()

	set, err := BindSetKyc(market, owner, user)
	require.NoError(t, err)
	clear, err := BindClearKyc(market, owner, user)
	require.NoError(t, err)
	require.Equal(t, set.KycRecord, clear.KycRecord)
	require.False(t, isZeroPK(set.KycRecord))
}

func TestMergeOverridesFromJSON(t *testing.T) {
	addr := solana.NewWallet().PublicKey()
	blob := []byte(`{"owner":"` + addr.String() + `"}`)
	m, err := MergeOverridesFromJSON(nil, blob)
	require.NoError(t, err)
	require.Equal(t, addr, m["owner"])
}
