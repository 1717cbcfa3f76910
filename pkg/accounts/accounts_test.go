package accounts

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestResolveIsDeterministic(t *testing.T) {
	market := solana.NewWallet().PublicKey()
	pool := solana.NewWallet().PublicKey()

	first, err := Resolve(market, pool)
	require.NoError(t, err)

	second, err := Resolve(market, pool)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestResolveDistinctRoles(t *testing.T) {
	market := solana.NewWallet().PublicKey()
	pool := solana.NewWallet().PublicKey()

	c, err := Resolve(market, pool)
	require.NoError(t, err)

	addrs := map[solana.PublicKey]bool{
		c.Collection:   true,
		c.Distribution: true,
		c.MintPool:     true,
		c.MintWhitelist: true,
		c.Authority:    true,
	}
	require.Len(t, addrs, 5, "all five custody roles must derive distinct addresses")
}

func TestResolveVariesByPool(t *testing.T) {
	market := solana.NewWallet().PublicKey()
	poolA := solana.NewWallet().PublicKey()
	poolB := solana.NewWallet().PublicKey()

	a, err := Resolve(market, poolA)
	require.NoError(t, err)
	b, err := Resolve(market, poolB)
	require.NoError(t, err)

	require.NotEqual(t, a.Collection, b.Collection)
}

func TestKycAddressIsDeterministicAndPerUser(t *testing.T) {
	market := solana.NewWallet().PublicKey()
	userA := solana.NewWallet().PublicKey()
	userB := solana.NewWallet().PublicKey()

	a1, err := KycAddress(market, userA)
	require.NoError(t, err)
	a2, err := KycAddress(market, userA)
	require.NoError(t, err)
	require.Equal(t, a1, a2)

	b, err := KycAddress(market, userB)
	require.NoError(t, err)
	require.NotEqual(t, a1, b)
}

func TestVerify(t *testing.T) {
	a := solana.NewWallet().PublicKey()
	b := solana.NewWallet().PublicKey()

	require.NoError(t, Verify(a, a))
	require.Error(t, Verify(a, b))
}
