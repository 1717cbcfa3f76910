package codec

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/solstarter/solstarter/pkg/solerrors"
)

func TestMarketRoundTrip(t *testing.T) {
	want := &Market{
		Owner:         solana.NewWallet().PublicKey(),
		IsInitialized: true,
	}
	data, err := want.Marshal()
	require.NoError(t, err)
	require.Equal(t, byte(DiscriminantMarket), data[0])

	got := &Market{}
	require.NoError(t, got.Unmarshal(data))
	require.Equal(t, want, got)
}

func TestMarketUnmarshalWrongDiscriminant(t *testing.T) {
	pool := &Pool{Owner: solana.NewWallet().PublicKey(), IsInitialized: true}
	data, err := pool.Marshal()
	require.NoError(t, err)

	got := &Market{}
	require.ErrorIs(t, got.Unmarshal(data), solerrors.ErrInvalidAccountData)
}

func TestMarketUnmarshalEmptyData(t *testing.T) {
	got := &Market{}
	require.Error(t, got.Unmarshal(nil))
}

func TestPoolRoundTrip(t *testing.T) {
	want := &Pool{
		Market:              solana.NewWallet().PublicKey(),
		Owner:               solana.NewWallet().PublicKey(),
		MintCollection:      solana.NewWallet().PublicKey(),
		MintDistribution:    solana.NewWallet().PublicKey(),
		AccountCollection:   solana.NewWallet().PublicKey(),
		AccountDistribution: solana.NewWallet().PublicKey(),
		MintPool:            solana.NewWallet().PublicKey(),
		MintWhitelist:       solana.NewWallet().PublicKey(),
		IsWhitelist:         true,
		IsKyc:                true,
		PriceNumerator:      1,
		PriceDenominator:    10,
		GoalMin:             10,
		GoalMax:             50,
		AmountMin:           1,
		AmountMax:           5,
		TimeStart:           1000,
		TimeFinish:          2000,
		CollectedTotal:      0,
		IsInitialized:       true,
	}
	data, err := want.Marshal()
	require.NoError(t, err)
	require.Equal(t, byte(DiscriminantPool), data[0])

	got := &Pool{}
	require.NoError(t, got.Unmarshal(data))
	require.Equal(t, want, got)
}

func TestKycRoundTrip(t *testing.T) {
	want := &Kyc{
		Market:    solana.NewWallet().PublicKey(),
		User:      solana.NewWallet().PublicKey(),
		Passed:    true,
		HasExpiry: true,
		Expiry:    9999,
	}
	data, err := want.Marshal()
	require.NoError(t, err)
	require.Equal(t, byte(DiscriminantKyc), data[0])

	got := &Kyc{}
	require.NoError(t, got.Unmarshal(data))
	require.Equal(t, want, got)
}

func TestPeekDiscriminant(t *testing.T) {
	require.Equal(t, DiscriminantUninitialized, PeekDiscriminant(nil))
	require.Equal(t, DiscriminantUninitialized, PeekDiscriminant([]byte{}))
	require.Equal(t, DiscriminantMarket, PeekDiscriminant([]byte{1, 2, 3}))
}
