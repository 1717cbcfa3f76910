package program

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/solstarter/solstarter/pkg/codec"
	"github.com/solstarter/solstarter/pkg/sim"
	"github.com/solstarter/solstarter/pkg/solerrors"
)

func TestDispatchInitMarket(t *testing.T) {
	l := sim.NewLedger(0)
	deps := Deps{Store: l, Clock: l, Rent: l, Token: l}

	market := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	l.Sign(owner)
	l.Fund(market, 10_000_000)

	raw := []byte{byte(TagInitMarket)}
	err := Dispatch(context.Background(), deps, []solana.PublicKey{market, owner}, raw)
	require.NoError(t, err)

	data, _, err := l.Read(context.Background(), market)
	require.NoError(t, err)
	require.Equal(t, byte(codec.DiscriminantMarket), data[0])
}

func TestDispatchUnknownTag(t *testing.T) {
	l := sim.NewLedger(0)
	deps := Deps{Store: l, Clock: l, Rent: l, Token: l}

	err := Dispatch(context.Background(), deps, nil, []byte{0xFF})
	require.Error(t, err)
}

func TestDispatchEmptyInstruction(t *testing.T) {
	l := sim.NewLedger(0)
	deps := Deps{Store: l, Clock: l, Rent: l, Token: l}

	err := Dispatch(context.Background(), deps, nil, nil)
	require.ErrorIs(t, err, solerrors.ErrInvalidAccounts)
}

func TestClaimInvalidTargetCombination(t *testing.T) {
	h := newHarness(t, 500) // Preparing: InitPool needs time_start >= now
	h.initPool(InitPoolParams{
		PriceNumerator: 1, PriceDenominator: 1,
		GoalMin: 1, GoalMax: 100,
		AmountMin: 1, AmountMax: 5,
		TimeStart: 1000, TimeFinish: 2000,
	})
	h.seedDistribution(1000)

	u1, u1c, _, u1p := h.newUser(100)
	h.ledger.SetNow(1500) // Active
	require.NoError(t, h.participate(u1, u1c, u1p, 5))

	h.ledger.SetNow(2001) // collected_total(5) >= goal_min(1) -> Successful
	h.ledger.Sign(u1)
	err := Claim(context.Background(), h.deps, ClaimAccounts{
		Market: h.market, Pool: h.pool, User: u1,
		UserPoolAccount: u1p, MintPool: h.custody.MintPool,
		Target: h.custody.Collection, UserTargetAccount: u1c,
		MintTarget: h.mintCollection, Authority: h.custody.Authority,
	})
	require.ErrorIs(t, err, solerrors.ErrInvalidClaimTarget, "a Successful pool only pays out against account_distribution")
}
