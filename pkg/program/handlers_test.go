package program

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/solstarter/solstarter/pkg/accounts"
	"github.com/solstarter/solstarter/pkg/sim"
	"github.com/solstarter/solstarter/pkg/solerrors"
)

// harness bundles a ledger and the addresses of one market/pool pair,
// grounded in spec.md §8's end-to-end scenarios.
type harness struct {
	t      *testing.T
	ledger *sim.Ledger
	deps   Deps

	market, owner                solana.PublicKey
	pool                         solana.PublicKey
	mintCollection, mintDistribution solana.PublicKey
	custody                      accounts.Custody
	externalAuthority            solana.PublicKey
}

func newHarness(t *testing.T, now int64) *harness {
	l := sim.NewLedger(now)
	h := &harness{
		t:      t,
		ledger: l,
		deps:   Deps{Store: l, Clock: l, Rent: l, Token: l},

		market:              solana.NewWallet().PublicKey(),
		owner:               solana.NewWallet().PublicKey(),
		pool:                solana.NewWallet().PublicKey(),
		mintCollection:      solana.NewWallet().PublicKey(),
		mintDistribution:    solana.NewWallet().PublicKey(),
		externalAuthority:   solana.NewWallet().PublicKey(),
	}

	ctx := context.Background()
	l.Sign(h.owner)
	l.Fund(h.market, 10_000_000)
	require.NoError(t, InitMarket(ctx, h.deps, InitMarketAccounts{Market: h.market, Owner: h.owner}))

	require.NoError(t, l.InitMint(ctx, h.mintCollection, h.externalAuthority, 0))
	require.NoError(t, l.InitMint(ctx, h.mintDistribution, h.externalAuthority, 0))

	custody, err := accounts.Resolve(h.market, h.pool)
	require.NoError(t, err)
	h.custody = custody

	return h
}

func (h *harness) initPool(params InitPoolParams) {
	ctx := context.Background()
	acc := InitPoolAccounts{
		Market:              h.market,
		Pool:                h.pool,
		Owner:               h.owner,
		MintCollection:      h.mintCollection,
		MintDistribution:    h.mintDistribution,
		AccountCollection:   h.custody.Collection,
		AccountDistribution: h.custody.Distribution,
		MintPool:            h.custody.MintPool,
		MintWhitelist:       h.custody.MintWhitelist,
		Authority:           h.custody.Authority,
	}
	require.NoError(h.t, InitPool(ctx, h.deps, acc, params))
}

func (h *harness) newUser(collectedBalance uint64) (user, userCollection, userDistribution, userPool solana.PublicKey) {
	ctx := context.Background()
	user = solana.NewWallet().PublicKey()
	userCollection = solana.NewWallet().PublicKey()
	userDistribution = solana.NewWallet().PublicKey()
	userPool = solana.NewWallet().PublicKey()

	require.NoError(h.t, h.ledger.InitAccount(ctx, userCollection, h.mintCollection, user))
	require.NoError(h.t, h.ledger.InitAccount(ctx, userDistribution, h.mintDistribution, user))
	require.NoError(h.t, h.ledger.InitAccount(ctx, userPool, h.custody.MintPool, user))
	if collectedBalance > 0 {
		require.NoError(h.t, h.ledger.MintTo(ctx, h.mintCollection, userCollection, h.externalAuthority, collectedBalance))
	}
	return
}

func (h *harness) seedDistribution(amount uint64) {
	require.NoError(h.t, h.ledger.MintTo(context.Background(), h.mintDistribution, h.custody.Distribution, h.externalAuthority, amount))
}

func (h *harness) participate(user, userCollection, userPool solana.PublicKey, amount uint64) error {
	ctx := context.Background()
	h.ledger.Sign(user)
	acc := ParticipateAccounts{
		Market:                h.market,
		Pool:                  h.pool,
		User:                  user,
		UserCollectionAccount: userCollection,
		AccountCollection:     h.custody.Collection,
		UserPoolAccount:       userPool,
		MintPool:              h.custody.MintPool,
		UserWhitelistAccount:  solana.PublicKey{},
		MintWhitelist:         h.custody.MintWhitelist,
		KycRecord:             solana.PublicKey{},
		Authority:             h.custody.Authority,
	}
	return Participate(ctx, h.deps, acc, ParticipateParams{Amount: amount})
}

func TestSuccessfulSaleCoarseRounding(t *testing.T) {
	// Scenario 1 (spec.md §8): num=1, den=10, goal 10..50, amount 1..5,
	// window 1000..2000, no whitelist, no KYC. Both users participate with
	// 5; claim at 2001 yields floor(5*1/10) = 0 distributed tokens.
	h := newHarness(t, 500) // Preparing: InitPool needs time_start >= now
	h.initPool(InitPoolParams{
		PriceNumerator: 1, PriceDenominator: 10,
		GoalMin: 10, GoalMax: 50,
		AmountMin: 1, AmountMax: 5,
		TimeStart: 1000, TimeFinish: 2000,
	})
	h.seedDistribution(1000)

	u1, u1c, u1d, u1p := h.newUser(100)
	u2, u2c, _, u2p := h.newUser(100)

	h.ledger.SetNow(1500) // Active
	require.NoError(t, h.participate(u1, u1c, u1p, 5))
	require.NoError(t, h.participate(u2, u2c, u2p, 5))

	pool, err := loadPool(context.Background(), h.deps, h.pool)
	require.NoError(t, err)
	require.EqualValues(t, 10, pool.CollectedTotal)

	h.ledger.SetNow(2001)
	h.ledger.Sign(u1)
	err = Claim(context.Background(), h.deps, ClaimAccounts{
		Market: h.market, Pool: h.pool, User: u1,
		UserPoolAccount: u1p, MintPool: h.custody.MintPool,
		Target: h.custody.Distribution, UserTargetAccount: u1d,
		MintTarget: h.mintDistribution, Authority: h.custody.Authority,
	})
	require.NoError(t, err)

	bal, err := h.ledger.BalanceOf(context.Background(), u1d)
	require.NoError(t, err)
	require.EqualValues(t, 0, bal, "price configuration is too coarse for this receipt size")
}

func TestSuccessfulSaleCleanRounding(t *testing.T) {
	// Scenario 2: scenario 1 with num=1, den=1. Both users participate with
	// 5 (collected_total 10 reaches goal_min), and U1's claim of 5 receipts
	// pays exactly 5 distributed.
	h := newHarness(t, 500) // Preparing: InitPool needs time_start >= now
	h.initPool(InitPoolParams{
		PriceNumerator: 1, PriceDenominator: 1,
		GoalMin: 10, GoalMax: 50,
		AmountMin: 1, AmountMax: 5,
		TimeStart: 1000, TimeFinish: 2000,
	})
	h.seedDistribution(1000)

	u1, u1c, u1d, u1p := h.newUser(100)
	u2, u2c, _, u2p := h.newUser(100)

	h.ledger.SetNow(1500) // Active
	require.NoError(t, h.participate(u1, u1c, u1p, 5))
	require.NoError(t, h.participate(u2, u2c, u2p, 5))

	h.ledger.SetNow(2001)
	h.ledger.Sign(u1)
	require.NoError(t, Claim(context.Background(), h.deps, ClaimAccounts{
		Market: h.market, Pool: h.pool, User: u1,
		UserPoolAccount: u1p, MintPool: h.custody.MintPool,
		Target: h.custody.Distribution, UserTargetAccount: u1d,
		MintTarget: h.mintDistribution, Authority: h.custody.Authority,
	}))

	bal, err := h.ledger.BalanceOf(context.Background(), u1d)
	require.NoError(t, err)
	require.EqualValues(t, 5, bal)
}

func TestFailedSaleRefund(t *testing.T) {
	// Scenario 3: goal never reached, pool Fails; claim against collection
	// refunds exactly the participated amount; Withdraw against collection
	// fails with RefundReservedForUsers.
	h := newHarness(t, 500) // Preparing: InitPool needs time_start >= now
	h.initPool(InitPoolParams{
		PriceNumerator: 1, PriceDenominator: 1,
		GoalMin: 100, GoalMax: 500,
		AmountMin: 1, AmountMax: 50,
		TimeStart: 1000, TimeFinish: 2000,
	})

	u1, u1c, _, u1p := h.newUser(100)
	h.ledger.SetNow(1500) // Active
	require.NoError(t, h.participate(u1, u1c, u1p, 5))

	h.ledger.SetNow(2001)
	h.ledger.Sign(u1)
	require.NoError(t, Claim(context.Background(), h.deps, ClaimAccounts{
		Market: h.market, Pool: h.pool, User: u1,
		UserPoolAccount: u1p, MintPool: h.custody.MintPool,
		Target: h.custody.Collection, UserTargetAccount: u1c,
		MintTarget: h.mintCollection, Authority: h.custody.Authority,
	}))

	bal, err := h.ledger.BalanceOf(context.Background(), u1c)
	require.NoError(t, err)
	require.EqualValues(t, 100, bal, "refund should return exactly the 5 participated, landing back at the original 100 balance")

	h.ledger.Sign(h.owner)
	ownerTarget := solana.NewWallet().PublicKey()
	require.NoError(t, h.ledger.InitAccount(context.Background(), ownerTarget, h.mintCollection, h.owner))
	err = Withdraw(context.Background(), h.deps, WithdrawAccounts{
		Market: h.market, Pool: h.pool, Owner: h.owner,
		Target: h.custody.Collection, OwnerTargetAccount: ownerTarget,
		MintTarget: h.mintCollection, Authority: h.custody.Authority,
	})
	require.ErrorIs(t, err, solerrors.ErrRefundReservedForUsers)
}

func TestSoldOut(t *testing.T) {
	// Scenario 4: goal_max=10, amount_max=5. Two participants exhaust the
	// goal, so the pool is Sold-out; a third participant is rejected with
	// InvalidPoolState because Sold-out admits no Participate.
	h := newHarness(t, 500) // Preparing: InitPool needs time_start >= now
	h.initPool(InitPoolParams{
		PriceNumerator: 1, PriceDenominator: 1,
		GoalMin: 5, GoalMax: 10,
		AmountMin: 1, AmountMax: 5,
		TimeStart: 1000, TimeFinish: 2000,
	})

	u1, u1c, _, u1p := h.newUser(100)
	u2, u2c, _, u2p := h.newUser(100)
	u3, u3c, _, u3p := h.newUser(100)

	h.ledger.SetNow(1500) // Active
	require.NoError(t, h.participate(u1, u1c, u1p, 5))
	require.NoError(t, h.participate(u2, u2c, u2p, 5))

	err := h.participate(u3, u3c, u3p, 5)
	require.ErrorIs(t, err, solerrors.ErrInvalidPoolState, "pool is Sold-out, not Active, once collected_total == goal_max")
}

func TestWhitelistGating(t *testing.T) {
	// Scenario 5: without a whitelist token, Participate fails
	// WhitelistRequired; AddToWhitelist mints one, Participate then
	// succeeds and burns it; a second Participate without re-whitelisting
	// fails again.
	h := newHarness(t, 500) // Preparing: now < time_start
	h.initPool(InitPoolParams{
		PriceNumerator: 1, PriceDenominator: 1,
		GoalMin: 1, GoalMax: 100,
		AmountMin: 1, AmountMax: 1,
		TimeStart: 1000, TimeFinish: 2000,
		IsWhitelist: true,
	})

	ctx := context.Background()
	u1, u1c, _, u1p := h.newUser(100)
	u1w := solana.NewWallet().PublicKey()
	require.NoError(t, h.ledger.InitAccount(ctx, u1w, h.custody.MintWhitelist, u1))

	h.ledger.SetNow(1500) // Active
	h.ledger.Sign(u1)
	participateAcc := ParticipateAccounts{
		Market: h.market, Pool: h.pool, User: u1,
		UserCollectionAccount: u1c, AccountCollection: h.custody.Collection,
		UserPoolAccount: u1p, MintPool: h.custody.MintPool,
		UserWhitelistAccount: u1w, MintWhitelist: h.custody.MintWhitelist,
		Authority: h.custody.Authority,
	}
	err := Participate(ctx, h.deps, participateAcc, ParticipateParams{Amount: 1})
	require.ErrorIs(t, err, solerrors.ErrWhitelistRequired)

	h.ledger.SetNow(500) // back to Preparing to issue the whitelist token
	h.ledger.Sign(h.owner)
	require.NoError(t, AddToWhitelist(ctx, h.deps, AddToWhitelistAccounts{
		Market: h.market, Pool: h.pool, Owner: h.owner,
		User: u1, UserWhitelistAccount: u1w,
		MintWhitelist: h.custody.MintWhitelist, Authority: h.custody.Authority,
	}))

	h.ledger.SetNow(1500)
	h.ledger.Sign(u1)
	require.NoError(t, Participate(ctx, h.deps, participateAcc, ParticipateParams{Amount: 1}))

	bal, err := h.ledger.BalanceOf(ctx, u1w)
	require.NoError(t, err)
	require.EqualValues(t, 0, bal)

	err = Participate(ctx, h.deps, participateAcc, ParticipateParams{Amount: 1})
	require.ErrorIs(t, err, solerrors.ErrWhitelistRequired)
}

func TestKycGating(t *testing.T) {
	// Scenario 6: Participate fails KycRequired until the owner sets KYC.
	h := newHarness(t, 500) // Preparing: InitPool needs time_start >= now
	h.initPool(InitPoolParams{
		PriceNumerator: 1, PriceDenominator: 1,
		GoalMin: 1, GoalMax: 100,
		AmountMin: 1, AmountMax: 1,
		TimeStart: 1000, TimeFinish: 2000,
		IsKyc: true,
	})

	ctx := context.Background()
	u1, u1c, _, u1p := h.newUser(100)
	kycAddr, err := accounts.KycAddress(h.market, u1)
	require.NoError(t, err)

	h.ledger.SetNow(1500) // Active
	h.ledger.Sign(u1)
	participateAcc := ParticipateAccounts{
		Market: h.market, Pool: h.pool, User: u1,
		UserCollectionAccount: u1c, AccountCollection: h.custody.Collection,
		UserPoolAccount: u1p, MintPool: h.custody.MintPool,
		KycRecord: kycAddr, Authority: h.custody.Authority,
	}
	err = Participate(ctx, h.deps, participateAcc, ParticipateParams{Amount: 1})
	require.ErrorIs(t, err, solerrors.ErrKycRequired)

	h.ledger.Sign(h.owner)
	require.NoError(t, SetKyc(ctx, h.deps, KycAccounts{
		Market: h.market, Owner: h.owner, KycRecord: kycAddr, User: u1,
	}))

	h.ledger.Sign(u1)
	require.NoError(t, Participate(ctx, h.deps, participateAcc, ParticipateParams{Amount: 1}))
}

func TestInitMarketAlreadyInitialized(t *testing.T) {
	h := newHarness(t, 0)
	h.ledger.Sign(h.owner)
	err := InitMarket(context.Background(), h.deps, InitMarketAccounts{Market: h.market, Owner: h.owner})
	require.ErrorIs(t, err, solerrors.ErrAlreadyInitialized)
}

func TestInitPoolAlreadyInitialized(t *testing.T) {
	h := newHarness(t, 500)
	h.initPool(InitPoolParams{
		PriceNumerator: 1, PriceDenominator: 1,
		GoalMin: 1, GoalMax: 10,
		AmountMin: 1, AmountMax: 5,
		TimeStart: 1000, TimeFinish: 2000,
	})

	acc := InitPoolAccounts{
		Market: h.market, Pool: h.pool, Owner: h.owner,
		MintCollection: h.mintCollection, MintDistribution: h.mintDistribution,
		AccountCollection: h.custody.Collection, AccountDistribution: h.custody.Distribution,
		MintPool: h.custody.MintPool, MintWhitelist: h.custody.MintWhitelist,
		Authority: h.custody.Authority,
	}
	err := InitPool(context.Background(), h.deps, acc, InitPoolParams{
		PriceNumerator: 1, PriceDenominator: 1,
		GoalMin: 1, GoalMax: 10,
		AmountMin: 1, AmountMax: 5,
		TimeStart: 1000, TimeFinish: 2000,
	})
	require.ErrorIs(t, err, solerrors.ErrAlreadyInitialized)
}
