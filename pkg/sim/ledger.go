// Package sim is an in-memory implementation of pkg/hostapi's interfaces,
// used by pkg/program's tests and the CLI's simulate subcommand in place
// of a live cluster. It mirrors the teacher's simulate harness: no RPC, no
// signing, just enough bookkeeping to drive the handlers end to end.
package sim

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/solstarter/solstarter/pkg/solerrors"
)

// rentLamportsPerByteEpoch approximates the cluster's two-year rent-exempt
// threshold. Simulation only; the real threshold is read from the rent
// sysvar in production (pkg/rpc.GetRentExemptMinimum).
const rentLamportsPerByteEpoch = 6960

type accountRecord struct {
	data     []byte
	lamports uint64
}

type mintRecord struct {
	authority solana.PublicKey
	decimals  uint8
	supply    uint64
}

type tokenAccountRecord struct {
	mint   solana.PublicKey
	owner  solana.PublicKey
	amount uint64
}

// Ledger is a mutable, single-threaded simulation of on-chain state:
// arbitrary account blobs, signers, mints, and token accounts.
type Ledger struct {
	now      int64
	accounts map[solana.PublicKey]*accountRecord
	signers  map[solana.PublicKey]bool
	mints    map[solana.PublicKey]*mintRecord
	tokens   map[solana.PublicKey]*tokenAccountRecord
}

// NewLedger builds an empty ledger with the clock at now.
func NewLedger(now int64) *Ledger {
	return &Ledger{
		now:      now,
		accounts: make(map[solana.PublicKey]*accountRecord),
		signers:  make(map[solana.PublicKey]bool),
		mints:    make(map[solana.PublicKey]*mintRecord),
		tokens:   make(map[solana.PublicKey]*tokenAccountRecord),
	}
}

// SetNow advances or rewinds the simulated clock.
func (l *Ledger) SetNow(now int64) { l.now = now }

// Sign marks addr as having signed the current (simulated) transaction.
func (l *Ledger) Sign(addr solana.PublicKey) { l.signers[addr] = true }

// ClearSigners resets the signer set between simulated instructions.
func (l *Ledger) ClearSigners() { l.signers = make(map[solana.PublicKey]bool) }

// Fund sets an account's lamport balance, used by tests to make an account
// rent-exempt before InitMarket/InitPool.
func (l *Ledger) Fund(addr solana.PublicKey, lamports uint64) {
	rec := l.accounts[addr]
	if rec == nil {
		rec = &accountRecord{}
		l.accounts[addr] = rec
	}
	rec.lamports = lamports
}

// --- hostapi.Clock ---

func (l *Ledger) UnixTimestamp(ctx context.Context) (int64, error) {
	return l.now, nil
}

// --- hostapi.Rent ---

func (l *Ledger) IsExempt(ctx context.Context, lamports uint64, dataLen uint64) (bool, error) {
	return lamports >= dataLen*rentLamportsPerByteEpoch, nil
}

// --- hostapi.AccountStore ---

func (l *Ledger) Read(ctx context.Context, addr solana.PublicKey) ([]byte, uint64, error) {
	rec := l.accounts[addr]
	if rec == nil {
		return nil, 0, nil
	}
	return rec.data, rec.lamports, nil
}

func (l *Ledger) Write(ctx context.Context, addr solana.PublicKey, data []byte) error {
	rec := l.accounts[addr]
	if rec == nil {
		rec = &accountRecord{}
		l.accounts[addr] = rec
	}
	rec.data = data
	return nil
}

func (l *Ledger) IsSigner(addr solana.PublicKey) bool {
	return l.signers[addr]
}

// --- hostapi.TokenProgram ---

func (l *Ledger) InitMint(ctx context.Context, mint, mintAuthority solana.PublicKey, decimals uint8) error {
	if _, ok := l.mints[mint]; ok {
		return solerrors.ErrAlreadyInitialized
	}
	l.mints[mint] = &mintRecord{authority: mintAuthority, decimals: decimals}
	return nil
}

func (l *Ledger) InitAccount(ctx context.Context, account, mint, owner solana.PublicKey) error {
	if _, ok := l.tokens[account]; ok {
		return solerrors.ErrAlreadyInitialized
	}
	l.tokens[account] = &tokenAccountRecord{mint: mint, owner: owner}
	return nil
}

func (l *Ledger) Transfer(ctx context.Context, src, dst, authority solana.PublicKey, amount uint64) error {
	srcAcc, ok := l.tokens[src]
	if !ok {
		return solerrors.ErrInvalidAccounts
	}
	dstAcc, ok := l.tokens[dst]
	if !ok {
		return solerrors.ErrInvalidAccounts
	}
	if srcAcc.owner != authority {
		return solerrors.ErrMissingSignature
	}
	if srcAcc.amount < amount {
		return solerrors.ErrAmountOutOfRange
	}
	srcAcc.amount -= amount
	dstAcc.amount += amount
	return nil
}

func (l *Ledger) MintTo(ctx context.Context, mint, dst, mintAuthority solana.PublicKey, amount uint64) error {
	m, ok := l.mints[mint]
	if !ok {
		return solerrors.ErrInvalidAccounts
	}
	if m.authority != mintAuthority {
		return solerrors.ErrMissingSignature
	}
	dstAcc, ok := l.tokens[dst]
	if !ok {
		return solerrors.ErrInvalidAccounts
	}
	m.supply += amount
	dstAcc.amount += amount
	return nil
}

func (l *Ledger) Burn(ctx context.Context, account, mint, authority solana.PublicKey, amount uint64) error {
	acc, ok := l.tokens[account]
	if !ok {
		return solerrors.ErrInvalidAccounts
	}
	if acc.owner != authority {
		return solerrors.ErrMissingSignature
	}
	if acc.amount < amount {
		return solerrors.ErrAmountOutOfRange
	}
	m, ok := l.mints[mint]
	if !ok {
		return solerrors.ErrInvalidAccounts
	}
	acc.amount -= amount
	m.supply -= amount
	return nil
}

func (l *Ledger) BalanceOf(ctx context.Context, account solana.PublicKey) (uint64, error) {
	acc, ok := l.tokens[account]
	if !ok {
		return 0, solerrors.ErrInvalidAccounts
	}
	return acc.amount, nil
}

// MintSupply exposes a mint's tracked supply, used by tests to check that
// MintTo and Burn keep it up to date.
func (l *Ledger) MintSupply(mint solana.PublicKey) uint64 {
	m, ok := l.mints[mint]
	if !ok {
		return 0
	}
	return m.supply
}
