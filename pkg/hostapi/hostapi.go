// Package hostapi declares the external collaborators SolStarter's handlers
// consume as interfaces instead of owning (spec.md §6): the clock account,
// the rent account, and the SPL-compatible token program. Handlers in
// pkg/program are written against these interfaces; pkg/tokenprog supplies
// a real TokenProgram (the only real implementation in this repository)
// and pkg/sim supplies an in-memory implementation of every interface here
// for tests and the CLI's simulate subcommand.
package hostapi

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// Clock yields the current unix-seconds timestamp a handler treats as
// "now". The program never reads time on its own; every phase resolution
// in pkg/state is handed a value obtained this way.
type Clock interface {
	UnixTimestamp(ctx context.Context) (int64, error)
}

// Rent confirms a freshly allocated account holds enough lamports to be
// rent-exempt for its declared data length, used only by InitMarket and
// InitPool.
type Rent interface {
	IsExempt(ctx context.Context, lamports uint64, dataLen uint64) (bool, error)
}

// TokenProgram is the SPL-compatible mint/burn/transfer/init surface
// (spec.md §6(i)) every handler mutates custody balances through. No
// handler ever moves tokens by any other path.
type TokenProgram interface {
	// InitMint initializes a new mint account with the given decimals and
	// mint authority.
	InitMint(ctx context.Context, mint, mintAuthority solana.PublicKey, decimals uint8) error

	// InitAccount initializes a new token account for mint, owned by owner.
	InitAccount(ctx context.Context, account, mint, owner solana.PublicKey) error

	// Transfer moves amount tokens from src to dst. authority must be the
	// owner of src or a delegate with sufficient allowance.
	Transfer(ctx context.Context, src, dst, authority solana.PublicKey, amount uint64) error

	// MintTo mints amount new tokens of mint into dst, signed by
	// mintAuthority.
	MintTo(ctx context.Context, mint, dst, mintAuthority solana.PublicKey, amount uint64) error

	// Burn destroys amount tokens of mint held in account, signed by
	// authority (the account owner or a delegate).
	Burn(ctx context.Context, account, mint, authority solana.PublicKey, amount uint64) error

	// BalanceOf returns the token balance held by account.
	BalanceOf(ctx context.Context, account solana.PublicKey) (uint64, error)
}

// AccountStore reads and writes the raw data blobs backing Market, Pool,
// and Kyc records, keyed by address. The dispatcher deserializes through
// pkg/codec on top of whatever AccountStore returns; it is the only way a
// handler touches account data directly.
type AccountStore interface {
	// Read returns an account's data blob and its lamport balance. A
	// missing account returns a zero-length blob and zero lamports, not an
	// error — callers distinguish "doesn't exist yet" from "exists but
	// empty" via pkg/codec's discriminant byte.
	Read(ctx context.Context, addr solana.PublicKey) (data []byte, lamports uint64, err error)

	// Write persists data as the account's new blob.
	Write(ctx context.Context, addr solana.PublicKey, data []byte) error

	// IsSigner reports whether addr signed the current transaction.
	IsSigner(addr solana.PublicKey) bool
}
