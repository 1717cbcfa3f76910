// Package tokenprog is the real implementation of hostapi.TokenProgram: it
// builds SPL-token instructions with github.com/gagliardetto/solana-go's
// token program bindings and hands them to an injected invoker, mirroring
// how the rest of this codebase's instruction builders (pkg/txbuilder)
// assemble solana.Instruction values and leave submission to a separate
// collaborator.
package tokenprog

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"

	"github.com/solstarter/solstarter/pkg/constants"
)

// Invoker submits a single instruction as a cross-program invocation signed
// by the host runtime's current authority set. On real on-chain
// deployment this is the runtime's native CPI call; CPIAdapter treats it as
// opaque.
type Invoker func(ctx context.Context, ix solana.Instruction) error

// CPIAdapter implements hostapi.TokenProgram against a real SPL-compatible
// token program via cross-program invocation.
type CPIAdapter struct {
	invoke Invoker
}

// NewCPIAdapter builds an adapter that submits every token-program call
// through invoke.
func NewCPIAdapter(invoke Invoker) *CPIAdapter {
	return &CPIAdapter{invoke: invoke}
}

func (a *CPIAdapter) InitMint(ctx context.Context, mint, mintAuthority solana.PublicKey, decimals uint8) error {
	ix := token.NewInitializeMintInstruction(
		decimals,
		mintAuthority,
		solana.PublicKey{},
		mint,
		constants.SysvarRentPubkey,
	).Build()
	return a.invoke(ctx, ix)
}

func (a *CPIAdapter) InitAccount(ctx context.Context, account, mint, owner solana.PublicKey) error {
	ix := token.NewInitializeAccountInstruction(
		account,
		mint,
		owner,
		constants.SysvarRentPubkey,
	).Build()
	return a.invoke(ctx, ix)
}

func (a *CPIAdapter) Transfer(ctx context.Context, src, dst, authority solana.PublicKey, amount uint64) error {
	ix := token.NewTransferInstruction(
		amount,
		src,
		dst,
		authority,
		nil,
	).Build()
	return a.invoke(ctx, ix)
}

func (a *CPIAdapter) MintTo(ctx context.Context, mint, dst, mintAuthority solana.PublicKey, amount uint64) error {
	ix := token.NewMintToInstruction(
		amount,
		mint,
		dst,
		mintAuthority,
		nil,
	).Build()
	return a.invoke(ctx, ix)
}

func (a *CPIAdapter) Burn(ctx context.Context, account, mint, authority solana.PublicKey, amount uint64) error {
	ix := token.NewBurnInstruction(
		amount,
		account,
		mint,
		authority,
		nil,
	).Build()
	return a.invoke(ctx, ix)
}

func (a *CPIAdapter) BalanceOf(ctx context.Context, account solana.PublicKey) (uint64, error) {
	return 0, fmt.Errorf("tokenprog: BalanceOf requires an AccountStore read, not a CPI call")
}
