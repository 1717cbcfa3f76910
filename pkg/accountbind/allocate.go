package accountbind

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"

	"github.com/solstarter/solstarter/pkg/constants"
	sdkrpc "github.com/solstarter/solstarter/pkg/rpc"
)

// AllocateAccount builds the system-program CreateAccount instruction that
// must precede InitMarket/InitPool in the same transaction: Market and Pool
// are plain program-owned accounts (not PDAs, unlike the five custody
// roles derived in pkg/accounts), so the caller funds and assigns them
// before the handler will write to them. dataLen must match the zero-value
// marshaled size of the record being created (codec.Market{}.Marshal(),
// codec.Pool{}.Marshal()) so the rent-exempt minimum and allocated space
// agree with what the handler checks.
func AllocateAccount(ctx context.Context, rpc *sdkrpc.Client, payer, newAccount solana.PublicKey, dataLen uint64) (solana.Instruction, error) {
	lamports, err := rpc.GetRentExemptMinimum(ctx, dataLen)
	if err != nil {
		return nil, err
	}
	return system.NewCreateAccountInstruction(
		lamports,
		dataLen,
		constants.SolStarterProgramID,
		payer,
		newAccount,
	).Build(), nil
}
