// Package txbuilder assembles, signs, and submits transactions carrying
// SolStarter instructions. It has no knowledge of instruction semantics —
// that lives in pkg/program — it only knows how to turn a list of
// solana.Instruction values into a signed, sent, confirmed transaction.
package txbuilder

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"

	wraprpc "github.com/solstarter/solstarter/pkg/rpc"
	"github.com/solstarter/solstarter/pkg/wallet"
)

// ConfirmationLevel represents transaction confirmation depth.
type ConfirmationLevel string

const (
	ConfirmationProcessed ConfirmationLevel = "processed"
	ConfirmationConfirmed ConfirmationLevel = "confirmed"
	ConfirmationFinalized ConfirmationLevel = "finalized"
)

// Builder ties together RPC, fee payer, and signing.
type Builder struct {
	client        *wraprpc.Client
	commitment    solanarpc.CommitmentType
	skipPreflight bool
}

// NewBuilder constructs a builder with the provided client and commitment.
func NewBuilder(client *wraprpc.Client, commitment solanarpc.CommitmentType) *Builder {
	if commitment == "" {
		commitment = solanarpc.CommitmentConfirmed
	}
	return &Builder{client: client, commitment: commitment}
}

// WithSkipPreflight configures whether to skip preflight.
func (b *Builder) WithSkipPreflight(skip bool) *Builder {
	b.skipPreflight = skip
	return b
}

// BuildTransaction builds a transaction with fresh blockhash.
func (b *Builder) BuildTransaction(ctx context.Context, feePayer solana.PublicKey, instructions ...solana.Instruction) (*solana.Transaction, error) {
	if b.client == nil {
		return nil, fmt.Errorf("rpc client is nil")
	}
	if len(instructions) == 0 {
		return nil, fmt.Errorf("requires at least one instruction")
	}

	latest, err := b.client.GetLatestBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("get latest blockhash: %w", err)
	}

	builder := solana.NewTransactionBuilder().
		SetRecentBlockHash(latest.Value.Blockhash).
		SetFeePayer(feePayer)

	for _, ix := range instructions {
		builder.AddInstruction(ix)
	}

	tx, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build transaction: %w", err)
	}
	return tx, nil
}

// SignTransaction signs using the provided signers in account-key order.
func SignTransaction(ctx context.Context, tx *solana.Transaction, signers ...wallet.Signer) error {
	if tx == nil {
		return fmt.Errorf("transaction is nil")
	}
	required := int(tx.Message.Header.NumRequiredSignatures)
	if required == 0 {
		return nil
	}
	if len(tx.Message.AccountKeys) < required {
		return fmt.Errorf("not enough account keys for required signatures")
	}

	signerMap := make(map[string]wallet.Signer, len(signers))
	for _, s := range signers {
		signerMap[s.PublicKey().String()] = s
	}

	messageBytes, err := tx.Message.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	tx.Signatures = make([]solana.Signature, required)
	for i := 0; i < required; i++ {
		pk := tx.Message.AccountKeys[i]
		signer, ok := signerMap[pk.String()]
		if !ok {
			return fmt.Errorf("missing signer for %s", pk.String())
		}
		sig, err := signer.SignMessage(ctx, messageBytes)
		if err != nil {
			return fmt.Errorf("sign message for %s: %w", pk.String(), err)
		}
		tx.Signatures[i] = sig
	}
	return nil
}

// Send sends a signed transaction via standard RPC.
func (b *Builder) Send(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	if b.client == nil {
		return solana.Signature{}, fmt.Errorf("rpc client is nil")
	}
	opts := solanarpc.TransactionOpts{
		SkipPreflight:       b.skipPreflight,
		PreflightCommitment: b.commitment,
	}
	sig, err := b.client.SendTransaction(ctx, tx, opts)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("send transaction: %w", err)
	}
	return sig, nil
}

// BuildSignSend builds, signs, and sends a transaction.
func (b *Builder) BuildSignSend(ctx context.Context, feePayer wallet.Signer, signers []wallet.Signer, instructions ...solana.Instruction) (solana.Signature, error) {
	if feePayer == nil {
		return solana.Signature{}, fmt.Errorf("fee payer is required")
	}
	tx, err := b.BuildTransaction(ctx, feePayer.PublicKey(), instructions...)
	if err != nil {
		return solana.Signature{}, err
	}
	allSigners := append([]wallet.Signer{feePayer}, signers...)
	if err := SignTransaction(ctx, tx, allSigners...); err != nil {
		return solana.Signature{}, err
	}
	return b.Send(ctx, tx)
}

// SendAndConfirm sends a signed transaction and waits for confirmation.
func (b *Builder) SendAndConfirm(ctx context.Context, tx *solana.Transaction, level ConfirmationLevel) (solana.Signature, error) {
	sig, err := b.Send(ctx, tx)
	if err != nil {
		return solana.Signature{}, err
	}
	if err = b.WaitForConfirmation(ctx, sig, level); err != nil {
		return sig, fmt.Errorf("confirmation failed: %w, sig: %v", err, sig)
	}
	return sig, nil
}

// BuildSignSendAndConfirm builds, signs, sends, and waits for confirmation.
func (b *Builder) BuildSignSendAndConfirm(ctx context.Context, feePayer wallet.Signer, signers []wallet.Signer, level ConfirmationLevel, instructions ...solana.Instruction) (solana.Signature, error) {
	if feePayer == nil {
		return solana.Signature{}, fmt.Errorf("fee payer is required")
	}
	tx, err := b.BuildTransaction(ctx, feePayer.PublicKey(), instructions...)
	if err != nil {
		return solana.Signature{}, err
	}
	allSigners := append([]wallet.Signer{feePayer}, signers...)
	if err = SignTransaction(ctx, tx, allSigners...); err != nil {
		return solana.Signature{}, err
	}
	return b.SendAndConfirm(ctx, tx, level)
}

// WaitForConfirmation polls transaction status until confirmed or timeout.
func (b *Builder) WaitForConfirmation(ctx context.Context, sig solana.Signature, level ConfirmationLevel) error {
	if b.client == nil {
		return fmt.Errorf("rpc client is nil")
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			resp, err := b.client.Raw().GetSignatureStatuses(ctx, true, sig)
			if err != nil {
				continue // retry on transient errors
			}
			if resp == nil || len(resp.Value) == 0 || resp.Value[0] == nil {
				continue // not yet visible
			}
			status := resp.Value[0]
			if status.Err != nil {
				return fmt.Errorf("transaction failed: %v", status.Err)
			}
			switch level {
			case ConfirmationProcessed:
				return nil // any status means processed
			case ConfirmationConfirmed:
				if status.ConfirmationStatus == solanarpc.ConfirmationStatusConfirmed ||
					status.ConfirmationStatus == solanarpc.ConfirmationStatusFinalized {
					return nil
				}
			case ConfirmationFinalized:
				if status.ConfirmationStatus == solanarpc.ConfirmationStatusFinalized {
					return nil
				}
			default:
				return nil
			}
		}
	}
}
