package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"

	"github.com/solstarter/solstarter/pkg/accountbind"
)

// parsePubkey converts base58 string to PublicKey.
func parsePubkey(label, v string) (solana.PublicKey, error) {
	if v == "" {
		return solana.PublicKey{}, fmt.Errorf("%s is required", label)
	}
	pk, err := solana.PublicKeyFromBase58(v)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%s invalid pubkey: %w", label, err)
	}
	return pk, nil
}

// loadOverridesJSON reads a JSON map[string]string of base58 pubkeys from
// path and turns it into the override map accountbind.WithOverrides takes.
func loadOverridesJSON(path string) (map[string]solana.PublicKey, error) {
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read accounts json: %w", err)
	}
	return accountbind.MergeOverridesFromJSON(nil, content)
}

func fetchAccountData(ctx context.Context, deps *runtimeDeps, pk solana.PublicKey) ([]byte, error) {
	if deps == nil || deps.rpc == nil {
		return nil, fmt.Errorf("rpc client not ready")
	}
	info, err := deps.rpc.Raw().GetAccountInfo(ctx, pk)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if info == nil || info.Value == nil || info.Value.Data == nil {
		return nil, fmt.Errorf("account empty")
	}
	return info.Value.Data.GetBinary(), nil
}

func printJSON(out interface{ Write([]byte) (int, error) }, v interface{}) {
	bz, _ := json.MarshalIndent(v, "", "  ")
	out.Write(append(bz, '\n'))
}
