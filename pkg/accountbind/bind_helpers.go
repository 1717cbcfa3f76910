package accountbind

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	solanarpc "github.com/gagliardetto/solana-go/rpc"

	"github.com/solstarter/solstarter/pkg/accounts"
	"github.com/solstarter/solstarter/pkg/codec"
	"github.com/solstarter/solstarter/pkg/constants"
	sdkrpc "github.com/solstarter/solstarter/pkg/rpc"
)

// applyPubkeyOverrides sets exported fields from a map (key: field name or
// its snake_case form), letting a caller override any one derived or
// looked-up address without touching the rest.
func applyPubkeyOverrides(target interface{}, m map[string]solana.PublicKey) {
	if len(m) == 0 {
		return
	}
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr {
		panic("target must be pointer to struct")
	}
	val = reflect.Indirect(val)
	if val.Kind() != reflect.Struct {
		panic("target must be struct")
	}
	t := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		key := pickKey(field.Name, m)
		if key == "" {
			continue
		}
		if pk, ok := m[key]; ok {
			val.Field(i).Set(reflect.ValueOf(pk))
		}
	}
}

func pickKey(name string, m map[string]solana.PublicKey) string {
	candidates := []string{name, lowerCamel(name), snake(name)}
	for _, k := range candidates {
		if _, ok := m[k]; ok {
			return k
		}
	}
	return ""
}

func lowerCamel(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func snake(name string) string {
	var parts []string
	cur := ""
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			parts = append(parts, strings.ToLower(cur))
			cur = string(r)
		} else {
			cur += string(r)
		}
	}
	if cur != "" {
		parts = append(parts, strings.ToLower(cur))
	}
	return strings.Join(parts, "_")
}

func isZeroPK(pk solana.PublicKey) bool {
	return pk == (solana.PublicKey{})
}

// ataRequest holds parameters for a single ATA ensure check.
type ataRequest struct {
	Payer        solana.PublicKey
	Wallet       solana.PublicKey
	Mint         solana.PublicKey
	TokenProgram solana.PublicKey
	ATAAddr      solana.PublicKey // derived
}

// ensureATABatchResult holds both instructions and balances from an ATA
// batch check.
type ensureATABatchResult struct {
	Instructions []solana.Instruction
	Balances     map[string]uint64 // key: ATA address string
}

// ensureATABatch checks multiple ATAs in one batch RPC call and returns
// create instructions for the ones that don't exist yet. known marks
// addresses the caller already knows exist (e.g. from a prior instruction
// in the same flow), skipping their existence check.
func ensureATABatch(ctx context.Context, rpc *sdkrpc.Client, requests []ataRequest, known []solana.PublicKey) (ensureATABatchResult, error) {
	result := ensureATABatchResult{Balances: make(map[string]uint64)}
	if len(requests) == 0 {
		return result, nil
	}

	knownSet := make(map[solana.PublicKey]bool, len(known))
	for _, k := range known {
		knownSet[k] = true
	}

	addrs := make([]solana.PublicKey, len(requests))
	for i := range requests {
		ata, _, err := findATA(requests[i].Wallet, requests[i].Mint, requests[i].TokenProgram)
		if err != nil {
			return result, err
		}
		requests[i].ATAAddr = ata
		addrs[i] = ata
	}

	amap, err := fetchAccountsBatch(ctx, rpc, addrs...)
	if err != nil {
		return result, err
	}

	for _, req := range requests {
		if knownSet[req.ATAAddr] {
			continue
		}
		acc := amap[req.ATAAddr.String()]
		if acc != nil && acc.Owner.Equals(req.TokenProgram) {
			if acc.Data != nil {
				data := acc.Data.GetBinary()
				if len(data) > 0 {
					dec := bin.NewBinDecoder(data)
					var tokAcc token.Account
					if err := dec.Decode(&tokAcc); err == nil {
						result.Balances[req.ATAAddr.String()] = tokAcc.Amount
					}
				}
			}
			continue
		}
		result.Balances[req.ATAAddr.String()] = 0
		metas := []*solana.AccountMeta{
			solana.NewAccountMeta(req.Payer, true, true),
			solana.NewAccountMeta(req.ATAAddr, true, false),
			solana.NewAccountMeta(req.Wallet, false, false),
			solana.NewAccountMeta(req.Mint, false, false),
			solana.NewAccountMeta(constants.SystemProgramID, false, false),
			solana.NewAccountMeta(req.TokenProgram, false, false),
		}
		result.Instructions = append(result.Instructions, solana.NewInstruction(constants.AssociatedTokenProgramID, metas, nil))
	}
	return result, nil
}

func findATA(wallet, mint, tokenProgram solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		wallet[:],
		tokenProgram[:],
		mint[:],
	}, constants.AssociatedTokenProgramID)
}

// fetchAccountsBatch pulls multiple accounts in one RPC call.
func fetchAccountsBatch(ctx context.Context, rpc *sdkrpc.Client, addrs ...solana.PublicKey) (map[string]*solanarpc.Account, error) {
	if len(addrs) == 0 {
		return map[string]*solanarpc.Account{}, nil
	}
	keys := make([]string, 0, len(addrs))
	for _, a := range addrs {
		keys = append(keys, a.String())
	}
	res, err := rpc.Raw().GetMultipleAccountsWithOpts(ctx, addrs, &solanarpc.GetMultipleAccountsOpts{
		Commitment: solanarpc.CommitmentConfirmed,
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string]*solanarpc.Account, len(addrs))
	for i, v := range res.Value {
		if v == nil {
			continue
		}
		out[keys[i]] = v
	}
	return out, nil
}

// fetchPool reads and decodes a pool account, returning an error that
// names the account if it isn't a valid Pool record yet.
func fetchPool(ctx context.Context, rpc *sdkrpc.Client, pool solana.PublicKey) (*codec.Pool, error) {
	amap, err := fetchAccountsBatch(ctx, rpc, pool)
	if err != nil {
		return nil, err
	}
	acc := amap[pool.String()]
	if acc == nil || acc.Data == nil {
		return nil, fmt.Errorf("accountbind: pool %s not found", pool)
	}
	p := &codec.Pool{}
	if err := p.Unmarshal(acc.Data.GetBinary()); err != nil {
		return nil, fmt.Errorf("accountbind: pool %s: %w", pool, err)
	}
	return p, nil
}

// resolveOptions folds functional options into one Options value; the
// preview dump is written separately by writePreview.
func resolveOptions(opts []Option) Options {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func writePreview(o Options, label string, target interface{}) {
	if o.Preview == nil {
		return
	}
	fmt.Fprintf(o.Preview, "%s:\n", label)
	val := reflect.Indirect(reflect.ValueOf(target))
	t := val.Type()
	for i := 0; i < val.NumField(); i++ {
		fmt.Fprintf(o.Preview, "  %-24s %s\n", t.Field(i).Name, val.Field(i).Interface())
	}
}

func custodyFor(market, pool solana.PublicKey, o Options) (accounts.Custody, error) {
	c, err := accounts.Resolve(market, pool)
	if err != nil {
		return accounts.Custody{}, err
	}
	applyPubkeyOverrides(&c, o.Overrides)
	return c, nil
}
