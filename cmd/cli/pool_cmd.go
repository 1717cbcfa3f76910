package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/solstarter/solstarter/pkg/accountbind"
	"github.com/solstarter/solstarter/pkg/codec"
	"github.com/solstarter/solstarter/pkg/program"
	"github.com/solstarter/solstarter/pkg/state"
	"github.com/solstarter/solstarter/pkg/wallet"
)

func newPoolCmd(opts *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "manage SolStarter pool accounts",
	}
	cmd.AddCommand(newPoolInitCmd(opts), newPoolInfoCmd(opts))
	return cmd
}

func newPoolInitCmd(opts *globalOpts) *cobra.Command {
	var (
		marketStr                              string
		mintCollectionStr, mintDistributionStr string
		overridePath                           string
		priceNum, priceDen                     uint64
		goalMin, goalMax, amountMin, amountMax uint64
		timeStart, timeFinish                  int64
		isWhitelist, isKyc, preview            bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "initialize a new pool under a market",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
			defer cancel()

			deps, err := newBuilder(cmd, opts)
			if err != nil {
				return err
			}
			market, err := parsePubkey("market", marketStr)
			if err != nil {
				return err
			}
			mintCollection, err := parsePubkey("mint-collection", mintCollectionStr)
			if err != nil {
				return err
			}
			mintDistribution, err := parsePubkey("mint-distribution", mintDistributionStr)
			if err != nil {
				return err
			}

			overrides, err := loadOverridesJSON(overridePath)
			if err != nil {
				return err
			}

			owner := deps.signer.PublicKey()
			poolKey := solana.NewWallet().PrivateKey
			poolSigner := wallet.NewLocalFromPrivateKey(poolKey)
			pool := poolKey.PublicKey()

			acc, err := accountbind.BindInitPool(market, pool, owner, mintCollection, mintDistribution,
				accountbind.WithOverrides(overrides))
			if err != nil {
				return err
			}

			params := program.InitPoolParams{
				PriceNumerator:   priceNum,
				PriceDenominator: priceDen,
				GoalMin:          goalMin,
				GoalMax:          goalMax,
				AmountMin:        amountMin,
				AmountMax:        amountMax,
				TimeStart:        timeStart,
				TimeFinish:       timeFinish,
				IsWhitelist:      isWhitelist,
				IsKyc:            isKyc,
			}

			if preview {
				printJSON(cmd.OutOrStdout(), struct {
					Pool     solana.PublicKey `json:"pool"`
					Accounts interface{}      `json:"accounts"`
					Params   interface{}      `json:"params"`
				}{pool, acc, params})
				return nil
			}

			zeroPool, err := (&codec.Pool{}).Marshal()
			if err != nil {
				return fmt.Errorf("size pool record: %w", err)
			}
			allocIx, err := accountbind.AllocateAccount(ctx, deps.rpc, owner, pool, uint64(len(zeroPool)))
			if err != nil {
				return fmt.Errorf("allocate pool account: %w", err)
			}

			initIx := program.BuildInitPool(acc, params)
			sig, err := deps.builder.BuildSignSend(ctx, deps.signer, []wallet.Signer{poolSigner}, allocIx, initIx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pool %s created, tx signature: %s\n", pool, sig.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&marketStr, "market", "", "market account pubkey")
	cmd.Flags().StringVar(&mintCollectionStr, "mint-collection", "", "mint of the token participants pay in")
	cmd.Flags().StringVar(&mintDistributionStr, "mint-distribution", "", "mint of the token sold by the pool")
	cmd.Flags().StringVar(&overridePath, "override-json", "", "optional partial accounts override json")
	cmd.Flags().Uint64Var(&priceNum, "price-numerator", 1, "price numerator")
	cmd.Flags().Uint64Var(&priceDen, "price-denominator", 1, "price denominator")
	cmd.Flags().Uint64Var(&goalMin, "goal-min", 0, "minimum collected total for success")
	cmd.Flags().Uint64Var(&goalMax, "goal-max", 0, "maximum collected total (sell-out threshold)")
	cmd.Flags().Uint64Var(&amountMin, "amount-min", 1, "minimum per-participation amount")
	cmd.Flags().Uint64Var(&amountMax, "amount-max", 0, "maximum per-participation amount")
	cmd.Flags().Int64Var(&timeStart, "time-start", 0, "unix timestamp the pool opens")
	cmd.Flags().Int64Var(&timeFinish, "time-finish", 0, "unix timestamp the pool closes")
	cmd.Flags().BoolVar(&isWhitelist, "whitelist", false, "gate participation on a whitelist mint")
	cmd.Flags().BoolVar(&isKyc, "kyc", false, "gate participation on a passed KYC record")
	cmd.Flags().BoolVar(&preview, "preview", false, "only print derived accounts and params")
	for _, f := range []string{"market", "mint-collection", "mint-distribution", "goal-max", "amount-max", "time-start", "time-finish"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newPoolInfoCmd(opts *globalOpts) *cobra.Command {
	var poolStr string
	cmd := &cobra.Command{
		Use:   "info",
		Short: "fetch and decode a pool account, including its current phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			deps, err := newBuilder(cmd, opts)
			if err != nil {
				return err
			}
			pool, err := parsePubkey("pool", poolStr)
			if err != nil {
				return err
			}
			data, err := fetchAccountData(ctx, deps, pool)
			if err != nil {
				return err
			}
			p := &codec.Pool{}
			if err := p.Unmarshal(data); err != nil {
				return fmt.Errorf("decode pool: %w", err)
			}
			now := time.Now().Unix()
			phase := state.Resolve(now, p)
			printJSON(cmd.OutOrStdout(), struct {
				Pool  *codec.Pool `json:"pool"`
				Phase string      `json:"phase"`
			}{p, phase.String()})
			return nil
		},
	}
	cmd.Flags().StringVar(&poolStr, "pool", "", "pool account pubkey")
	_ = cmd.MarkFlagRequired("pool")
	return cmd
}
