package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/solstarter/solstarter/pkg/accountbind"
	"github.com/solstarter/solstarter/pkg/accounts"
	"github.com/solstarter/solstarter/pkg/program"
)

func newClaimCmd(opts *globalOpts) *cobra.Command {
	var (
		marketStr, poolStr, mintTargetStr string
		targetIsDistribution               bool
		overridePath                       string
		preview                            bool
	)

	cmd := &cobra.Command{
		Use:   "claim",
		Short: "claim either the Successful-sale payout or the Failed-sale refund",
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
			pool, err := parsePubkey("pool", poolStr)
			if err != nil {
				return err
			}
			mintTarget, err := parsePubkey("mint-target", mintTargetStr)
			if err != nil {
				return err
			}

			custody, err := accounts.Resolve(market, pool)
			if err != nil {
				return err
			}
			target := custody.Collection
			if targetIsDistribution {
				target = custody.Distribution
			}

			overrides, err := loadOverridesJSON(overridePath)
			if err != nil {
				return err
			}

			user := deps.signer.PublicKey()
			acc, ataInstrs, err := accountbind.BindClaim(ctx, deps.rpc, user, market, pool, user, target, mintTarget,
				accountbind.WithOverrides(overrides))
			if err != nil {
				return err
			}

			if preview {
				printJSON(cmd.OutOrStdout(), acc)
				return nil
			}

			ix := append(ataInstrs, program.BuildClaim(acc))
			sig, err := deps.builder.BuildSignSend(ctx, deps.signer, nil, ix...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tx signature: %s\n", sig.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&marketStr, "market", "", "market account pubkey")
	cmd.Flags().StringVar(&poolStr, "pool", "", "pool account pubkey")
	cmd.Flags().StringVar(&mintTargetStr, "mint-target", "", "mint of the payout: mint_distribution (Successful) or mint_collection (Failed)")
	cmd.Flags().BoolVar(&targetIsDistribution, "distribution", false, "claim against account_distribution (Successful payout) instead of account_collection (Failed refund)")
	cmd.Flags().StringVar(&overridePath, "override-json", "", "optional partial accounts override json")
	cmd.Flags().BoolVar(&preview, "preview", false, "only print derived accounts")
	for _, f := range []string{"market", "pool", "mint-target"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
