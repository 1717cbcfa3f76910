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

func newWithdrawCmd(opts *globalOpts) *cobra.Command {
	var (
		marketStr, poolStr, mintTargetStr string
		targetIsDistribution               bool
		overridePath                       string
		preview                            bool
	)

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "withdraw the owner's share of a terminal pool's custody accounts",
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

			owner := deps.signer.PublicKey()
			acc, ataInstrs, err := accountbind.BindWithdraw(ctx, deps.rpc, market, pool, owner, target, mintTarget,
				accountbind.WithOverrides(overrides))
			if err != nil {
				return err
			}

			if preview {
				printJSON(cmd.OutOrStdout(), acc)
				return nil
			}

			ix := append(ataInstrs, program.BuildWithdraw(acc))
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
	cmd.Flags().StringVar(&mintTargetStr, "mint-target", "", "mint of the custody account being withdrawn")
	cmd.Flags().BoolVar(&targetIsDistribution, "distribution", false, "withdraw account_distribution instead of account_collection")
	cmd.Flags().StringVar(&overridePath, "override-json", "", "optional partial accounts override json")
	cmd.Flags().BoolVar(&preview, "preview", false, "only print derived accounts")
	for _, f := range []string{"market", "pool", "mint-target"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
