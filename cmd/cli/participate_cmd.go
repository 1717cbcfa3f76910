package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/solstarter/solstarter/pkg/accountbind"
	"github.com/solstarter/solstarter/pkg/program"
)

func newParticipateCmd(opts *globalOpts) *cobra.Command {
	var (
		marketStr, poolStr string
		overridePath       string
		amount             uint64
		preview            bool
	)

	cmd := &cobra.Command{
		Use:   "participate",
		Short: "participate in a pool's sale",
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

			overrides, err := loadOverridesJSON(overridePath)
			if err != nil {
				return err
			}

			user := deps.signer.PublicKey()
			acc, ataInstrs, err := accountbind.BindParticipate(ctx, deps.rpc, user, market, pool, user,
				accountbind.WithOverrides(overrides))
			if err != nil {
				return err
			}

			if preview {
				printJSON(cmd.OutOrStdout(), acc)
				return nil
			}

			ix := append(ataInstrs, program.BuildParticipate(acc, program.ParticipateParams{Amount: amount}))
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
	cmd.Flags().Uint64Var(&amount, "amount", 0, "collected-token amount to contribute")
	cmd.Flags().StringVar(&overridePath, "override-json", "", "optional partial accounts override json")
	cmd.Flags().BoolVar(&preview, "preview", false, "only print derived accounts")
	for _, f := range []string{"market", "pool", "amount"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
