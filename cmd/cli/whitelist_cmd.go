package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/solstarter/solstarter/pkg/accountbind"
	"github.com/solstarter/solstarter/pkg/program"
)

func newWhitelistCmd(opts *globalOpts) *cobra.Command {
	var (
		marketStr, poolStr, userStr string
		overridePath                string
		preview                     bool
	)

	cmd := &cobra.Command{
		Use:   "whitelist",
		Short: "mint a pool's whitelist token to a user",
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
			user, err := parsePubkey("user", userStr)
			if err != nil {
				return err
			}

			overrides, err := loadOverridesJSON(overridePath)
			if err != nil {
				return err
			}

			acc, ataInstrs, err := accountbind.BindAddToWhitelist(ctx, deps.rpc, market, pool, deps.signer.PublicKey(), user,
				accountbind.WithOverrides(overrides))
			if err != nil {
				return err
			}

			if preview {
				printJSON(cmd.OutOrStdout(), acc)
				return nil
			}

			ix := append(ataInstrs, program.BuildAddToWhitelist(acc))
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
	cmd.Flags().StringVar(&userStr, "user", "", "user pubkey to whitelist")
	cmd.Flags().StringVar(&overridePath, "override-json", "", "optional partial accounts override json")
	cmd.Flags().BoolVar(&preview, "preview", false, "only print derived accounts")
	for _, f := range []string{"market", "pool", "user"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
