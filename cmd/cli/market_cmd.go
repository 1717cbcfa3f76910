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
	"github.com/solstarter/solstarter/pkg/wallet"
)

func newMarketCmd(opts *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "manage SolStarter market accounts",
	}
	cmd.AddCommand(newMarketInitCmd(opts), newMarketInfoCmd(opts))
	return cmd
}

func newMarketInitCmd(opts *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "allocate and initialize a new market account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
			defer cancel()

			deps, err := newBuilder(cmd, opts)
			if err != nil {
				return err
			}
			owner := deps.signer.PublicKey()

			marketKey := solana.NewWallet().PrivateKey
			marketSigner := wallet.NewLocalFromPrivateKey(marketKey)
			market := marketKey.PublicKey()

			zeroMarket, err := (&codec.Market{}).Marshal()
			if err != nil {
				return fmt.Errorf("size market record: %w", err)
			}
			allocIx, err := accountbind.AllocateAccount(ctx, deps.rpc, owner, market, uint64(len(zeroMarket)))
			if err != nil {
				return fmt.Errorf("allocate market account: %w", err)
			}

			acc := accountbind.BindInitMarket(market, owner)
			initIx := program.BuildInitMarket(acc)

			sig, err := deps.builder.BuildSignSend(ctx, deps.signer, []wallet.Signer{marketSigner}, allocIx, initIx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "market %s created, tx signature: %s\n", market, sig.String())
			return nil
		},
	}
	return cmd
}

func newMarketInfoCmd(opts *globalOpts) *cobra.Command {
	var marketStr string
	cmd := &cobra.Command{
		Use:   "info",
		Short: "fetch and decode a market account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			deps, err := newBuilder(cmd, opts)
			if err != nil {
				return err
			}
			market, err := parsePubkey("market", marketStr)
			if err != nil {
				return err
			}
			data, err := fetchAccountData(ctx, deps, market)
			if err != nil {
				return err
			}
			m := &codec.Market{}
			if err := m.Unmarshal(data); err != nil {
				return fmt.Errorf("decode market: %w", err)
			}
			printJSON(cmd.OutOrStdout(), m)
			return nil
		},
	}
	cmd.Flags().StringVar(&marketStr, "market", "", "market account pubkey")
	_ = cmd.MarkFlagRequired("market")
	return cmd
}
