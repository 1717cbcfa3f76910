package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/solstarter/solstarter/pkg/accountbind"
	"github.com/solstarter/solstarter/pkg/program"
)

func newKycCmd(opts *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kyc",
		Short: "set or clear a user's KYC record for a market",
	}
	cmd.AddCommand(newKycSetCmd(opts), newKycClearCmd(opts))
	return cmd
}

func newKycSetCmd(opts *globalOpts) *cobra.Command {
	var marketStr, userStr string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "mark a user as having passed KYC",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKyc(cmd, opts, marketStr, userStr, true)
		},
	}
	cmd.Flags().StringVar(&marketStr, "market", "", "market account pubkey")
	cmd.Flags().StringVar(&userStr, "user", "", "user pubkey")
	_ = cmd.MarkFlagRequired("market")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newKycClearCmd(opts *globalOpts) *cobra.Command {
	var marketStr, userStr string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "revoke a user's KYC pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKyc(cmd, opts, marketStr, userStr, false)
		},
	}
	cmd.Flags().StringVar(&marketStr, "market", "", "market account pubkey")
	cmd.Flags().StringVar(&userStr, "user", "", "user pubkey")
	_ = cmd.MarkFlagRequired("market")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func runKyc(cmd *cobra.Command, opts *globalOpts, marketStr, userStr string, set bool) error {
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
	user, err := parsePubkey("user", userStr)
	if err != nil {
		return err
	}

	var acc program.KycAccounts
	owner := deps.signer.PublicKey()
	if set {
		acc, err = accountbind.BindSetKyc(market, owner, user)
	} else {
		acc, err = accountbind.BindClearKyc(market, owner, user)
	}
	if err != nil {
		return err
	}

	var instruction = program.BuildSetKyc(acc)
	if !set {
		instruction = program.BuildClearKyc(acc)
	}

	sig, err := deps.builder.BuildSignSend(ctx, deps.signer, nil, instruction)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "tx signature: %s\n", sig.String())
	return nil
}
