package program

import (
	"context"

	"github.com/solstarter/solstarter/pkg/accounts"
	"github.com/solstarter/solstarter/pkg/codec"
	"github.com/solstarter/solstarter/pkg/solerrors"
)

// SetKyc marks (market, user) as KYC-passed with no expiry. Carries no
// trailing instruction bytes (spec.md §6). Neither SetKyc nor ClearKyc
// writes an expiry, so a record written here never expires.
func SetKyc(ctx context.Context, deps Deps, acc KycAccounts) error {
	return writeKyc(ctx, deps, acc, true)
}

// ClearKyc marks (market, user) as not KYC-passed.
func ClearKyc(ctx context.Context, deps Deps, acc KycAccounts) error {
	return writeKyc(ctx, deps, acc, false)
}

func writeKyc(ctx context.Context, deps Deps, acc KycAccounts, passed bool) error {
	handler := "SetKyc"
	if !passed {
		handler = "ClearKyc"
	}

	if !deps.Store.IsSigner(acc.Owner) {
		return solerrors.Wrap(handler, "owner", solerrors.ErrMissingSignature)
	}
	if err := verifyMarket(ctx, deps, acc.Market, acc.Owner); err != nil {
		return solerrors.Wrap(handler, "market", err)
	}

	expected, err := accounts.KycAddress(acc.Market, acc.User)
	if err != nil {
		return solerrors.Wrap(handler, "kyc", err)
	}
	if err := accounts.Verify(expected, acc.KycRecord); err != nil {
		return solerrors.Wrap(handler, "kyc", err)
	}

	rec := &codec.Kyc{
		Market: acc.Market,
		User:   acc.User,
		Passed: passed,
	}
	encoded, err := rec.Marshal()
	if err != nil {
		return solerrors.Wrap(handler, "kyc", err)
	}
	if err := deps.Store.Write(ctx, acc.KycRecord, encoded); err != nil {
		return solerrors.Wrap(handler, "kyc", err)
	}
	return nil
}
