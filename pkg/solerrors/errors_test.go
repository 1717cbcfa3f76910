package solerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeOfKnownSentinel(t *testing.T) {
	require.Equal(t, CodeKycRequired, CodeOf(ErrKycRequired))
}

func TestCodeOfWrappedSentinel(t *testing.T) {
	wrapped := Wrap("Participate", "kyc_record", ErrKycRequired)
	require.Equal(t, CodeKycRequired, CodeOf(wrapped))
}

func TestCodeOfUnknownError(t *testing.T) {
	require.Zero(t, CodeOf(errors.New("not a sentinel")))
}

func TestCodeOfNil(t *testing.T) {
	require.Zero(t, CodeOf(nil))
}

func TestWrapNilIsNil(t *testing.T) {
	require.NoError(t, Wrap("InitPool", "owner", nil))
}

func TestHandlerErrorUnwrap(t *testing.T) {
	err := Wrap("Withdraw", "target", ErrInvalidClaimTarget)
	require.ErrorIs(t, err, ErrInvalidClaimTarget)
	require.Contains(t, err.Error(), "Withdraw")
	require.Contains(t, err.Error(), "target")
}

func TestHandlerErrorWithoutField(t *testing.T) {
	err := Wrap("InitPool", "", ErrAlreadyInitialized)
	require.Equal(t, "InitPool: already initialized", err.Error())
}
