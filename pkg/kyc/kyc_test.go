package kyc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solstarter/solstarter/pkg/codec"
)

func TestPassesMissingRecord(t *testing.T) {
	require.False(t, Passes(100, nil))
}

func TestPassesFalseFlag(t *testing.T) {
	require.False(t, Passes(100, &codec.Kyc{Passed: false}))
}

func TestPassesNoExpiry(t *testing.T) {
	require.True(t, Passes(100, &codec.Kyc{Passed: true}))
}

func TestPassesBeforeExpiry(t *testing.T) {
	rec := &codec.Kyc{Passed: true, HasExpiry: true, Expiry: 200}
	require.True(t, Passes(100, rec))
}

func TestPassesAtExpiryIsExpired(t *testing.T) {
	rec := &codec.Kyc{Passed: true, HasExpiry: true, Expiry: 200}
	require.False(t, Passes(200, rec))
}

func TestPassesAfterExpiry(t *testing.T) {
	rec := &codec.Kyc{Passed: true, HasExpiry: true, Expiry: 200}
	require.False(t, Passes(300, rec))
}
