package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solstarter/solstarter/pkg/codec"
)

func basePool() *codec.Pool {
	return &codec.Pool{
		GoalMin:        10,
		GoalMax:        50,
		TimeStart:      1000,
		TimeFinish:     2000,
		CollectedTotal: 0,
	}
}

func TestResolvePreparing(t *testing.T) {
	p := basePool()
	require.Equal(t, Preparing, Resolve(500, p))
}

func TestResolveActive(t *testing.T) {
	p := basePool()
	p.CollectedTotal = 10
	require.Equal(t, Active, Resolve(1500, p))
}

func TestResolveSoldOutTieBreak(t *testing.T) {
	p := basePool()
	p.CollectedTotal = p.GoalMax
	require.Equal(t, SoldOut, Resolve(1500, p))
}

func TestResolveSuccessful(t *testing.T) {
	p := basePool()
	p.CollectedTotal = 20
	require.Equal(t, Successful, Resolve(2001, p))
}

func TestResolveFailed(t *testing.T) {
	p := basePool()
	p.CollectedTotal = 5
	require.Equal(t, Failed, Resolve(2001, p))
}

func TestResolveFailedAtExactFinish(t *testing.T) {
	p := basePool()
	p.CollectedTotal = 5
	require.Equal(t, Failed, Resolve(p.TimeFinish, p))
}

func TestAdmitsTable(t *testing.T) {
	require.True(t, Admits(Preparing, TagAddToWhitelist))
	require.False(t, Admits(Active, TagAddToWhitelist))

	require.True(t, Admits(Active, TagParticipate))
	require.False(t, Admits(Preparing, TagParticipate))
	require.False(t, Admits(SoldOut, TagParticipate))

	require.True(t, Admits(Successful, TagClaim))
	require.True(t, Admits(Failed, TagClaim))
	require.False(t, Admits(SoldOut, TagClaim))

	require.True(t, Admits(Successful, TagWithdraw))
	require.True(t, Admits(Failed, TagWithdraw))

	require.False(t, Admits(SoldOut, TagAddToWhitelist))
}

func TestPhaseString(t *testing.T) {
	require.Equal(t, "sold-out", SoldOut.String())
	require.Equal(t, "active", Active.String())
}
