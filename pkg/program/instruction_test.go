package program

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitPoolParamsRoundTrip(t *testing.T) {
	want := InitPoolParams{
		PriceNumerator: 1, PriceDenominator: 10,
		GoalMin: 10, GoalMax: 50,
		AmountMin: 1, AmountMax: 5,
		TimeStart: 1000, TimeFinish: 2000,
		IsWhitelist: true, IsKyc: false,
	}
	encoded := EncodeInitPoolParams(want)
	require.Len(t, encoded, initPoolParamsLen)

	got, err := DecodeInitPoolParams(encoded)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestInitPoolParamsWrongLength(t *testing.T) {
	_, err := DecodeInitPoolParams([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestParticipateParamsRoundTrip(t *testing.T) {
	want := ParticipateParams{Amount: 12345}
	encoded := EncodeParticipateParams(want)
	require.Len(t, encoded, participateParamsLen)

	got, err := DecodeParticipateParams(encoded)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestSplitTag(t *testing.T) {
	tag, rest, err := SplitTag([]byte{byte(TagParticipate), 1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, TagParticipate, tag)
	require.Equal(t, []byte{1, 2, 3}, rest)

	_, _, err = SplitTag(nil)
	require.Error(t, err)
}
