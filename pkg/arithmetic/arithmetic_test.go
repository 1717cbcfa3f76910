package arithmetic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solstarter/solstarter/pkg/solerrors"
)

func TestConvertToDistributedCleanDivision(t *testing.T) {
	got, err := ConvertToDistributed(5, 1, 1)
	require.NoError(t, err)
	require.EqualValues(t, 5, got)
}

func TestConvertToDistributedRoundsTowardZero(t *testing.T) {
	got, err := ConvertToDistributed(5, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 0, got)
}

func TestConvertToDistributedZeroDenominator(t *testing.T) {
	_, err := ConvertToDistributed(5, 1, 0)
	require.ErrorIs(t, err, solerrors.ErrArithmeticOverflow)
}

func TestConvertToDistributedQuotientOverflowsU64(t *testing.T) {
	_, err := ConvertToDistributed(math.MaxUint64, math.MaxUint64, 1)
	require.ErrorIs(t, err, solerrors.ErrArithmeticOverflow)
}

func TestAddGoal(t *testing.T) {
	got, err := AddGoal(10, 5)
	require.NoError(t, err)
	require.EqualValues(t, 15, got)
}

func TestAddGoalOverflow(t *testing.T) {
	_, err := AddGoal(math.MaxUint64, 1)
	require.ErrorIs(t, err, solerrors.ErrArithmeticOverflow)
}
