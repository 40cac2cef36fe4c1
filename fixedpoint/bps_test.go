package fixedpoint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBpsToFixedPoint(t *testing.T) {
	half, err := BpsToFixedPoint(5_000)
	require.NoError(t, err)
	require.Equal(t, "0.5", half.String())
}

func TestFixedPointToBps(t *testing.T) {
	half := ULit("0.5")
	bps, err := FixedPointToBps(half, RoundDown)
	require.NoError(t, err)
	require.Equal(t, uint64(5_000), bps)
}

func TestValidateBps(t *testing.T) {
	require.NoError(t, ValidateBps(10_000))
	require.Error(t, ValidateBps(10_001))
}

func TestPercentToBps(t *testing.T) {
	require.Equal(t, uint64(8_000), PercentToBps(80))
}
