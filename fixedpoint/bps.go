package fixedpoint

import "github.com/autara-finance/lending-core/lendingerr"

// BpsDenominator is the basis-point scale: 10_000 bps == 100%.
const BpsDenominator uint64 = 10_000

// BpsToFixedPoint converts a basis-point value (e.g. 8_000 for 80%) to its
// UFixedPoint fraction.
func BpsToFixedPoint(bps uint64) (UFixedPoint, error) {
	return UFromRatio(bps, BpsDenominator, RoundDown)
}

// FixedPointToBps converts a fraction back to whole basis points,
// rounding per the supplied mode. Used when persisting a computed ratio
// (e.g. a curator fee share) back into a bps-denominated config field.
func FixedPointToBps(v UFixedPoint, rounding Rounding) (uint64, error) {
	scaled, err := v.MulU64(BpsDenominator, rounding)
	if err != nil {
		return 0, err
	}
	if rounding == RoundUp {
		return scaled.AsU64RoundedUp()
	}
	return scaled.AsU64RoundedDown()
}

// PercentToBps converts a whole percentage (e.g. 80) to basis points.
func PercentToBps(percent uint64) uint64 {
	return percent * 100
}

// ValidateBps errors if bps exceeds the 100% denominator, the shared check
// every LTV, liquidation-bonus, and fee-share config field needs.
func ValidateBps(bps uint64) error {
	if bps > BpsDenominator {
		return lendingerr.New(lendingerr.CodeInvalidFeeConfig, "bps value %d exceeds denominator %d", bps, BpsDenominator)
	}
	return nil
}
