package interestrate

import "github.com/autara-finance/lending-core/fixedpoint"

// FixedCurve always returns the same per-second rate regardless of
// utilisation, the simplest of the three variants.
type FixedCurve struct {
	RatePerSecond fixedpoint.IFixedPoint
}
