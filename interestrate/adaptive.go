package interestrate

import (
	"errors"

	"github.com/autara-finance/lending-core/fixedpoint"
	"github.com/autara-finance/lending-core/lendingerr"
)

// AdaptiveConfig seeds an AdaptiveCurve. TargetUtilisation is the
// utilisation the curve steers toward; AdjustmentSpeed is the k factor
// scaling how fast the rate reacts per second of sustained deviation;
// MinRatePerSecond/MaxRatePerSecond bound the stored rate.
type AdaptiveConfig struct {
	InitialRatePerSecond fixedpoint.IFixedPoint
	TargetUtilisation    fixedpoint.UFixedPoint
	AdjustmentSpeed      fixedpoint.IFixedPoint
	MinRatePerSecond     fixedpoint.IFixedPoint
	MaxRatePerSecond     fixedpoint.IFixedPoint
}

// AdaptiveCurve keeps a current borrow rate that walks toward whatever
// level holds utilisation near its target, with the exponential response
// approximated by a bounded polynomial so the computation stays in
// fixed-point arithmetic.
type AdaptiveCurve struct {
	CurrentRatePerSecond fixedpoint.IFixedPoint
	TargetUtilisation    fixedpoint.UFixedPoint
	AdjustmentSpeed      fixedpoint.IFixedPoint
	MinRatePerSecond     fixedpoint.IFixedPoint
	MaxRatePerSecond     fixedpoint.IFixedPoint
}

func newAdaptiveCurve(cfg AdaptiveConfig) (AdaptiveCurve, error) {
	if cfg.MinRatePerSecond.Cmp(cfg.MaxRatePerSecond) > 0 {
		return AdaptiveCurve{}, lendingerr.New(lendingerr.CodeInvalidFixedPoint, "adaptive curve min rate exceeds max rate")
	}
	if cfg.InitialRatePerSecond.IsNegative() {
		return AdaptiveCurve{}, lendingerr.New(lendingerr.CodeInvalidFixedPoint, "adaptive curve initial rate is negative")
	}
	return AdaptiveCurve{
		CurrentRatePerSecond: cfg.InitialRatePerSecond,
		TargetUtilisation:    cfg.TargetUtilisation,
		AdjustmentSpeed:      cfg.AdjustmentSpeed,
		MinRatePerSecond:     cfg.MinRatePerSecond,
		MaxRatePerSecond:     cfg.MaxRatePerSecond,
	}, nil
}

// taylorTerms bounds the polynomial expansion of exp(x) so a large
// elapsed-time gap can never spin the loop unboundedly; four terms keeps
// the approximation within the clamp range error for the deviations this
// curve is configured for.
const taylorTerms = 4

// Advance multiplies the stored rate by an approximation of
// exp(adjustmentSpeed * (utilisation - target) * elapsedSeconds), clamps to
// [min, max], persists, and returns the new rate. Convergence: utilisation
// held strictly above target drives the rate strictly upward over
// successive calls; strictly below target drives it strictly downward.
func (c *AdaptiveCurve) Advance(params Params) (fixedpoint.IFixedPoint, error) {
	utilisation, err := signedFromUnsigned(params.UtilisationRate)
	if err != nil {
		return fixedpoint.IFixedPoint{}, err
	}
	target, err := signedFromUnsigned(c.TargetUtilisation)
	if err != nil {
		return fixedpoint.IFixedPoint{}, err
	}

	deviation, err := utilisation.Sub(target)
	if err != nil {
		return fixedpoint.IFixedPoint{}, err
	}
	exponent, err := deviation.Mul(c.AdjustmentSpeed, fixedpoint.RoundDown)
	if err != nil {
		return fixedpoint.IFixedPoint{}, err
	}
	exponent, err = exponent.Mul(fixedpoint.FromU64(params.ElapsedSeconds), fixedpoint.RoundDown)
	if err != nil {
		return fixedpoint.IFixedPoint{}, err
	}

	var next fixedpoint.IFixedPoint
	factor, err := expApprox(exponent)
	if err == nil {
		next, err = c.CurrentRatePerSecond.Mul(factor, fixedpoint.RoundDown)
	}
	if errors.Is(err, lendingerr.ErrMathOverflow) {
		// The unclamped rate is past the representable range: saturate
		// toward the bound the deviation points at, then clamp below.
		next, err = c.MaxRatePerSecond, nil
		if exponent.IsNegative() || c.CurrentRatePerSecond.IsZero() {
			next = fixedpoint.Zero()
		}
	}
	if err != nil {
		return fixedpoint.IFixedPoint{}, err
	}
	if next.Cmp(c.MinRatePerSecond) < 0 {
		next = c.MinRatePerSecond
	}
	if next.Cmp(c.MaxRatePerSecond) > 0 {
		next = c.MaxRatePerSecond
	}
	c.CurrentRatePerSecond = next
	return next, nil
}

// expApprox approximates exp(x) with a truncated Taylor series,
// 1 + x + x^2/2! + x^3/3! + ..., for x >= 0, and as 1/exp(-x) for x < 0,
// so the result is positive and monotone increasing in x.
func expApprox(x fixedpoint.IFixedPoint) (fixedpoint.IFixedPoint, error) {
	if x.IsNegative() {
		inverse, err := expApprox(x.Neg())
		if err != nil {
			return fixedpoint.IFixedPoint{}, err
		}
		return fixedpoint.One().Div(inverse, fixedpoint.RoundDown)
	}
	sum := fixedpoint.One()
	term := fixedpoint.One()
	for n := int64(1); n <= taylorTerms; n++ {
		var err error
		term, err = term.Mul(x, fixedpoint.RoundDown)
		if err != nil {
			return fixedpoint.IFixedPoint{}, err
		}
		term, err = term.Div(fixedpoint.FromI64(n), fixedpoint.RoundDown)
		if err != nil {
			return fixedpoint.IFixedPoint{}, err
		}
		sum, err = sum.Add(term)
		if err != nil {
			return fixedpoint.IFixedPoint{}, err
		}
	}
	if sum.IsNegative() {
		return fixedpoint.Zero(), nil
	}
	return sum, nil
}

// signedFromUnsigned lifts a [0,1]-ranged UFixedPoint into the signed
// domain so it can be subtracted against another such value; it goes
// through the decimal string to preserve the fractional part that a plain
// integer cast would truncate.
func signedFromUnsigned(u fixedpoint.UFixedPoint) (fixedpoint.IFixedPoint, error) {
	return fixedpoint.TryLit(u.String())
}
