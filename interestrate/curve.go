// Package interestrate implements the three borrow-rate curve variants a
// market can be configured with. Each generalises the teacher's kinked
// InterestModel (native/lending/interest.go), which derives a single borrow
// APR from a base rate and two slopes either side of a kink utilisation,
// into fixed-point-scalar curves keyed off utilisation rather than the
// teacher's big.Rat floating ratios.
package interestrate

import (
	"github.com/autara-finance/lending-core/fixedpoint"
	"github.com/autara-finance/lending-core/lendingerr"
)

// Params is the input every curve variant consumes to produce a per-second
// borrow rate.
type Params struct {
	// UtilisationRate is total_borrowed / total_deposited, in [0, 1].
	UtilisationRate fixedpoint.UFixedPoint
	// ElapsedSeconds since the curve was last advanced, used only by the
	// stateful Adaptive variant.
	ElapsedSeconds uint64
}

// UtilisationBps renders UtilisationRate as whole basis points, rounding
// down, for curves (Polyline) keyed off integer bps control points.
func (p Params) UtilisationBps() (uint64, error) {
	return fixedpoint.FixedPointToBps(p.UtilisationRate, fixedpoint.RoundDown)
}

// Kind discriminates the tagged union of curve variants. A Curve value
// always carries exactly one of Fixed, Polyline, or Adaptive populated
// according to Kind; the others are zero.
type Kind uint8

const (
	KindFixed Kind = iota
	KindPolyline
	KindAdaptive
)

func (k Kind) String() string {
	switch k {
	case KindFixed:
		return "fixed"
	case KindPolyline:
		return "polyline"
	case KindAdaptive:
		return "adaptive"
	default:
		return "unknown"
	}
}

// Curve is the tagged union of borrow-rate curve variants persisted inside
// a market's borrow state. Only one of the variant fields is meaningful,
// selected by Kind; this mirrors the original program's Rust enum but Go
// has no sum types, so the struct carries all three and BorrowRatePerSecond
// dispatches on Kind.
type Curve struct {
	Kind     Kind
	Fixed    FixedCurve
	Polyline PolylineCurve
	Adaptive AdaptiveCurve
}

// NewFixed constructs a curve with a constant per-second rate.
func NewFixed(ratePerSecond fixedpoint.IFixedPoint) Curve {
	return Curve{Kind: KindFixed, Fixed: FixedCurve{RatePerSecond: ratePerSecond}}
}

// NewPolyline constructs a piecewise-linear curve, validating the control
// points.
func NewPolyline(points []ControlPoint) (Curve, error) {
	curve, err := newPolylineCurve(points)
	if err != nil {
		return Curve{}, err
	}
	return Curve{Kind: KindPolyline, Polyline: curve}, nil
}

// NewAdaptive constructs a stateful curve that walks its stored rate toward
// whatever rate keeps utilisation near targetUtilisation.
func NewAdaptive(cfg AdaptiveConfig) (Curve, error) {
	curve, err := newAdaptiveCurve(cfg)
	if err != nil {
		return Curve{}, err
	}
	return Curve{Kind: KindAdaptive, Adaptive: curve}, nil
}

// BorrowRatePerSecond dispatches to the active variant, returning the
// per-second borrow rate for the given parameters. For the Adaptive variant
// this mutates the curve's stored rate in place, mirroring the original
// program's requirement that the adaptive variant take exclusive access to
// the market's rate-state region on every call.
func (c *Curve) BorrowRatePerSecond(params Params) (fixedpoint.IFixedPoint, error) {
	switch c.Kind {
	case KindFixed:
		return c.Fixed.RatePerSecond, nil
	case KindPolyline:
		return c.Polyline.RatePerSecond(params)
	case KindAdaptive:
		return c.Adaptive.Advance(params)
	default:
		return fixedpoint.IFixedPoint{}, lendingerr.New(lendingerr.CodeInvalidFixedPoint, "unknown interest curve kind %d", c.Kind)
	}
}
