package interestrate

import (
	"github.com/autara-finance/lending-core/fixedpoint"
	"github.com/autara-finance/lending-core/lendingerr"
)

// ControlPoint pins the per-second borrow rate at a given utilisation,
// expressed in basis points [0, 10000]. Generalises the teacher's two
// fixed slopes either side of a kink into an arbitrary number of pinned
// points.
type ControlPoint struct {
	UtilisationBps uint64
	RatePerSecond  fixedpoint.IFixedPoint
}

// PolylineCurve interpolates linearly between a validated, strictly
// increasing-in-utilisation set of control points, clamping at the
// endpoints.
type PolylineCurve struct {
	Points []ControlPoint
}

func newPolylineCurve(points []ControlPoint) (PolylineCurve, error) {
	if len(points) < 2 {
		return PolylineCurve{}, lendingerr.New(lendingerr.CodeInvalidFixedPoint, "polyline curve needs at least 2 control points, got %d", len(points))
	}
	for i, p := range points {
		if p.UtilisationBps > fixedpoint.BpsDenominator {
			return PolylineCurve{}, lendingerr.New(lendingerr.CodeInvalidFixedPoint, "control point %d utilisation %d bps exceeds denominator", i, p.UtilisationBps)
		}
		if p.RatePerSecond.IsNegative() {
			return PolylineCurve{}, lendingerr.New(lendingerr.CodeInvalidFixedPoint, "control point %d has negative rate", i)
		}
		if i > 0 && points[i-1].UtilisationBps >= p.UtilisationBps {
			return PolylineCurve{}, lendingerr.New(lendingerr.CodeInvalidFixedPoint, "control points must have strictly increasing utilisation, point %d does not", i)
		}
	}
	cloned := make([]ControlPoint, len(points))
	copy(cloned, points)
	return PolylineCurve{Points: cloned}, nil
}

// RatePerSecond linearly interpolates the rate at params.UtilisationRate,
// clamping to the first/last control point outside their range.
func (c PolylineCurve) RatePerSecond(params Params) (fixedpoint.IFixedPoint, error) {
	uBps, err := params.UtilisationBps()
	if err != nil {
		return fixedpoint.IFixedPoint{}, err
	}

	first := c.Points[0]
	if uBps <= first.UtilisationBps {
		return first.RatePerSecond, nil
	}
	last := c.Points[len(c.Points)-1]
	if uBps >= last.UtilisationBps {
		return last.RatePerSecond, nil
	}

	for i := 1; i < len(c.Points); i++ {
		lo, hi := c.Points[i-1], c.Points[i]
		if uBps > hi.UtilisationBps {
			continue
		}
		// Linear interpolation: rate = lo.rate + (hi.rate - lo.rate) *
		// (u - lo.u) / (hi.u - lo.u).
		span, err := hi.RatePerSecond.Sub(lo.RatePerSecond)
		if err != nil {
			return fixedpoint.IFixedPoint{}, err
		}
		numerator := fixedpoint.FromI64(int64(uBps - lo.UtilisationBps))
		denominator := fixedpoint.FromI64(int64(hi.UtilisationBps - lo.UtilisationBps))
		fraction, err := numerator.Div(denominator, fixedpoint.RoundDown)
		if err != nil {
			return fixedpoint.IFixedPoint{}, err
		}
		delta, err := span.Mul(fraction, fixedpoint.RoundDown)
		if err != nil {
			return fixedpoint.IFixedPoint{}, err
		}
		return lo.RatePerSecond.Add(delta)
	}
	return last.RatePerSecond, nil
}
