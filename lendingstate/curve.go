package lendingstate

import (
	"fmt"

	"github.com/autara-finance/lending-core/fixedpoint"
	"github.com/autara-finance/lending-core/interestrate"
	"github.com/autara-finance/lending-core/lendingerr"
)

// MaxPolylinePoints bounds the number of control points a persisted
// polyline curve may carry, the fixed-account analogue of a Vec<ControlPoint>
// that must live in a const-sized on-chain account.
const MaxPolylinePoints = 8

const controlPointSize = 8 + ifixedPointSize // UtilisationBps + RatePerSecond

// curveSize is the encoded width every Curve variant shares: the tagged
// union's footprint is sized for its largest member (Polyline) and the
// smaller variants are zero-padded into the same window, the byte-layout
// analogue of a Rust enum whose variants overlay the same memory.
const curveSize = 1 /* kind */ + 1 /* point count */ + MaxPolylinePoints*controlPointSize

func encodeCurve(c *cursor, curve interestrate.Curve) error {
	c.writeU8(uint8(curve.Kind))
	body := newWriteCursor(curveSize - 1)
	switch curve.Kind {
	case interestrate.KindFixed:
		body.writeU8(0)
		if err := body.writeIFixedPoint(curve.Fixed.RatePerSecond); err != nil {
			return err
		}
	case interestrate.KindPolyline:
		if len(curve.Polyline.Points) > MaxPolylinePoints {
			return fmt.Errorf("lendingstate: polyline curve has %d control points, max is %d", len(curve.Polyline.Points), MaxPolylinePoints)
		}
		body.writeU8(uint8(len(curve.Polyline.Points)))
		for i := 0; i < MaxPolylinePoints; i++ {
			var bps uint64
			rate := fixedpoint.Zero()
			if i < len(curve.Polyline.Points) {
				bps = curve.Polyline.Points[i].UtilisationBps
				rate = curve.Polyline.Points[i].RatePerSecond
			}
			body.writeU64(bps)
			if err := body.writeIFixedPoint(rate); err != nil {
				return err
			}
		}
	case interestrate.KindAdaptive:
		body.writeU8(0)
		if err := body.writeIFixedPoint(curve.Adaptive.CurrentRatePerSecond); err != nil {
			return err
		}
		body.writeUFixedPoint(curve.Adaptive.TargetUtilisation)
		if err := body.writeIFixedPoint(curve.Adaptive.AdjustmentSpeed); err != nil {
			return err
		}
		if err := body.writeIFixedPoint(curve.Adaptive.MinRatePerSecond); err != nil {
			return err
		}
		if err := body.writeIFixedPoint(curve.Adaptive.MaxRatePerSecond); err != nil {
			return err
		}
	default:
		return lendingerr.New(lendingerr.CodeInvalidFixedPoint, "unknown interest curve kind %d", curve.Kind)
	}
	c.writeBytes(body.buf)
	return nil
}

func decodeCurve(c *cursor) (interestrate.Curve, error) {
	kind := interestrate.Kind(c.readU8())
	body := newReadCursor(c.readBytes(curveSize - 1))
	switch kind {
	case interestrate.KindFixed:
		body.readU8()
		rate, err := body.readIFixedPoint()
		if err != nil {
			return interestrate.Curve{}, err
		}
		return interestrate.NewFixed(rate), nil
	case interestrate.KindPolyline:
		count := int(body.readU8())
		if count > MaxPolylinePoints {
			return interestrate.Curve{}, fmt.Errorf("lendingstate: encoded polyline point count %d exceeds max %d", count, MaxPolylinePoints)
		}
		points := make([]interestrate.ControlPoint, 0, count)
		for i := 0; i < MaxPolylinePoints; i++ {
			bps := body.readU64()
			rate, err := body.readIFixedPoint()
			if err != nil {
				return interestrate.Curve{}, err
			}
			if i < count {
				points = append(points, interestrate.ControlPoint{UtilisationBps: bps, RatePerSecond: rate})
			}
		}
		return interestrate.NewPolyline(points)
	case interestrate.KindAdaptive:
		body.readU8()
		current, err := body.readIFixedPoint()
		if err != nil {
			return interestrate.Curve{}, err
		}
		target := body.readUFixedPoint()
		speed, err := body.readIFixedPoint()
		if err != nil {
			return interestrate.Curve{}, err
		}
		min, err := body.readIFixedPoint()
		if err != nil {
			return interestrate.Curve{}, err
		}
		max, err := body.readIFixedPoint()
		if err != nil {
			return interestrate.Curve{}, err
		}
		return interestrate.Curve{
			Kind: interestrate.KindAdaptive,
			Adaptive: interestrate.AdaptiveCurve{
				CurrentRatePerSecond: current,
				TargetUtilisation:    target,
				AdjustmentSpeed:      speed,
				MinRatePerSecond:     min,
				MaxRatePerSecond:     max,
			},
		}, nil
	default:
		return interestrate.Curve{}, lendingerr.New(lendingerr.CodeInvalidFixedPoint, "unknown encoded interest curve kind %d", kind)
	}
}
