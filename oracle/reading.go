// Package oracle normalises an external price reading into an
// IFixedPoint quote-per-base value, gating on staleness and confidence the
// way the teacher's native/swap.PriceQuote/FeedHealth pairing gates a swap
// quote before it is trusted.
package oracle

import "github.com/autara-finance/lending-core/fixedpoint"

// Reading is a single price observation as reported by an external feed,
// before any staleness or confidence checks have been applied.
type Reading struct {
	// Price is the raw reported price, scaled by 10^Exponent.
	Price fixedpoint.IFixedPoint
	// Confidence is the feed's reported uncertainty band, same scale as
	// Price.
	Confidence fixedpoint.IFixedPoint
	// Exponent is the power-of-ten scale applied to Price and Confidence,
	// mirroring a Pyth-style price feed.
	Exponent int32
	// PublishTime is the unix timestamp the feed attached to this reading.
	PublishTime int64
}

// Normalise rescales Price by 10^Exponent into a plain IFixedPoint,
// independent of the feed's chosen exponent.
func (r Reading) Normalise() (fixedpoint.IFixedPoint, error) {
	return r.Price.ScalePow10(int(r.Exponent))
}
