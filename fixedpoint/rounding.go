// Package fixedpoint implements the signed and unsigned fixed-point scalars
// every economic computation in the lending core is built on. It follows the
// teacher's (native/lending/math.go) pattern of scaling big.Int values by a
// fixed power of ten and rounding explicitly at each call site, generalized
// into named types with an explicit Rounding parameter instead of the
// teacher's bespoke halfUp/rayMul/rayDiv helpers: rounding direction is
// always named at the call site, never implicit.
package fixedpoint

// Rounding selects how a fixed-point division or scalar conversion resolves
// a remainder. There is deliberately no "nearest" mode: every lending
// operation dictates round up or round down depending on which side of the
// ledger it protects, never round to nearest, so offering a third option
// would invite an ambiguous call site.
type Rounding int

const (
	// RoundDown truncates toward zero (and toward negative infinity for the
	// non-negative domain these types operate in).
	RoundDown Rounding = iota
	// RoundUp rounds away from zero on any non-zero remainder.
	RoundUp
)
