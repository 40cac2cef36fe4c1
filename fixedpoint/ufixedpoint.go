package fixedpoint

import (
	"math/big"
	"strings"

	"github.com/holiman/uint256"

	"github.com/autara-finance/lending-core/lendingerr"
)

// uscale is the unsigned fixed-point denominator, matching IFixedPoint's
// WAD so the two types can be mixed without an extra normalisation step.
var uscale = uint256.NewInt(1_000_000_000_000_000_000)

// UFixedPoint is an unsigned fixed-point scalar, the Go analogue of the
// original program's U64F64, backed by a uint256.Int for the fixed-width
// storage a plain big.Int cannot guarantee. It carries ratios such as
// utilisation and the max utilisation rate; vault totals and position
// share balances are plain uint64 counts, not UFixedPoint. The zero value
// holds no backing integer and is not usable with the methods below;
// build values with UZero, UFromU64, ULit or another constructor.
type UFixedPoint struct {
	v *uint256.Int
}

func newU(v *uint256.Int, overflowed bool) (UFixedPoint, error) {
	if overflowed {
		return UFixedPoint{}, lendingerr.ErrMathOverflow
	}
	return UFixedPoint{v: v}, nil
}

// UZero is the additive identity.
func UZero() UFixedPoint { return UFixedPoint{v: uint256.NewInt(0)} }

// UOne is the multiplicative identity.
func UOne() UFixedPoint { return UFixedPoint{v: new(uint256.Int).Set(uscale)} }

// UFromU64 constructs a UFixedPoint representing the integer n exactly.
func UFromU64(n uint64) UFixedPoint {
	v := uint256.NewInt(n)
	overflow := v.MulOverflow(v, uscale)
	if overflow {
		panic("fixedpoint: UFromU64 overflowed uscale, impossible for a u64 input")
	}
	return UFixedPoint{v: v}
}

// UFromRaw wraps an already-scaled uint256 value, used when decoding from
// persisted account bytes.
func UFromRaw(raw *uint256.Int) UFixedPoint {
	return UFixedPoint{v: new(uint256.Int).Set(raw)}
}

// UFromRatio builds num/den, rounding per the supplied mode.
func UFromRatio(num, den uint64, rounding Rounding) (UFixedPoint, error) {
	if den == 0 {
		return UFixedPoint{}, lendingerr.ErrDivisionByZero
	}
	n, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(num), uscale)
	if overflow {
		return UFixedPoint{}, lendingerr.ErrMathOverflow
	}
	d := uint256.NewInt(den)
	q, r := new(uint256.Int).DivMod(n, d, new(uint256.Int))
	if !r.IsZero() && rounding == RoundUp {
		q.AddUint64(q, 1)
	}
	return UFixedPoint{v: q}, nil
}

// ULit parses a non-negative decimal literal such as "1.5", panicking on
// malformed input. Intended for tests and constant tables.
func ULit(s string) UFixedPoint {
	v, err := UTryLit(s)
	if err != nil {
		panic(err)
	}
	return v
}

// UTryLit is the fallible form of ULit.
func UTryLit(s string) (UFixedPoint, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		return UFixedPoint{}, lendingerr.New(lendingerr.CodeInvalidFixedPoint, "negative literal %q for unsigned type", s)
	}
	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	intVal := new(uint256.Int)
	if err := intVal.SetFromDecimal(intPart); err != nil {
		return UFixedPoint{}, lendingerr.New(lendingerr.CodeInvalidFixedPoint, "malformed literal %q", s)
	}
	scaled, overflow := new(uint256.Int).MulOverflow(intVal, uscale)
	if overflow {
		return UFixedPoint{}, lendingerr.ErrMathOverflow
	}
	if fracPart != "" {
		if len(fracPart) > 18 {
			fracPart = fracPart[:18]
		}
		fracVal := new(uint256.Int)
		if err := fracVal.SetFromDecimal(fracPart); err != nil {
			return UFixedPoint{}, lendingerr.New(lendingerr.CodeInvalidFixedPoint, "malformed literal %q", s)
		}
		pad := upow10(18 - len(fracPart))
		fracScaled, overflow := new(uint256.Int).MulOverflow(fracVal, pad)
		if overflow {
			return UFixedPoint{}, lendingerr.ErrMathOverflow
		}
		scaled, overflow = new(uint256.Int).AddOverflow(scaled, fracScaled)
		if overflow {
			return UFixedPoint{}, lendingerr.ErrMathOverflow
		}
	}
	return UFixedPoint{v: scaled}, nil
}

func upow10(n int) *uint256.Int {
	out := uint256.NewInt(1)
	ten := uint256.NewInt(10)
	for i := 0; i < n; i++ {
		out.Mul(out, ten)
	}
	return out
}

// Add returns a+b, erroring on overflow.
func (a UFixedPoint) Add(b UFixedPoint) (UFixedPoint, error) {
	v, overflow := new(uint256.Int).AddOverflow(a.v, b.v)
	return newU(v, overflow)
}

// Sub returns a-b, erroring rather than wrapping if b > a (there is no
// negative representation).
func (a UFixedPoint) Sub(b UFixedPoint) (UFixedPoint, error) {
	if a.v.Lt(b.v) {
		return UFixedPoint{}, lendingerr.ErrMathOverflow
	}
	return UFixedPoint{v: new(uint256.Int).Sub(a.v, b.v)}, nil
}

// Mul returns a*b rounded per the supplied mode. The intermediate product
// of two 256-bit scaled values can itself exceed 256 bits before the
// division by uscale brings it back into range, so the multiply-divide
// runs through big.Int rather than uint256's wrapping Mul.
func (a UFixedPoint) Mul(b UFixedPoint, rounding Rounding) (UFixedPoint, error) {
	product := new(big.Int).Mul(a.v.ToBig(), b.v.ToBig())
	uscaleBig := uscale.ToBig()
	q, r := new(big.Int).QuoRem(product, uscaleBig, new(big.Int))
	if r.Sign() != 0 && rounding == RoundUp {
		q.Add(q, big.NewInt(1))
	}
	result, overflow := uint256.FromBig(q)
	if overflow {
		return UFixedPoint{}, lendingerr.ErrMathOverflow
	}
	return UFixedPoint{v: result}, nil
}

// MulU64 multiplies by a raw (non-fixed-point) unsigned integer.
func (a UFixedPoint) MulU64(n uint64, rounding Rounding) (UFixedPoint, error) {
	return a.Mul(UFromU64(n), rounding)
}

// Div returns a/b rounded per the supplied mode. Like Mul, the numerator
// (a scaled by uscale again) can exceed 256 bits, so this runs through
// big.Int.
func (a UFixedPoint) Div(b UFixedPoint, rounding Rounding) (UFixedPoint, error) {
	if b.v.IsZero() {
		return UFixedPoint{}, lendingerr.ErrDivisionByZero
	}
	numerator := new(big.Int).Mul(a.v.ToBig(), uscale.ToBig())
	q, r := new(big.Int).QuoRem(numerator, b.v.ToBig(), new(big.Int))
	if r.Sign() != 0 && rounding == RoundUp {
		q.Add(q, big.NewInt(1))
	}
	result, overflow := uint256.FromBig(q)
	if overflow {
		return UFixedPoint{}, lendingerr.ErrMathOverflow
	}
	return UFixedPoint{v: result}, nil
}

// AsU64RoundedDown truncates to a u64, erroring if the value does not fit.
func (a UFixedPoint) AsU64RoundedDown() (uint64, error) {
	q := new(uint256.Int).Div(a.v, uscale)
	if !q.IsUint64() {
		return 0, lendingerr.ErrCastOverflow
	}
	return q.Uint64(), nil
}

// AsU64RoundedUp rounds any remainder up before truncating to a u64.
func (a UFixedPoint) AsU64RoundedUp() (uint64, error) {
	q, r := new(uint256.Int).DivMod(a.v, uscale, new(uint256.Int))
	if !r.IsZero() {
		q = new(uint256.Int).AddUint64(q, 1)
	}
	if !q.IsUint64() {
		return 0, lendingerr.ErrCastOverflow
	}
	return q.Uint64(), nil
}

// Cmp returns -1, 0, or 1 comparing a to b.
func (a UFixedPoint) Cmp(b UFixedPoint) int {
	return a.v.Cmp(b.v)
}

// IsZero reports whether the value is exactly zero.
func (a UFixedPoint) IsZero() bool { return a.v.IsZero() }

// Min returns the smaller of a and b.
func (a UFixedPoint) Min(b UFixedPoint) UFixedPoint {
	if a.v.Lt(b.v) {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func (a UFixedPoint) Max(b UFixedPoint) UFixedPoint {
	if a.v.Gt(b.v) {
		return a
	}
	return b
}

// String renders a human-readable decimal, truncating to 18 fractional
// digits then trimming trailing zeros.
func (a UFixedPoint) String() string {
	q, r := new(uint256.Int).DivMod(a.v, uscale, new(uint256.Int))
	frac := r.Dec()
	for len(frac) < 18 {
		frac = "0" + frac
	}
	frac = strings.TrimRight(frac, "0")
	out := q.Dec()
	if frac != "" {
		out += "." + frac
	}
	return out
}

// Raw returns the underlying scaled uint256, primarily for tests and byte
// encoding.
func (a UFixedPoint) Raw() *uint256.Int { return new(uint256.Int).Set(a.v) }

// Bytes32 renders the scaled value as a big-endian 32-byte array, the
// layout used when persisting a UFixedPoint inside an account.
func (a UFixedPoint) Bytes32() [32]byte {
	return a.v.Bytes32()
}

// MarshalJSON renders the value as a quoted decimal string, the same
// format String produces, so a snapshot served over the RPC surface never
// silently loses precision to a float64.
func (a UFixedPoint) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UFromBytes32 decodes a UFixedPoint from its persisted big-endian
// representation.
func UFromBytes32(b [32]byte) UFixedPoint {
	return UFixedPoint{v: new(uint256.Int).SetBytes32(b[:])}
}
