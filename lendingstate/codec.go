// Package lendingstate provides the fixed-size byte encoding for the four
// persisted account kinds (Market, SupplyPosition, BorrowPosition,
// GlobalConfig) and asserts their encoded sizes are pairwise distinct, the
// Go analogue of the original program's bytemuck::Pod zero-copy accounts
// and autara-lib/src/state/mod.rs's validate_all_different_sizes
// const-eval check (a Go const fn over size_of is impossible, so the check
// runs once at package init instead).
//
// Go has no zero-copy Pod casting, so each account type has an explicit
// EncodeX/DecodeX function pair (EncodeMarket/DecodeMarket and so on)
// instead of being reinterpreted in place. Variable-length fields (the polyline interest curve's control
// points) are capped at MaxPolylinePoints and zero-padded, mirroring how a
// fixed-size on-chain account must bound any would-be slice.
package lendingstate

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/autara-finance/lending-core/autarapubkey"
	"github.com/autara-finance/lending-core/fixedpoint"
)

// ifixedPointSize is the encoded width of an IFixedPoint: one sign byte
// plus a 32-byte big-endian magnitude.
const ifixedPointSize = 1 + 32

// ufixedPointSize is the encoded width of a UFixedPoint: its native
// 32-byte uint256 representation.
const ufixedPointSize = 32

// cursor writes or reads fixed-width fields into a pre-sized byte slice,
// tracking its own offset so callers never hand-compute slice bounds.
type cursor struct {
	buf []byte
	off int
}

func newWriteCursor(size int) *cursor {
	return &cursor{buf: make([]byte, size)}
}

func newReadCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) writeBytes(b []byte) {
	copy(c.buf[c.off:], b)
	c.off += len(b)
}

func (c *cursor) readBytes(n int) []byte {
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b
}

func (c *cursor) writeU8(v uint8) {
	c.buf[c.off] = v
	c.off++
}

func (c *cursor) readU8() uint8 {
	v := c.buf[c.off]
	c.off++
	return v
}

func (c *cursor) writeU64(v uint64) {
	binary.BigEndian.PutUint64(c.buf[c.off:c.off+8], v)
	c.off += 8
}

func (c *cursor) readU64() uint64 {
	v := binary.BigEndian.Uint64(c.buf[c.off : c.off+8])
	c.off += 8
	return v
}

func (c *cursor) writeI64(v int64) {
	c.writeU64(uint64(v))
}

func (c *cursor) readI64() int64 {
	return int64(c.readU64())
}

func (c *cursor) writePubkey(p autarapubkey.Pubkey) {
	c.writeBytes(p[:])
}

func (c *cursor) readPubkey() autarapubkey.Pubkey {
	var p autarapubkey.Pubkey
	copy(p[:], c.readBytes(autarapubkey.Size))
	return p
}

func (c *cursor) writeUFixedPoint(v fixedpoint.UFixedPoint) {
	b := v.Bytes32()
	c.writeBytes(b[:])
}

func (c *cursor) readUFixedPoint() fixedpoint.UFixedPoint {
	var b [32]byte
	copy(b[:], c.readBytes(ufixedPointSize))
	return fixedpoint.UFromBytes32(b)
}

func (c *cursor) writeIFixedPoint(v fixedpoint.IFixedPoint) error {
	raw := v.Raw()
	magnitude := new(big.Int).Abs(raw)
	packed := magnitude.Bytes()
	if len(packed) > 32 {
		return fmt.Errorf("lendingstate: fixed-point magnitude does not fit in 32 bytes")
	}
	sign := uint8(0)
	if raw.Sign() < 0 {
		sign = 1
	}
	c.writeU8(sign)
	var padded [32]byte
	copy(padded[32-len(packed):], packed)
	c.writeBytes(padded[:])
	return nil
}

func (c *cursor) readIFixedPoint() (fixedpoint.IFixedPoint, error) {
	sign := c.readU8()
	magnitude := new(big.Int).SetBytes(c.readBytes(32))
	if sign == 1 {
		magnitude.Neg(magnitude)
	}
	return fixedpoint.FromRawScaled(magnitude)
}
