package lendingstate

import (
	"github.com/autara-finance/lending-core/position"
)

// SupplyPositionSize is the fixed encoded length of a SupplyPosition account.
const SupplyPositionSize = autarapubkeySize /* Market */ + autarapubkeySize /* Authority */ + 8 /* Shares */

// SupplyPositionBytes is the fixed-size encoded form of a SupplyPosition account.
type SupplyPositionBytes [SupplyPositionSize]byte

// EncodeSupplyPosition serializes a SupplyPosition into its wire form.
func EncodeSupplyPosition(p *position.SupplyPosition) SupplyPositionBytes {
	var out SupplyPositionBytes
	c := newWriteCursor(SupplyPositionSize)
	c.writePubkey(p.Market)
	c.writePubkey(p.Authority)
	c.writeU64(p.Shares)
	copy(out[:], c.buf)
	return out
}

// DecodeSupplyPosition parses a SupplyPosition account from its wire form.
func DecodeSupplyPosition(raw SupplyPositionBytes) *position.SupplyPosition {
	c := newReadCursor(raw[:])
	return &position.SupplyPosition{
		Market:    c.readPubkey(),
		Authority: c.readPubkey(),
		Shares:    c.readU64(),
	}
}

// BorrowPositionSize is the fixed encoded length of a BorrowPosition account.
const BorrowPositionSize = autarapubkeySize /* Market */ + autarapubkeySize /* Authority */ + 8 /* CollateralDepositedAtoms */ + 8 /* BorrowShares */

// BorrowPositionBytes is the fixed-size encoded form of a BorrowPosition account.
type BorrowPositionBytes [BorrowPositionSize]byte

// EncodeBorrowPosition serializes a BorrowPosition into its wire form.
func EncodeBorrowPosition(p *position.BorrowPosition) BorrowPositionBytes {
	var out BorrowPositionBytes
	c := newWriteCursor(BorrowPositionSize)
	c.writePubkey(p.Market)
	c.writePubkey(p.Authority)
	c.writeU64(p.CollateralDepositedAtoms)
	c.writeU64(p.BorrowShares)
	copy(out[:], c.buf)
	return out
}

// DecodeBorrowPosition parses a BorrowPosition account from its wire form.
func DecodeBorrowPosition(raw BorrowPositionBytes) *position.BorrowPosition {
	c := newReadCursor(raw[:])
	return &position.BorrowPosition{
		Market:                   c.readPubkey(),
		Authority:                c.readPubkey(),
		CollateralDepositedAtoms: c.readU64(),
		BorrowShares:             c.readU64(),
	}
}
