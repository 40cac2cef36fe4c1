package lendingstate

import (
	"github.com/autara-finance/lending-core/globalconfig"
)

// GlobalConfigSize is the fixed encoded length of a GlobalConfig account.
const GlobalConfigSize = autarapubkeySize /* Admin */ + autarapubkeySize /* NominatedAdmin */ + autarapubkeySize /* FeeReceiver */ + 8 /* ProtocolFeeShareInBps */ + 1 /* Bump */

// GlobalConfigBytes is the fixed-size encoded form of a GlobalConfig account.
type GlobalConfigBytes [GlobalConfigSize]byte

// EncodeGlobalConfig serializes a GlobalConfig into its wire form.
func EncodeGlobalConfig(g *globalconfig.GlobalConfig) GlobalConfigBytes {
	var out GlobalConfigBytes
	c := newWriteCursor(GlobalConfigSize)
	c.writePubkey(g.Admin)
	c.writePubkey(g.NominatedAdmin)
	c.writePubkey(g.FeeReceiver)
	c.writeU64(g.ProtocolFeeShareInBps)
	c.writeU8(g.Bump)
	copy(out[:], c.buf)
	return out
}

// DecodeGlobalConfig parses a GlobalConfig account from its wire form.
func DecodeGlobalConfig(raw GlobalConfigBytes) *globalconfig.GlobalConfig {
	c := newReadCursor(raw[:])
	return &globalconfig.GlobalConfig{
		Admin:                 c.readPubkey(),
		NominatedAdmin:        c.readPubkey(),
		FeeReceiver:           c.readPubkey(),
		ProtocolFeeShareInBps: c.readU64(),
		Bump:                  c.readU8(),
	}
}
