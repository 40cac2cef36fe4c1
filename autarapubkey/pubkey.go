// Package autarapubkey provides the 32-byte program-derived-address style
// identifier used throughout the lending core, modeled after the teacher's
// bech32 crypto.Address but sized and encoded the way the original Solana
// program's arch_program.Pubkey is: a fixed 32-byte array, base58 rendered.
package autarapubkey

import (
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
)

// Size is the fixed byte length of a Pubkey.
const Size = 32

// Pubkey is a fixed-size, zero-copy-friendly account/program identifier.
type Pubkey [Size]byte

// Zero is the default, uninitialized pubkey. Several account invariants
// ("admin != zero once initialised") are expressed against it.
var Zero = Pubkey{}

// New constructs a Pubkey from a byte slice, which must be exactly Size long.
func New(b []byte) (Pubkey, error) {
	var pk Pubkey
	if len(b) != Size {
		return pk, fmt.Errorf("autarapubkey: expected %d bytes, got %d", Size, len(b))
	}
	copy(pk[:], b)
	return pk, nil
}

// MustNew constructs a Pubkey and panics on malformed input. Intended for
// tests and constant tables, mirroring the teacher's MustNewAddress.
func MustNew(b []byte) Pubkey {
	pk, err := New(b)
	if err != nil {
		panic(err)
	}
	return pk
}

// IsZero reports whether the pubkey is the uninitialized sentinel value.
func (p Pubkey) IsZero() bool {
	return p == Zero
}

// Bytes returns a defensive copy of the underlying bytes.
func (p Pubkey) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, p[:])
	return out
}

// String renders the pubkey using base58, the conventional Solana account
// encoding.
func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// Hex renders the pubkey as a hex string, useful for log correlation where
// base58's variable width is inconvenient to grep.
func (p Pubkey) Hex() string {
	return hex.EncodeToString(p[:])
}

// Parse decodes a base58-rendered pubkey string.
func Parse(s string) (Pubkey, error) {
	decoded, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, fmt.Errorf("autarapubkey: invalid base58: %w", err)
	}
	return New(decoded)
}

// MarshalText implements encoding.TextMarshaler for JSON/TOML friendliness.
func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pubkey) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
