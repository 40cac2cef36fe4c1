// Package pda derives the deterministic addresses every lending account is
// stored at, generalising the original program's
// autara-lib/src/pda.rs seed layout (market / supply_position /
// borrow_position / global_config, each hashed with Pubkey::find_program_address)
// to Go. Solana's real PDA derivation additionally requires the candidate
// address to fall off the ed25519 curve; autarapubkey.Pubkey is an opaque
// 32-byte identifier with no curve to be on, so every candidate is already
// valid and the bump search below always resolves on its first iteration
// (255) — the loop is kept to preserve the original "highest valid bump"
// derivation shape a caller migrating from the Solana program would expect.
package pda

import (
	"crypto/sha256"

	"github.com/autara-finance/lending-core/autarapubkey"
)

const (
	marketSeedPrefix         = "market"
	supplyPositionSeedPrefix = "supply_position"
	borrowPositionSeedPrefix = "borrow_position"
	globalConfigSeedPrefix   = "global_config"
	programDerivedAddressTag = "ProgramDerivedAddress"
)

func derive(programID autarapubkey.Pubkey, seeds ...[]byte) (autarapubkey.Pubkey, uint8) {
	for bump := 255; bump >= 0; bump-- {
		h := sha256.New()
		for _, s := range seeds {
			h.Write(s)
		}
		h.Write([]byte{byte(bump)})
		h.Write(programID[:])
		h.Write([]byte(programDerivedAddressTag))
		sum := h.Sum(nil)
		return autarapubkey.MustNew(sum), uint8(bump)
	}
	panic("pda: unreachable, no valid bump found")
}

// MarketSeeds returns the seed components a market account is derived
// from, mirroring market_seed_without_bump.
func MarketSeeds(curator, supplyMint, collateralMint autarapubkey.Pubkey, index uint8) [][]byte {
	return [][]byte{
		[]byte(marketSeedPrefix),
		curator.Bytes(),
		supplyMint.Bytes(),
		collateralMint.Bytes(),
		{index},
	}
}

// FindMarketPDA derives the address and bump of a market account.
func FindMarketPDA(programID, curator, supplyMint, collateralMint autarapubkey.Pubkey, index uint8) (autarapubkey.Pubkey, uint8) {
	return derive(programID, MarketSeeds(curator, supplyMint, collateralMint, index)...)
}

// SupplyPositionSeeds returns the seed components a supply position is
// derived from.
func SupplyPositionSeeds(market, authority autarapubkey.Pubkey) [][]byte {
	return [][]byte{[]byte(supplyPositionSeedPrefix), market.Bytes(), authority.Bytes()}
}

// FindSupplyPositionPDA derives the address and bump of a supply position
// account.
func FindSupplyPositionPDA(programID, market, authority autarapubkey.Pubkey) (autarapubkey.Pubkey, uint8) {
	return derive(programID, SupplyPositionSeeds(market, authority)...)
}

// BorrowPositionSeeds returns the seed components a borrow position is
// derived from.
func BorrowPositionSeeds(market, authority autarapubkey.Pubkey) [][]byte {
	return [][]byte{[]byte(borrowPositionSeedPrefix), market.Bytes(), authority.Bytes()}
}

// FindBorrowPositionPDA derives the address and bump of a borrow position
// account.
func FindBorrowPositionPDA(programID, market, authority autarapubkey.Pubkey) (autarapubkey.Pubkey, uint8) {
	return derive(programID, BorrowPositionSeeds(market, authority)...)
}

// GlobalConfigSeeds returns the seed components the singleton global
// config account is derived from.
func GlobalConfigSeeds() [][]byte {
	return [][]byte{[]byte(globalConfigSeedPrefix)}
}

// FindGlobalConfigPDA derives the address and bump of the global config
// account.
func FindGlobalConfigPDA(programID autarapubkey.Pubkey) (autarapubkey.Pubkey, uint8) {
	return derive(programID, GlobalConfigSeeds()...)
}
