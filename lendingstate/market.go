package lendingstate

import (
	"github.com/autara-finance/lending-core/market"
)

const mintInfoSize = autarapubkeySize + 1 // Mint + Decimals
const ltvConfigSize = 8 + 8 + 8           // MaxLtvBps + LiquidationLtvBps + LiquidationBonusBps

const configSize = autarapubkeySize /* Curator */ +
	mintInfoSize /* SupplyMint */ +
	mintInfoSize /* CollateralMint */ +
	ltvConfigSize /* Ltv */ +
	ufixedPointSize /* MaxUtilisationRate */ +
	8 /* MaxSupplyAtoms */ +
	8 /* LendingMarketFeeInBps */ +
	8 /* ProtocolFeeShareInBps */ +
	1 /* IndexByte */ +
	1 /* Bump */

const supplyVaultSize = 8 * 4 // TotalDepositedAtoms, TotalShares, PendingCuratorFeeAtoms, PendingProtocolFeeAtoms
const collateralVaultSize = 8 // TotalDepositedAtoms
const borrowStateSize = 8 /* TotalBorrowedAtoms */ + 8 /* TotalBorrowShares */ + curveSize + 8 /* LastUpdateUnixTs */

// MarketSize is the fixed encoded length of a Market account.
const MarketSize = configSize + supplyVaultSize + collateralVaultSize + borrowStateSize

// autarapubkeySize avoids an import of autarapubkey purely for its Size
// constant in arithmetic contexts; it is kept equal to autarapubkey.Size by
// hand, and no init check compares the two.
const autarapubkeySize = 32

// MarketBytes is the fixed-size encoded form of a Market account.
type MarketBytes [MarketSize]byte

// EncodeMarket serializes a Market into its fixed-size wire form.
func EncodeMarket(m *market.Market) (MarketBytes, error) {
	var out MarketBytes
	c := newWriteCursor(MarketSize)

	c.writePubkey(m.Config.Curator)
	c.writePubkey(m.Config.SupplyMint.Mint)
	c.writeU8(m.Config.SupplyMint.Decimals)
	c.writePubkey(m.Config.CollateralMint.Mint)
	c.writeU8(m.Config.CollateralMint.Decimals)
	c.writeU64(m.Config.Ltv.MaxLtvBps)
	c.writeU64(m.Config.Ltv.LiquidationLtvBps)
	c.writeU64(m.Config.Ltv.LiquidationBonusBps)
	c.writeUFixedPoint(m.Config.MaxUtilisationRate)
	c.writeU64(m.Config.MaxSupplyAtoms)
	c.writeU64(m.Config.LendingMarketFeeInBps)
	c.writeU64(m.Config.ProtocolFeeShareInBps)
	c.writeU8(m.Config.IndexByte)
	c.writeU8(m.Config.Bump)

	c.writeU64(m.Supply.TotalDepositedAtoms)
	c.writeU64(m.Supply.TotalShares)
	c.writeU64(m.Supply.PendingCuratorFeeAtoms)
	c.writeU64(m.Supply.PendingProtocolFeeAtoms)

	c.writeU64(m.Collateral.TotalDepositedAtoms)

	c.writeU64(m.Borrow.TotalBorrowedAtoms)
	c.writeU64(m.Borrow.TotalBorrowShares)
	if err := encodeCurve(c, m.Borrow.InterestRateCurve); err != nil {
		return out, err
	}
	c.writeI64(m.Borrow.LastUpdateUnixTs)

	copy(out[:], c.buf)
	return out, nil
}

// DecodeMarket parses a Market account from its fixed-size wire form.
func DecodeMarket(raw MarketBytes) (*market.Market, error) {
	c := newReadCursor(raw[:])
	var m market.Market

	m.Config.Curator = c.readPubkey()
	m.Config.SupplyMint.Mint = c.readPubkey()
	m.Config.SupplyMint.Decimals = c.readU8()
	m.Config.CollateralMint.Mint = c.readPubkey()
	m.Config.CollateralMint.Decimals = c.readU8()
	m.Config.Ltv.MaxLtvBps = c.readU64()
	m.Config.Ltv.LiquidationLtvBps = c.readU64()
	m.Config.Ltv.LiquidationBonusBps = c.readU64()
	m.Config.MaxUtilisationRate = c.readUFixedPoint()
	m.Config.MaxSupplyAtoms = c.readU64()
	m.Config.LendingMarketFeeInBps = c.readU64()
	m.Config.ProtocolFeeShareInBps = c.readU64()
	m.Config.IndexByte = c.readU8()
	m.Config.Bump = c.readU8()

	m.Supply.TotalDepositedAtoms = c.readU64()
	m.Supply.TotalShares = c.readU64()
	m.Supply.PendingCuratorFeeAtoms = c.readU64()
	m.Supply.PendingProtocolFeeAtoms = c.readU64()

	m.Collateral.TotalDepositedAtoms = c.readU64()

	m.Borrow.TotalBorrowedAtoms = c.readU64()
	m.Borrow.TotalBorrowShares = c.readU64()
	curve, err := decodeCurve(c)
	if err != nil {
		return nil, err
	}
	m.Borrow.InterestRateCurve = curve
	m.Borrow.LastUpdateUnixTs = c.readI64()

	return &m, nil
}
