// Package market implements the market state machine: its configuration,
// borrow-side accounting, health checks, and the MarketWrapper economic
// core that ties a market's vaults, interest curve, and oracle readings
// together for a single host invocation. It generalises the teacher's
// native/lending.Market/RiskParameters and Engine methods
// (native/lending/engine.go) from a combined-account, ray-scaled model
// into the split supply/collateral/borrow accounting the persisted layout
// requires.
package market

import (
	"github.com/autara-finance/lending-core/autarapubkey"
	"github.com/autara-finance/lending-core/fixedpoint"
	"github.com/autara-finance/lending-core/lendingerr"
)

// MintInfo describes a token's precision, mirroring the mint+decimals pair
// every spec-level token reference carries.
type MintInfo struct {
	Mint     autarapubkey.Pubkey
	Decimals uint8
}

// LtvConfig bounds how much a position may borrow against its collateral
// and the liquidation terms once it breaches that bound.
type LtvConfig struct {
	MaxLtvBps           uint64
	LiquidationLtvBps   uint64
	LiquidationBonusBps uint64
}

// Validate enforces MaxLtvBps < LiquidationLtvBps and that every bps field
// is within [0, 10000].
func (c LtvConfig) Validate() error {
	if err := fixedpoint.ValidateBps(c.MaxLtvBps); err != nil {
		return err
	}
	if err := fixedpoint.ValidateBps(c.LiquidationLtvBps); err != nil {
		return err
	}
	if err := fixedpoint.ValidateBps(c.LiquidationBonusBps); err != nil {
		return err
	}
	if c.MaxLtvBps >= c.LiquidationLtvBps {
		return lendingerr.ErrInvalidLtvConfig
	}
	return nil
}

// Config is a market's immutable-until-updated parameters.
type Config struct {
	Curator               autarapubkey.Pubkey
	SupplyMint            MintInfo
	CollateralMint        MintInfo
	Ltv                   LtvConfig
	MaxUtilisationRate    fixedpoint.UFixedPoint
	MaxSupplyAtoms        uint64
	LendingMarketFeeInBps uint64
	ProtocolFeeShareInBps uint64
	IndexByte             uint8
	Bump                  uint8
}

// Validate checks every config invariant: LTV ordering, bps fields within
// range, and the utilisation cap within (0, 1].
func (c Config) Validate() error {
	if err := c.Ltv.Validate(); err != nil {
		return err
	}
	if err := fixedpoint.ValidateBps(c.LendingMarketFeeInBps); err != nil {
		return err
	}
	if err := fixedpoint.ValidateBps(c.ProtocolFeeShareInBps); err != nil {
		return err
	}
	if c.MaxUtilisationRate.IsZero() || c.MaxUtilisationRate.Cmp(fixedpoint.UOne()) > 0 {
		return lendingerr.New(lendingerr.CodeInvalidLtvConfig, "max utilisation rate must be in (0, 1]")
	}
	return nil
}

// SyncGlobalConfig mirrors the global config's current protocol fee share
// into this market, the step update_config runs before re-validating
// oracle configuration.
func (c *Config) SyncGlobalConfig(protocolFeeShareInBps uint64) error {
	if err := fixedpoint.ValidateBps(protocolFeeShareInBps); err != nil {
		return err
	}
	c.ProtocolFeeShareInBps = protocolFeeShareInBps
	return nil
}
